package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"karthikeshrobotics.in/web/internal/catalog"
	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/seo"
)

// WorkshopsHandler renders the workshops page on the requested tab.
func (s *site) WorkshopsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := s.i18nOrDefault(lang, "workshops.title", "Workshops")
	desc := s.i18nOrDefault(lang, "workshops.description", "Live ROS 2 and robotics workshops, online and on campus.")
	vm := s.basePage(r, title, desc, nil)
	view := buildWorkshopsView(lang, r.URL.Query().Get("tab"), s.catalog.Workshops)
	for _, ws := range view.Upcoming {
		vm.SEO.AddJSONLD(seo.Event(ws.Title, ws.Description, s.cfg.Site.BaseURL+"/workshop/"+ws.ID, eventDate(ws), ws.Mode, s.assetURL(ws.Image)))
	}
	vm.Workshops = view
	s.renderPage(w, r, "workshops", vm)
}

// WorkshopsListFrag swaps the tab body for htmx tab clicks.
func (s *site) WorkshopsListFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	view := buildWorkshopsView(lang, r.URL.Query().Get("tab"), s.catalog.Workshops)
	w.Header().Set("HX-Push-Url", "/workshops?tab="+view.Tab)
	s.renderTemplate(w, r, "frag_workshops_list", view)
}

// WorkshopDetailHandler renders one workshop.
func (s *site) WorkshopDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	ws, ok := s.catalog.Workshop(chi.URLParam(r, "id"))
	if !ok {
		s.renderNotFound(w, r, NotFoundView{
			Heading:   s.i18nOrDefault(lang, "workshops.notfound", "Workshop not found"),
			BackHref:  "/workshops",
			BackLabel: s.i18nOrDefault(lang, "workshops.back", "Back to Workshops"),
		})
		return
	}
	vm := s.basePage(r, ws.Title, ws.Description, map[string]string{ws.ID: ws.Title})
	vm.Workshop = WorkshopDetailView{Lang: lang, Workshop: ws, Open: ws.Upcoming() && ws.RegisterLink != ""}
	vm.SEO.OG.Image = s.assetURL(ws.Image)
	vm.SEO.Twitter.Image = vm.SEO.OG.Image
	vm.SEO.AddJSONLD(seo.Event(ws.Title, ws.Description, vm.SEO.Canonical, eventDate(ws), ws.Mode, vm.SEO.OG.Image))
	s.renderPage(w, r, "workshop", vm)
}

// popupWorkshop picks the workshop advertised by the delayed popup: the
// earliest upcoming one with a registration link.
func (s *site) popupWorkshop() (catalog.Workshop, bool) {
	var (
		best  catalog.Workshop
		found bool
	)
	for _, ws := range s.catalog.Workshops {
		if !ws.Upcoming() || ws.RegisterLink == "" {
			continue
		}
		if !found {
			best, found = ws, true
			continue
		}
		if a, okA := parseWorkshopDate(ws); okA {
			if b, okB := parseWorkshopDate(best); !okB || a.Before(b) {
				best = ws
			}
		}
	}
	return best, found
}
