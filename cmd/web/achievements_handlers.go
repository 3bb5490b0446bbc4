package main

import (
	"net/http"

	mw "karthikeshrobotics.in/web/internal/middleware"
)

// AchievementsHandler renders the achievements page with filters and the
// first window of results.
func (s *site) AchievementsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := s.i18nOrDefault(lang, "achievements.title", "Our Achievements")
	desc := s.i18nOrDefault(lang, "achievements.description", "Workshops, bootcamps and trainings delivered across colleges and industry.")
	vm := s.basePage(r, title, desc, nil)
	vm.Achievements = buildAchievementsView(lang, s.catalog.Achievements, r.URL.Query(), s.cfg.Site.PageSize)
	s.renderPage(w, r, "achievements", vm)
}

// AchievementsListFrag renders the filtered grid for htmx swaps and pushes
// the equivalent page URL.
func (s *site) AchievementsListFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	view := buildAchievementsView(lang, s.catalog.Achievements, r.URL.Query(), s.cfg.Site.PageSize)
	push := "/achievements"
	if view.QueryString != "" {
		push = push + "?" + view.QueryString
	}
	w.Header().Set("HX-Push-Url", push)
	s.renderTemplate(w, r, "frag_achievements_list", view)
}
