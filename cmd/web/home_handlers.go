package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"karthikeshrobotics.in/web/internal/catalog"
	"karthikeshrobotics.in/web/internal/cms"
	"karthikeshrobotics.in/web/internal/filter"
	handlersPkg "karthikeshrobotics.in/web/internal/handlers"
	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/observability"
	"karthikeshrobotics.in/web/internal/seo"
)

const homeAchievementCount = 3

// HomeView backs the landing page sections.
type HomeView struct {
	Lang         string
	Services     []handlersPkg.Service
	Clients      []handlersPkg.Client
	Workshops    []catalog.Workshop
	Achievements []catalog.Achievement
	Products     []catalog.Product
	VideoURL     string
	FeedURL      string
}

// ContentView wraps a CMS page for the content layout.
type ContentView struct {
	Lang string
	Page cms.Page
}

// HomeHandler renders the landing page.
func (s *site) HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := s.i18nOrDefault(lang, "home.title", "Robotics training and custom robots")
	desc := s.i18nOrDefault(lang, "home.description", "Karthikesh Robotics builds autonomous mobile robots and trains engineers in ROS 2, AI and industrial automation.")
	vm := s.basePage(r, title, desc, nil)

	latest := filter.Apply(s.catalog.Achievements, filter.Query{})
	if len(latest) > homeAchievementCount {
		latest = latest[:homeAchievementCount]
	}
	upcoming, _ := filter.Partition(s.catalog.Workshops, catalog.Workshop.Upcoming)

	vm.Home = HomeView{
		Lang:         lang,
		Services:     handlersPkg.Services(),
		Clients:      handlersPkg.Clients(),
		Workshops:    upcoming,
		Achievements: latest,
		Products:     s.catalog.Products,
		VideoURL:     s.cfg.Site.VideoURL,
		FeedURL:      s.cfg.Site.FeedURL,
	}
	vm.SEO.AddJSONLD(seo.Organization(s.cfg.Site.Name, s.cfg.Site.BaseURL, s.assetURL("/assets/logo.png"), contactPhone, contactEmails[0], socialURLs()))
	s.renderPage(w, r, "home", vm)
}

// ContentPageHandler serves a CMS-backed page such as about or careers.
func (s *site) ContentPageHandler(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := mw.Lang(r)
		page, err := s.content.GetPage(r.Context(), slug, lang)
		if errors.Is(err, cms.ErrNotFound) {
			s.notFound(w, r)
			return
		}
		if err != nil {
			observability.FromContext(r.Context()).Error("content page failed", zap.String("slug", slug), zap.Error(err))
			mw.WriteError(w, r, http.StatusInternalServerError, "content unavailable")
			return
		}
		description := page.SEO.Description
		if description == "" {
			description = page.Summary
		}
		title := page.Title
		if page.SEO.Title != "" {
			title = page.SEO.Title
		}
		vm := s.basePage(r, title, description, nil)
		if page.SEO.OGImage != "" {
			vm.SEO.OG.Image = s.assetURL(page.SEO.OGImage)
			vm.SEO.Twitter.Image = vm.SEO.OG.Image
		}
		vm.Content = ContentView{Lang: lang, Page: page}
		s.renderPage(w, r, "content", vm)
	}
}
