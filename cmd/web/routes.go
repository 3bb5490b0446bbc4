package main

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "karthikeshrobotics.in/web/internal/middleware"
)

// routes builds the router. Order matters: the session must exist before
// locale and CSRF read it.
func (s *site) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(s.logger))
	r.Use(mw.Recoverer)
	r.Use(chimw.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	}
	r.Use(mw.HTMX)
	r.Use(s.sessions.Middleware)
	r.Use(mw.Locale(s.bundle))
	r.Use(mw.CSRF(s.sessions.Secure()))
	r.Use(mw.VaryLocale)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/assets/*", mw.AssetsWithCache("/assets/", filepath.Join(s.cfg.Server.PublicDir, "assets")))

	r.Get("/", s.HomeHandler)
	r.Get("/about", s.ContentPageHandler("about"))
	r.Get("/services", s.ContentPageHandler("services"))
	r.Get("/careers", s.ContentPageHandler("careers"))

	r.Get("/products", s.ProductsHandler)
	r.Get("/products/bumpy", s.BumpyHandler)
	r.Get("/products/customrobot", s.CustomRobotHandler)
	r.Post("/products/customrobot/quote", s.CustomRobotQuoteHandler)

	r.Get("/courses", s.CoursesHandler)
	r.Get("/courses/{id}", s.CourseDetailHandler)
	r.Post("/courses/{id}/enroll", s.CourseEnrollHandler)

	r.Get("/workshops", s.WorkshopsHandler)
	r.Get("/workshops/list", s.WorkshopsListFrag)
	r.Get("/workshop/{id}", s.WorkshopDetailHandler)

	r.Get("/achievements", s.AchievementsHandler)
	r.Get("/achievements/list", s.AchievementsListFrag)

	r.Get("/community", s.CommunityHandler)
	r.Post("/community/join", s.CommunityJoinHandler)

	r.Get("/contact", s.ContactHandler)
	r.Post("/contact", s.ContactSubmitHandler)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.CartHandler)
		r.Post("/items", s.CartAddHandler)
		r.Post("/items/{id}/quantity", s.CartQuantityHandler)
		r.Post("/items/{id}/remove", s.CartRemoveHandler)
		r.Post("/clear", s.CartClearHandler)
		r.Post("/checkout", s.CartCheckoutHandler)
	})

	r.NotFound(s.NotFoundHandler)
	return r
}
