// Package handlers holds the view models shared by the layout templates.
package handlers

import (
	"karthikeshrobotics.in/web/internal/nav"
	"karthikeshrobotics.in/web/internal/seo"
)

// Shell carries the layout-wide values: splash and popup delays run in the
// browser as fire-once timers.
type Shell struct {
	SiteName      string
	SplashDelayMS int64
	PopupDelayMS  int64
	ShowPopup     bool
	CartCount     int
	CSRFToken     string
	WhatsAppURL   string
	CommunityURL  string
	Year          int
}

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics
	Shell     Shell

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Optional per-page view model payloads
	Home         any
	Content      any
	Products     any
	Product      any
	Courses      any
	Course       any
	Workshops    any
	Workshop     any
	Achievements any
	Community    any
	Contact      any
	Quote        any
	Cart         any
	NotFound     any
	Popup        any
}
