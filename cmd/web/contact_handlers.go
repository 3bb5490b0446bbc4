package main

import (
	"net/http"

	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/seo"
)

// ContactHandler renders the contact page.
func (s *site) ContactHandler(w http.ResponseWriter, r *http.Request) {
	s.renderContact(w, r, http.StatusOK, buildContactView(mw.Lang(r), mw.CSRFToken(r), s.cfg.Site.MapEmbedURL))
}

// ContactSubmitHandler forwards a message to the team and thanks the visitor.
func (s *site) ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	view := buildContactView(mw.Lang(r), mw.CSRFToken(r), s.cfg.Site.MapEmbedURL)
	view.Form = contactRequestFromForm(r)
	if errs := view.Form.Validate(); errs != nil {
		view.Errors = errs
		s.renderContact(w, r, http.StatusBadRequest, view)
		return
	}
	s.deliver(r, view.Form.notification())
	view.Sent = true
	view.Form = ContactRequest{}
	s.renderContact(w, r, http.StatusOK, view)
}

func (s *site) renderContact(w http.ResponseWriter, r *http.Request, status int, view ContactView) {
	if mw.IsHTMX(r.Context()) {
		s.renderTemplate(w, r, "frag_contact_form", view)
		return
	}
	lang := mw.Lang(r)
	title := s.i18nOrDefault(lang, "contact.title", "Get in Touch")
	desc := s.i18nOrDefault(lang, "contact.description", "Have questions about our robotics solutions? We're here to help!")
	vm := s.basePage(r, title, desc, nil)
	vm.Contact = view
	vm.SEO.AddJSONLD(seo.Organization(s.cfg.Site.Name, s.cfg.Site.BaseURL, s.assetURL("/assets/logo.png"), contactPhone, contactEmails[0], socialURLs()))
	s.renderPageStatus(w, r, status, "contact", vm)
}
