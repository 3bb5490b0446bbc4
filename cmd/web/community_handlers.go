package main

import (
	"fmt"
	"net/http"

	mw "karthikeshrobotics.in/web/internal/middleware"
)

// CommunityHandler renders the community page and join form.
func (s *site) CommunityHandler(w http.ResponseWriter, r *http.Request) {
	s.renderCommunity(w, r, http.StatusOK, buildCommunityView(mw.Lang(r), mw.CSRFToken(r), s.checkout.CommunityURL()))
}

// CommunityJoinHandler records an application and sends the visitor on to
// the community group invite after a short welcome.
func (s *site) CommunityJoinHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	view := buildCommunityView(mw.Lang(r), mw.CSRFToken(r), s.checkout.CommunityURL())
	view.Form = joinRequestFromForm(r)
	if errs := view.Form.Validate(); errs != nil {
		view.Errors = errs
		s.renderCommunity(w, r, http.StatusBadRequest, view)
		return
	}
	s.deliver(r, view.Form.notification())

	view.Joined = true
	w.Header().Set("Refresh", fmt.Sprintf("%d; url=%s", communityRedirectDelay, view.InviteURL))
	s.renderCommunity(w, r, http.StatusOK, view)
}

func (s *site) renderCommunity(w http.ResponseWriter, r *http.Request, status int, view CommunityView) {
	if mw.IsHTMX(r.Context()) {
		// htmx only swaps 2xx responses
		s.renderTemplate(w, r, "frag_community_form", view)
		return
	}
	lang := mw.Lang(r)
	title := s.i18nOrDefault(lang, "community.title", "Join Our Community")
	desc := s.i18nOrDefault(lang, "community.description", "Join our vibrant community of robotics enthusiasts, developers, and innovators.")
	vm := s.basePage(r, title, desc, nil)
	vm.Community = view
	s.renderPageStatus(w, r, status, "community", vm)
}
