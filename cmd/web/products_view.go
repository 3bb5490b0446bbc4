package main

import (
	"net/http"
	"strings"

	"karthikeshrobotics.in/web/internal/catalog"
	"karthikeshrobotics.in/web/internal/checkout"
	"karthikeshrobotics.in/web/internal/cms"
	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/notify"
)

// maxQuoteUpload bounds the multipart body of the quote form. Only the
// reference photo's file name is used; the bytes are discarded.
const maxQuoteUpload = mw.MaxFormBytes

// ProductsView lists the robots.
type ProductsView struct {
	Lang  string
	Items []catalog.Product
}

// ProductPageView backs the product detail pages.
type ProductPageView struct {
	Lang    string
	Product catalog.Product
	Page    cms.Page
}

// QuoteView backs the custom robot enquiry form.
type QuoteView struct {
	Lang      string
	CSRFToken string
	Product   catalog.Product
	Form      checkout.QuoteRequest
	Errors    map[string]string
}

func quoteRequestFromForm(r *http.Request) checkout.QuoteRequest {
	req := checkout.QuoteRequest{
		Name:           strings.TrimSpace(r.FormValue("name")),
		Mobile:         strings.TrimSpace(r.FormValue("mobile")),
		Email:          strings.TrimSpace(r.FormValue("email")),
		Organization:   strings.TrimSpace(r.FormValue("organization")),
		Designation:    strings.TrimSpace(r.FormValue("designation")),
		RobotTitle:     strings.TrimSpace(r.FormValue("robotTitle")),
		Specifications: strings.TrimSpace(r.FormValue("specifications")),
	}
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["referencePhoto"]; len(files) > 0 {
			req.ReferencePhoto = files[0].Filename
		}
	}
	return req
}

func quoteNotification(q checkout.QuoteRequest, ref string) notify.Message {
	return notify.Message{
		Subject:     "Custom robot enquiry " + ref + ": " + q.RobotTitle,
		ReplyTo:     q.Email,
		ReplyToName: q.Name,
		Fields: []notify.Field{
			{Label: "Reference", Value: ref},
			{Label: "Name", Value: q.Name},
			{Label: "Mobile", Value: q.Mobile},
			{Label: "Email", Value: q.Email},
			{Label: "Organization", Value: q.Organization},
			{Label: "Designation", Value: q.Designation},
			{Label: "Robot title", Value: q.RobotTitle},
			{Label: "Specifications", Value: q.Specifications},
			{Label: "Reference photo", Value: q.ReferencePhoto},
		},
	}
}
