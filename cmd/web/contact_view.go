package main

import (
	"net/http"
	"net/mail"
	"strings"

	"karthikeshrobotics.in/web/internal/notify"
)

// ContactView backs the contact page.
type ContactView struct {
	Lang        string
	CSRFToken   string
	Info        []ContactInfo
	Social      []SocialLink
	MapEmbedURL string
	Form        ContactRequest
	Errors      map[string]string
	Sent        bool
}

// ContactInfo is one block of the contact information panel.
type ContactInfo struct {
	Icon    string
	Title   string
	Details []string
	Link    string
}

// SocialLink points at a company profile.
type SocialLink struct {
	Name   string
	Handle string
	Link   string
}

// ContactRequest is the contact form.
type ContactRequest struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

var (
	contactEmails = []string{"karthikeshrobotics@gmail.com", "support@karthikeshrobotics.in"}
	contactPhone  = "+91 86083 54107"
)

func contactInfo() []ContactInfo {
	return []ContactInfo{
		{Icon: "mail", Title: "Email", Details: contactEmails, Link: "mailto:" + contactEmails[0]},
		{Icon: "phone", Title: "Phone", Details: []string{contactPhone}, Link: "tel:+918608354107"},
		{Icon: "map-pin", Title: "Location", Details: []string{"Karthikesh Robotics Private Limited", "Pammal, Chennai", "Tamil Nadu 600075, India"}, Link: "https://g.co/kgs/8mzJfzy"},
		{Icon: "clock", Title: "Working Hours", Details: []string{"Monday - Saturday", "9:00 AM - 6:00 PM IST"}},
	}
}

func socialLinks() []SocialLink {
	return []SocialLink{
		{Name: "Instagram", Handle: "@karthikeshrobotics", Link: "https://instagram.com/karthikesh_robotics"},
		{Name: "LinkedIn", Handle: "Karthikesh Robotics", Link: "https://linkedin.com/company/karthikeshrobotics"},
		{Name: "YouTube", Handle: "Karthikesh Robotics", Link: "https://youtube.com/@karthikeshrobotics"},
	}
}

func socialURLs() []string {
	links := socialLinks()
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Link)
	}
	return out
}

func buildContactView(lang, csrf, mapURL string) ContactView {
	return ContactView{
		Lang:        lang,
		CSRFToken:   csrf,
		Info:        contactInfo(),
		Social:      socialLinks(),
		MapEmbedURL: mapURL,
	}
}

func contactRequestFromForm(r *http.Request) ContactRequest {
	return ContactRequest{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
}

// Validate returns field messages for missing answers.
func (c ContactRequest) Validate() map[string]string {
	errs := map[string]string{}
	if c.Name == "" {
		errs["name"] = "Please enter your name."
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		errs["email"] = "Please enter a valid email address."
	}
	if c.Message == "" {
		errs["message"] = "Please write a message."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (c ContactRequest) notification() notify.Message {
	subject := c.Subject
	if subject == "" {
		subject = "Website enquiry"
	}
	return notify.Message{
		Subject:     subject + " from " + c.Name,
		ReplyTo:     c.Email,
		ReplyToName: c.Name,
		Fields: []notify.Field{
			{Label: "Name", Value: c.Name},
			{Label: "Email", Value: c.Email},
			{Label: "Phone", Value: c.Phone},
			{Label: "Subject", Value: c.Subject},
			{Label: "Message", Value: c.Message},
		},
	}
}
