package main

import (
	"net/http"
	"net/mail"
	"strings"

	"karthikeshrobotics.in/web/internal/notify"
)

// communityRedirectDelay matches the pause before the invite opens.
const communityRedirectDelay = 2

// CommunityView backs the community page and its join form.
type CommunityView struct {
	Lang        string
	CSRFToken   string
	Stats       []CommunityStat
	Benefits    []CommunityBenefit
	Interests   []Option
	Experiences []Option
	Form        JoinRequest
	Errors      map[string]string
	Joined      bool
	InviteURL   string
}

// CommunityStat is a headline figure.
type CommunityStat struct {
	Count string
	Label string
}

// CommunityBenefit is a card in the benefits grid.
type CommunityBenefit struct {
	Icon        string
	Title       string
	Description string
}

// Option is a select entry.
type Option struct {
	Value string
	Label string
}

// JoinRequest is the community application form.
type JoinRequest struct {
	Name         string
	Email        string
	WhatsApp     string
	Designation  string
	Organization string
	Interest     string
	Experience   string
	Message      string
}

var communityInterests = []Option{
	{Value: "robotics", Label: "Robotics"},
	{Value: "ros2", Label: "ROS2"},
	{Value: "ai", Label: "AI/ML"},
	{Value: "all", Label: "All of the above"},
	{Value: "others", Label: "Others"},
}

var communityExperiences = []Option{
	{Value: "beginner", Label: "Beginner"},
	{Value: "intermediate", Label: "Intermediate"},
	{Value: "advanced", Label: "Advanced"},
}

func communityBenefits() []CommunityBenefit {
	return []CommunityBenefit{
		{Icon: "heart", Title: "Supportive Community", Description: "Join a network of passionate robotics enthusiasts who support each other's learning journey"},
		{Icon: "star", Title: "Expert Guidance", Description: "Learn from industry professionals and experienced mentors in robotics and automation"},
		{Icon: "zap", Title: "Hands-on Learning", Description: "Access to practical workshops, tutorials, and real-world project experiences"},
		{Icon: "shield", Title: "Exclusive Resources", Description: "Get access to premium learning materials, tools, and educational content"},
		{Icon: "coffee", Title: "Networking Opportunities", Description: "Connect with like-minded individuals, potential collaborators, and industry professionals"},
		{Icon: "gift", Title: "Special Events", Description: "Participate in exclusive hackathons, competitions, and community challenges"},
	}
}

func buildCommunityView(lang, csrf, invite string) CommunityView {
	return CommunityView{
		Lang:      lang,
		CSRFToken: csrf,
		Stats: []CommunityStat{
			{Count: "100+", Label: "Community Members"},
			{Count: "50+", Label: "Resources Shared"},
		},
		Benefits:    communityBenefits(),
		Interests:   communityInterests,
		Experiences: communityExperiences,
		InviteURL:   invite,
	}
}

func joinRequestFromForm(r *http.Request) JoinRequest {
	return JoinRequest{
		Name:         strings.TrimSpace(r.PostFormValue("name")),
		Email:        strings.TrimSpace(r.PostFormValue("email")),
		WhatsApp:     strings.TrimSpace(r.PostFormValue("whatsapp")),
		Designation:  strings.TrimSpace(r.PostFormValue("designation")),
		Organization: strings.TrimSpace(r.PostFormValue("organization")),
		Interest:     strings.TrimSpace(r.PostFormValue("interest")),
		Experience:   strings.TrimSpace(r.PostFormValue("experience")),
		Message:      strings.TrimSpace(r.PostFormValue("message")),
	}
}

func validOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Validate returns field messages for missing or malformed answers.
func (j JoinRequest) Validate() map[string]string {
	errs := map[string]string{}
	if j.Name == "" {
		errs["name"] = "Please enter your name."
	}
	if _, err := mail.ParseAddress(j.Email); err != nil {
		errs["email"] = "Please enter a valid email address."
	}
	if j.WhatsApp == "" {
		errs["whatsapp"] = "Please enter your WhatsApp number."
	}
	if !validOption(communityInterests, j.Interest) {
		errs["interest"] = "Please select an area of interest."
	}
	if !validOption(communityExperiences, j.Experience) {
		errs["experience"] = "Please select your experience level."
	}
	if j.Message == "" {
		errs["message"] = "Please tell us why you want to join."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (j JoinRequest) notification() notify.Message {
	return notify.Message{
		Subject:     "Community application: " + j.Name,
		ReplyTo:     j.Email,
		ReplyToName: j.Name,
		Fields: []notify.Field{
			{Label: "Name", Value: j.Name},
			{Label: "Email", Value: j.Email},
			{Label: "WhatsApp", Value: j.WhatsApp},
			{Label: "Designation", Value: j.Designation},
			{Label: "Organization", Value: j.Organization},
			{Label: "Interest", Value: j.Interest},
			{Label: "Experience", Value: j.Experience},
			{Label: "Message", Value: j.Message},
		},
	}
}
