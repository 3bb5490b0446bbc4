// Package seo builds head metadata and schema.org JSON-LD payloads.
package seo

import (
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the per-page head metadata rendered by the layout.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// NewMeta fills OpenGraph and Twitter defaults from the page title,
// description and canonical URL.
func NewMeta(siteName, title, description, canonical, image string) Meta {
	full := strings.TrimSpace(title)
	if full == "" {
		full = siteName
	} else if siteName != "" && !strings.Contains(full, siteName) {
		full = full + " | " + siteName
	}
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}
	return Meta{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			SiteName:    siteName,
		},
		Twitter: Twitter{Card: card, Image: image},
	}
}

// AddJSONLD appends a schema payload, skipping ones that fail to encode.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		m.JSONLD = append(m.JSONLD, s)
	}
}
