package seo

import (
	"encoding/json"
	"strconv"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns an EducationalOrganization schema with contact details.
func Organization(name, url, logoURL, phone, email string, sameAs []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "EducationalOrganization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if phone != "" || email != "" {
		cp := map[string]any{"@type": "ContactPoint", "contactType": "customer support"}
		if phone != "" {
			cp["telephone"] = phone
		}
		if email != "" {
			cp["email"] = email
		}
		m["contactPoint"] = cp
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

func offer(priceINR int64, url string) map[string]any {
	o := map[string]any{
		"@type":         "Offer",
		"price":         strconv.FormatInt(priceINR, 10),
		"priceCurrency": "INR",
		"availability":  "https://schema.org/InStock",
	}
	if url != "" {
		o["url"] = url
	}
	return o
}

// Product returns a product schema payload. A zero price omits the offer.
func Product(name, description, url, imageURL string, priceINR int64) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        name,
		"description": description,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if priceINR > 0 {
		m["offers"] = offer(priceINR, url)
	}
	return m
}

// Course returns a Course schema payload offered by providerName.
func Course(name, description, url, providerName string, priceINR int64) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Course",
		"name":        name,
		"description": description,
		"provider": map[string]any{
			"@type": "Organization",
			"name":  providerName,
		},
	}
	if url != "" {
		m["url"] = url
	}
	if priceINR > 0 {
		m["offers"] = offer(priceINR, url)
	}
	return m
}

// Event returns an Event schema for a workshop. mode "Online" maps to an
// online attendance mode.
func Event(name, description, url, startDate, mode, imageURL string) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Event",
		"name":        name,
		"description": description,
	}
	if url != "" {
		m["url"] = url
	}
	if startDate != "" {
		m["startDate"] = startDate
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	switch mode {
	case "Online", "online":
		m["eventAttendanceMode"] = "https://schema.org/OnlineEventAttendanceMode"
	case "":
	default:
		m["eventAttendanceMode"] = "https://schema.org/OfflineEventAttendanceMode"
	}
	return m
}
