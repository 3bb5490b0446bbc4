// Package nav builds the site navigation and breadcrumbs.
package nav

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/courses"
	LabelKey string // i18n key, e.g. "nav.courses"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home"},
	{Path: "/services", LabelKey: "nav.services"},
	{Path: "/products", LabelKey: "nav.products"},
	{Path: "/about", LabelKey: "nav.about"},
	{Path: "/achievements", LabelKey: "nav.achievements"},
	{Path: "/workshops", LabelKey: "nav.workshops"},
	{Path: "/careers", LabelKey: "nav.careers"},
	{Path: "/community", LabelKey: "nav.community"},
	{Path: "/courses", LabelKey: "nav.courses"},
	{Path: "/contact", LabelKey: "nav.contact"},
}

// aliases maps path sections that belong to another nav item.
var aliases = map[string]string{
	"/workshop": "/workshops",
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/") {
		return true
	}
	for from, to := range aliases {
		if to == itemPath && (currentPath == from || strings.HasPrefix(currentPath, from+"/")) {
			return true
		}
	}
	return false
}

// Breadcrumbs builds breadcrumb entries from the current path. Known
// sections use nav label keys; deeper segments use labels when given and a
// title-cased segment otherwise.
func Breadcrumbs(currentPath string, labels map[string]string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	title := cases.Title(language.English)

	top := "/" + parts[0]
	topHref := top
	if alias, ok := aliases[top]; ok {
		topHref = alias
	}
	labelKey := ""
	for _, it := range Main {
		if it.Path == topHref {
			labelKey = it.LabelKey
			break
		}
	}
	crumbs = append(crumbs, Crumb{Href: topHref, LabelKey: labelKey, Label: titleFromSegment(title, parts[0]), Active: len(parts) == 1})

	href := top
	for i := 1; i < len(parts); i++ {
		href = href + "/" + parts[i]
		label := labels[parts[i]]
		if label == "" {
			label = titleFromSegment(title, parts[i])
		}
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Label:  label,
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func titleFromSegment(title cases.Caser, seg string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return title.String(s)
}
