package main

import (
	"time"

	"karthikeshrobotics.in/web/internal/catalog"
	"karthikeshrobotics.in/web/internal/filter"
)

const (
	tabUpcoming = "upcoming"
	tabPrevious = "previous"
)

// WorkshopsView drives the upcoming/previous tab switcher.
type WorkshopsView struct {
	Lang     string
	Tab      string
	Upcoming []catalog.Workshop
	Previous []catalog.Workshop
	Items    []catalog.Workshop
}

// WorkshopDetailView backs the workshop detail page.
type WorkshopDetailView struct {
	Lang     string
	Workshop catalog.Workshop
	Open     bool
}

func normalizeTab(tab string) string {
	if tab == tabPrevious {
		return tabPrevious
	}
	return tabUpcoming
}

func buildWorkshopsView(lang, tab string, all []catalog.Workshop) WorkshopsView {
	sorted := append([]catalog.Workshop(nil), all...)
	filter.SortByDateDesc(sorted)
	upcoming, previous := filter.Partition(sorted, catalog.Workshop.Upcoming)
	view := WorkshopsView{
		Lang:     lang,
		Tab:      normalizeTab(tab),
		Upcoming: upcoming,
		Previous: previous,
	}
	if view.Tab == tabPrevious {
		view.Items = previous
	} else {
		view.Items = upcoming
	}
	return view
}

func parseWorkshopDate(ws catalog.Workshop) (time.Time, bool) {
	return filter.ParseDate(ws.Date)
}

// eventDate is the ISO start date for structured data, or the raw label
// when the date cannot be parsed.
func eventDate(ws catalog.Workshop) string {
	if t, ok := parseWorkshopDate(ws); ok {
		return t.Format("2006-01-02")
	}
	return ws.Date
}
