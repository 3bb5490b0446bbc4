package main

import (
	"net/url"
	"strconv"

	"karthikeshrobotics.in/web/internal/catalog"
	"karthikeshrobotics.in/web/internal/filter"
	"karthikeshrobotics.in/web/internal/pagination"
)

// AchievementsView aggregates the filter controls and the visible slice.
type AchievementsView struct {
	Lang       string
	Query      filter.Query
	Years      []YearOption
	Categories []CategoryOption
	Items      []catalog.Achievement
	Total      int
	Visible    int
	HasMore    bool
	Empty      bool

	// Cursor is carried by the filter form so a filter change keeps the
	// current visible count.
	Cursor int

	// QueryString reproduces the current filters and cursor for push-url.
	QueryString string
	// MoreHref and MoreFragHref load the next window as a page or a fragment.
	MoreHref     string
	MoreFragHref string
}

// YearOption is a selectable year chip.
type YearOption struct {
	Year   int
	Label  string
	Active bool
}

// CategoryOption is a selectable category chip.
type CategoryOption struct {
	Name   string
	Active bool
}

func buildAchievementsView(lang string, all []catalog.Achievement, q url.Values, pageSize int) AchievementsView {
	query := filter.ParseQuery(q)
	cursor := pagination.FromQuery(q, pageSize)
	matched := filter.Apply(all, query)

	view := AchievementsView{
		Lang:    lang,
		Query:   query,
		Items:   pagination.Slice(matched, cursor),
		Total:   len(matched),
		Visible: cursor.Window(len(matched)),
		Cursor:  cursor.Visible,
		HasMore: cursor.HasMore(len(matched)),
		Empty:   len(matched) == 0,
	}
	for _, y := range filter.Years(all) {
		view.Years = append(view.Years, YearOption{Year: y, Label: strconv.Itoa(y), Active: query.Year == y})
	}
	for _, c := range filter.Categories(all) {
		view.Categories = append(view.Categories, CategoryOption{Name: c, Active: query.Category == c})
	}

	current := query.Values()
	cursor.Set(current)
	view.QueryString = current.Encode()

	next := query.Values()
	cursor.More(len(matched)).Set(next)
	view.MoreHref = "/achievements?" + next.Encode()
	view.MoreFragHref = "/achievements/list?" + next.Encode()
	return view
}
