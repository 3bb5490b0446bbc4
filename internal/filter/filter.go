// Package filter narrows and orders read-only datasets for listing pages.
package filter

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Record is implemented by dataset entries that can be filtered.
// RecordYear returns 0 and RecordCategory "" when the facet does not apply.
type Record interface {
	RecordYear() int
	RecordCategory() string
	RecordDate() string
	SearchText() []string
}

// Query holds the active predicates. Zero values disable a predicate.
type Query struct {
	Year     int
	Category string
	Text     string
}

// Active reports whether any predicate is set.
func (q Query) Active() bool {
	return q.Year != 0 || q.Category != "" || strings.TrimSpace(q.Text) != ""
}

// Values encodes the query for links and form round-trips.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Year != 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if t := strings.TrimSpace(q.Text); t != "" {
		v.Set("q", t)
	}
	return v
}

// ParseQuery reads year, category and q from the request query.
// A malformed year is treated as no year filter.
func ParseQuery(v url.Values) Query {
	q := Query{
		Category: strings.TrimSpace(v.Get("category")),
		Text:     strings.TrimSpace(v.Get("q")),
	}
	if y, err := strconv.Atoi(strings.TrimSpace(v.Get("year"))); err == nil && y > 0 {
		q.Year = y
	}
	return q
}

// Apply returns the records matching every active predicate, newest first.
// Records with equal dates keep their original relative order; undated
// records sort after dated ones.
func Apply[T Record](items []T, q Query) []T {
	fold := cases.Fold()
	text := fold.String(strings.TrimSpace(q.Text))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q.Year != 0 && it.RecordYear() != q.Year {
			continue
		}
		if q.Category != "" && it.RecordCategory() != q.Category {
			continue
		}
		if text != "" && !matchesText(fold, it.SearchText(), text) {
			continue
		}
		out = append(out, it)
	}
	SortByDateDesc(out)
	return out
}

func matchesText(fold cases.Caser, fields []string, folded string) bool {
	for _, f := range fields {
		if strings.Contains(fold.String(f), folded) {
			return true
		}
	}
	return false
}

// SortByDateDesc orders records newest first in place using a stable sort.
func SortByDateDesc[T Record](items []T) {
	keys := make([]time.Time, len(items))
	for i, it := range items {
		keys[i], _ = ParseDate(it.RecordDate())
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		switch {
		case ka.IsZero() && kb.IsZero():
			return false
		case ka.IsZero():
			return false
		case kb.IsZero():
			return true
		}
		return ka.After(kb)
	})
	sorted := make([]T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)

var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2 January, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2006-01-02",
	"02/01/2006",
	"January 2006",
	"Jan 2006",
}

// ParseDate parses the loosely formatted display dates used in the datasets,
// e.g. "21st May 2025" or "June 29, 2025".
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Years lists the distinct non-zero years, newest first.
func Years[T Record](items []T) []int {
	seen := map[int]struct{}{}
	out := []int{}
	for _, it := range items {
		y := it.RecordYear()
		if y == 0 {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Categories lists the distinct non-empty categories in ascending order.
func Categories[T Record](items []T) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, it := range items {
		c := it.RecordCategory()
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Partition splits items into those satisfying keep and the rest, preserving order.
func Partition[T any](items []T, keep func(T) bool) (matched, rest []T) {
	for _, it := range items {
		if keep(it) {
			matched = append(matched, it)
		} else {
			rest = append(rest, it)
		}
	}
	return matched, rest
}
