// Package format renders prices and dates for templates.
package format

import (
	"strconv"
	"strings"
	"time"
)

// Rupees formats a whole-rupee amount with Indian digit grouping.
// Example: Rupees(150000) => "₹1,50,000"
func Rupees(amount int64) string {
	if amount < 0 {
		return "-₹" + indianGrouping(-amount)
	}
	return "₹" + indianGrouping(amount)
}

// Price renders a price label, using free for zero.
func Price(amount int64) string {
	if amount == 0 {
		return "Free"
	}
	return Rupees(amount)
}

// indianGrouping groups the last three digits, then pairs: 12,34,567.
func indianGrouping(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// Date formats t in a locale-friendly short form.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "ta":
		return t.Format("02-01-2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Plural picks singular or plural by n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
