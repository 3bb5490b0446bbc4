package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is how many records a listing shows before "load more".
	DefaultPageSize = 6
	// MaxVisible caps the visible count accepted from the query string.
	MaxVisible = 500

	// QueryKey is the query parameter carrying the visible count.
	QueryKey = "visible"
)

// Cursor is the "load more" visible-count for a filtered listing.
type Cursor struct {
	PageSize int
	Visible  int
}

// New returns a cursor showing the first page.
func New(pageSize int) Cursor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Cursor{PageSize: pageSize, Visible: pageSize}
}

// FromQuery restores a cursor from the visible parameter. Missing or malformed
// values start at the first page; values are clamped to [pageSize, MaxVisible].
func FromQuery(v url.Values, pageSize int) Cursor {
	c := New(pageSize)
	raw := strings.TrimSpace(v.Get(QueryKey))
	if raw == "" {
		return c
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return c
	}
	if n < c.PageSize {
		n = c.PageSize
	}
	if n > MaxVisible {
		n = MaxVisible
	}
	c.Visible = n
	return c
}

// More advances by one page, clamped to total.
func (c Cursor) More(total int) Cursor {
	next := c.Visible + c.PageSize
	if next > total {
		next = total
	}
	c.Visible = next
	return c
}

// Window is the number of records to show out of total.
func (c Cursor) Window(total int) int {
	if c.Visible < total {
		return c.Visible
	}
	return total
}

// HasMore reports whether a "load more" control should render.
func (c Cursor) HasMore(total int) bool {
	return c.Visible < total
}

// Slice returns the visible prefix of items.
func Slice[T any](items []T, c Cursor) []T {
	return items[:c.Window(len(items))]
}

// Set writes the cursor into v, omitting the default first page.
func (c Cursor) Set(v url.Values) {
	if c.Visible <= c.PageSize {
		v.Del(QueryKey)
		return
	}
	v.Set(QueryKey, strconv.Itoa(c.Visible))
}
