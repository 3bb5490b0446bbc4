package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRupeesIndianGrouping(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{
		0:         "₹0",
		999:       "₹999",
		2999:      "₹2,999",
		15000:     "₹15,000",
		150000:    "₹1,50,000",
		1234567:   "₹12,34,567",
		123456789: "₹12,34,56,789",
		-4500:     "-₹4,500",
	}
	for in, want := range cases {
		require.Equal(t, want, Rupees(in), "amount %d", in)
	}
}

func TestPrice(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Free", Price(0))
	require.Equal(t, "₹2,999", Price(2999))
}

func TestDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "May 21, 2025", Date(d, "en"))
	require.Equal(t, "21-05-2025", Date(d, "ta"))
	require.Empty(t, Date(time.Time{}, "en"))
}

func TestPlural(t *testing.T) {
	t.Parallel()

	require.Equal(t, "item", Plural(1, "item", "items"))
	require.Equal(t, "items", Plural(0, "item", "items"))
}
