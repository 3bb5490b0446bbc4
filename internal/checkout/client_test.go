package checkout

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"karthikeshrobotics.in/web/internal/cart"
)

func TestCartURLEncodesMessage(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{})
	got, err := c.CartURL([]cart.Item{
		{ID: "ros2-beginner", Name: "ROS2 for Beginners", Price: 2999, Quantity: 2},
		{ID: "bumpy", Name: "BUMPY", Price: 45000, Quantity: 1},
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "https://wa.me/918608354107?text="))
	require.NotContains(t, got, "+")

	u, err := url.Parse(got)
	require.NoError(t, err)
	require.Equal(t, "Hi team KKR I need ROS2 for Beginners (2), BUMPY (1) to buy", u.Query().Get("text"))
}

func TestEncodeComponentKeepsUnreservedMarks(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Hi%20team%20KKR%20I%20need%20ROS2%20for%20Beginners%20(1)%20to%20buy",
		encodeComponent("Hi team KKR I need ROS2 for Beginners (1) to buy"))
	require.Equal(t, "a%2Bb%26c%3Dd!*'", encodeComponent("a+b&c=d!*'"))
	require.Equal(t, "%F0%9F%A4%96%0A", encodeComponent("🤖\n"))
}

func TestCartURLEmptyCart(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Options{}).CartURL(nil)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewClientNormalizesOptions(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{BaseURL: "https://api.whatsapp.com/send/", Phone: "+91 86083 54107"})
	require.Equal(t, "https://api.whatsapp.com/send/918608354107", c.ChatURL())
	require.Equal(t, defaultCommunityURL, c.CommunityURL())
}

func validQuote() QuoteRequest {
	return QuoteRequest{
		Name:           "Priya",
		Mobile:         "+91 98765 43210",
		Email:          "priya@example.com",
		RobotTitle:     "Warehouse AMR",
		Specifications: "50kg payload, lidar SLAM",
	}
}

func TestQuoteURLBuildsMessage(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{})
	c.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	req := validQuote()
	req.ReferencePhoto = "sketch.png"

	q, err := c.QuoteURL(req)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(q.Reference, "KKR-"))

	u, err := url.Parse(q.URL)
	require.NoError(t, err)
	text := u.Query().Get("text")
	require.Equal(t, q.Message, text)
	require.Contains(t, text, "*Custom Robot Requirements*")
	require.Contains(t, text, "🏢 *Organization:* Not specified")
	require.Contains(t, text, "💼 *Designation:* Not specified")
	require.Contains(t, text, "🤖 *Robot Title:* Warehouse AMR")
	require.Contains(t, text, "📎 *Reference Photo:* sketch.png")
	require.Contains(t, text, q.Reference)
}

func TestQuoteMessageOmitsPhotoWhenAbsent(t *testing.T) {
	t.Parallel()

	req := validQuote()
	req.Organization = "Acme Labs"
	msg := QuoteMessage(req, "")
	require.NotContains(t, msg, "Reference Photo")
	require.NotContains(t, msg, "Reference:")
	require.Contains(t, msg, "🏢 *Organization:* Acme Labs")
}

func TestQuoteValidation(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Options{}).QuoteURL(QuoteRequest{Mobile: "123", Email: "nope"})
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"name", "mobile", "email", "robotTitle", "specifications"} {
		require.Contains(t, verr, field)
	}
	require.NoError(t, validQuote().Validate())
}
