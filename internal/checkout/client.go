package checkout

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"karthikeshrobotics.in/web/internal/cart"
)

const (
	defaultBaseURL      = "https://wa.me"
	defaultPhone        = "918608354107"
	defaultCommunityURL = "https://chat.whatsapp.com/IkD0QwVQ6iBLjhbtZd1idG"
	notSpecified        = "Not specified"
)

// ErrEmptyCart is returned when a checkout link is requested for an empty cart.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Client builds outbound messaging-app links for checkout, quotes and the community.
// No request is ever sent: the browser is redirected and nothing is awaited.
type Client struct {
	baseURL      string
	phone        string
	communityURL string
	now          func() time.Time
}

// Options configures NewClient. Empty fields take the defaults.
type Options struct {
	BaseURL      string
	Phone        string
	CommunityURL string
}

// NewClient constructs a link builder.
func NewClient(opts Options) *Client {
	return &Client{
		baseURL:      strings.TrimRight(defaultString(opts.BaseURL, defaultBaseURL), "/"),
		phone:        normalizePhone(defaultString(opts.Phone, defaultPhone)),
		communityURL: defaultString(opts.CommunityURL, defaultCommunityURL),
		now:          time.Now,
	}
}

// CartMessage renders the order text for the given cart lines.
func CartMessage(items []cart.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", it.Name, it.Quantity))
	}
	return fmt.Sprintf("Hi team KKR I need %s to buy", strings.Join(parts, ", "))
}

// CartURL returns the redirect target for checking out the given cart lines.
func (c *Client) CartURL(items []cart.Item) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}
	return c.messageURL(CartMessage(items)), nil
}

// QuoteRequest is the custom robot enquiry form.
type QuoteRequest struct {
	Name           string
	Mobile         string
	Email          string
	Organization   string
	Designation    string
	RobotTitle     string
	Specifications string
	ReferencePhoto string
}

// ValidationError maps form field names to messages.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for k := range v {
		fields = append(fields, k)
	}
	return "checkout: invalid fields: " + strings.Join(fields, ", ")
}

// Validate checks the required fields of the enquiry.
func (q QuoteRequest) Validate() error {
	errs := ValidationError{}
	if strings.TrimSpace(q.Name) == "" {
		errs["name"] = "Please enter your name."
	}
	if digits := normalizePhone(q.Mobile); len(digits) < 10 {
		errs["mobile"] = "Please enter a valid mobile number."
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(q.Email)); err != nil {
		errs["email"] = "Please enter a valid email address."
	}
	if strings.TrimSpace(q.RobotTitle) == "" {
		errs["robotTitle"] = "Please give your robot a title."
	}
	if strings.TrimSpace(q.Specifications) == "" {
		errs["specifications"] = "Please describe the specifications."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Quote is a validated enquiry ready to be sent.
type Quote struct {
	Reference string
	Message   string
	URL       string
}

// QuoteURL validates the enquiry and builds the redirect link carrying it.
func (c *Client) QuoteURL(req QuoteRequest) (Quote, error) {
	if err := req.Validate(); err != nil {
		return Quote{}, err
	}
	ref := c.newReference()
	msg := QuoteMessage(req, ref)
	return Quote{Reference: ref, Message: msg, URL: c.messageURL(msg)}, nil
}

// QuoteMessage renders the enquiry text.
func QuoteMessage(req QuoteRequest, ref string) string {
	var b strings.Builder
	b.WriteString("*Custom Robot Requirements*\n\n")
	fmt.Fprintf(&b, "👤 *Name:* %s\n", strings.TrimSpace(req.Name))
	fmt.Fprintf(&b, "📱 *Mobile:* %s\n", strings.TrimSpace(req.Mobile))
	fmt.Fprintf(&b, "📧 *Email:* %s\n", strings.TrimSpace(req.Email))
	fmt.Fprintf(&b, "🏢 *Organization:* %s\n", defaultString(req.Organization, notSpecified))
	fmt.Fprintf(&b, "💼 *Designation:* %s\n", defaultString(req.Designation, notSpecified))
	fmt.Fprintf(&b, "🤖 *Robot Title:* %s\n\n", strings.TrimSpace(req.RobotTitle))
	b.WriteString("📝 *Specifications:*\n")
	b.WriteString(strings.TrimSpace(req.Specifications))
	b.WriteString("\n\n")
	if photo := strings.TrimSpace(req.ReferencePhoto); photo != "" {
		fmt.Fprintf(&b, "📎 *Reference Photo:* %s\n\n", photo)
	}
	if ref != "" {
		fmt.Fprintf(&b, "🔖 *Reference:* %s\n\n", ref)
	}
	b.WriteString("Thank you for your interest in our custom robotics solutions!")
	return b.String()
}

// CommunityURL is the community group invite link.
func (c *Client) CommunityURL() string {
	return c.communityURL
}

// ChatURL opens a chat with no prefilled text.
func (c *Client) ChatURL() string {
	return c.baseURL + "/" + c.phone
}

func (c *Client) messageURL(text string) string {
	return c.ChatURL() + "?text=" + encodeComponent(text)
}

// componentUnescapes restores the marks encodeURIComponent leaves alone.
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes like the browser's encodeURIComponent, so
// spaces become %20 rather than "+".
func encodeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}

func (c *Client) newReference() string {
	id, err := ulid.New(ulid.Timestamp(c.now()), rand.Reader)
	if err != nil {
		return ""
	}
	return "KKR-" + id.String()
}

func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func defaultString(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return strings.TrimSpace(val)
}
