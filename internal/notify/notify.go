// Package notify delivers form submissions (contact, community, quote
// requests) to the team inbox.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const sendEndpoint = "/v3/mail/send"

// Field is one labelled value in a notification body.
type Field struct {
	Label string
	Value string
}

// Message is a form submission summary.
type Message struct {
	Subject     string
	ReplyTo     string
	ReplyToName string
	Fields      []Field
}

// Text renders the message as "Label: value" lines.
func (m Message) Text() string {
	var b strings.Builder
	for _, f := range m.Fields {
		value := strings.TrimSpace(f.Value)
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Label, value)
	}
	return b.String()
}

// HTML renders the message as an escaped definition list.
func (m Message) HTML() string {
	var b strings.Builder
	b.WriteString("<dl>")
	for _, f := range m.Fields {
		fmt.Fprintf(&b, "<dt>%s</dt><dd>%s</dd>", html.EscapeString(f.Label), html.EscapeString(strings.TrimSpace(f.Value)))
	}
	b.WriteString("</dl>")
	return b.String()
}

// Notifier delivers messages.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the log only.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a notifier that logs every message at info level.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	fields := make([]zap.Field, 0, len(msg.Fields)+1)
	fields = append(fields, zap.String("subject", msg.Subject))
	for _, f := range msg.Fields {
		fields = append(fields, zap.String(strings.ToLower(strings.ReplaceAll(f.Label, " ", "_")), f.Value))
	}
	n.logger.Info("notification", fields...)
	return nil
}

// SendGridNotifier sends messages through the SendGrid v3 mail API.
type SendGridNotifier struct {
	apiKey   string
	from     string
	fromName string
	to       string
	host     string
}

// SendGridOption customises a SendGridNotifier.
type SendGridOption func(*SendGridNotifier)

// WithHost points the client at another API host (tests, regional hosts).
func WithHost(host string) SendGridOption {
	return func(n *SendGridNotifier) {
		n.host = strings.TrimRight(host, "/")
	}
}

// WithFromName sets the display name of the sender.
func WithFromName(name string) SendGridOption {
	return func(n *SendGridNotifier) {
		n.fromName = name
	}
}

// NewSendGridNotifier validates the addresses and returns a notifier.
func NewSendGridNotifier(apiKey, from, to string, opts ...SendGridOption) (*SendGridNotifier, error) {
	n := &SendGridNotifier{
		apiKey:   strings.TrimSpace(apiKey),
		from:     strings.TrimSpace(from),
		fromName: "Karthikesh Robotics",
		to:       strings.TrimSpace(to),
	}
	for _, opt := range opts {
		opt(n)
	}
	var errs []error
	if n.apiKey == "" {
		errs = append(errs, errors.New("notify: sendgrid api key is empty"))
	}
	if n.from == "" {
		errs = append(errs, errors.New("notify: from address is empty"))
	}
	if n.to == "" {
		errs = append(errs, errors.New("notify: to address is empty"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return n, nil
}

// Notify implements Notifier.
func (n *SendGridNotifier) Notify(ctx context.Context, msg Message) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(n.fromName, n.from),
		msg.Subject,
		mail.NewEmail("", n.to),
		msg.Text(),
		msg.HTML(),
	)
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail(msg.ReplyToName, msg.ReplyTo))
	}

	client := sendgrid.NewSendClient(n.apiKey)
	if n.host != "" {
		client.Request.BaseURL = n.host + sendEndpoint
	}
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("notify: sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("notify: sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}

// New picks the SendGrid notifier when an API key is configured and the log
// notifier otherwise.
func New(apiKey, from, to string, logger *zap.Logger) (Notifier, error) {
	if strings.TrimSpace(apiKey) == "" {
		return NewLogNotifier(logger), nil
	}
	return NewSendGridNotifier(apiKey, from, to)
}
