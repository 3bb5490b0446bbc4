// Package config loads runtime settings for the web server from the
// environment and optional dotenv files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = "8080"
	defaultReadHeaderTimeout = 10 * time.Second
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultRequestTimeout    = 30 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultBaseURL           = "https://karthikeshrobotics.in"
	defaultSiteName          = "Karthikesh Robotics"
	defaultWhatsAppBase      = "https://wa.me"
	defaultWhatsAppPhone     = "918608354107"
	defaultCommunityURL      = "https://chat.whatsapp.com/IkD0QwVQ6iBLjhbtZd1idG"
	defaultNotifyFrom        = "no-reply@karthikeshrobotics.in"
	defaultNotifyTo          = "karthikeshrobotics@gmail.com"
	defaultSplashDelay       = 2000 * time.Millisecond
	defaultPopupDelay        = 3000 * time.Millisecond
	defaultCartIdleTTL       = 24 * time.Hour
	defaultCartSweepInterval = 10 * time.Minute
	defaultPageSize          = 6
)

var defaultEnvFiles = []string{".env", ".env.local"}

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Messaging MessagingConfig
	Notify    NotifyConfig
	Timers    TimerConfig
	Cart      CartConfig
	LogLevel  string
}

// ServerConfig configures HTTP server parameters and on-disk resources.
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
	TemplatesDir      string
	PublicDir         string
	LocalesDir        string
	ContentDir        string
	DataDir           string
	DevMode           bool
	SessionSecret     string
	SecureCookies     bool
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Name        string
	BaseURL     string
	CMSBaseURL  string
	PageSize    int
	MapEmbedURL string
	VideoURL    string
	FeedURL     string
	GA4ID       string
}

// MessagingConfig points the outbound redirects at the messaging app.
type MessagingConfig struct {
	BaseURL      string
	Phone        string
	CommunityURL string
}

// NotifyConfig controls form notification e-mails.
type NotifyConfig struct {
	SendGridAPIKey string
	From           string
	To             string
}

// Enabled reports whether e-mail delivery is configured.
func (n NotifyConfig) Enabled() bool {
	return strings.TrimSpace(n.SendGridAPIKey) != ""
}

// TimerConfig holds the fire-once browser delays.
type TimerConfig struct {
	SplashDelay time.Duration
	PopupDelay  time.Duration
}

// CartConfig controls the in-memory cart registry.
type CartConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// ValidationError lists configuration keys whose values could not be parsed.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid key list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFiles     []string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFiles overrides the dotenv files consulted. Later files win.
func WithEnvFiles(paths ...string) Option {
	return func(o *loaderOptions) {
		o.envFiles = paths
	}
}

// WithEnvMap injects explicit values that take precedence over the system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

type reader struct {
	lookup  func(string) (string, bool)
	invalid []string
}

// Load assembles configuration from defaults, dotenv files, the process
// environment and an optional explicit map, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFiles:     defaultEnvFiles,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := readDotEnv(options.envFiles)
	if err != nil {
		return Config{}, err
	}

	r := &reader{lookup: func(key string) (string, bool) {
		if v, ok := options.envMap[key]; ok {
			return v, true
		}
		if options.useSystemEnv {
			if v, ok := os.LookupEnv(key); ok {
				return v, true
			}
		}
		v, ok := dotEnv[key]
		return v, ok
	}}

	port := r.str("KKR_WEB_PORT", "")
	if port == "" {
		port = r.str("PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:              port,
			ReadHeaderTimeout: r.duration("KKR_WEB_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),
			ReadTimeout:       r.duration("KKR_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      r.duration("KKR_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       r.duration("KKR_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout:    r.duration("KKR_WEB_REQUEST_TIMEOUT", defaultRequestTimeout),
			ShutdownTimeout:   r.duration("KKR_WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
			TemplatesDir:      r.str("KKR_WEB_TEMPLATES_DIR", "templates"),
			PublicDir:         r.str("KKR_WEB_PUBLIC_DIR", "public"),
			LocalesDir:        r.str("KKR_WEB_LOCALES_DIR", "locales"),
			ContentDir:        r.str("KKR_WEB_CONTENT_DIR", "content"),
			DataDir:           r.str("KKR_WEB_DATA_DIR", "data"),
			DevMode:           r.boolean("KKR_WEB_DEV", false) || r.str("DEV", "") != "",
			SessionSecret:     r.str("KKR_WEB_SESSION_SECRET", ""),
			SecureCookies:     r.boolean("KKR_WEB_SECURE_COOKIES", false),
		},
		Site: SiteConfig{
			Name:        r.str("KKR_WEB_SITE_NAME", defaultSiteName),
			BaseURL:     strings.TrimRight(r.str("KKR_WEB_BASE_URL", defaultBaseURL), "/"),
			CMSBaseURL:  r.str("KKR_WEB_CMS_BASE_URL", ""),
			PageSize:    r.integer("KKR_WEB_PAGE_SIZE", defaultPageSize),
			MapEmbedURL: r.str("KKR_WEB_MAP_EMBED_URL", "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3887.970970819419!2d80.12826067574757!3d12.973708514830724!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x3a525fc381bde825%3A0x641e33c1866b1cc8!2sKarthikesh%20Robotics%20Private%20Limited!5e0!3m2!1sen!2sin!4v1748016910878!5m2!1sen!2sin"),
			VideoURL:    r.str("KKR_WEB_VIDEO_URL", "https://www.youtube.com/embed/sxvZ4oxeWt8"),
			FeedURL:     r.str("KKR_WEB_FEED_URL", "https://www.instagram.com/karthikesh_robotics/embed"),
			GA4ID:       r.str("KKR_WEB_GA_MEASUREMENT_ID", ""),
		},
		Messaging: MessagingConfig{
			BaseURL:      r.str("KKR_WEB_WHATSAPP_BASE_URL", defaultWhatsAppBase),
			Phone:        r.str("KKR_WEB_WHATSAPP_PHONE", defaultWhatsAppPhone),
			CommunityURL: r.str("KKR_WEB_COMMUNITY_URL", defaultCommunityURL),
		},
		Notify: NotifyConfig{
			SendGridAPIKey: r.str("KKR_SENDGRID_API_KEY", ""),
			From:           r.str("KKR_WEB_NOTIFY_FROM", defaultNotifyFrom),
			To:             r.str("KKR_WEB_NOTIFY_TO", defaultNotifyTo),
		},
		Timers: TimerConfig{
			SplashDelay: r.duration("KKR_WEB_SPLASH_DELAY", defaultSplashDelay),
			PopupDelay:  r.duration("KKR_WEB_POPUP_DELAY", defaultPopupDelay),
		},
		Cart: CartConfig{
			IdleTTL:       r.duration("KKR_WEB_CART_IDLE_TTL", defaultCartIdleTTL),
			SweepInterval: r.duration("KKR_WEB_CART_SWEEP_INTERVAL", defaultCartSweepInterval),
		},
		LogLevel: r.str("LOG_LEVEL", "info"),
	}

	if cfg.Site.PageSize <= 0 {
		r.invalid = append(r.invalid, "KKR_WEB_PAGE_SIZE")
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		r.invalid = append(r.invalid, "KKR_WEB_PORT")
	}
	if len(r.invalid) > 0 {
		return Config{}, &ValidationError{fields: r.invalid}
	}
	return cfg, nil
}

func readDotEnv(paths []string) (map[string]string, error) {
	values := map[string]string{}
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		file, err := godotenv.Read(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
		}
		for k, v := range file {
			values[k] = v
		}
	}
	return values, nil
}

func (r *reader) str(key, fallback string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	// bare integers are milliseconds
	if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	r.invalid = append(r.invalid, key)
	return fallback
}

func (r *reader) integer(key string, fallback int) int {
	v, ok := r.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.invalid = append(r.invalid, key)
		return fallback
	}
	return n
}

func (r *reader) boolean(key string, fallback bool) bool {
	v, ok := r.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	r.invalid = append(r.invalid, key)
	return fallback
}
