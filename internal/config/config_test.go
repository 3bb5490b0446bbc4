package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFiles())
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, ":8080", cfg.Server.Addr())
	require.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "templates", cfg.Server.TemplatesDir)
	require.False(t, cfg.Server.DevMode)
	require.Equal(t, "https://wa.me", cfg.Messaging.BaseURL)
	require.Equal(t, "918608354107", cfg.Messaging.Phone)
	require.Equal(t, 2*time.Second, cfg.Timers.SplashDelay)
	require.Equal(t, 3*time.Second, cfg.Timers.PopupDelay)
	require.Equal(t, 6, cfg.Site.PageSize)
	require.Equal(t, 24*time.Hour, cfg.Cart.IdleTTL)
	require.False(t, cfg.Notify.Enabled())
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadPortPrecedence(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "9000"}), WithoutSystemEnv(), WithEnvFiles())
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Server.Port)

	cfg, err = Load(WithEnvMap(map[string]string{"PORT": "9000", "KKR_WEB_PORT": "9100"}), WithoutSystemEnv(), WithEnvFiles())
	require.NoError(t, err)
	require.Equal(t, "9100", cfg.Server.Port)
}

func TestLoadOverrides(t *testing.T) {
	env := map[string]string{
		"KKR_WEB_SPLASH_DELAY":  "500",
		"KKR_WEB_POPUP_DELAY":   "5s",
		"KKR_WEB_DEV":           "yes",
		"KKR_WEB_BASE_URL":      "http://localhost:8080/",
		"KKR_WEB_PAGE_SIZE":     "9",
		"KKR_SENDGRID_API_KEY":  "SG.test",
		"KKR_WEB_NOTIFY_TO":     "team@example.com",
		"KKR_WEB_CART_IDLE_TTL": "1h",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFiles())
	require.NoError(t, err)

	require.Equal(t, 500*time.Millisecond, cfg.Timers.SplashDelay)
	require.Equal(t, 5*time.Second, cfg.Timers.PopupDelay)
	require.True(t, cfg.Server.DevMode)
	require.Equal(t, "http://localhost:8080", cfg.Site.BaseURL)
	require.Equal(t, 9, cfg.Site.PageSize)
	require.True(t, cfg.Notify.Enabled())
	require.Equal(t, "team@example.com", cfg.Notify.To)
	require.Equal(t, time.Hour, cfg.Cart.IdleTTL)
}

func TestLoadInvalidValues(t *testing.T) {
	env := map[string]string{
		"KKR_WEB_READ_TIMEOUT": "soon",
		"KKR_WEB_PAGE_SIZE":    "0",
		"KKR_WEB_DEV":          "maybe",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFiles())
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.ElementsMatch(t, []string{"KKR_WEB_READ_TIMEOUT", "KKR_WEB_PAGE_SIZE", "KKR_WEB_DEV"}, verr.Fields())
}

func TestLoadDotEnvFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, ".env")
	local := filepath.Join(dir, ".env.local")
	require.NoError(t, os.WriteFile(base, []byte("KKR_WEB_SITE_NAME=\"KKR Dev\"\nKKR_WEB_WHATSAPP_PHONE=911111111111\n"), 0o644))
	require.NoError(t, os.WriteFile(local, []byte("export KKR_WEB_WHATSAPP_PHONE=922222222222\n"), 0o644))

	cfg, err := Load(
		WithEnvFiles(base, local, filepath.Join(dir, "missing.env")),
		WithEnvMap(map[string]string{"KKR_WEB_COMMUNITY_URL": "https://example.com/join"}),
		WithoutSystemEnv(),
	)
	require.NoError(t, err)
	require.Equal(t, "KKR Dev", cfg.Site.Name)
	require.Equal(t, "922222222222", cfg.Messaging.Phone)
	require.Equal(t, "https://example.com/join", cfg.Messaging.CommunityURL)
}
