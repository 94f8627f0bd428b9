package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 2*time.Second, cfg.SubmitDelay)
	assert.Equal(t, 3*time.Second, cfg.RotateInterval)
	assert.Equal(t, 50.0, cfg.ScrollThreshold)
	assert.Equal(t, 30*time.Second, cfg.AttachTimeout)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.AdminEnabled())
	assert.False(t, cfg.MailEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("PORTFOLIO_SUBMIT_DELAY", "500ms")
	t.Setenv("PORTFOLIO_SCROLL_THRESHOLD", "80")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "app-password")
	t.Setenv("TO_EMAIL", "inbox@example.com")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, 500*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, 80.0, cfg.ScrollThreshold)
	assert.True(t, cfg.MailEnabled())
	assert.True(t, cfg.AdminEnabled())

	smtp := cfg.SMTPConfig()
	assert.Equal(t, "inbox@example.com", smtp.To)
	assert.Equal(t, "587", smtp.Port)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := map[string][2]string{
		"port":     {"PORT", "http"},
		"delay":    {"PORTFOLIO_SUBMIT_DELAY", "-1s"},
		"interval": {"PORTFOLIO_ROTATE_INTERVAL", "0s"},
		"rate":     {"PORTFOLIO_RATE_LIMIT", "0"},
		"parse":    {"PORTFOLIO_MAX_VISITS", "lots"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
