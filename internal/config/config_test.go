package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 1500*time.Millisecond, cfg.Contact.Delay)
	assert.Equal(t, "smtp.gmail.com", cfg.Contact.SMTPHost)
	assert.Equal(t, 8760*time.Hour, cfg.Retention)
	assert.False(t, cfg.Admin.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PORTFOLIO_HOST", "127.0.0.1")
	t.Setenv("PORTFOLIO_CONTACT_DELAY", "250ms")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, 250*time.Millisecond, cfg.Contact.Delay)
	assert.True(t, cfg.Admin.Enabled())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORTFOLIO_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("PORTFOLIO_LOG_LEVEL", "")
	os.Unsetenv("PORTFOLIO_LOG_LEVEL")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		cfg := &Config{Port: "http", GinMode: "release", Retention: time.Hour}
		assert.ErrorContains(t, cfg.Validate(), "invalid port")
	})

	t.Run("delay too long", func(t *testing.T) {
		cfg := &Config{Port: "80", GinMode: "release", Retention: time.Hour, Contact: ContactConfig{Delay: time.Minute}}
		assert.ErrorContains(t, cfg.Validate(), "contact delay")
	})

	t.Run("gin mode", func(t *testing.T) {
		cfg := &Config{Port: "80", GinMode: "turbo", Retention: time.Hour}
		assert.ErrorContains(t, cfg.Validate(), "gin mode")
	})

	t.Run("retention", func(t *testing.T) {
		for _, d := range []time.Duration{0, -time.Hour} {
			cfg := &Config{Port: "80", GinMode: "release", Retention: d}
			assert.ErrorContains(t, cfg.Validate(), "visitor retention must be positive", d)
		}
	})

	t.Run("valid", func(t *testing.T) {
		cfg := &Config{Port: "80", GinMode: "release", Retention: time.Hour}
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoad_RejectsZeroRetention(t *testing.T) {
	t.Setenv("PORTFOLIO_VISITOR_RETENTION", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "visitor retention must be positive")
}

func TestSMTPEnabled(t *testing.T) {
	assert.False(t, ContactConfig{SMTPUser: "me"}.SMTPEnabled())
	assert.True(t, ContactConfig{SMTPUser: "me", SMTPPass: "x", To: "me@example.com"}.SMTPEnabled())
}
