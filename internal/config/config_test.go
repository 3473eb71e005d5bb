package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "GIN_MODE", "DATABASE_PATH", "SESSION_TTL", "PIPELINE_PERIOD", "SMTP_USER", "TO_EMAIL", "SECURE_COOKIES"} {
		t.Setenv(k, "")
	}

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, "data/portfolio.db", c.DatabasePath)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.Equal(t, 2*time.Second, c.PipelinePeriod)
	assert.Equal(t, 50*time.Millisecond, c.RadarFrame)
	assert.Equal(t, 1500*time.Millisecond, c.PlaygroundDelay)
	assert.Equal(t, "smtp.gmail.com", c.SMTP.Host)
	assert.False(t, c.SMTP.Configured())
	assert.False(t, c.SecureCookies)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PIPELINE_PERIOD", "500ms")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "pw")
	t.Setenv("TO_EMAIL", "")
	t.Setenv("SECURE_COOKIES", "true")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 500*time.Millisecond, c.PipelinePeriod)
	assert.Equal(t, "me@example.com", c.SMTP.To)
	assert.True(t, c.SMTP.Configured())
	assert.True(t, c.SecureCookies)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("RADAR_FRAME", "fast")
	_, err := Load()
	assert.ErrorContains(t, err, "RADAR_FRAME")

	t.Setenv("RADAR_FRAME", "-1s")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("RADAR_FRAME", "")
	t.Setenv("SECURE_COOKIES", "maybe")
	_, err = Load()
	assert.ErrorContains(t, err, "SECURE_COOKIES")
}
