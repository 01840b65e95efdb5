package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CURSORWIRE_ADDR", "")
	t.Setenv("CURSORWIRE_LOG_LEVEL", "")
	t.Setenv("CURSORWIRE_SUB_BUFFER", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 16, cfg.SubBuffer)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CURSORWIRE_ADDR", ":9999")
	t.Setenv("CURSORWIRE_LOG_LEVEL", "debug")
	t.Setenv("CURSORWIRE_SUB_BUFFER", "64")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 64, cfg.SubBuffer)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("CURSORWIRE_SUB_BUFFER", "not-a-number")
	cfg := Load()
	assert.Equal(t, 16, cfg.SubBuffer)
}
