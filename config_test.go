package nimsforestkiosk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "en", cfg.Locale)
	assert.False(t, cfg.Scenarios)
	assert.Zero(t, cfg.RefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.TVDiscoveryTimeout)
	assert.Equal(t, DefaultTimings(), cfg.Timings())

	opts, err := cfg.KioskOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{
		"KIOSK_LISTEN_ADDR":    "127.0.0.1:9000",
		"KIOSK_LOCALE":         "pt-BR",
		"KIOSK_TIMEZONE":       "UTC",
		"KIOSK_CALL_DELAY":     "2s",
		"KIOSK_TEST_SCENARIOS": "true",
		"LOG_LEVEL":            "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 2*time.Second, cfg.Timings().CallDelay)
	assert.True(t, cfg.Scenarios)

	tag, err := cfg.LocaleTag()
	require.NoError(t, err)
	assert.Equal(t, language.BrazilianPortuguese, tag)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"locale":     {"KIOSK_LOCALE": "ja"},
		"zero delay": {"KIOSK_CALL_DELAY": "0s"},
		"log level":  {"LOG_LEVEL": "verbose"},
		"time zone":  {"KIOSK_TIMEZONE": "Mars/Olympus_Mons"},
		"duration":   {"KIOSK_LOAD_STEP": "soon"},
		"negative":   {"KIOSK_REFRESH_INTERVAL": "-1s"},
		"scenarios":  {"KIOSK_TEST_SCENARIOS": "maybe"},
	}
	for name, environ := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfigFrom(environ)
			assert.Error(t, err)
		})
	}
}
