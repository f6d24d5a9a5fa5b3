package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultOpener(t *testing.T) {
	expected := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"windows": "start",
	}

	opener := getDefaultOpener()

	if expectedOpener, ok := expected[runtime.GOOS]; ok {
		assert.Equal(t, expectedOpener, opener)
	} else {
		assert.Equal(t, "open", opener)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, DefaultGeocodingURL, cfg.Lookup.GeocodingURL)
	assert.Equal(t, DefaultForecastURL, cfg.Lookup.ForecastURL)
	assert.Equal(t, "en", cfg.Lookup.Language)
	assert.Zero(t, cfg.Lookup.HTTPTimeout, "no timeout unless configured")
	assert.NotEmpty(t, cfg.Lookup.UserAgent)

	assert.Equal(t, 3, cfg.UI.Columns)
	assert.Equal(t, "ctrl", cfg.Keys.Modifier)
	assert.Equal(t, "off", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Opener)

	require.NoError(t, cfg.Validate())
}

func TestLoad_DefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultForecastURL, cfg.Lookup.ForecastURL)
	assert.Equal(t, 30, cfg.UI.CardWidth)
}

func TestLoad_FromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.toml")
	configContent := `
[lookup]
geocoding_url = "https://geo.open-meteo.test/v1/search"
forecast_url = "https://api.open-meteo.test/v1/forecast"
language = "de"
http_timeout = "15s"
user_agent = "test-agent"

[ui]
columns = 2

[ui.colors]
primary = "#FF0000"

[log]
level = "debug"
file = "/tmp/weatherboard-test.log"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://geo.open-meteo.test/v1/search", cfg.Lookup.GeocodingURL)
	assert.Equal(t, "de", cfg.Lookup.Language)
	assert.Equal(t, 15*time.Second, cfg.Lookup.HTTPTimeout)
	assert.Equal(t, "test-agent", cfg.Lookup.UserAgent)
	assert.Equal(t, 2, cfg.UI.Columns)
	assert.Equal(t, "#FF0000", cfg.UI.Colors.Primary)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/weatherboard-test.log", cfg.Log.File)

	// Keys missing from a partial table keep their defaults.
	assert.Equal(t, 30, cfg.UI.CardWidth)
	assert.Equal(t, "#4ECDC4", cfg.UI.Colors.Secondary)
	assert.Equal(t, "ctrl", cfg.Keys.Modifier)
}

func TestLoad_PartialLookupTable(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.toml")
	configContent := `
[lookup]
geocoding_url = "http://127.0.0.1:8080/v1/search"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080/v1/search", cfg.Lookup.GeocodingURL)
	assert.Equal(t, DefaultForecastURL, cfg.Lookup.ForecastURL)
	assert.Equal(t, "en", cfg.Lookup.Language)
	assert.Zero(t, cfg.Lookup.HTTPTimeout)
}

func TestLoad_InvalidEndpoint(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	configContent := `
[lookup]
geocoding_url = "ftp://geocoding.example.org/search"
forecast_url = "https://api.open-meteo.com/v1/forecast"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup.geocoding_url")
}

func TestLoad_RejectsBadCardWidth(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cards.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[ui]\ncard_width = -3\n"), 0o644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.card_width")
}

func TestLoad_LogLevelFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WEATHERBOARD_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative timeout", mutate: func(c *Config) { c.Lookup.HTTPTimeout = -time.Second }, wantErr: "http_timeout"},
		{name: "zero columns", mutate: func(c *Config) { c.UI.Columns = 0 }, wantErr: "ui.columns"},
		{name: "negative card width", mutate: func(c *Config) { c.UI.CardWidth = -3 }, wantErr: "ui.card_width"},
		{name: "narrow card width", mutate: func(c *Config) { c.UI.CardWidth = MinCardWidth - 1 }, wantErr: "ui.card_width"},
		{name: "minimum card width", mutate: func(c *Config) { c.UI.CardWidth = MinCardWidth }},
		{name: "empty forecast url", mutate: func(c *Config) { c.Lookup.ForecastURL = "" }, wantErr: "lookup.forecast_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSave(t *testing.T) {
	cfg := defaultConfig()
	cfg.Lookup.UserAgent = "test-save-agent"
	cfg.Lookup.HTTPTimeout = 45 * time.Second
	cfg.Keys.Modifier = "alt"
	cfg.UI.Colors.Primary = "#00FF00"
	cfg.Log.File = filepath.Join(t.TempDir(), "saved.log")

	savePath := filepath.Join(t.TempDir(), "nested", "saved-config.toml")
	require.NoError(t, Save(cfg, savePath))

	_, err := os.Stat(savePath)
	require.NoError(t, err, "Save() did not create config file")

	loaded, err := Load(savePath)
	require.NoError(t, err)

	assert.Equal(t, cfg.Lookup.UserAgent, loaded.Lookup.UserAgent)
	assert.Equal(t, cfg.Lookup.HTTPTimeout, loaded.Lookup.HTTPTimeout)
	assert.Equal(t, cfg.Keys.Modifier, loaded.Keys.Modifier)
	assert.Equal(t, cfg.UI.Colors.Primary, loaded.UI.Colors.Primary)
}

func TestGenerateDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "generated.toml")
	require.NoError(t, GenerateDefaultConfig(configPath))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "ctrl", cfg.Keys.Modifier)
	assert.Equal(t, DefaultGeocodingURL, cfg.Lookup.GeocodingURL)
}

func TestMarshalTOML(t *testing.T) {
	cfg := defaultConfig()
	cfg.Lookup.HTTPTimeout = 5 * time.Second

	data, err := MarshalTOML(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.Contains(out, "[lookup]"), out)
	assert.Contains(t, out, DefaultGeocodingURL)
	assert.Contains(t, out, "http_timeout")
	assert.Contains(t, out, "5s")
	assert.Contains(t, out, "[ui.colors]")
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "weatherboard-test/1.0", cfg.Lookup.UserAgent)
	assert.Equal(t, "off", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}
