package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/pders01/weatherboard/internal/validation"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	// MinCardWidth fits the card border and the "Temperature:" label.
	MinCardWidth = 16
)

type Config struct {
	Lookup LookupConfig `mapstructure:"lookup" toml:"lookup"`
	UI     UIConfig     `mapstructure:"ui" toml:"ui"`
	Keys   KeyConfig    `mapstructure:"keys" toml:"keys"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
	Opener string       `mapstructure:"opener" toml:"opener"`
}

type LookupConfig struct {
	GeocodingURL string `mapstructure:"geocoding_url" toml:"geocoding_url"`
	ForecastURL  string `mapstructure:"forecast_url" toml:"forecast_url"`
	Language     string `mapstructure:"language" toml:"language"`
	// Zero means no client timeout; a hung request keeps the lookup in
	// flight until it is cancelled.
	HTTPTimeout time.Duration `mapstructure:"http_timeout" toml:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent" toml:"user_agent"`
}

type UIConfig struct {
	Colors    UIColors `mapstructure:"colors" toml:"colors"`
	Columns   int      `mapstructure:"columns" toml:"columns"`
	CardWidth int      `mapstructure:"card_width" toml:"card_width"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary" toml:"primary"`
	Secondary string `mapstructure:"secondary" toml:"secondary"`
	Accent    string `mapstructure:"accent" toml:"accent"`
	Text      string `mapstructure:"text" toml:"text"`
	Muted     string `mapstructure:"muted" toml:"muted"`
	Error     string `mapstructure:"error" toml:"error"`
}

type KeyConfig struct {
	Modifier string `mapstructure:"modifier" toml:"modifier"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Lookup: LookupConfig{
			GeocodingURL: DefaultGeocodingURL,
			ForecastURL:  DefaultForecastURL,
			Language:     "en",
			HTTPTimeout:  0,
			UserAgent:    "weatherboard/1.0 (https://github.com/pders01/weatherboard)",
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
			},
			Columns:   3,
			CardWidth: 30,
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
		},
		Log: LogConfig{
			Level: "off",
			File:  filepath.Join(homeDir, ".weatherboard", "weatherboard.log"),
		},
		Opener: getDefaultOpener(),
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "weatherboard", "config.toml")
}

func Load(configPath string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WEATHERBOARD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Nested keys are not bound by AutomaticEnv until they are looked up.
	if lvl := v.GetString("log_level"); lvl != "" {
		config.Log.Level = lvl
	}

	logFile, err := validation.ValidateLogPath(config.Log.File)
	if err != nil {
		return nil, fmt.Errorf("log.file: %w", err)
	}
	config.Log.File = logFile

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every leaf key so a partial table in the file only
// overrides the keys it names.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("lookup.geocoding_url", cfg.Lookup.GeocodingURL)
	v.SetDefault("lookup.forecast_url", cfg.Lookup.ForecastURL)
	v.SetDefault("lookup.language", cfg.Lookup.Language)
	v.SetDefault("lookup.http_timeout", cfg.Lookup.HTTPTimeout)
	v.SetDefault("lookup.user_agent", cfg.Lookup.UserAgent)

	v.SetDefault("ui.colors.primary", cfg.UI.Colors.Primary)
	v.SetDefault("ui.colors.secondary", cfg.UI.Colors.Secondary)
	v.SetDefault("ui.colors.accent", cfg.UI.Colors.Accent)
	v.SetDefault("ui.colors.text", cfg.UI.Colors.Text)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)
	v.SetDefault("ui.columns", cfg.UI.Columns)
	v.SetDefault("ui.card_width", cfg.UI.CardWidth)

	v.SetDefault("keys.modifier", cfg.Keys.Modifier)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	v.SetDefault("opener", cfg.Opener)
}

// Validate checks the lookup endpoints and limits.
func (c *Config) Validate() error {
	ev := validation.NewEndpointValidator()
	if _, err := ev.ValidateAndNormalize(c.Lookup.GeocodingURL); err != nil {
		return fmt.Errorf("lookup.geocoding_url: %w", err)
	}
	if _, err := ev.ValidateAndNormalize(c.Lookup.ForecastURL); err != nil {
		return fmt.Errorf("lookup.forecast_url: %w", err)
	}
	if c.Lookup.HTTPTimeout < 0 {
		return fmt.Errorf("lookup.http_timeout must not be negative")
	}
	if c.UI.Columns < 1 {
		return fmt.Errorf("ui.columns must be at least 1, got %d", c.UI.Columns)
	}
	if c.UI.CardWidth < MinCardWidth {
		return fmt.Errorf("ui.card_width must be at least %d, got %d", MinCardWidth, c.UI.CardWidth)
	}
	return nil
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings for TOML readability
	lookupCfg := map[string]interface{}{
		"geocoding_url": config.Lookup.GeocodingURL,
		"forecast_url":  config.Lookup.ForecastURL,
		"language":      config.Lookup.Language,
		"http_timeout":  config.Lookup.HTTPTimeout.String(),
		"user_agent":    config.Lookup.UserAgent,
	}

	v.Set("lookup", lookupCfg)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)
	v.Set("log", config.Log)
	v.Set("opener", config.Opener)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

// MarshalTOML renders the effective configuration.
func MarshalTOML(config *Config) ([]byte, error) {
	type lookupTOML struct {
		GeocodingURL string `toml:"geocoding_url"`
		ForecastURL  string `toml:"forecast_url"`
		Language     string `toml:"language"`
		HTTPTimeout  string `toml:"http_timeout"`
		UserAgent    string `toml:"user_agent"`
	}

	out := struct {
		Lookup lookupTOML `toml:"lookup"`
		UI     UIConfig   `toml:"ui"`
		Keys   KeyConfig  `toml:"keys"`
		Log    LogConfig  `toml:"log"`
		Opener string     `toml:"opener"`
	}{
		Lookup: lookupTOML{
			GeocodingURL: config.Lookup.GeocodingURL,
			ForecastURL:  config.Lookup.ForecastURL,
			Language:     config.Lookup.Language,
			HTTPTimeout:  config.Lookup.HTTPTimeout.String(),
			UserAgent:    config.Lookup.UserAgent,
		},
		UI:     config.UI,
		Keys:   config.Keys,
		Log:    config.Log,
		Opener: config.Opener,
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
