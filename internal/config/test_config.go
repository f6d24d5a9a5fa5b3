package config

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Lookup.UserAgent = "weatherboard-test/1.0"
	cfg.Log = LogConfig{Level: "off"}
	cfg.Opener = "true"
	return cfg
}
