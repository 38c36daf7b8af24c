package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func validConfig() Config {
	cfg := Config{}
	cfg.HTTP.Port = 3939
	cfg.Database.Addrs = []string{"localhost:6379"}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("ReadTimeoutSec = %d, want 10", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Recommend.RegionWeight != 0.2 {
		t.Errorf("RegionWeight = %v, want 0.2", cfg.Recommend.RegionWeight)
	}
	if cfg.Recommend.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.Recommend.TopK)
	}
	if cfg.Recommend.ResultLimit != 5 {
		t.Errorf("ResultLimit = %d, want 5", cfg.Recommend.ResultLimit)
	}
	if cfg.Recommend.HistoryRowLimit != 1000 {
		t.Errorf("HistoryRowLimit = %d, want 1000", cfg.Recommend.HistoryRowLimit)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(_ *Config) {}, false},
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, true},
		{"port too high", func(c *Config) { c.HTTP.Port = 70000 }, true},
		{"missing addrs", func(c *Config) { c.Database.Addrs = nil }, true},
		{"weight below range", func(c *Config) { c.Recommend.RegionWeight = -0.1 }, true},
		{"weight above range", func(c *Config) { c.Recommend.RegionWeight = 1.5 }, true},
		{"weight at upper bound", func(c *Config) { c.Recommend.RegionWeight = 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestYAMLParsing(t *testing.T) {
	raw := []byte(`
http:
  port: 3939
database:
  addrs: ["localhost:6379"]
recommend:
  region_weight: 0.3
  top_k: 20
  result_limit: 8
  history_row_limit: 500
cors:
  allowed_origins: ["https://shop.example.com"]
logging:
  level: debug
`)

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if cfg.Recommend.RegionWeight != 0.3 {
		t.Errorf("RegionWeight = %v, want 0.3", cfg.Recommend.RegionWeight)
	}
	if cfg.Recommend.TopK != 20 {
		t.Errorf("TopK = %d, want 20", cfg.Recommend.TopK)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://shop.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CARTREC_TEST_ADDR", "redis:6379")

	got := string(expandEnvVars([]byte("addr: ${CARTREC_TEST_ADDR}")))
	if got != "addr: redis:6379" {
		t.Errorf("expanded = %q", got)
	}

	got = string(expandEnvVars([]byte("addr: ${CARTREC_UNSET_VAR:-fallback:6379}")))
	if got != "addr: fallback:6379" {
		t.Errorf("expanded with default = %q", got)
	}
}
