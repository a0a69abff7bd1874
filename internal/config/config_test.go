package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("expected default model gpt-4o-mini, got %q", cfg.LLMModel)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("expected 60s timeout, got %v", cfg.LLMTimeout)
	}
	if cfg.UpstreamRateLimit != 30 || cfg.UpstreamRateWindow != time.Minute {
		t.Fatalf("unexpected rate limit defaults: %d per %v", cfg.UpstreamRateLimit, cfg.UpstreamRateWindow)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Fatalf("expected no trusted proxies by default, got %v", cfg.TrustedProxies)
	}
	if !cfg.MockMode() {
		t.Fatalf("expected mock mode without api key")
	}
}

func TestConfigMockMode(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want bool
	}{
		{name: "empty", key: "", want: true},
		{name: "blank", key: "   ", want: true},
		{name: "placeholder", key: PlaceholderAPIKey, want: true},
		{name: "real key", key: "sk-test-123", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{LLMAPIKey: tc.key}
			if got := cfg.MockMode(); got != tc.want {
				t.Fatalf("MockMode() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-live")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("UPSTREAM_RATE_WINDOW", "30s")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.10")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.MockMode() {
		t.Fatalf("expected live mode with real key")
	}
	if cfg.LLMModel != "gpt-4o" {
		t.Fatalf("expected model override, got %q", cfg.LLMModel)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production env")
	}
	if cfg.UpstreamRateWindow != 30*time.Second {
		t.Fatalf("expected 30s window, got %v", cfg.UpstreamRateWindow)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.0/8" || cfg.TrustedProxies[1] != "192.168.1.10" {
		t.Fatalf("unexpected trusted proxies %v", cfg.TrustedProxies)
	}
}
