package internal

import (
	"testing"
	"time"

	"github.com/dr-yst/org-x/internal/monitor"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.Search.Enabled() {
		t.Fatal("default search index should be enabled")
	}
	if cfg.Auth.AuthEnabled() {
		t.Fatal("default auth should be disabled")
	}
}

func TestPathConfigValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Documents.Paths = []PathConfig{{Path: "/x", Type: "symlink", ParseEnabled: true}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid path type should fail validation")
	}

	cfg.Documents.Paths = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty path list should fail validation")
	}
}

func TestAuthValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = AuthModeToken
	if err := cfg.Validate(); err == nil {
		t.Fatal("token mode without token should fail")
	}
	cfg.Auth.Token = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token: %v", err)
	}

	cfg.Auth = AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty auth should normalise to disabled: %v", err)
	}
	if cfg.Auth.Mode != AuthModeDisabled {
		t.Fatalf("mode = %q", cfg.Auth.Mode)
	}
}

func TestHTTPValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 0 should fail validation")
	}
}

func TestDebounceConversion(t *testing.T) {
	d := DocumentsConfig{DebounceMS: 500}
	if got := d.Debounce(); got != 500*time.Millisecond {
		t.Fatalf("debounce = %v", got)
	}
	d.DebounceMS = 0
	if got := d.Debounce(); got != monitor.DefaultDebounce {
		t.Fatalf("zero debounce should fall back to default, got %v", got)
	}
}

func TestPathConfigMonitored(t *testing.T) {
	p := PathConfig{Path: "/x", Type: "directory", ParseEnabled: true}
	m := p.Monitored()
	if m.Type != monitor.PathTypeDirectory || !m.ParseEnabled || m.Path != "/x" {
		t.Fatalf("monitored = %+v", m)
	}
}
