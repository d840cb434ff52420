package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "https://agrometeo.mendoza.gov.ar/api/getInstantaneas.php" {
		t.Errorf("Upstream.BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 10s", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.CircuitBreaker.Enabled {
		t.Error("circuit breaker should be off by default")
	}
	if ids := cfg.StationIDs(); len(ids) != 43 || ids[0] != 1 || ids[42] != 43 {
		t.Errorf("StationIDs() = %v, want 1..43", ids)
	}
	if !cfg.Attributes.Chart || cfg.Attributes.UTC {
		t.Errorf("Attributes = %+v, want chart on and utc off", cfg.Attributes)
	}
	if cfg.WFS.TypeName != "Estaciones" || cfg.WFS.SRSName != "EPSG:4326" {
		t.Errorf("WFS = %+v", cfg.WFS)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AGROMETEO_SERVER_PORT", "9090")
	t.Setenv("AGROMETEO_UPSTREAM_WORKERS", "8")
	t.Setenv("AGROMETEO_UPSTREAM_TIMEOUT", "3s")
	t.Setenv("AGROMETEO_STATIONS_LAST", "10")
	t.Setenv("AGROMETEO_ATTRIBUTES_UTC", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Upstream.Workers != 8 {
		t.Errorf("Upstream.Workers = %d, want 8", cfg.Upstream.Workers)
	}
	if cfg.Upstream.Timeout != 3*time.Second {
		t.Errorf("Upstream.Timeout = %v, want 3s", cfg.Upstream.Timeout)
	}
	if len(cfg.StationIDs()) != 10 {
		t.Errorf("StationIDs() has %d ids, want 10", len(cfg.StationIDs()))
	}
	if !cfg.Attributes.UTC {
		t.Error("Attributes.UTC = false, want true")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	yaml := `
server:
  publicurl: https://meteorologia.example.org
upstream:
  workers: 2
  circuitbreaker:
    enabled: true
    failurethreshold: 5
wfs:
  title: Estaciones de prueba
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.PublicURL != "https://meteorologia.example.org" {
		t.Errorf("Server.PublicURL = %q", cfg.Server.PublicURL)
	}
	if cfg.Upstream.Workers != 2 {
		t.Errorf("Upstream.Workers = %d, want 2", cfg.Upstream.Workers)
	}
	if !cfg.Upstream.CircuitBreaker.Enabled || cfg.Upstream.CircuitBreaker.FailureThreshold != 5 {
		t.Errorf("CircuitBreaker = %+v", cfg.Upstream.CircuitBreaker)
	}
	if cfg.WFS.Title != "Estaciones de prueba" {
		t.Errorf("WFS.Title = %q", cfg.WFS.Title)
	}
	if cfg.WFS.TypeName != "Estaciones" {
		t.Errorf("WFS.TypeName = %q, want default", cfg.WFS.TypeName)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "empty range", key: "AGROMETEO_STATIONS_LAST", val: "0"},
		{name: "no workers", key: "AGROMETEO_UPSTREAM_WORKERS", val: "0"},
		{name: "bad upstream url", key: "AGROMETEO_UPSTREAM_BASEURL", val: "not a url"},
		{name: "bad gin mode", key: "AGROMETEO_SERVER_GINMODE", val: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("HOME", t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), "invalid config") {
				t.Errorf("error = %v, want invalid config", err)
			}
		})
	}
}

func TestStationIDs(t *testing.T) {
	tests := []struct {
		name     string
		first    int
		last     int
		expected int
	}{
		{name: "default range", first: 1, last: 43, expected: 43},
		{name: "single station", first: 5, last: 5, expected: 1},
		{name: "inverted", first: 5, last: 4, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Stations: StationsConfig{First: tt.first, Last: tt.last}}
			if got := len(cfg.StationIDs()); got != tt.expected {
				t.Errorf("len(StationIDs()) = %d, want %d", got, tt.expected)
			}
		})
	}
}
