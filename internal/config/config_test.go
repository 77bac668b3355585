package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
years:
  from: 2015
  to: 2023

benchmark: "^BVSP"

entities:
  - name: "Itaú Unibanco"
    ticker: "ITUB4.SA"
    fiscal_id: "60.872.504/0001-23"

report:
  dir: "/tmp/erva/out"
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Years.From != 2015 || cfg.Years.To != 2023 {
		t.Errorf("years = %d..%d, want 2015..2023", cfg.Years.From, cfg.Years.To)
	}
	if len(cfg.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(cfg.Entities))
	}
	if cfg.Entities[0].FiscalID != "60.872.504/0001-23" {
		t.Errorf("fiscal_id = %s", cfg.Entities[0].FiscalID)
	}
	if cfg.Report.Dir != "/tmp/erva/out" {
		t.Errorf("report dir = %s", cfg.Report.Dir)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Years.From != 2010 || cfg.Years.To != 2024 {
		t.Errorf("default years = %d..%d", cfg.Years.From, cfg.Years.To)
	}
	if cfg.Benchmark != "^BVSP" {
		t.Errorf("default benchmark = %s", cfg.Benchmark)
	}
	if len(cfg.Entities) != 4 {
		t.Errorf("default roster size = %d, want 4", len(cfg.Entities))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Defaults()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"inverted years", func(c *Config) { c.Years = YearsConfig{From: 2024, To: 2010} }, true},
		{"zero years", func(c *Config) { c.Years = YearsConfig{} }, true},
		{"missing benchmark", func(c *Config) { c.Benchmark = "" }, true},
		{"empty roster", func(c *Config) { c.Entities = nil }, true},
		{"entity without ticker", func(c *Config) { c.Entities[0].Ticker = "" }, true},
		{"missing report dir", func(c *Config) { c.Report.Dir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			cfg.Entities = append([]EntityConfig(nil), valid.Entities...)
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCoreEntities(t *testing.T) {
	cfg := Defaults()
	entities := cfg.CoreEntities()

	if len(entities) != len(cfg.Entities) {
		t.Fatalf("got %d entities, want %d", len(entities), len(cfg.Entities))
	}
	if entities[0].Ticker != cfg.Entities[0].Ticker {
		t.Errorf("ticker = %s, want %s", entities[0].Ticker, cfg.Entities[0].Ticker)
	}
}
