package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/quantbr/erva/internal/core"
)

type Config struct {
	Years     YearsConfig    `mapstructure:"years"`
	Benchmark string         `mapstructure:"benchmark"`
	Entities  []EntityConfig `mapstructure:"entities"`
	Accounts  AccountsConfig `mapstructure:"accounts"`
	Sources   SourcesConfig  `mapstructure:"sources"`
	Report    ReportConfig   `mapstructure:"report"`
	Metrics   MetricsConfig  `mapstructure:"metrics"`
}

// YearsConfig bounds the analysis window (fiscal years, inclusive).
type YearsConfig struct {
	From int `mapstructure:"from"`
	To   int `mapstructure:"to"`
}

// EntityConfig is one roster entry.
type EntityConfig struct {
	Name     string `mapstructure:"name"`
	Ticker   string `mapstructure:"ticker"`
	FiscalID string `mapstructure:"fiscal_id"`
}

// AccountsConfig overrides the account matching policy. Empty fields use
// the CVM defaults.
type AccountsConfig struct {
	NetIncomePattern   string `mapstructure:"net_income_pattern"`
	TotalEquityCode    string `mapstructure:"total_equity_code"`
	NonControllingCode string `mapstructure:"non_controlling_code"`
}

type SourcesConfig struct {
	Disclosure DisclosureSourceConfig `mapstructure:"disclosure"`
	Rates      RateSourceConfig       `mapstructure:"rates"`
	Prices     PriceSourceConfig      `mapstructure:"prices"`
}

type DisclosureSourceConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type RateSourceConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Series  int    `mapstructure:"series"`
}

type PriceSourceConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type ReportConfig struct {
	Dir string `mapstructure:"dir"`
}

// MetricsConfig holds metrics configuration. When Addr is set, a
// /metrics listener is exposed for the duration of the run.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults: the four large
// listed Brazilian banks against the Ibovespa, 2010 onward.
func Defaults() *Config {
	return &Config{
		Years:     YearsConfig{From: 2010, To: 2024},
		Benchmark: "^BVSP",
		Entities: []EntityConfig{
			{Name: "Itaú Unibanco", Ticker: "ITUB4.SA", FiscalID: "60.872.504/0001-23"},
			{Name: "Bradesco", Ticker: "BBDC4.SA", FiscalID: "60.746.948/0001-12"},
			{Name: "Banco do Brasil", Ticker: "BBAS3.SA", FiscalID: "00.000.000/0001-91"},
			{Name: "Santander BR", Ticker: "SANB11.SA", FiscalID: "90.400.888/0001-42"},
		},
		Report: ReportConfig{Dir: "out"},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// CoreEntities returns the roster as core entities.
func (c *Config) CoreEntities() []core.Entity {
	out := make([]core.Entity, len(c.Entities))
	for i, e := range c.Entities {
		out[i] = core.Entity{Name: e.Name, Ticker: e.Ticker, FiscalID: e.FiscalID}
	}
	return out
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Years.From <= 0 || c.Years.To <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("years must be positive, got %d..%d", c.Years.From, c.Years.To))
	}
	if c.Years.To < c.Years.From {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("years.to (%d) before years.from (%d)", c.Years.To, c.Years.From))
	}
	if c.Benchmark == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("benchmark symbol required"))
	}
	if len(c.Entities) == 0 {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("at least one entity required"))
	}
	for i, e := range c.Entities {
		if e.Name == "" || e.Ticker == "" || e.FiscalID == "" {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("entity %d: name, ticker and fiscal_id are all required", i))
		}
	}
	if c.Report.Dir == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("report dir required"))
	}
	return nil
}
