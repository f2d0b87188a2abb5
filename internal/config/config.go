// Package config loads stochwalk.yaml, STOCHWALK_* environment variables and
// command line flags through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"stochwalk/internal/market"
	"stochwalk/internal/walk"
)

const (
	EnvPrefix = "STOCHWALK"
	FileName  = "stochwalk"
)

type Config struct {
	Dt      float64 `mapstructure:"dt"`
	Seed    uint64  `mapstructure:"seed"`
	Workers int     `mapstructure:"workers"`
	Bins    int     `mapstructure:"bins"`

	MetricsFile string `mapstructure:"metrics-file"`

	Market    MarketConfig    `mapstructure:"market"`
	Portfolio PortfolioConfig `mapstructure:"portfolio"`
}

type MarketConfig struct {
	Symbols []SymbolConfig  `mapstructure:"symbols"`
	Index   []market.Weight `mapstructure:"index"`
}

// SymbolConfig leaves unset parameters nil so they fall back to
// market.DefaultStockParams.
type SymbolConfig struct {
	Symbol string   `mapstructure:"symbol"`
	S0     *float64 `mapstructure:"s0"`
	Mu     *float64 `mapstructure:"mu"`
	Sigma  *float64 `mapstructure:"sigma"`
	T      *float64 `mapstructure:"t"`
	MuJ    *float64 `mapstructure:"mu_j"`
	SigmaJ *float64 `mapstructure:"sigma_j"`
	Lambda *float64 `mapstructure:"lambda"`
}

type PortfolioConfig struct {
	Capital float64 `mapstructure:"capital"`
}

// Params resolves the symbol's parameters on a grid of step dt.
func (s SymbolConfig) Params(dt float64) market.StockParams {
	p := market.DefaultStockParams()
	p.Dt = dt
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{s.S0, &p.S0},
		{s.Mu, &p.Mu},
		{s.Sigma, &p.Sigma},
		{s.T, &p.T},
		{s.MuJ, &p.MuJ},
		{s.SigmaJ, &p.SigmaJ},
		{s.Lambda, &p.Lambda},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return p
}

// DefaultMarket is the four symbol market used when no config file names any.
func DefaultMarket() MarketConfig {
	symbols := []string{"SPX", "SPY", "QQQ", "CL"}
	weights := []float64{0.50, 0.1, 0.2, 0.2}

	var mc MarketConfig
	for i, s := range symbols {
		mc.Symbols = append(mc.Symbols, SymbolConfig{Symbol: s})
		mc.Index = append(mc.Index, market.Weight{Symbol: s, Weight: weights[i]})
	}
	return mc
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("dt", walk.DefaultDt)
	v.SetDefault("seed", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("bins", walk.DefaultBins)
	v.SetDefault("portfolio.capital", 1000000)
}

// Load reads the config file named by the "config" key, or stochwalk.yaml
// from the working directory or $HOME/.stochwalk. A missing default file is
// not an error.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.stochwalk")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Market.Symbols) == 0 {
		cfg.Market = DefaultMarket()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", walk.ErrInvalidParameter, c.Dt)
	}
	if c.Bins <= 0 {
		return fmt.Errorf("%w: bins must be positive, got %d", walk.ErrInvalidParameter, c.Bins)
	}
	seen := make(map[string]bool, len(c.Market.Symbols))
	for _, s := range c.Market.Symbols {
		if s.Symbol == "" {
			return errors.New("market symbol must not be empty")
		}
		if seen[s.Symbol] {
			return fmt.Errorf("%w: %s", market.ErrDuplicateSymbol, s.Symbol)
		}
		seen[s.Symbol] = true
	}
	return nil
}

// BuildMarket registers every configured symbol on m.
func (c *Config) BuildMarket(m *market.Market) error {
	for _, s := range c.Market.Symbols {
		if _, err := m.AddSymbol(s.Symbol, s.Params(c.Dt)); err != nil {
			return err
		}
	}
	return nil
}
