// Package config loads the agent configuration: the tracked token catalog
// with per-token policy settings, from a YAML file or CLI flags.
//
// Credentials are deliberately not part of this package: the API key and
// secret come from the environment at the process boundary only.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/memerush/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultExchangeURL is the production exchange REST endpoint.
	DefaultExchangeURL = "https://api.binance.com"

	defaultPollInterval = 30 * time.Second
)

// Config is the full agent configuration.
type Config struct {
	// ExchangeURL exchange REST API base URL.
	ExchangeURL string
	// Tokens one entry per trading loop.
	Tokens []TokenConfig
}

// TokenConfig couples a token descriptor with its decision-policy settings.
type TokenConfig struct {
	Token domain.Token
	// BaseReference reference price the bands multiply.
	BaseReference decimal.Decimal
	// LowBand buy-below multiplier, e.g. 0.8.
	LowBand decimal.Decimal
	// HighBand sell-above multiplier, e.g. 1.2.
	HighBand decimal.Decimal
	// OrderQuantity fixed base-asset amount per order.
	OrderQuantity decimal.Decimal
	// PollInterval wait between trading cycles.
	PollInterval time.Duration
}

type configTmp struct {
	ExchangeURL string     `yaml:"exchange_url,omitempty"`
	Tokens      []tokenTmp `yaml:"tokens"`
}

type tokenTmp struct {
	Symbol         string        `yaml:"symbol"`
	Name           string        `yaml:"name"`
	Address        string        `yaml:"address,omitempty"`
	CatalogID      string        `yaml:"catalog_id,omitempty"`
	LiquidityBNB   string        `yaml:"liquidity_bnb,omitempty"`
	ExchangeListed bool          `yaml:"exchange_listed,omitempty"`
	BaseReference  string        `yaml:"base_reference"`
	LowBand        string        `yaml:"low_band,omitempty"`
	HighBand       string        `yaml:"high_band,omitempty"`
	OrderQuantity  string        `yaml:"order_quantity"`
	PollInterval   time.Duration `yaml:"poll_interval,omitempty"`
}

// Get parses CLI flags and returns the configuration. With --config the
// catalog comes from YAML; otherwise a single token is described by flags,
// defaulting to the built-in MEME entry.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	exchangeURL := flag.String("exchangeurl", DefaultExchangeURL, "exchange REST API base URL")
	symbol := flag.String("symbol", "MEME", "token ticker symbol")
	name := flag.String("name", "Meme Token", "token display name")
	catalogID := flag.String("catalogid", "meme-token", "external price catalog id")
	base := flag.String("base", "1.0", "base reference price for the threshold policy")
	lowBand := flag.String("lowband", "0.8", "buy when price drops below base*lowband")
	highBand := flag.String("highband", "1.2", "sell when price rises above base*highband")
	quantity := flag.String("quantity", "10", "base asset quantity per market order")
	pollInterval := flag.Duration("pollinterval", defaultPollInterval, "wait between trading cycles")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	tc, err := buildTokenConfig(tokenTmp{
		Symbol:        *symbol,
		Name:          *name,
		Address:       "0x123...",
		CatalogID:     *catalogID,
		LiquidityBNB:  "150",
		BaseReference: *base,
		LowBand:       *lowBand,
		HighBand:      *highBand,
		OrderQuantity: *quantity,
		PollInterval:  *pollInterval,
	})
	if err != nil {
		return Config{}, err
	}

	return Config{
		ExchangeURL: *exchangeURL,
		Tokens:      []TokenConfig{tc},
	}, nil
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	if len(tmp.Tokens) == 0 {
		return Config{}, fmt.Errorf("config %s contains no tokens", path)
	}

	cfg := Config{ExchangeURL: tmp.ExchangeURL}
	if cfg.ExchangeURL == "" {
		cfg.ExchangeURL = DefaultExchangeURL
	}

	for _, tok := range tmp.Tokens {
		tc, err := buildTokenConfig(tok)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect token %q in yaml config: %w", tok.Symbol, err)
		}
		cfg.Tokens = append(cfg.Tokens, tc)
	}

	return cfg, nil
}

func buildTokenConfig(tok tokenTmp) (TokenConfig, error) {
	if tok.Symbol == "" {
		return TokenConfig{}, fmt.Errorf("token symbol is required")
	}

	liquidity := decimal.Zero
	if tok.LiquidityBNB != "" {
		var err error
		liquidity, err = decimal.NewFromString(tok.LiquidityBNB)
		if err != nil {
			return TokenConfig{}, fmt.Errorf("incorrect 'liquidity_bnb' param: %w", err)
		}
	}

	base, err := parseDecimal(tok.BaseReference, "base_reference", "1.0")
	if err != nil {
		return TokenConfig{}, err
	}
	low, err := parseDecimal(tok.LowBand, "low_band", "0.8")
	if err != nil {
		return TokenConfig{}, err
	}
	high, err := parseDecimal(tok.HighBand, "high_band", "1.2")
	if err != nil {
		return TokenConfig{}, err
	}
	qty, err := parseDecimal(tok.OrderQuantity, "order_quantity", "10")
	if err != nil {
		return TokenConfig{}, err
	}

	interval := tok.PollInterval
	if interval == 0 {
		interval = defaultPollInterval
	}
	if interval < 0 {
		return TokenConfig{}, fmt.Errorf("incorrect 'poll_interval' param: %s", interval)
	}

	return TokenConfig{
		Token: domain.Token{
			Symbol:         tok.Symbol,
			Name:           tok.Name,
			Address:        tok.Address,
			CatalogID:      tok.CatalogID,
			LiquidityBNB:   liquidity,
			ExchangeListed: tok.ExchangeListed,
		},
		BaseReference: base,
		LowBand:       low,
		HighBand:      high,
		OrderQuantity: qty,
		PollInterval:  interval,
	}, nil
}

func parseDecimal(raw, param, fallback string) (decimal.Decimal, error) {
	if raw == "" {
		raw = fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("incorrect '%s' param: %w", param, err)
	}
	return d, nil
}
