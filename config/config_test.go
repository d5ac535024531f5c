package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGetYaml(t *testing.T) {
	path := writeConfig(t, `
exchange_url: https://testnet.binance.vision
tokens:
  - symbol: MEME
    name: Meme Token
    address: "0x123..."
    catalog_id: meme-token
    liquidity_bnb: "150"
    base_reference: "1.0"
    low_band: "0.8"
    high_band: "1.2"
    order_quantity: "10"
    poll_interval: 30s
  - symbol: DOGE
    name: Dogecoin
    catalog_id: dogecoin
    exchange_listed: true
    base_reference: "0.2"
    order_quantity: "50"
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)
	require.Equal(t, "https://testnet.binance.vision", cfg.ExchangeURL)
	require.Len(t, cfg.Tokens, 2)

	meme := cfg.Tokens[0]
	require.Equal(t, "MEME", meme.Token.Symbol)
	require.Equal(t, "MEMEUSDT", meme.Token.TradeSymbol())
	require.Equal(t, "meme-token", meme.Token.CatalogID)
	require.True(t, meme.Token.LiquidityBNB.Equal(decimal.NewFromInt(150)))
	require.True(t, meme.BaseReference.Equal(decimal.NewFromInt(1)))
	require.True(t, meme.LowBand.Equal(decimal.RequireFromString("0.8")))
	require.Equal(t, 30*time.Second, meme.PollInterval)

	// omitted params fall back to defaults
	doge := cfg.Tokens[1]
	require.True(t, doge.Token.ExchangeListed)
	require.True(t, doge.LowBand.Equal(decimal.RequireFromString("0.8")))
	require.True(t, doge.HighBand.Equal(decimal.RequireFromString("1.2")))
	require.Equal(t, 30*time.Second, doge.PollInterval)
}

func TestGetYamlDefaultExchangeURL(t *testing.T) {
	path := writeConfig(t, `
tokens:
  - symbol: MEME
    base_reference: "1.0"
    order_quantity: "10"
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)
	require.Equal(t, DefaultExchangeURL, cfg.ExchangeURL)
}

func TestGetYamlRejectsBadConfig(t *testing.T) {
	t.Run("no tokens", func(t *testing.T) {
		path := writeConfig(t, `tokens: []`)
		_, err := getYaml(path)
		require.Error(t, err)
	})

	t.Run("missing symbol", func(t *testing.T) {
		path := writeConfig(t, `
tokens:
  - name: Meme Token
    base_reference: "1.0"
`)
		_, err := getYaml(path)
		require.Error(t, err)
	})

	t.Run("unparseable decimal", func(t *testing.T) {
		path := writeConfig(t, `
tokens:
  - symbol: MEME
    base_reference: "abc"
`)
		_, err := getYaml(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := getYaml(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
