// Package domain defines core data structures used throughout the trading agent.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuoteAsset is the quote currency every tracked token trades against.
const QuoteAsset = "USDT"

// Token describes a tradable instrument tracked by one trading loop.
// Constructed once at startup and never mutated.
type Token struct {
	// Symbol exchange ticker symbol, e.g. "MEME".
	Symbol string
	// Name human-readable token name.
	Name string
	// Address on-chain contract address, opaque to the trading logic.
	Address string
	// CatalogID identifier in the external price catalog (CoinGecko id).
	CatalogID string
	// LiquidityBNB liquidity metric reported by the token scanner.
	LiquidityBNB decimal.Decimal
	// ExchangeListed whether the token has a live listing on the exchange.
	ExchangeListed bool
}

// TradeSymbol returns the exchange pair symbol the token trades under.
func (t Token) TradeSymbol() string {
	return fmt.Sprintf("%s%s", t.Symbol, QuoteAsset)
}

// String returns a human-readable representation.
func (t Token) String() string {
	return fmt.Sprintf("%s (%s)", t.Symbol, t.Name)
}
