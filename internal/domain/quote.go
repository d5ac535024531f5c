package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceQuote last traded price for a symbol at poll time.
type PriceQuote struct {
	// Symbol exchange pair symbol, e.g. "MEMEUSDT".
	Symbol string
	// Price last price as an exact decimal.
	Price decimal.Decimal
}

// String returns a human-readable representation.
func (q PriceQuote) String() string {
	return fmt.Sprintf("%s: %s", q.Symbol, q.Price.String())
}
