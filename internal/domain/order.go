package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Side exchange order side.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid reports whether the side is one the exchange accepts.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OrderType exchange order type. Only market orders are supported.
type OrderType string

// OrderTypeMarket executes immediately at the best available price.
const OrderTypeMarket OrderType = "MARKET"

// OrderRequest a single market order to submit to the exchange.
// Constructed fresh per trade decision; the timestamp is captured by the
// exchange client immediately before signing and must never be reused.
type OrderRequest struct {
	// Symbol exchange pair symbol, e.g. "MEMEUSDT".
	Symbol string
	// Side BUY or SELL.
	Side Side
	// Quantity amount of the base asset to trade.
	Quantity decimal.Decimal
	// ClientOrderID caller-supplied idempotency tag for the order.
	ClientOrderID string
}

// String returns a human-readable representation for audit logs.
func (r OrderRequest) String() string {
	return fmt.Sprintf("%s %s %s", r.Side, r.Quantity.String(), r.Symbol)
}

// OrderResult exchange acknowledgement of a submitted order.
type OrderResult struct {
	// Symbol pair symbol the order was placed on.
	Symbol string
	// OrderID exchange-assigned order identifier.
	OrderID int64
	// ClientOrderID echo of the client order id sent with the request.
	ClientOrderID string
	// Status exchange order status, e.g. "FILLED".
	Status string
	// ExecutedQuantity base asset amount already executed.
	ExecutedQuantity decimal.Decimal
}
