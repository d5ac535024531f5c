// Package policy contains the decision policies the trading loop consults.
// A policy maps one observed price to an action; the loop never inspects
// prices itself, so strategies can be swapped without touching loop code.
package policy

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/memerush/internal/domain"
)

// Policy decides what to do with an observed price and how much to trade.
type Policy interface {
	// Decide maps the current price to buy, sell or hold.
	Decide(price decimal.Decimal) domain.Action
	// Quantity returns the base-asset amount for orders this policy triggers.
	Quantity() decimal.Decimal
}
