package policy

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/memerush/internal/domain"
)

// ThresholdPolicy buys below a low band and sells above a high band around a
// base reference price. Prices exactly on a band edge hold: comparisons are
// strict, so base 1.0 with bands 0.8/1.2 holds at 0.80 and 1.20.
type ThresholdPolicy struct {
	base     decimal.Decimal
	lowBand  decimal.Decimal
	highBand decimal.Decimal
	quantity decimal.Decimal

	buyBelow  decimal.Decimal
	sellAbove decimal.Decimal
}

// NewThresholdPolicy validates the band configuration and precomputes the
// absolute thresholds.
func NewThresholdPolicy(base, lowBand, highBand, quantity decimal.Decimal) (*ThresholdPolicy, error) {
	if base.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Errorf("base reference price must be positive, got %s", base.String())
	}
	if lowBand.LessThanOrEqual(decimal.Zero) || highBand.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("band multipliers must be positive")
	}
	if lowBand.GreaterThan(highBand) {
		return nil, errors.Errorf("low band %s exceeds high band %s", lowBand.String(), highBand.String())
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Errorf("order quantity must be positive, got %s", quantity.String())
	}

	return &ThresholdPolicy{
		base:      base,
		lowBand:   lowBand,
		highBand:  highBand,
		quantity:  quantity,
		buyBelow:  base.Mul(lowBand),
		sellAbove: base.Mul(highBand),
	}, nil
}

// Decide implements Policy.
func (p *ThresholdPolicy) Decide(price decimal.Decimal) domain.Action {
	if price.LessThan(p.buyBelow) {
		return domain.ActionBuy
	}
	if price.GreaterThan(p.sellAbove) {
		return domain.ActionSell
	}
	return domain.ActionHold
}

// Quantity implements Policy. Order sizing is a fixed configured constant,
// not derived from account balances.
func (p *ThresholdPolicy) Quantity() decimal.Decimal {
	return p.quantity
}
