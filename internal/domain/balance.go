package domain

import "github.com/shopspring/decimal"

// Balance funds held in a single asset.
type Balance struct {
	// Asset currency symbol, e.g. "USDT".
	Asset string
	// Free amount available for trading.
	Free decimal.Decimal
	// Locked amount reserved by open orders.
	Locked decimal.Decimal
}

// AccountSnapshot balances returned by one account query.
// Created per call and discarded after use, never reconciled against orders.
type AccountSnapshot struct {
	Balances []Balance
}

// NonZero returns the balances with funds in them, preserving exchange order.
func (s AccountSnapshot) NonZero() []Balance {
	out := make([]Balance, 0, len(s.Balances))
	for _, b := range s.Balances {
		if b.Free.IsZero() && b.Locked.IsZero() {
			continue
		}
		out = append(out, b)
	}
	return out
}
