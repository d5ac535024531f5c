package domain

// Action represents the outcome of one decision-policy evaluation.
type Action int

const (
	ActionHold Action = iota
	ActionBuy
	ActionSell
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	case ActionHold:
		return "hold"
	default:
		return "unknown"
	}
}

// Side converts the action to an exchange order side.
// Only ActionBuy and ActionSell map to a side; the second return
// reports whether the action places an order at all.
func (a Action) Side() (Side, bool) {
	switch a {
	case ActionBuy:
		return SideBuy, true
	case ActionSell:
		return SideSell, true
	default:
		return "", false
	}
}
