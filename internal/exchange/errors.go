package exchange

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidKeyMaterial means the configured credentials cannot initialize
// the request signer. It is the only fatal-at-startup condition: the agent
// refuses to start rather than run loops that will fail every cycle.
var ErrInvalidKeyMaterial = errors.New("invalid key material")

// TransportError wraps a connectivity or timeout failure talking to the exchange.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error in %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExchangeError means the exchange rejected the request with a non-2xx status.
// Body carries the raw response text for diagnostics.
type ExchangeError struct {
	Op     string
	Status int
	Body   string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("exchange rejected %s: status %d: %s", e.Op, e.Status, e.Body)
}

// DecodeError means the response body did not match the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ParseError means a numeric field in an otherwise well-formed response
// could not be parsed.
type ParseError struct {
	Op    string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s field %q: %v", e.Op, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
