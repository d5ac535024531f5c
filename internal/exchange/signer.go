package exchange

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Param is a single request parameter. Signed queries are built from an
// ordered slice of params, never a map: the exchange verifies the signature
// over the exact byte sequence sent, so iteration order must be deterministic.
type Param struct {
	Key   string
	Value string
}

// SignQuery concatenates params as k=v pairs joined by "&" in the given
// order, computes HMAC-SHA256 over the result with the secret, and returns
// the query with "&signature=<hex>" appended.
//
// Keys and values must already be percent-safe; SignQuery does not escape.
// The function is pure and deterministic for identical inputs.
func SignQuery(params []Param, secret string) (string, error) {
	if secret == "" {
		return "", ErrInvalidKeyMaterial
	}

	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	query := sb.String()

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(query))
	signature := hex.EncodeToString(mac.Sum(nil))

	return query + "&signature=" + signature, nil
}
