// Package oracle fetches best-effort reference prices from a public price
// catalog. Absence of a price is a normal outcome, never an error: the
// trading loops treat the oracle as a secondary signal only.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultBaseURL  = "https://api.coingecko.com"
	simplePricePath = "/api/v3/simple/price"
	defaultTimeout  = 10 * time.Second

	quoteCurrency = "usd"
)

// CoingeckoClient looks up USD reference prices by catalog id.
type CoingeckoClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCoingeckoClient builds a client against the public catalog API.
// An empty baseURL selects the production endpoint.
func NewCoingeckoClient(baseURL string, logger *zap.Logger) *CoingeckoClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &CoingeckoClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// ReferencePrice returns the USD price for a catalog id, or false when the
// catalog has no answer. Transport failures, rejections and malformed bodies
// all map to absence; each is logged once so nothing vanishes silently.
func (c *CoingeckoClient) ReferencePrice(ctx context.Context, catalogID string) (decimal.Decimal, bool) {
	if catalogID == "" {
		return decimal.Decimal{}, false
	}

	query := url.Values{}
	query.Set("ids", catalogID)
	query.Set("vs_currencies", quoteCurrency)

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, simplePricePath, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn("failed to build oracle request", zap.String("catalog_id", catalogID), zap.Error(err))
		return decimal.Decimal{}, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("oracle request failed", zap.String("catalog_id", catalogID), zap.Error(err))
		return decimal.Decimal{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("oracle returned non-OK status",
			zap.String("catalog_id", catalogID),
			zap.Int("status", resp.StatusCode))
		return decimal.Decimal{}, false
	}

	// response shape: {"<catalog id>": {"usd": 1.23}}
	var payload map[string]map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("failed to decode oracle response", zap.String("catalog_id", catalogID), zap.Error(err))
		return decimal.Decimal{}, false
	}

	raw, ok := payload[catalogID][quoteCurrency]
	if !ok {
		c.logger.Warn("oracle response missing price", zap.String("catalog_id", catalogID))
		return decimal.Decimal{}, false
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		c.logger.Warn("oracle price is not numeric",
			zap.String("catalog_id", catalogID),
			zap.String("price", raw.String()),
			zap.Error(err))
		return decimal.Decimal{}, false
	}

	return price, true
}
