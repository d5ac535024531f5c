// Package exchange implements the REST client for the exchange API:
// request signing, the three remote operations the agent needs, and the
// error taxonomy reported back to the trading loops.
package exchange

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/memerush/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second

	// apiKeyHeader is the exchange's custom key header, not a bearer scheme.
	apiKeyHeader = "X-MBX-APIKEY"

	accountPath = "/api/v3/account"
	tickerPath  = "/api/v3/ticker/price"
	orderPath   = "/api/v3/order"
)

// Config carries everything needed to construct a Client. Credentials are
// injected here by the caller; they are sourced from the environment at the
// process boundary and never stored anywhere else.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client talks to the exchange REST API. The embedded http.Client pools
// connections and is safe for concurrent use by all trading loops.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewClient validates the key material and builds a client. A missing key or
// secret returns ErrInvalidKeyMaterial: the process must refuse to start
// rather than run loops whose every signed request will be rejected.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "api key is empty")
	}
	if cfg.APISecret == "" {
		return nil, errors.Wrap(ErrInvalidKeyMaterial, "api secret is empty")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("exchange base URL is empty")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// accountInfoResponse mirrors the exchange account endpoint body.
type accountInfoResponse struct {
	Balances []struct {
		Asset  string `json:"asset"`
		Free   string `json:"free"`
		Locked string `json:"locked"`
	} `json:"balances"`
}

// tickerResponse mirrors the public ticker-price endpoint body.
type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// orderResponse mirrors the order endpoint acknowledgement body.
type orderResponse struct {
	Symbol        string `json:"symbol"`
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Status        string `json:"status"`
	ExecutedQty   string `json:"executedQty"`
}

// AccountInfo fetches the account balance snapshot. The timestamp is captured
// immediately before signing so every request carries a fresh one.
func (c *Client) AccountInfo(ctx context.Context) (domain.AccountSnapshot, error) {
	const op = "account info"

	query, err := SignQuery([]Param{
		{Key: "timestamp", Value: nowMillis()},
	}, c.apiSecret)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}

	body, err := c.doSigned(ctx, http.MethodGet, c.baseURL+accountPath+"?"+query, "", op)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}

	var resp accountInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.AccountSnapshot{}, &DecodeError{Op: op, Err: err}
	}

	snapshot := domain.AccountSnapshot{Balances: make([]domain.Balance, 0, len(resp.Balances))}
	for _, b := range resp.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return domain.AccountSnapshot{}, &ParseError{Op: op, Field: "free", Err: err}
		}
		locked, err := decimal.NewFromString(b.Locked)
		if err != nil {
			return domain.AccountSnapshot{}, &ParseError{Op: op, Field: "locked", Err: err}
		}
		snapshot.Balances = append(snapshot.Balances, domain.Balance{
			Asset:  b.Asset,
			Free:   free,
			Locked: locked,
		})
	}

	return snapshot, nil
}

// Price fetches the last price for a pair symbol from the public ticker
// endpoint. No authentication is required.
func (c *Client) Price(ctx context.Context, symbol string) (domain.PriceQuote, error) {
	const op = "ticker price"

	query := url.Values{}
	query.Set("symbol", symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tickerPath+"?"+query.Encode(), nil)
	if err != nil {
		return domain.PriceQuote{}, errors.Wrap(err, "failed to build ticker request")
	}

	body, err := c.do(req, op)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	var resp tickerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.PriceQuote{}, &DecodeError{Op: op, Err: err}
	}

	price, err := decimal.NewFromString(resp.Price)
	if err != nil {
		return domain.PriceQuote{}, &ParseError{Op: op, Field: "price", Err: err}
	}

	return domain.PriceQuote{Symbol: symbol, Price: price}, nil
}

// PlaceOrder submits a market order as a signed form-encoded POST. Parameter
// order is fixed so the signature always covers the same byte sequence the
// exchange receives. No retry is attempted here: retry policy belongs to the
// caller.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error) {
	const op = "place order"

	params := []Param{
		{Key: "symbol", Value: req.Symbol},
		{Key: "side", Value: string(req.Side)},
		{Key: "type", Value: string(domain.OrderTypeMarket)},
		{Key: "quantity", Value: req.Quantity.String()},
	}
	if req.ClientOrderID != "" {
		params = append(params, Param{Key: "newClientOrderId", Value: req.ClientOrderID})
	}
	params = append(params, Param{Key: "timestamp", Value: nowMillis()})

	query, err := SignQuery(params, c.apiSecret)
	if err != nil {
		return domain.OrderResult{}, err
	}

	body, err := c.doSigned(ctx, http.MethodPost, c.baseURL+orderPath, query, op)
	if err != nil {
		return domain.OrderResult{}, err
	}

	result := domain.OrderResult{
		Symbol:        req.Symbol,
		ClientOrderID: req.ClientOrderID,
	}

	// The order is live once the exchange answered 2xx; a malformed ack body
	// must not turn a placed order into a reported failure.
	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return result, nil
	}

	result.OrderID = resp.OrderID
	result.Status = resp.Status
	if resp.ClientOrderID != "" {
		result.ClientOrderID = resp.ClientOrderID
	}
	if executed, err := decimal.NewFromString(resp.ExecutedQty); err == nil {
		result.ExecutedQuantity = executed
	}

	return result, nil
}

// doSigned issues an authenticated request with the API key header attached.
// For GET the signed query is already part of the URL; for POST it is sent as
// the form-encoded body.
func (c *Client) doSigned(ctx context.Context, method, rawURL, formBody, op string) ([]byte, error) {
	var reader io.Reader
	if formBody != "" {
		reader = strings.NewReader(formBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s request", op)
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	if formBody != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return c.do(req, op)
}

// do executes the request and classifies failures: connectivity problems are
// TransportError, non-2xx statuses are ExchangeError with the body preserved
// for diagnostics.
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ExchangeError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}

func nowMillis() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
