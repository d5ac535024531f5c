// Package internal wires the per-instrument trading loop together.
package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/memerush/internal/domain"
	"github.com/vadiminshakov/memerush/internal/services/policy"
	"go.uber.org/zap"
)

// exchangeClient is the slice of the exchange API one trading loop needs.
type exchangeClient interface {
	Price(ctx context.Context, symbol string) (domain.PriceQuote, error)
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error)
}

// referencePricer is a best-effort secondary price source.
type referencePricer interface {
	ReferencePrice(ctx context.Context, catalogID string) (decimal.Decimal, bool)
}

// TradingBot runs the poll->decide->act->wait cycle for a single token.
// Bots share nothing but the pooled exchange client, so loops for different
// tokens never interfere with each other.
type TradingBot struct {
	token        domain.Token
	exchange     exchangeClient
	oracle       referencePricer
	policy       policy.Policy
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewTradingBot builds a loop for one token. The oracle may be nil when no
// reference price source is configured.
func NewTradingBot(
	token domain.Token,
	exchange exchangeClient,
	oracle referencePricer,
	pol policy.Policy,
	pollInterval time.Duration,
	logger *zap.Logger,
) (*TradingBot, error) {
	if exchange == nil {
		return nil, errors.New("exchange client is required")
	}
	if pol == nil {
		return nil, errors.New("decision policy is required")
	}
	if pollInterval <= 0 {
		return nil, errors.Errorf("poll interval must be positive, got %s", pollInterval)
	}

	return &TradingBot{
		token:        token,
		exchange:     exchange,
		oracle:       oracle,
		policy:       pol,
		pollInterval: pollInterval,
		logger:       logger.With(zap.String("symbol", token.TradeSymbol())),
	}, nil
}

// Run executes trading cycles until the context is cancelled. A failed poll
// or order never terminates the loop: every per-cycle error is logged and
// the loop proceeds to its wait phase.
func (b *TradingBot) Run(ctx context.Context) error {
	b.logger.Info("starting trading loop",
		zap.String("token", b.token.String()),
		zap.Duration("poll_interval", b.pollInterval))

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		b.cycle(ctx)

		select {
		case <-ctx.Done():
			b.logger.Info("stopping trading loop")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// cycle performs one poll->decide->act pass.
func (b *TradingBot) cycle(ctx context.Context) {
	symbol := b.token.TradeSymbol()

	quote, err := b.exchange.Price(ctx, symbol)
	if err != nil {
		b.logger.Warn("failed to fetch price, skipping cycle", zap.Error(err))
		return
	}

	b.logger.Info("current price", zap.String("price", quote.Price.String()))

	if b.oracle != nil && b.token.CatalogID != "" {
		if ref, ok := b.oracle.ReferencePrice(ctx, b.token.CatalogID); ok {
			b.logger.Info("oracle reference price",
				zap.String("catalog_id", b.token.CatalogID),
				zap.String("usd", ref.String()))
		}
	}

	action := b.policy.Decide(quote.Price)
	side, tradeable := action.Side()
	if !tradeable {
		b.logger.Debug("holding", zap.String("action", action.String()))
		return
	}

	order := domain.OrderRequest{
		Symbol:        symbol,
		Side:          side,
		Quantity:      b.policy.Quantity(),
		ClientOrderID: uuid.NewString(),
	}

	result, err := b.exchange.PlaceOrder(ctx, order)
	if err != nil {
		b.logger.Error("order was not placed",
			zap.String("side", string(order.Side)),
			zap.String("quantity", order.Quantity.String()),
			zap.Error(err))
		return
	}

	b.logger.Info("order placed",
		zap.String("side", string(order.Side)),
		zap.String("quantity", order.Quantity.String()),
		zap.String("status", result.Status),
		zap.Int64("order_id", result.OrderID))
}
