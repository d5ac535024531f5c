// Command memerush runs the meme-token trading agent. It polls exchange
// prices for every token in the catalog, applies a threshold decision policy
// and submits signed market orders, one concurrent loop per token.
//
// Usage:
//
//	memerush --config config.yaml
//	memerush (uses CLI arguments)
//
// Required environment variables:
//
//	BINANCE_API_KEY, BINANCE_API_SECRET
//
// A .env file in the working directory is honored.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/memerush/config"
	"github.com/vadiminshakov/memerush/internal"
	"github.com/vadiminshakov/memerush/internal/exchange"
	"github.com/vadiminshakov/memerush/internal/oracle"
	"github.com/vadiminshakov/memerush/internal/services/policy"
	"github.com/vadiminshakov/memerush/pkg/retrier"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	apiKey := os.Getenv("BINANCE_API_KEY")
	apiSecret := os.Getenv("BINANCE_API_SECRET")
	if apiKey == "" || apiSecret == "" {
		log.Fatal("BINANCE_API_KEY and BINANCE_API_SECRET environment variables must be set")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	logger.Info("starting meme rush trading agent", zap.Int("tokens", len(cfg.Tokens)))

	client, err := exchange.NewClient(exchange.Config{
		BaseURL:   cfg.ExchangeURL,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})
	if err != nil {
		// invalid key material is the one fatal-at-startup condition
		logger.Fatal("failed to construct exchange client", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logStartupBalances(ctx, logger, client)

	oracleClient := oracle.NewCoingeckoClient("", logger)

	g, ctx := errgroup.WithContext(ctx)
	for _, tc := range cfg.Tokens {
		pol, err := policy.NewThresholdPolicy(tc.BaseReference, tc.LowBand, tc.HighBand, tc.OrderQuantity)
		if err != nil {
			logger.Fatal("failed to build decision policy",
				zap.String("symbol", tc.Token.Symbol), zap.Error(err))
		}

		bot, err := internal.NewTradingBot(tc.Token, client, oracleClient, pol, tc.PollInterval, logger)
		if err != nil {
			logger.Fatal("failed to build trading bot",
				zap.String("symbol", tc.Token.Symbol), zap.Error(err))
		}

		g.Go(func() error {
			return bot.Run(ctx)
		})
		logger.Info("started", zap.String("token", tc.Token.String()))
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(err.Error())
	}
}

// logStartupBalances fetches one balance snapshot for informational logging.
// Best effort: a retried failure is logged and startup continues.
func logStartupBalances(ctx context.Context, logger *zap.Logger, client *exchange.Client) {
	r := retrier.New(
		retrier.WithInitialInterval(500*time.Millisecond),
		retrier.WithMaxRetries(2),
	)

	snapshot, err := retrier.DoWithData(r, ctx, client.AccountInfo)
	if err != nil {
		logger.Warn("failed to fetch account balances at startup", zap.Error(err))
		return
	}

	logger.Info("account balances fetched")
	for _, b := range snapshot.NonZero() {
		logger.Info("balance",
			zap.String("asset", b.Asset),
			zap.String("free", b.Free.String()),
			zap.String("locked", b.Locked.String()))
	}
}
