package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOracle(t *testing.T, handler http.Handler) *CoingeckoClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCoingeckoClient(srv.URL, zap.NewNop())
}

func TestReferencePrice(t *testing.T) {
	client := newTestOracle(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, simplePricePath, r.URL.Path)
		require.Equal(t, "meme-token", r.URL.Query().Get("ids"))
		require.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))

		w.Write([]byte(`{"meme-token":{"usd":0.0042}}`))
	}))

	price, ok := client.ReferencePrice(context.Background(), "meme-token")
	require.True(t, ok)
	require.True(t, price.Equal(decimal.RequireFromString("0.0042")))
}

func TestReferencePriceAbsence(t *testing.T) {
	t.Run("non-OK status", func(t *testing.T) {
		client := newTestOracle(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))

		_, ok := client.ReferencePrice(context.Background(), "meme-token")
		require.False(t, ok)
	})

	t.Run("missing field", func(t *testing.T) {
		client := newTestOracle(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))

		_, ok := client.ReferencePrice(context.Background(), "meme-token")
		require.False(t, ok)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestOracle(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))

		_, ok := client.ReferencePrice(context.Background(), "meme-token")
		require.False(t, ok)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewCoingeckoClient(srv.URL, zap.NewNop())
		srv.Close()

		_, ok := client.ReferencePrice(context.Background(), "meme-token")
		require.False(t, ok)
	})

	t.Run("empty catalog id", func(t *testing.T) {
		client := NewCoingeckoClient("http://unused.invalid", zap.NewNop())

		_, ok := client.ReferencePrice(context.Background(), "")
		require.False(t, ok)
	})
}
