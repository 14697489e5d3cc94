package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"currency-gateway/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCryptoService(provider *MockCryptoProvider) *CryptoService {
	return NewCryptoService(provider, newTestCache(), 24*time.Hour, testMetrics, testLog)
}

func TestCryptoService_GetPrice_FastPath(t *testing.T) {
	var requestedID string
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			requestedID = id
			return 50000, true, nil
		},
		ListCoinsFunc: func(ctx context.Context) ([]model.Coin, error) {
			// Runs on the flight goroutine, so no FailNow here.
			t.Error("catalog must not be fetched when the static mapping resolves")
			return nil, nil
		},
	}

	svc := newCryptoService(provider)

	price, err := svc.GetPrice(context.Background(), "BTC", "USD")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, price)
	assert.Equal(t, "bitcoin", requestedID, "BTC should resolve through the static mapping")
}

func TestCryptoService_GetPrice_CacheHitSkipsProvider(t *testing.T) {
	calls := 0
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			calls++
			return 50000, true, nil
		},
	}

	svc := newCryptoService(provider)
	ctx := context.Background()

	_, err := svc.GetPrice(ctx, "BTC", "USD")
	require.NoError(t, err)

	price, err := svc.GetPrice(ctx, "btc", "usd")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, price)
	assert.Equal(t, 1, calls, "second resolution within TTL must not hit the provider")
}

func TestCryptoService_GetPrice_CatalogFallback(t *testing.T) {
	catalogCalls := 0
	var requestedIDs []string
	prices := map[string]float64{
		"foo-coin": 1.25,
		"bar-coin": 2.5,
	}
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			requestedIDs = append(requestedIDs, id)
			price, quoted := prices[id]
			return price, quoted, nil
		},
		ListCoinsFunc: func(ctx context.Context) ([]model.Coin, error) {
			catalogCalls++
			return []model.Coin{
				{ID: "bar-coin", Symbol: "bar"},
				{ID: "foo-coin", Symbol: "foo"},
				{ID: "foo-clone", Symbol: "foo"},
			}, nil
		},
	}

	svc := newCryptoService(provider)
	ctx := context.Background()

	price, err := svc.GetPrice(ctx, "FOO", "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.25, price, "first catalog match in order should win")
	assert.Equal(t, 1, catalogCalls)

	// A second unmapped symbol reuses the cached catalog.
	price, err = svc.GetPrice(ctx, "BAR", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 2.5, price)
	assert.Equal(t, 1, catalogCalls, "catalog must be fetched at most once within its TTL")

	assert.Equal(t, []string{"foo-coin", "bar-coin"}, requestedIDs)
}

func TestCryptoService_ConcurrentMissesCollapseToOneFetch(t *testing.T) {
	var calls int32
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(50 * time.Millisecond)
			return 50000, true, nil
		},
	}

	svc := newCryptoService(provider)

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			price, err := svc.GetPrice(context.Background(), "BTC", "USD")
			assert.NoError(t, err)
			assert.Equal(t, 50000.0, price)
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls),
		"concurrent misses for the same key must collapse into one upstream call")
}

func TestCryptoService_GetPrice_SymbolNotFound(t *testing.T) {
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			t.Error("no price request expected for an unresolvable symbol")
			return 0, false, nil
		},
		ListCoinsFunc: func(ctx context.Context) ([]model.Coin, error) {
			return []model.Coin{{ID: "bitcoin", Symbol: "btc"}}, nil
		},
	}

	svc := newCryptoService(provider)

	_, err := svc.GetPrice(context.Background(), "NOPE", "USD")
	assert.ErrorIs(t, err, model.ErrSymbolNotFound)
}

func TestCryptoService_GetPrice_RateLimitPropagates(t *testing.T) {
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			return 0, false, model.ErrRateLimited
		},
	}

	svc := newCryptoService(provider)

	_, err := svc.GetPrice(context.Background(), "BTC", "USD")
	assert.ErrorIs(t, err, model.ErrRateLimited, "rate limiting must surface distinctly")
}

func TestCryptoService_GetPrice_MappedButNoPriceFallsBackToCatalog(t *testing.T) {
	// The static hint points at an id the provider no longer quotes; the
	// catalog maps the same ticker to a different id that does.
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			if id == "polygon" {
				return 0, false, nil
			}
			return 0.5, true, nil
		},
		ListCoinsFunc: func(ctx context.Context) ([]model.Coin, error) {
			return []model.Coin{{ID: "polygon-ecosystem-token", Symbol: "matic"}}, nil
		},
	}

	svc := newCryptoService(provider)

	price, err := svc.GetPrice(context.Background(), "MATIC", "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.5, price)
}

func TestCryptoService_GetPrice_NoPriceForCurrency(t *testing.T) {
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			return 0, false, nil
		},
		ListCoinsFunc: func(ctx context.Context) ([]model.Coin, error) {
			// Catalog re-resolves to the id already tried: upstream-shape failure.
			return []model.Coin{{ID: "bitcoin", Symbol: "btc"}}, nil
		},
	}

	svc := newCryptoService(provider)

	_, err := svc.GetPrice(context.Background(), "BTC", "XQQ")
	assert.ErrorIs(t, err, model.ErrUpstreamProtocol)
}

func TestCryptoService_Convert(t *testing.T) {
	provider := &MockCryptoProvider{
		SimplePriceFunc: func(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
			return 50000, true, nil
		},
	}

	svc := newCryptoService(provider)

	result, err := svc.Convert(context.Background(), model.CryptoConversionRequest{
		Symbol:     "BTC",
		VsCurrency: "USD",
		Amount:     0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, model.Ticker("BTC"), result.Symbol)
	assert.Equal(t, "usd", result.VsCurrency)
	assert.Equal(t, 0.5, result.Amount)
	assert.Equal(t, 50000.0, result.PricePerUnit)
	assert.Equal(t, 25000.0, result.ConvertedAmount)
}

func TestCryptoService_Convert_InvalidAmount(t *testing.T) {
	svc := newCryptoService(&MockCryptoProvider{})

	_, err := svc.Convert(context.Background(), model.CryptoConversionRequest{
		Symbol:     "BTC",
		VsCurrency: "USD",
		Amount:     0,
	})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}
