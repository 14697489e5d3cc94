package service

import (
	"context"
	"time"

	"currency-gateway/internal/adapter/cache"
	"currency-gateway/internal/domain/model"
	"currency-gateway/internal/metrics"
	"currency-gateway/pkg/logger"
)

// Shared across the package's tests: promauto registers collectors with
// the default registry, so the Metrics struct is created exactly once.
var (
	testMetrics = metrics.NewMetrics()
	testLog     = logger.NewLogger("error")
)

func newTestCache() *cache.MemoryCache {
	return cache.NewMemoryCache(15*time.Minute, testLog)
}

type MockFiatProvider struct {
	FetchRatesFunc func(ctx context.Context, base model.Currency) (map[string]float64, error)
}

func (m *MockFiatProvider) FetchRates(ctx context.Context, base model.Currency) (map[string]float64, error) {
	return m.FetchRatesFunc(ctx, base)
}

type MockCryptoProvider struct {
	SimplePriceFunc func(ctx context.Context, id, vsCurrency string) (float64, bool, error)
	ListCoinsFunc   func(ctx context.Context) ([]model.Coin, error)
}

func (m *MockCryptoProvider) SimplePrice(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
	return m.SimplePriceFunc(ctx, id, vsCurrency)
}

func (m *MockCryptoProvider) ListCoins(ctx context.Context) ([]model.Coin, error) {
	return m.ListCoinsFunc(ctx)
}
