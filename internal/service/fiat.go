package service

import (
	"context"
	"fmt"

	"currency-gateway/internal/domain/model"
	"currency-gateway/internal/domain/ports"
	"currency-gateway/internal/metrics"
	"currency-gateway/pkg/logger"
	"currency-gateway/pkg/utils"

	"golang.org/x/sync/singleflight"
)

// FiatService resolves fiat-to-fiat rates: cache first, then a single
// upstream fetch of the base currency's full rate table, of which only
// the requested pair rate is cached.
type FiatService struct {
	provider ports.FiatProvider
	cache    ports.Cache
	metrics  *metrics.Metrics
	log      *logger.Logger
	flight   singleflight.Group
}

func NewFiatService(provider ports.FiatProvider, cache ports.Cache, metrics *metrics.Metrics, log *logger.Logger) *FiatService {
	return &FiatService{
		provider: provider,
		cache:    cache,
		metrics:  metrics,
		log:      log,
	}
}

func (s *FiatService) GetRate(ctx context.Context, base, target model.Currency) (float64, error) {
	base = model.NormalizeCurrency(base.String())
	target = model.NormalizeCurrency(target.String())
	if base == "" || target == "" {
		return 0, fmt.Errorf("%w: currency code must not be empty", model.ErrInvalidCurrency)
	}

	key := fmt.Sprintf("fiat:%s:%s", base, target)

	if v, found := s.cache.Get(ctx, key); found {
		s.metrics.CacheHitsTotal.WithLabelValues(keyspaceFiat).Inc()
		return v.(float64), nil
	}
	s.metrics.CacheMissesTotal.WithLabelValues(keyspaceFiat).Inc()

	// Concurrent misses for the same pair collapse into one upstream call.
	// The flight runs on the leader's context: cancelling the leader's
	// request cancels the shared fetch for every waiter.
	v, err, _ := s.flight.Do(key, func() (any, error) {
		if v, found := s.cache.Get(ctx, key); found {
			return v, nil
		}

		s.log.Info("Fetching fiat rates from provider", "base", base)
		rates, err := s.provider.FetchRates(ctx, base)
		recordUpstream(s.metrics, fiatProviderName, err)
		if err != nil {
			return nil, err
		}

		rate, exists := rates[target.String()]
		if !exists {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidCurrency, target)
		}

		s.cache.Set(ctx, key, rate)
		return rate, nil
	})
	if err != nil {
		s.log.Error("Failed to resolve fiat rate", "error", err, "base", base, "target", target)
		return 0, err
	}

	return v.(float64), nil
}

func (s *FiatService) Convert(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error) {
	if request.Amount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	request.From = model.NormalizeCurrency(request.From.String())
	request.To = model.NormalizeCurrency(request.To.String())

	rate, err := s.GetRate(ctx, request.From, request.To)
	if err != nil {
		return nil, err
	}

	return &model.ConversionResult{
		From:            request.From,
		To:              request.To,
		Amount:          request.Amount,
		Rate:            rate,
		ConvertedAmount: utils.Round8(request.Amount * rate),
	}, nil
}
