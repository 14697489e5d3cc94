package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"currency-gateway/internal/domain/model"
	"currency-gateway/internal/domain/ports"
	"currency-gateway/internal/metrics"
	"currency-gateway/pkg/logger"
	"currency-gateway/pkg/utils"

	"golang.org/x/sync/singleflight"
)

const catalogCacheKey = "coingecko:coins:list"

// resolveSource tags how a ticker was resolved to a provider id.
type resolveSource int

const (
	foundViaMapping resolveSource = iota
	foundViaCatalog
)

type resolution struct {
	id     string
	source resolveSource
}

// CryptoService resolves crypto spot prices. Resolution is two-tier: the
// static ticker mapping is tried first, then the cached provider catalog.
type CryptoService struct {
	provider   ports.CryptoProvider
	cache      ports.Cache
	metrics    *metrics.Metrics
	log        *logger.Logger
	catalogTTL time.Duration
	flight     singleflight.Group
}

func NewCryptoService(provider ports.CryptoProvider, cache ports.Cache, catalogTTL time.Duration, metrics *metrics.Metrics, log *logger.Logger) *CryptoService {
	return &CryptoService{
		provider:   provider,
		cache:      cache,
		metrics:    metrics,
		log:        log,
		catalogTTL: catalogTTL,
	}
}

func (s *CryptoService) GetPrice(ctx context.Context, symbol model.Ticker, vsCurrency model.Currency) (float64, error) {
	symbol = model.NormalizeTicker(symbol.String())
	if symbol == "" {
		return 0, fmt.Errorf("%w: symbol must not be empty", model.ErrSymbolNotFound)
	}

	vs := vsCurrency.Lower()
	key := fmt.Sprintf("crypto:%s:%s", symbol, vs)

	if v, found := s.cache.Get(ctx, key); found {
		s.metrics.CacheHitsTotal.WithLabelValues(keyspaceCrypto).Inc()
		return v.(float64), nil
	}
	s.metrics.CacheMissesTotal.WithLabelValues(keyspaceCrypto).Inc()

	// One flight per key; it runs on the leader's context, so cancelling
	// the leader's request cancels the shared fetch for every waiter.
	v, err, _ := s.flight.Do(key, func() (any, error) {
		if v, found := s.cache.Get(ctx, key); found {
			return v, nil
		}

		price, err := s.lookupPrice(ctx, symbol, vs)
		if err != nil {
			return nil, err
		}

		s.cache.Set(ctx, key, price)
		return price, nil
	})
	if err != nil {
		s.log.Error("Failed to resolve crypto price", "error", err, "symbol", symbol, "vs_currency", vs)
		return 0, err
	}

	return v.(float64), nil
}

func (s *CryptoService) lookupPrice(ctx context.Context, symbol model.Ticker, vs string) (float64, error) {
	res, err := s.resolveCoinID(ctx, symbol)
	if err != nil {
		return 0, err
	}

	price, found, err := s.fetchPrice(ctx, res.id, vs)
	if err != nil {
		return 0, err
	}
	if found {
		return price, nil
	}

	if res.source == foundViaMapping {
		// The static hint yielded no price for this currency. The catalog
		// may map the ticker to a different id that does quote it.
		catalogID, err := s.searchCatalog(ctx, symbol)
		if err != nil {
			return 0, err
		}
		if catalogID == "" {
			return 0, fmt.Errorf("%w: %q", model.ErrSymbolNotFound, symbol)
		}
		if catalogID != res.id {
			price, found, err = s.fetchPrice(ctx, catalogID, vs)
			if err != nil {
				return 0, err
			}
			if found {
				return price, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: no %s price for %s", model.ErrUpstreamProtocol, vs, res.id)
}

// resolveCoinID maps a ticker to a provider id: static mapping first,
// then first case-insensitive match in the catalog.
func (s *CryptoService) resolveCoinID(ctx context.Context, symbol model.Ticker) (resolution, error) {
	if id, known := cryptoSymbolMap[symbol]; known {
		return resolution{id: id, source: foundViaMapping}, nil
	}

	id, err := s.searchCatalog(ctx, symbol)
	if err != nil {
		return resolution{}, err
	}
	if id == "" {
		return resolution{}, fmt.Errorf("%w: %q", model.ErrSymbolNotFound, symbol)
	}

	return resolution{id: id, source: foundViaCatalog}, nil
}

// searchCatalog returns the id of the first catalog entry matching the
// ticker, or "" when no entry matches. The catalog may list duplicate
// tickers under different ids; first match in catalog order wins.
func (s *CryptoService) searchCatalog(ctx context.Context, symbol model.Ticker) (string, error) {
	coins, err := s.catalog(ctx)
	if err != nil {
		return "", err
	}

	want := strings.ToLower(symbol.String())
	for _, coin := range coins {
		if strings.ToLower(coin.Symbol) == want {
			return coin.ID, nil
		}
	}

	return "", nil
}

func (s *CryptoService) catalog(ctx context.Context) ([]model.Coin, error) {
	if v, found := s.cache.Get(ctx, catalogCacheKey); found {
		s.metrics.CacheHitsTotal.WithLabelValues(keyspaceCatalog).Inc()
		return v.([]model.Coin), nil
	}
	s.metrics.CacheMissesTotal.WithLabelValues(keyspaceCatalog).Inc()

	// The catalog is large and rate-limited upstream; one flight fetches
	// it for everyone and it stays cached for the long TTL.
	v, err, _ := s.flight.Do(catalogCacheKey, func() (any, error) {
		if v, found := s.cache.Get(ctx, catalogCacheKey); found {
			return v, nil
		}

		s.log.Info("Fetching coin catalog from provider")
		coins, err := s.provider.ListCoins(ctx)
		recordUpstream(s.metrics, cryptoProviderName, err)
		if err != nil {
			return nil, err
		}

		s.cache.SetTTL(ctx, catalogCacheKey, coins, s.catalogTTL)
		return coins, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]model.Coin), nil
}

func (s *CryptoService) fetchPrice(ctx context.Context, id, vs string) (float64, bool, error) {
	price, found, err := s.provider.SimplePrice(ctx, id, vs)
	recordUpstream(s.metrics, cryptoProviderName, err)
	return price, found, err
}

func (s *CryptoService) Convert(ctx context.Context, request model.CryptoConversionRequest) (*model.CryptoConversionResult, error) {
	if request.Amount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	request.Symbol = model.NormalizeTicker(request.Symbol.String())

	price, err := s.GetPrice(ctx, request.Symbol, request.VsCurrency)
	if err != nil {
		return nil, err
	}

	return &model.CryptoConversionResult{
		Symbol:          request.Symbol,
		VsCurrency:      request.VsCurrency.Lower(),
		Amount:          request.Amount,
		PricePerUnit:    price,
		ConvertedAmount: utils.Round8(request.Amount * price),
	}, nil
}
