package service

import (
	"errors"

	"currency-gateway/internal/domain/model"
	"currency-gateway/internal/metrics"
)

const (
	fiatProviderName   = "exchangerate"
	cryptoProviderName = "coingecko"
)

// Cache keyspace labels for hit/miss counters.
const (
	keyspaceFiat    = "fiat"
	keyspaceCrypto  = "crypto"
	keyspaceCatalog = "catalog"
)

func recordUpstream(m *metrics.Metrics, provider string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, model.ErrRateLimited):
		outcome = "rate_limited"
		m.UpstreamRateLimitedTotal.Inc()
	case err != nil:
		outcome = "error"
	}
	m.UpstreamRequestsTotal.WithLabelValues(provider, outcome).Inc()
}
