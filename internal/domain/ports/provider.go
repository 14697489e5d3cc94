package ports

import (
	"context"

	"currency-gateway/internal/domain/model"
)

// FiatProvider fetches the full rate table for a base currency.
type FiatProvider interface {
	FetchRates(ctx context.Context, base model.Currency) (map[string]float64, error)
}

// CryptoProvider exposes the two upstream crypto endpoints: a spot price
// for a provider id, and the full id/symbol catalog.
type CryptoProvider interface {
	// SimplePrice returns the price of id quoted in vsCurrency. The bool
	// reports whether the response carried a price for that pair at all.
	SimplePrice(ctx context.Context, id, vsCurrency string) (float64, bool, error)
	ListCoins(ctx context.Context) ([]model.Coin, error)
}
