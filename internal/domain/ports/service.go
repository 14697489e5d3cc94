package ports

import (
	"context"

	"currency-gateway/internal/domain/model"
)

type FiatService interface {
	GetRate(ctx context.Context, base, target model.Currency) (float64, error)
	Convert(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error)
}

type CryptoService interface {
	GetPrice(ctx context.Context, symbol model.Ticker, vsCurrency model.Currency) (float64, error)
	Convert(ctx context.Context, request model.CryptoConversionRequest) (*model.CryptoConversionResult, error)
}
