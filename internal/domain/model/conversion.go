package model

// ConversionRequest is a fiat-to-fiat conversion.
type ConversionRequest struct {
	From   Currency `json:"from_currency"`
	To     Currency `json:"to_currency"`
	Amount float64  `json:"amount"`
}

type ConversionResult struct {
	From            Currency `json:"from"`
	To              Currency `json:"to"`
	Amount          float64  `json:"amount"`
	Rate            float64  `json:"rate"`
	ConvertedAmount float64  `json:"converted_amount"`
}

// CryptoConversionRequest is a crypto-to-fiat conversion.
type CryptoConversionRequest struct {
	Symbol     Ticker   `json:"symbol"`
	VsCurrency Currency `json:"vs_currency"`
	Amount     float64  `json:"amount"`
}

type CryptoConversionResult struct {
	Symbol          Ticker  `json:"symbol"`
	VsCurrency      string  `json:"vs_currency"`
	Amount          float64 `json:"amount"`
	PricePerUnit    float64 `json:"price_per_unit"`
	ConvertedAmount float64 `json:"converted_amount"`
}

// Coin is one entry of the provider's id/symbol catalog, used for
// fallback ticker resolution when the static mapping misses.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
}
