package model

import "strings"

// Currency is an ISO-4217-like fiat currency code, normalized to uppercase.
type Currency string

func NormalizeCurrency(code string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(code)))
}

func (c Currency) String() string {
	return string(c)
}

// Lower returns the code the way the crypto provider quotes vs-currencies.
func (c Currency) Lower() string {
	return strings.ToLower(string(c))
}

// Ticker is a short crypto symbol such as BTC, normalized to uppercase.
type Ticker string

func NormalizeTicker(symbol string) Ticker {
	return Ticker(strings.ToUpper(strings.TrimSpace(symbol)))
}

func (t Ticker) String() string {
	return string(t)
}
