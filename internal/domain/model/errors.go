package model

import "errors"

// Domain error kinds. Providers and services wrap these with %w so the
// HTTP layer can map each kind to its own status without downgrading
// a specific failure to a generic one.
var (
	// Client input errors.
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrSymbolNotFound  = errors.New("crypto symbol not found")

	// Upstream errors.
	ErrUpstreamProtocol    = errors.New("unexpected upstream response")
	ErrUpstreamUnavailable = errors.New("upstream request failed")
	ErrRateLimited         = errors.New("upstream rate limit exceeded")
	ErrNetworkTimeout      = errors.New("upstream timeout or network error")
)
