package service

import "currency-gateway/internal/domain/model"

// cryptoSymbolMap maps common tickers to provider ids. It is a fast-path
// hint only: tickers missing here are resolved through the coin catalog.
var cryptoSymbolMap = map[model.Ticker]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"BNB":   "binancecoin",
	"ADA":   "cardano",
	"SOL":   "solana",
	"DOGE":  "dogecoin",
	"XRP":   "ripple",
	"DOT":   "polkadot",
	"LTC":   "litecoin",
	"USDC":  "usd-coin",
	"DAI":   "dai",
	"TRX":   "tron",
	"SHIB":  "shiba-inu",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"BCH":   "bitcoin-cash",
	"MATIC": "polygon",
	"HBAR":  "hedera-hashgraph",
}
