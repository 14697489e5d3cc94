package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"currency-gateway/internal/domain/model"
	"currency-gateway/pkg/logger"

	"github.com/tidwall/gjson"
)

// CoinGeckoAPI talks to the crypto price provider. It covers the two
// endpoints the resolver needs: a spot price per provider id, and the
// full id/symbol catalog used for fallback ticker resolution.
type CoinGeckoAPI struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewCoinGeckoAPI(baseURL string, timeout time.Duration, log *logger.Logger) *CoinGeckoAPI {
	return &CoinGeckoAPI{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SimplePrice fetches the price of id quoted in vsCurrency. A response
// that lacks the id/currency pair is not an error here: the resolver
// decides whether to fall back or fail, so absence is reported separately.
func (c *CoinGeckoAPI) SimplePrice(ctx context.Context, id, vsCurrency string) (float64, bool, error) {
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL,
		url.QueryEscape(id),
		url.QueryEscape(vsCurrency),
	)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return 0, false, err
	}

	if !gjson.ValidBytes(body) {
		return 0, false, fmt.Errorf("%w: crypto provider returned invalid JSON", model.ErrUpstreamProtocol)
	}

	// Response shape is {<id>: {<currency>: price}} with dynamic keys,
	// so the value is dug out by path instead of a struct decode.
	price := gjson.GetBytes(body, id+"."+vsCurrency)
	if !price.Exists() {
		return 0, false, nil
	}

	return price.Float(), true, nil
}

// ListCoins fetches the full id/symbol catalog. The catalog is large and
// rarely changes; the resolver caches it for a long TTL.
func (c *CoinGeckoAPI) ListCoins(ctx context.Context) ([]model.Coin, error) {
	body, err := c.get(ctx, c.baseURL+"/coins/list")
	if err != nil {
		return nil, err
	}

	var coins []model.Coin
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, fmt.Errorf("%w: failed to decode coin catalog: %v", model.ErrUpstreamProtocol, err)
	}

	return coins, nil
}

func (c *CoinGeckoAPI) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNetworkTimeout, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNetworkTimeout, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: crypto provider returned status 429", model.ErrRateLimited)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: crypto provider returned status %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNetworkTimeout, err)
	}

	return body, nil
}
