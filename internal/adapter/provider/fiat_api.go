package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"currency-gateway/internal/domain/model"
	"currency-gateway/pkg/logger"
)

// FiatAPI talks to the open exchange-rate provider. A single request for a
// base currency returns its rates against every supported target.
type FiatAPI struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

type fiatAPIResponse struct {
	Result    string             `json:"result"`
	ErrorType string             `json:"error-type,omitempty"`
	Rates     map[string]float64 `json:"rates"`
}

func NewFiatAPI(baseURL string, timeout time.Duration, log *logger.Logger) *FiatAPI {
	return &FiatAPI{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (f *FiatAPI) FetchRates(ctx context.Context, base model.Currency) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", f.baseURL, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNetworkTimeout, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNetworkTimeout, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fiat provider returned status %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var apiResp fiatAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode fiat response: %v", model.ErrUpstreamProtocol, err)
	}

	if apiResp.Result != "success" {
		reason := apiResp.ErrorType
		if reason == "" {
			reason = "unknown error"
		}
		return nil, fmt.Errorf("%w: fiat provider reported failure: %s", model.ErrUpstreamProtocol, reason)
	}

	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("%w: fiat response carried no rate table", model.ErrUpstreamProtocol)
	}

	return apiResp.Rates, nil
}
