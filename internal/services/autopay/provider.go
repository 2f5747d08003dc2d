package autopay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tkbet/internal/config"
)

// Confirmation is one settled payment reported by the provider feed.
type Confirmation struct {
	TrxID  string  `json:"trxId"`
	Amount float64 `json:"amount"`
}

// ProviderClient fetches payment confirmations from the wallet provider.
type ProviderClient interface {
	FetchConfirmations(ctx context.Context) ([]Confirmation, error)
}

// HTTPProvider polls the provider's confirmation endpoint.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider reads AUTOPAY_PROVIDER_URL and AUTOPAY_PROVIDER_KEY.
func NewHTTPProvider() *HTTPProvider {
	return &HTTPProvider{
		baseURL: config.GetEnv("AUTOPAY_PROVIDER_URL", ""),
		apiKey:  config.GetEnv("AUTOPAY_PROVIDER_KEY", ""),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) FetchConfirmations(ctx context.Context) ([]Confirmation, error) {
	if p.baseURL == "" {
		return nil, fmt.Errorf("provider URL not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/confirmations", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var body struct {
		Success bool           `json:"success"`
		Data    []Confirmation `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("provider reported failure")
	}
	return body.Data, nil
}
