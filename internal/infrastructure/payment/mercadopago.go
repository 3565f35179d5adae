// internal/infrastructure/payment/mercadopago.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docesdalu/storefront-backend/internal/config"
)

// PreferenceItem is one cart line in a payment preference request
type PreferenceItem struct {
	Title      string          `json:"title"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	CurrencyID string          `json:"currency_id"`
}

// preferenceRequest is the provider's checkout preference payload
type preferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference,omitempty"`
	BackURLs          backURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return"`
}

type backURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// preferenceResponse carries the redirect URL the shopper is sent to
type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// Client creates payment preferences against a Mercado Pago style API
type Client struct {
	baseURL     string
	accessToken string
	backBaseURL string
	httpClient  *http.Client
}

// NewClient creates a payment preference client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.External.MercadoPago.BaseURL, "/"),
		accessToken: cfg.External.MercadoPago.AccessToken,
		backBaseURL: strings.TrimRight(cfg.External.MercadoPago.BackBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.External.MercadoPago.Timeout,
		},
	}
}

// CreatePreference posts the line items and returns the redirect URL.
// Any non-success response or missing redirect URL is reported as a
// single generic failure; the caller surfaces "payment could not be
// started" and the shopper may resubmit.
func (c *Client) CreatePreference(ctx context.Context, items []PreferenceItem, reference string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no items to create preference for")
	}

	payload := preferenceRequest{
		Items:             items,
		ExternalReference: reference,
		BackURLs: backURLs{
			Success: c.backBaseURL + "/?success=true",
			Failure: c.backBaseURL + "/?failure=true",
			Pending: c.backBaseURL + "/?pending=true",
		},
		AutoReturn: "approved",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode preference request: %w", err)
	}

	url := c.baseURL + "/checkout/preferences"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("preference request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read preference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("preference service returned status %d", resp.StatusCode)
	}

	var preference preferenceResponse
	if err := json.Unmarshal(respBody, &preference); err != nil {
		return "", fmt.Errorf("failed to parse preference response: %w", err)
	}

	if preference.InitPoint == "" {
		return "", fmt.Errorf("preference response missing redirect URL")
	}

	return preference.InitPoint, nil
}
