// internal/infrastructure/shipping/viacep.go
package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/docesdalu/storefront-backend/internal/config"
)

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// Resolution is the outcome of a postal code lookup: the region that
// keys the rate table plus the display address.
type Resolution struct {
	PostalCode string          `json:"postal_code"`
	Address    string          `json:"address"`
	Region     string          `json:"region"`
	Rate       decimal.Decimal `json:"rate"`
}

// viaCEPResponse mirrors the lookup provider's payload
type viaCEPResponse struct {
	CEP      string `json:"cep"`
	Street   string `json:"logradouro"`
	District string `json:"bairro"`
	City     string `json:"localidade"`
	UF       string `json:"uf"`
	NotFound bool   `json:"erro"`
}

// Resolver looks up postal codes against a ViaCEP-style service and
// prices the resolved region. The external call sits behind a circuit
// breaker so a flapping provider degrades to "shipping unresolved"
// instead of hammering the upstream.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*viaCEPResponse]
	rates      *RateTable
}

// NewResolver creates a postal code resolver
func NewResolver(cfg *config.Config, rates *RateTable) *Resolver {
	breakerSettings := gobreaker.Settings{
		Name:    "viacep",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Resolver{
		baseURL: strings.TrimRight(cfg.External.ViaCEP.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.External.ViaCEP.Timeout,
		},
		breaker: gobreaker.NewCircuitBreaker[*viaCEPResponse](breakerSettings),
		rates:   rates,
	}
}

// Resolve looks up a postal code and returns the region and delivery
// rate. Failures are never fatal to pricing: the caller keeps the
// shipping cost unresolved and surfaces the message.
func (r *Resolver) Resolve(ctx context.Context, postalCode string) (*Resolution, error) {
	code := normalizeCEP(postalCode)
	if !cepPattern.MatchString(code) {
		return nil, fmt.Errorf("invalid postal code %q", postalCode)
	}

	resp, err := r.breaker.Execute(func() (*viaCEPResponse, error) {
		return r.fetch(ctx, code)
	})
	if err != nil {
		return nil, fmt.Errorf("postal code lookup failed: %w", err)
	}

	if resp.NotFound || resp.UF == "" {
		return nil, fmt.Errorf("postal code %s not found", code)
	}

	return &Resolution{
		PostalCode: resp.CEP,
		Address:    formatAddress(resp),
		Region:     resp.UF,
		Rate:       r.rates.RateFor(resp.UF),
	}, nil
}

func (r *Resolver) fetch(ctx context.Context, code string) (*viaCEPResponse, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", r.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload viaCEPResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse lookup response: %w", err)
	}

	return &payload, nil
}

func normalizeCEP(code string) string {
	return strings.NewReplacer("-", "", ".", "", " ", "").Replace(code)
}

func formatAddress(resp *viaCEPResponse) string {
	parts := []string{}
	for _, part := range []string{resp.Street, resp.District, resp.City} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
