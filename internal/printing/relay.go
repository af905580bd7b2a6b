package printing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/infra"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
)

// RelayBackend posts the receipt to the local print-relay service, which
// speaks the thermal-printer protocol to a USB or network device. Calls run
// through a circuit breaker so an unplugged relay fails fast instead of
// stalling every checkout for a full HTTP timeout.
type RelayBackend struct {
	baseURL    string
	httpClient *http.Client
	cb         *infra.CircuitBreaker
}

// RelayStatus is the diagnostics shape returned by GET {relay}/status.
type RelayStatus struct {
	Status           string `json:"status"` // "online" | "offline"
	PrinterConnected bool   `json:"printerConnected"`
	DeviceCount      int    `json:"deviceCount"`
}

type relayPrintResponse struct {
	Success bool `json:"success"`
}

func NewRelayBackend(baseURL string, cb *infra.CircuitBreaker) *RelayBackend {
	return &RelayBackend{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}
}

func (b *RelayBackend) Name() string { return "relay" }

func (b *RelayBackend) Send(ctx context.Context, doc *receipt.Document) error {
	if b.baseURL == "" {
		return fmt.Errorf("relay: no relay URL configured")
	}
	return b.cb.Execute(func() error {
		return b.post(ctx, doc)
	})
}

func (b *RelayBackend) post(ctx context.Context, doc *receipt.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("relay: marshal receipt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/print", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("relay: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay: returned %d", resp.StatusCode)
	}

	var result relayPrintResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("relay: decode response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("relay: printer reported failure")
	}
	return nil
}

// Status queries the relay's diagnostics endpoint for the settings screen.
func (b *RelayBackend) Status(ctx context.Context) (*RelayStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("relay: create request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return &RelayStatus{Status: "offline"}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RelayStatus{Status: "offline"}, nil
	}
	var status RelayStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("relay: decode status: %w", err)
	}
	return &status, nil
}
