package productapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"productform/internal/models"
)

// DefaultEndpoint is the remote collection products are created in.
const DefaultEndpoint = "https://api.oluwasetemi.dev/products"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client creates products on the remote product API.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient creates a Client for endpoint. A zero timeout leaves requests
// bounded only by their context.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		Endpoint: endpoint,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Create POSTs p as JSON. Every failure, including transport faults, comes
// back as a failed Outcome with a message fit for the user.
func (c *Client) Create(ctx context.Context, p *models.Product) models.Outcome {
	body, err := json.Marshal(p)
	if err != nil {
		log.Printf("ProductAPI.Create: encoding product failed: %v", err)
		return models.Failed(0, "Could not encode product: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("ProductAPI.Create: NewRequest failed: %v", err)
		return models.Failed(0, "Could not build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("ProductAPI.Create: HTTPClient.Do failed: %v", err)
		return models.Failed(0, "Network error: %s", describe(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := errorMessage(data)
		if msg == "" {
			msg = fmt.Sprintf("HTTP error, status %d", resp.StatusCode)
		}
		log.Printf("ProductAPI.Create: product API returned status %d: %s", resp.StatusCode, msg)
		return models.Failed(resp.StatusCode, "%s", msg)
	}

	return models.Succeeded(resp.StatusCode, decodeEcho(resp.Body))
}

// decodeEcho reads the created product from a success body. Servers that
// answer with no body or a different shape yield nil.
func decodeEcho(r io.Reader) *models.Product {
	data, err := io.ReadAll(r)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var echoed models.Product
	if err := json.Unmarshal(data, &echoed); err != nil {
		log.Printf("ProductAPI.Create: response is not a product: %v", err)
		return nil
	}
	return &echoed
}

// errorMessage extracts a human readable message from an error body of the
// forms {"message": ".."}, {"error": ".."} or {"error": {"message": ".."}}.
func errorMessage(data []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	if len(body.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Error, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

func describe(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "the product API did not respond in time"
	case errors.Is(err, context.Canceled):
		return "the request was cancelled"
	}
	return err.Error()
}
