// Package catalog talks to the store's product lookup API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var ErrNotConfigured = errors.New("catalog base URL is not configured")

// Config holds the product API location and credentials
type Config struct {
	BaseURL      string
	Token        string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Timeout      time.Duration
}

// ScanRequest is the body of a product lookup.
type ScanRequest struct {
	Code     string `json:"code"`
	Outlet   string `json:"outlet"`
	Discount string `json:"discount"`
}

// ScanResult is a product lookup reduced to what the label flow needs.
// Raw keeps the decoded JSON body, or the body text when it was not JSON.
type ScanResult struct {
	Product      map[string]any `json:"product"`
	Raw          any            `json:"raw"`
	Status       int            `json:"status"`
	OK           bool           `json:"ok"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// Client calls POST {base}/scanproduct
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds the HTTP client for cfg. Client credentials take
// precedence over a static bearer token; with neither, requests are sent
// unauthenticated.
func NewClient(cfg Config) *Client {
	base := &http.Client{Timeout: cfg.Timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	var httpClient *http.Client
	switch {
	case cfg.ClientID != "" && cfg.TokenURL != "":
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(ctx)
	case cfg.Token != "":
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	default:
		httpClient = base
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
	}
}

// ScanProduct looks up a scanned code. A non-nil error means the API could
// not be reached; rejections by the API come back as a result with OK false
// and a user-facing ErrorMessage.
func (c *Client) ScanProduct(ctx context.Context, in ScanRequest) (*ScanResult, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scanproduct", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scanproduct request failed: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scanproduct read body: %w", err)
	}

	return parseScanResponse(resp.StatusCode, text), nil
}

func parseScanResponse(status int, text []byte) *ScanResult {
	res := &ScanResult{Status: status, Raw: string(text)}

	var data map[string]any
	if len(bytes.TrimSpace(text)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(text))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err == nil {
			res.Raw = v
			data, _ = v.(map[string]any)
		}
	}

	if results, ok := data["results"].([]any); ok && len(results) > 0 {
		if product, ok := results[0].(map[string]any); ok {
			res.Product = product
		}
	}

	flag, isBool := data["error"].(bool)
	res.OK = status >= 200 && status < 300 && isBool && !flag
	if !res.OK {
		res.ErrorMessage = errorMessage(data, status)
	}
	return res
}

func errorMessage(data map[string]any, status int) string {
	for _, key := range []string{"msg", "message"} {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("Gagal mengambil data produk (status %d).", status)
}
