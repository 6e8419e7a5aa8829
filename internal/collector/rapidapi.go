package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"StockDash/internal/model"
)

const (
	DefaultRapidAPIHost    = "yh-finance.p.rapidapi.com"
	DefaultRapidAPIBaseURL = "https://" + DefaultRapidAPIHost
)

// RapidAPIFetcher implements Fetcher using the yh-finance summary endpoint
// hosted on RapidAPI.
type RapidAPIFetcher struct {
	BaseURL string
	Host    string
	APIKey  string
	Client  *http.Client
}

// NewRapidAPIFetcher creates a new fetcher with optional proxy support.
func NewRapidAPIFetcher(baseURL, host, apiKey, proxyURL string) *RapidAPIFetcher {
	if baseURL == "" {
		baseURL = DefaultRapidAPIBaseURL
	}
	if host == "" {
		host = DefaultRapidAPIHost
	}
	return &RapidAPIFetcher{
		BaseURL: baseURL,
		Host:    host,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *RapidAPIFetcher) Name() string { return "rapidapi" }

type rapidSummary struct {
	QuoteSummary struct {
		Result []json.RawMessage `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (f *RapidAPIFetcher) FetchSummary(ctx context.Context, symbol string) (*model.Summary, error) {
	endpoint := fmt.Sprintf("%s/stock/v2/get-summary?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", f.APIKey)
	req.Header.Set("x-rapidapi-host", f.Host)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rapidapi fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rapidapi: status %d, body: %s", resp.StatusCode, string(body))
	}

	var rs rapidSummary
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		return nil, fmt.Errorf("rapidapi decode: %w", err)
	}
	if rs.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("rapidapi api error: %s", rs.QuoteSummary.Error.Description)
	}
	if len(rs.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("rapidapi: no data returned")
	}

	return decodeSummary(rs.QuoteSummary.Result[0])
}

// decodeSummary accepts both plain numbers and Yahoo's {"raw": n, "fmt": "..."}
// wrappers by unwrapping the latter before decoding.
func decodeSummary(raw json.RawMessage) (*model.Summary, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("rapidapi decode result: %w", err)
	}
	flat, err := json.Marshal(unwrapRaw(generic))
	if err != nil {
		return nil, fmt.Errorf("rapidapi flatten result: %w", err)
	}
	var s model.Summary
	if err := json.Unmarshal(flat, &s); err != nil {
		return nil, fmt.Errorf("rapidapi decode summary: %w", err)
	}
	return &s, nil
}

func unwrapRaw(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if r, ok := t["raw"]; ok {
			return r
		}
		if len(t) == 0 {
			return nil
		}
		for k, child := range t {
			t[k] = unwrapRaw(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = unwrapRaw(child)
		}
		return t
	default:
		return v
	}
}
