package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"StockDash/internal/model"
)

// Fetcher defines the interface for fetching a quote summary.
type Fetcher interface {
	FetchSummary(ctx context.Context, symbol string) (*model.Summary, error)
	Name() string
}

// newHTTPClient returns a client with a 30s timeout and optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
