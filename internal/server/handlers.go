package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"StockDash/internal/catalog"
	"StockDash/internal/collector"
	"StockDash/internal/model"
	"StockDash/internal/recorder"
	"StockDash/internal/series"
)

// QuoteSource resolves quotes; satisfied by *collector.Collector.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string, detailed bool) (*model.Quote, string, error)
}

// ChartSource synthesizes chart series; satisfied by *series.Generator.
type ChartSource interface {
	Generate(symbol string, tf series.Timeframe) []model.ChartPoint
}

// InsightSource serves the research panels; satisfied by *insights.Provider.
type InsightSource interface {
	Consensus(symbol string) model.Consensus
	News(symbol string) []model.NewsArticle
	Financials(symbol string) model.Financials
	Management(symbol string) model.Management
	SWOT(symbol string) model.SWOT
}

// Handlers serves the dashboard API.
type Handlers struct {
	Quotes   QuoteSource
	Charts   ChartSource
	Insights InsightSource
	Catalog  *catalog.Catalog
	Recorder recorder.Recorder
}

// Routes returns the API mux wrapped in request-id, access-log, recover and
// empty-symbol middleware.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/stocks/{$}", h.missingSymbol)
	mux.HandleFunc("GET /api/stocks/{symbol}", h.quote)
	mux.HandleFunc("GET /api/stocks/{symbol}/chart", h.chart)
	mux.HandleFunc("GET /api/stocks/{symbol}/consensus", h.insight(func(s string) any { return h.Insights.Consensus(s) }))
	mux.HandleFunc("GET /api/stocks/{symbol}/news", h.insight(func(s string) any { return h.Insights.News(s) }))
	mux.HandleFunc("GET /api/stocks/{symbol}/financials", h.insight(func(s string) any { return h.Insights.Financials(s) }))
	mux.HandleFunc("GET /api/stocks/{symbol}/management", h.insight(func(s string) any { return h.Insights.Management(s) }))
	mux.HandleFunc("GET /api/stocks/{symbol}/swot", h.insight(func(s string) any { return h.Insights.SWOT(s) }))
	mux.HandleFunc("GET /api/indices", h.indices)
	mux.HandleFunc("GET /api/indices/{id}", h.index)
	return withRequestID(withAccessLog(withRecover(withSymbolGuard(mux))))
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) missingSymbol(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusBadRequest, "Symbol is required")
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	symbol := normalizeSymbol(r.PathValue("symbol"))
	if symbol == "" {
		h.missingSymbol(w, r)
		return
	}
	detailed := r.URL.Query().Get("detailed") == "true"

	q, source, err := h.Quotes.Quote(r.Context(), symbol, detailed)
	switch {
	case errors.Is(err, collector.ErrNotFound):
		writeError(w, http.StatusNotFound, "Stock not found")
		return
	case err != nil:
		log.Printf("[ERROR] fetching stock %s id=%s: %v", symbol, RequestID(r.Context()), err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch stock data")
		return
	}

	if err := h.Recorder.RecordQuote(&recorder.QuoteEvent{
		RequestID: RequestID(r.Context()),
		Symbol:    symbol,
		Source:    source,
		Price:     q.Price,
		Detailed:  detailed,
		At:        time.Now(),
	}); err != nil {
		log.Printf("[ERROR] record quote %s: %v", symbol, err)
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) chart(w http.ResponseWriter, r *http.Request) {
	symbol := normalizeSymbol(r.PathValue("symbol"))
	if symbol == "" {
		h.missingSymbol(w, r)
		return
	}
	tf := series.ParseTimeframe(r.URL.Query().Get("timeframe"))

	points := h.Charts.Generate(symbol, tf)

	ev := &recorder.ChartEvent{
		RequestID: RequestID(r.Context()),
		Symbol:    symbol,
		Timeframe: string(tf),
		Points:    len(points),
		At:        time.Now(),
	}
	if len(points) > 0 {
		ev.FirstPrice = points[0].Price
		ev.LastPrice = points[len(points)-1].Price
	}
	if err := h.Recorder.RecordChart(ev); err != nil {
		log.Printf("[ERROR] record chart %s: %v", symbol, err)
	}
	writeJSON(w, http.StatusOK, points)
}

// insight adapts one research panel lookup to a symbol route.
func (h *Handlers) insight(lookup func(symbol string) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := normalizeSymbol(r.PathValue("symbol"))
		if symbol == "" {
			h.missingSymbol(w, r)
			return
		}
		writeJSON(w, http.StatusOK, lookup(symbol))
	}
}

func (h *Handlers) indices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.All())
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.Catalog.ByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Index not found")
		return
	}
	writeJSON(w, http.StatusOK, idx)
}
