package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"qrdxscope/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestPriceFetchAndCache(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/QRDX" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(TokenPrice{Token: "QRDX", PriceUSD: 3500, LastUpdated: 1700000000})
	}))

	ctx := context.Background()
	first, err := client.Price(ctx, "QRDX")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if first.PriceUSD != 3500 {
		t.Fatalf("price = %v, want 3500", first.PriceUSD)
	}

	// Second lookup is served from cache.
	if _, err := client.Price(ctx, "qrdx"); err != nil {
		t.Fatalf("cached price: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestPriceNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Price(context.Background(), "NOPE")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPriceMapSentinelForFailures(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ABC":
			json.NewEncoder(w).Encode(TokenPrice{Token: "ABC", PriceUSD: 2})
		case "/ZERO":
			json.NewEncoder(w).Encode(TokenPrice{Token: "ZERO", PriceUSD: 0})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	prices := client.PriceMap(context.Background(), []string{"ABC", "ZERO", "MISSING"})
	if len(prices) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(prices))
	}
	if prices["abc"] != 2 {
		t.Fatalf("abc = %v, want 2", prices["abc"])
	}
	// A quoted zero price is a real zero, not the sentinel.
	if prices["zero"] != 0 {
		t.Fatalf("zero = %v, want 0", prices["zero"])
	}
	if prices["missing"] != model.PriceUnknown {
		t.Fatalf("missing = %v, want sentinel", prices["missing"])
	}
}

func TestPriceWithFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	ctx := context.Background()
	if got := client.PriceWithFallback(ctx, "usdt"); got != 1 {
		t.Fatalf("stub fallback = %v, want 1", got)
	}
	if got := client.PriceWithFallback(ctx, "UNKNOWNTOKEN"); got != 0 {
		t.Fatalf("unknown fallback = %v, want 0", got)
	}
}

func TestHistory(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/QRDX/history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("interval") != "1h" || r.URL.Query().Get("limit") != "24" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(HistoricalPriceData{
			Token:    "QRDX",
			Interval: "1h",
			Data:     []HistoricalPricePoint{{Timestamp: 1700000000, PriceUSD: 3400}},
		})
	}))

	data, err := client.History(context.Background(), "QRDX", "1h", 24)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(data.Data) != 1 || data.Data[0].PriceUSD != 3400 {
		t.Fatalf("unexpected history %+v", data)
	}
}
