package pricing

import (
	"testing"
	"time"
)

func TestCacheExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }

	cache := NewCache(30*time.Second, clock)
	cache.Set("QRDX", TokenPrice{Token: "QRDX", PriceUSD: 3500})

	if _, ok := cache.Get("qrdx"); !ok {
		t.Fatalf("expected fresh entry (case-insensitive key)")
	}

	now = now.Add(29 * time.Second)
	if _, ok := cache.Get("QRDX"); !ok {
		t.Fatalf("expected entry still fresh at 29s")
	}

	now = now.Add(2 * time.Second)
	if _, ok := cache.Get("QRDX"); ok {
		t.Fatalf("expected entry expired after TTL")
	}
}

func TestCacheMiss(t *testing.T) {
	cache := NewCache(0, nil)
	if _, ok := cache.Get("missing"); ok {
		t.Fatalf("expected miss for unknown token")
	}
}
