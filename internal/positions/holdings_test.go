package positions

import (
	"math/big"
	"testing"

	"qrdxscope/internal/model"
)

func testTokens() []model.TokenInfo {
	return []model.TokenInfo{
		{Address: tokenAddr, Symbol: "ABC", Name: "Alpha", Decimals: 6, Type: model.TokenTypeQRC20},
		{Address: "0x2222222222222222222222222222222222222222", Symbol: "XYZ", Name: "Xylo", Decimals: 6, Type: model.TokenTypeQRC20},
	}
}

func TestBuildHoldingsSkipsUntouchedAndZeroBalanceTokens(t *testing.T) {
	txs := []model.Transaction{
		{Hash: "0xtx1", Timestamp: 100, Logs: []model.Log{
			transferLog(tokenAddr, addrB, addrA, big.NewInt(2000000), 0),
		}},
		// XYZ in and fully out again: zero balance, skipped.
		{Hash: "0xtx2", Timestamp: 200, Logs: []model.Log{
			transferLog("0x2222222222222222222222222222222222222222", addrB, addrA, big.NewInt(1000000), 0),
		}},
		{Hash: "0xtx3", Timestamp: 300, Logs: []model.Log{
			transferLog("0x2222222222222222222222222222222222222222", addrA, addrB, big.NewInt(1000000), 0),
		}},
	}
	prices := map[string]float64{"abc": 4, "xyz": 10}

	holdings := BuildHoldings(txs, addrA, testTokens(), prices, nil)
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}

	h := holdings[0]
	if h.Symbol != "ABC" {
		t.Fatalf("unexpected symbol %s", h.Symbol)
	}
	if h.Balance != 2 {
		t.Fatalf("balance = %v, want 2", h.Balance)
	}
	if h.ValueUSD != 8 {
		t.Fatalf("value = %v, want 8", h.ValueUSD)
	}
	if len(h.Positions) != 1 || h.Positions[0].Value != 8 {
		t.Fatalf("position value not filled: %+v", h.Positions)
	}
}

func TestBuildHoldingsUnknownPriceRanksLastKeepsSentinel(t *testing.T) {
	txs := []model.Transaction{
		{Hash: "0xtx1", Timestamp: 100, Logs: []model.Log{
			transferLog(tokenAddr, addrB, addrA, big.NewInt(1000000), 0),
		}},
		{Hash: "0xtx2", Timestamp: 100, Logs: []model.Log{
			transferLog("0x2222222222222222222222222222222222222222", addrB, addrA, big.NewInt(1000000), 0),
		}},
	}
	// XYZ has no price entry at all.
	prices := map[string]float64{"abc": 1}

	holdings := BuildHoldings(txs, addrA, testTokens(), prices, nil)
	if len(holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(holdings))
	}

	if holdings[0].Symbol != "ABC" {
		t.Fatalf("priced token should rank first, got %s", holdings[0].Symbol)
	}

	unknown := holdings[1]
	if unknown.Symbol != "XYZ" {
		t.Fatalf("unexpected second holding %s", unknown.Symbol)
	}
	if unknown.ValueUSD != 0 {
		t.Fatalf("unknown price must rank as 0, got %v", unknown.ValueUSD)
	}
	if unknown.PriceUSD != model.PriceUnknown {
		t.Fatalf("sentinel must be preserved, got %v", unknown.PriceUSD)
	}
	if unknown.Positions[0].PriceAtTime != nil {
		t.Fatalf("priceless position must keep nil price-at-time")
	}
}

func TestPriceFor(t *testing.T) {
	prices := map[string]float64{"abc": 2.5, "zero": 0}

	if got := PriceFor(prices, "ABC"); got != 2.5 {
		t.Fatalf("PriceFor(ABC) = %v, want 2.5", got)
	}
	// A real zero price is not the unknown sentinel.
	if got := PriceFor(prices, "ZERO"); got != 0 {
		t.Fatalf("PriceFor(ZERO) = %v, want 0", got)
	}
	if got := PriceFor(prices, "MISSING"); got != model.PriceUnknown {
		t.Fatalf("PriceFor(MISSING) = %v, want sentinel", got)
	}
	if got := PriceFor(nil, "ABC"); got != model.PriceUnknown {
		t.Fatalf("PriceFor(nil map) = %v, want sentinel", got)
	}
}

func TestPortfolioTotals(t *testing.T) {
	holdings := []model.Holding{
		{ValueUSD: 100, TotalInvested: 50, UnrealizedPnL: 50},
		{ValueUSD: 30, TotalInvested: 50, UnrealizedPnL: -20},
	}

	stats := PortfolioTotals(holdings)
	if stats.TotalValue != 130 {
		t.Fatalf("total value = %v, want 130", stats.TotalValue)
	}
	if stats.TotalInvested != 100 {
		t.Fatalf("total invested = %v, want 100", stats.TotalInvested)
	}
	if stats.TotalPnL != 30 {
		t.Fatalf("total pnl = %v, want 30", stats.TotalPnL)
	}
	if stats.PnLPercent != 30 {
		t.Fatalf("pnl percent = %v, want 30", stats.PnLPercent)
	}
	if stats.TokenCount != 2 {
		t.Fatalf("token count = %d, want 2", stats.TokenCount)
	}
}

func TestPortfolioTotalsZeroInvested(t *testing.T) {
	stats := PortfolioTotals([]model.Holding{{ValueUSD: 10}})
	if stats.PnLPercent != 0 {
		t.Fatalf("pnl percent = %v, want 0", stats.PnLPercent)
	}
}
