package positions

import (
	"math"
	"testing"

	"qrdxscope/internal/model"
)

func price(p float64) *float64 { return &p }

func TestBalanceClampedAtZero(t *testing.T) {
	positions := []model.Position{
		{Amount: "100", Type: model.PositionIncoming},
		{Amount: "250", Type: model.PositionOutgoing},
	}

	if got := Balance(positions); got != 0 {
		t.Fatalf("balance = %v, want 0", got)
	}
}

func TestBalanceSum(t *testing.T) {
	positions := []model.Position{
		{Amount: "1.5", Type: model.PositionIncoming},
		{Amount: "0.25", Type: model.PositionIncoming},
		{Amount: "0.75", Type: model.PositionOutgoing},
	}

	if got := Balance(positions); got != 1 {
		t.Fatalf("balance = %v, want 1", got)
	}
}

func TestAverageBuyPriceExcludesPricelessPositions(t *testing.T) {
	positions := []model.Position{
		{Amount: "10", Type: model.PositionIncoming, PriceAtTime: price(2)},
		{Amount: "1000", Type: model.PositionIncoming}, // no price, excluded entirely
		{Amount: "5", Type: model.PositionOutgoing, PriceAtTime: price(99)},
	}

	if got := AverageBuyPrice(positions); got != 2 {
		t.Fatalf("average buy price = %v, want 2", got)
	}
}

func TestAverageBuyPriceNoIncoming(t *testing.T) {
	positions := []model.Position{
		{Amount: "5", Type: model.PositionOutgoing, PriceAtTime: price(3)},
	}
	if got := AverageBuyPrice(positions); got != 0 {
		t.Fatalf("average buy price = %v, want 0", got)
	}
}

func TestUnrealizedPnLZeroInvested(t *testing.T) {
	positions := []model.Position{
		{Amount: "10", Type: model.PositionIncoming},
	}

	got := UnrealizedPnL(positions, 123.45)
	if got.PnLPercent != 0 {
		t.Fatalf("pnl percent = %v, want 0", got.PnLPercent)
	}
	if math.IsNaN(got.PnL) || math.IsInf(got.PnL, 0) {
		t.Fatalf("pnl must be finite, got %v", got.PnL)
	}
}

func TestUnrealizedPnLFlatScenario(t *testing.T) {
	// Buy 1000 at $2, sell 400 at $2: balance 600, invested $1200,
	// current value $1200, P&L $0.
	positions := []model.Position{
		{Amount: "1000", Timestamp: 100, Type: model.PositionIncoming, PriceAtTime: price(2)},
		{Amount: "400", Timestamp: 200, Type: model.PositionOutgoing, PriceAtTime: price(2)},
	}

	if got := Balance(positions); got != 600 {
		t.Fatalf("balance = %v, want 600", got)
	}
	if got := AverageBuyPrice(positions); got != 2 {
		t.Fatalf("average buy price = %v, want 2", got)
	}

	pnl := UnrealizedPnL(positions, 2)
	if pnl.Invested != 1200 {
		t.Fatalf("invested = %v, want 1200", pnl.Invested)
	}
	if pnl.PnL != 0 {
		t.Fatalf("pnl = %v, want 0", pnl.PnL)
	}
	if pnl.PnLPercent != 0 {
		t.Fatalf("pnl percent = %v, want 0", pnl.PnLPercent)
	}
}

func TestUnrealizedPnLGain(t *testing.T) {
	positions := []model.Position{
		{Amount: "100", Type: model.PositionIncoming, PriceAtTime: price(1)},
	}

	pnl := UnrealizedPnL(positions, 3)
	if pnl.Invested != 100 {
		t.Fatalf("invested = %v, want 100", pnl.Invested)
	}
	if pnl.PnL != 200 {
		t.Fatalf("pnl = %v, want 200", pnl.PnL)
	}
	if pnl.PnLPercent != 200 {
		t.Fatalf("pnl percent = %v, want 200", pnl.PnLPercent)
	}
}

func TestUnrealizedPnLUnknownPrice(t *testing.T) {
	positions := []model.Position{
		{Amount: "100", Type: model.PositionIncoming, PriceAtTime: price(1)},
	}

	pnl := UnrealizedPnL(positions, model.PriceUnknown)
	if pnl.Invested != 100 {
		t.Fatalf("invested = %v, want 100", pnl.Invested)
	}
	if pnl.PnL != 0 || pnl.PnLPercent != 0 {
		t.Fatalf("unknown price must not value the balance: %+v", pnl)
	}
}
