package positions

import (
	"math/big"

	"qrdxscope/internal/model"
)

// Balance sums incoming minus outgoing position amounts, clamped at zero.
// A negative sum means the transaction window was incomplete (pagination),
// which is a data-completeness limitation rather than an error.
func Balance(positions []model.Position) float64 {
	total := new(big.Rat)
	for _, position := range positions {
		amount, ok := new(big.Rat).SetString(position.Amount)
		if !ok {
			continue
		}
		if position.Type == model.PositionIncoming {
			total.Add(total, amount)
		} else {
			total.Sub(total, amount)
		}
	}
	if total.Sign() < 0 {
		return 0
	}
	balance, _ := total.Float64()
	return balance
}

// AverageBuyPrice is the cost-weighted average over incoming positions.
// Incoming positions without a price-at-time are excluded from both the
// numerator and the denominator, so priceless transfers do not skew the
// average toward zero.
func AverageBuyPrice(positions []model.Position) float64 {
	var totalCost, totalAmount float64
	for _, position := range positions {
		if position.Type != model.PositionIncoming || position.PriceAtTime == nil {
			continue
		}
		amount, ok := new(big.Rat).SetString(position.Amount)
		if !ok {
			continue
		}
		value, _ := amount.Float64()
		totalCost += value * *position.PriceAtTime
		totalAmount += value
	}
	if totalAmount <= 0 {
		return 0
	}
	return totalCost / totalAmount
}

// PnL holds unrealized profit-and-loss aggregates for one token.
type PnL struct {
	PnL        float64
	PnLPercent float64
	Invested   float64
}

// UnrealizedPnL derives cost-basis P&L from a position list and the
// current market price. An unknown current price (model.PriceUnknown)
// leaves the P&L at zero rather than valuing the balance as worthless;
// invested stays computable from the cost basis alone.
func UnrealizedPnL(positions []model.Position, currentPrice float64) PnL {
	avgBuyPrice := AverageBuyPrice(positions)
	balance := Balance(positions)
	invested := avgBuyPrice * balance

	result := PnL{Invested: invested}
	if currentPrice < 0 {
		return result
	}

	currentValue := currentPrice * balance
	result.PnL = currentValue - invested
	if invested > 0 {
		result.PnLPercent = result.PnL / invested * 100
	}
	return result
}
