package positions

import (
	"math/big"
	"sort"
	"strings"

	"go.uber.org/zap"

	"qrdxscope/internal/model"
)

// PriceFor resolves a token symbol in a symbol→price map, returning
// model.PriceUnknown when the symbol has no entry. Symbols are matched
// case-insensitively.
func PriceFor(prices map[string]float64, symbol string) float64 {
	if prices == nil {
		return model.PriceUnknown
	}
	price, ok := prices[strings.ToLower(symbol)]
	if !ok {
		return model.PriceUnknown
	}
	return price
}

// BuildHoldings runs the per-token position machinery across a token list,
// skipping tokens with no position history or a zero balance, and ranks
// the result by current USD value descending.
func BuildHoldings(txs []model.Transaction, address string, tokens []model.TokenInfo, prices map[string]float64, logger *zap.Logger) []model.Holding {
	if logger == nil {
		logger = zap.NewNop()
	}

	holdings := make([]model.Holding, 0, len(tokens))
	for _, token := range tokens {
		positions := BuildPositions(txs, address, token.Address, token.Decimals, logger)
		if len(positions) == 0 {
			continue
		}

		price := PriceFor(prices, token.Symbol)
		FillValues(positions, price)

		balance := Balance(positions)
		if balance == 0 {
			continue
		}

		pnl := UnrealizedPnL(positions, price)
		holdings = append(holdings, model.Holding{
			Address:         token.Address,
			Symbol:          token.Symbol,
			Name:            token.Name,
			Decimals:        token.Decimals,
			Type:            token.Type,
			Balance:         balance,
			Positions:       positions,
			AverageBuyPrice: AverageBuyPrice(positions),
			TotalInvested:   pnl.Invested,
			UnrealizedPnL:   pnl.PnL,
			PnLPercent:      pnl.PnLPercent,
			PriceUSD:        price,
			ValueUSD:        balance * rankingPrice(price),
		})
	}

	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].ValueUSD != holdings[j].ValueUSD {
			return holdings[i].ValueUSD > holdings[j].ValueUSD
		}
		return holdings[i].Symbol < holdings[j].Symbol
	})

	return holdings
}

// FillValues attaches USD values once a price is known. Positions keep a
// nil price-at-time when the price is unavailable, so the unknown state
// stays visible instead of reading as a $0 valuation.
func FillValues(positions []model.Position, price float64) {
	if price < 0 {
		return
	}
	for i := range positions {
		amount, ok := new(big.Rat).SetString(positions[i].Amount)
		if !ok {
			continue
		}
		value, _ := amount.Float64()
		positions[i].Value = value * price
		p := price
		positions[i].PriceAtTime = &p
	}
}

// rankingPrice maps the unknown sentinel to 0 so unpriced tokens sort to
// the bottom instead of poisoning the order. Valuation math never uses it.
func rankingPrice(price float64) float64 {
	if price < 0 {
		return 0
	}
	return price
}

// PortfolioTotals folds a holdings list into portfolio-level stats.
func PortfolioTotals(holdings []model.Holding) model.PortfolioStats {
	stats := model.PortfolioStats{TokenCount: len(holdings)}
	for _, holding := range holdings {
		stats.TotalValue += holding.ValueUSD
		stats.TotalInvested += holding.TotalInvested
		stats.TotalPnL += holding.UnrealizedPnL
	}
	if stats.TotalInvested > 0 {
		stats.PnLPercent = stats.TotalPnL / stats.TotalInvested * 100
	}
	return stats
}
