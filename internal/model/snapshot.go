package model

import "time"

// HoldingSnapshot is a point-in-time holdings row for persistence.
type HoldingSnapshot struct {
	Address         string    `json:"address"`
	TokenAddress    string    `json:"token_address"`
	Symbol          string    `json:"symbol"`
	Balance         float64   `json:"balance"`
	PriceUSD        float64   `json:"price_usd"`
	ValueUSD        float64   `json:"value_usd"`
	AverageBuyPrice float64   `json:"average_buy_price"`
	TotalInvested   float64   `json:"total_invested"`
	UnrealizedPnL   float64   `json:"unrealized_pnl"`
	PnLPercent      float64   `json:"pnl_percent"`
	TakenAt         time.Time `json:"taken_at"`
}

// PortfolioSnapshot is a point-in-time portfolio totals row.
type PortfolioSnapshot struct {
	Address       string    `json:"address"`
	TotalValue    float64   `json:"total_value"`
	TotalInvested float64   `json:"total_invested"`
	TotalPnL      float64   `json:"total_pnl"`
	PnLPercent    float64   `json:"pnl_percent"`
	TokenCount    int       `json:"token_count"`
	TakenAt       time.Time `json:"taken_at"`
}
