package model

// Position direction relative to the queried address.
const (
	PositionIncoming = "incoming"
	PositionOutgoing = "outgoing"
)

// PriceUnknown marks a price that could not be fetched. It is distinct
// from a legitimate price of zero and is never used in valuation math.
const PriceUnknown float64 = -1

// Position is one reconstructed transfer affecting an address's holdings
// of a single token. Amount is human-scaled and exact (decimal string).
type Position struct {
	Hash        string   `json:"hash"`
	Timestamp   int64    `json:"timestamp"`
	LogIndex    uint64   `json:"log_index"`
	Amount      string   `json:"amount"`
	Value       float64  `json:"value"`
	Type        string   `json:"type"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	PriceAtTime *float64 `json:"price_at_time,omitempty"`
}

// Holding is an address's aggregated state for one token. PriceUSD keeps
// the -1 unknown sentinel; ValueUSD treats unknown as 0 for ranking only.
type Holding struct {
	Address         string     `json:"address"`
	Symbol          string     `json:"symbol"`
	Name            string     `json:"name"`
	Decimals        uint8      `json:"decimals"`
	Type            string     `json:"type"`
	Balance         float64    `json:"balance"`
	Positions       []Position `json:"positions"`
	AverageBuyPrice float64    `json:"average_buy_price"`
	TotalInvested   float64    `json:"total_invested"`
	UnrealizedPnL   float64    `json:"unrealized_pnl"`
	PnLPercent      float64    `json:"pnl_percent"`
	PriceUSD        float64    `json:"price_usd"`
	ValueUSD        float64    `json:"value_usd"`
}

// PortfolioStats is a fold over a holdings list.
type PortfolioStats struct {
	TotalValue    float64 `json:"total_value"`
	TotalInvested float64 `json:"total_invested"`
	TotalPnL      float64 `json:"total_pnl"`
	PnLPercent    float64 `json:"pnl_percent"`
	TokenCount    int     `json:"token_count"`
}
