package storage

import "qrdxscope/internal/model"

// Storage defines a sink for holdings and portfolio snapshots.
type Storage interface {
	PutHoldingBatch(holdings []model.HoldingSnapshot) error
	PutPortfolio(snapshot model.PortfolioSnapshot) error
}
