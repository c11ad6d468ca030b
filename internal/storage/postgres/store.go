package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"qrdxscope/internal/model"
)

// Store provides Postgres persistence for holdings snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertHoldingSnapshots inserts or updates per-token holding rows.
func (s *Store) UpsertHoldingSnapshots(ctx context.Context, holdings []model.HoldingSnapshot) error {
	if len(holdings) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, h := range holdings {
		batch.Queue(`
			INSERT INTO holding_snapshots (
				address, token_address, symbol, balance, price_usd, value_usd,
				average_buy_price, total_invested, unrealized_pnl, pnl_percent,
				taken_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now())
			ON CONFLICT (address, token_address, taken_at)
			DO UPDATE SET
				symbol = EXCLUDED.symbol,
				balance = EXCLUDED.balance,
				price_usd = EXCLUDED.price_usd,
				value_usd = EXCLUDED.value_usd,
				average_buy_price = EXCLUDED.average_buy_price,
				total_invested = EXCLUDED.total_invested,
				unrealized_pnl = EXCLUDED.unrealized_pnl,
				pnl_percent = EXCLUDED.pnl_percent,
				updated_at = now()
		`,
			h.Address,
			h.TokenAddress,
			h.Symbol,
			h.Balance,
			h.PriceUSD,
			h.ValueUSD,
			h.AverageBuyPrice,
			h.TotalInvested,
			h.UnrealizedPnL,
			h.PnLPercent,
			h.TakenAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range holdings {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertPortfolioSnapshot records portfolio totals for an address.
func (s *Store) InsertPortfolioSnapshot(ctx context.Context, snapshot model.PortfolioSnapshot) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO portfolio_snapshots (
			address, total_value, total_invested, total_pnl, pnl_percent,
			token_count, taken_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,now())
		ON CONFLICT (address, taken_at) DO UPDATE SET
			total_value = EXCLUDED.total_value,
			total_invested = EXCLUDED.total_invested,
			total_pnl = EXCLUDED.total_pnl,
			pnl_percent = EXCLUDED.pnl_percent,
			token_count = EXCLUDED.token_count
	`,
		snapshot.Address,
		snapshot.TotalValue,
		snapshot.TotalInvested,
		snapshot.TotalPnL,
		snapshot.PnLPercent,
		snapshot.TokenCount,
		snapshot.TakenAt,
	)
	return err
}
