package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qrdxscope/internal/config"
	"qrdxscope/internal/model"
	"qrdxscope/internal/node"
	"qrdxscope/internal/positions"
	"qrdxscope/internal/pricing"
	"qrdxscope/internal/storage"
	"qrdxscope/internal/storage/postgres"
)

type holdingsReport struct {
	Address   string               `json:"address"`
	Holdings  []model.Holding      `json:"holdings"`
	Portfolio model.PortfolioStats `json:"portfolio"`
}

func runHoldings(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadHoldings(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Address == "" {
		return fmt.Errorf("address is required")
	}

	preset, err := config.ResolveNetwork(cfg.Network, cfg.NodeURL, cfg.PricingURL)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	nodeClient, err := node.NewClient(node.Config{
		BaseURL:      preset.NodeURL,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	priceClient, err := pricing.NewClient(pricing.Config{
		BaseURL: preset.PricingURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	info, err := nodeClient.AddressInfo(ctx, cfg.Address, node.AddressInfoOptions{
		TxLimit: cfg.TxLimit,
		Page:    cfg.Page,
	})
	if err != nil {
		return fmt.Errorf("fetch address info: %w", err)
	}

	tokens, err := tokenList(cmd, nodeClient, cfg)
	if err != nil {
		return err
	}

	symbols := make([]string, 0, len(tokens)+len(cfg.Symbols))
	for _, token := range tokens {
		symbols = append(symbols, token.Symbol)
	}
	symbols = append(symbols, cfg.Symbols...)

	priceMap := priceClient.PriceMap(ctx, symbols)

	holdings := positions.BuildHoldings(info.Transactions, cfg.Address, tokens, priceMap, logger)
	portfolio := positions.PortfolioTotals(holdings)

	logger.Info("holdings computed",
		zap.String("address", cfg.Address),
		zap.Int("transactions", len(info.Transactions)),
		zap.Int("tokens", len(tokens)),
		zap.Int("holdings", len(holdings)),
	)

	if err := persistSnapshots(ctx, cfg, holdings, portfolio); err != nil {
		return err
	}

	return printJSON(holdingsReport{
		Address:   cfg.Address,
		Holdings:  holdings,
		Portfolio: portfolio,
	})
}

// tokenList resolves the candidate tokens for an address: the node's
// get_address_tokens result plus the native asset.
func tokenList(cmd *cobra.Command, nodeClient *node.Client, cfg config.Holdings) ([]model.TokenInfo, error) {
	addressTokens, err := nodeClient.AddressTokens(cmd.Context(), cfg.Address, cfg.TokenType)
	if err != nil {
		return nil, fmt.Errorf("fetch address tokens: %w", err)
	}

	tokens := make([]model.TokenInfo, 0, len(addressTokens.Tokens)+1)
	tokens = append(tokens, model.TokenInfo{
		Address:  positions.NativeTokenID,
		Symbol:   strings.ToUpper(positions.NativeSymbol),
		Name:     "QRDX",
		Decimals: nativeDecimals,
		Type:     model.TokenTypeQRC20,
	})
	for _, entry := range addressTokens.Tokens {
		tokens = append(tokens, entry.Token)
	}
	return tokens, nil
}

func persistSnapshots(ctx context.Context, cfg config.Holdings, holdings []model.Holding, portfolio model.PortfolioStats) error {
	if cfg.Out == "" && cfg.PGDSN == "" {
		return nil
	}

	takenAt := time.Now().UTC()
	rows := make([]model.HoldingSnapshot, 0, len(holdings))
	for _, holding := range holdings {
		rows = append(rows, model.HoldingSnapshot{
			Address:         cfg.Address,
			TokenAddress:    holding.Address,
			Symbol:          holding.Symbol,
			Balance:         holding.Balance,
			PriceUSD:        holding.PriceUSD,
			ValueUSD:        holding.ValueUSD,
			AverageBuyPrice: holding.AverageBuyPrice,
			TotalInvested:   holding.TotalInvested,
			UnrealizedPnL:   holding.UnrealizedPnL,
			PnLPercent:      holding.PnLPercent,
			TakenAt:         takenAt,
		})
	}
	snapshot := model.PortfolioSnapshot{
		Address:       cfg.Address,
		TotalValue:    portfolio.TotalValue,
		TotalInvested: portfolio.TotalInvested,
		TotalPnL:      portfolio.TotalPnL,
		PnLPercent:    portfolio.PnLPercent,
		TokenCount:    portfolio.TokenCount,
		TakenAt:       takenAt,
	}

	if cfg.Out != "" {
		var sink storage.Storage = storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutHoldingBatch(rows); err != nil {
			return fmt.Errorf("write holding snapshots: %w", err)
		}
		if err := sink.PutPortfolio(snapshot); err != nil {
			return fmt.Errorf("write portfolio snapshot: %w", err)
		}
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.UpsertHoldingSnapshots(ctx, rows); err != nil {
			return fmt.Errorf("upsert holding snapshots: %w", err)
		}
		if err := store.InsertPortfolioSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("insert portfolio snapshot: %w", err)
		}
	}
	return nil
}
