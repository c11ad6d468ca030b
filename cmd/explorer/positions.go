package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qrdxscope/internal/config"
	"qrdxscope/internal/model"
	"qrdxscope/internal/node"
	"qrdxscope/internal/positions"
	"qrdxscope/internal/pricing"
)

// nativeDecimals is the base asset's scale: 1 QRDX = 10^6 smallest units.
const nativeDecimals uint8 = 6

type positionsReport struct {
	Address         string           `json:"address"`
	Token           string           `json:"token"`
	Symbol          string           `json:"symbol"`
	Decimals        uint8            `json:"decimals"`
	PriceUSD        float64          `json:"price_usd"`
	Balance         float64          `json:"balance"`
	AverageBuyPrice float64          `json:"average_buy_price"`
	TotalInvested   float64          `json:"total_invested"`
	UnrealizedPnL   float64          `json:"unrealized_pnl"`
	PnLPercent      float64          `json:"pnl_percent"`
	Positions       []model.Position `json:"positions"`
}

func runPositions(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPositions(cfgFile, cmd.Flags())
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
	if cfg.Token == "" {
		return fmt.Errorf("token is required")
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

	symbol := cfg.Symbol
	decimals := cfg.Decimals
	if positions.IsNativeToken(cfg.Token) {
		if symbol == "" {
			symbol = strings.ToUpper(positions.NativeSymbol)
		}
		if !cmd.Flags().Changed("decimals") {
			decimals = nativeDecimals
		}
	} else if info, err := nodeClient.TokenInfo(ctx, cfg.Token); err != nil {
		logger.Warn("token info unavailable, using flag values",
			zap.String("token", cfg.Token), zap.Error(err))
	} else {
		decimals = info.Decimals
		if symbol == "" {
			symbol = info.Symbol
		}
	}

	info, err := nodeClient.AddressInfo(ctx, cfg.Address, node.AddressInfoOptions{
		TxLimit: cfg.TxLimit,
		Page:    cfg.Page,
	})
	if err != nil {
		return fmt.Errorf("fetch address info: %w", err)
	}

	price := model.PriceUnknown
	if symbol != "" {
		price = positions.PriceFor(priceClient.PriceMap(ctx, []string{symbol}), symbol)
	}

	positionList := positions.BuildPositions(info.Transactions, cfg.Address, cfg.Token, decimals, logger)
	positions.FillValues(positionList, price)
	pnl := positions.UnrealizedPnL(positionList, price)

	report := positionsReport{
		Address:         cfg.Address,
		Token:           cfg.Token,
		Symbol:          symbol,
		Decimals:        decimals,
		PriceUSD:        price,
		Balance:         positions.Balance(positionList),
		AverageBuyPrice: positions.AverageBuyPrice(positionList),
		TotalInvested:   pnl.Invested,
		UnrealizedPnL:   pnl.PnL,
		PnLPercent:      pnl.PnLPercent,
		Positions:       positionList,
	}

	logger.Info("positions reconstructed",
		zap.String("address", cfg.Address),
		zap.String("token", cfg.Token),
		zap.Int("transactions", len(info.Transactions)),
		zap.Int("positions", len(positionList)),
	)

	if cfg.Out != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(cfg.Out, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}

	return printJSON(report)
}
