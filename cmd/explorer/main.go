package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "explorer",
		Short:        "QRDX block-explorer client",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("network", "mainnet", "network preset (mainnet, testnet, local)")
	root.PersistentFlags().String("node-url", "", "node API base URL (overrides network preset)")
	root.PersistentFlags().String("pricing-url", "", "pricing API base URL (overrides network preset)")
	root.PersistentFlags().Duration("timeout", 15*time.Second, "HTTP request timeout")
	root.PersistentFlags().Int("max-retries", 3, "maximum retry attempts")
	root.PersistentFlags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	positionsCmd := &cobra.Command{
		Use:   "positions",
		Short: "Reconstruct per-token transfer history and P&L for an address",
		RunE:  runPositions,
	}
	positionsCmd.Flags().String("address", "", "address of interest")
	positionsCmd.Flags().String("token", "", "token contract address, or 'native' for the base asset")
	positionsCmd.Flags().String("symbol", "", "token symbol for price lookup (fetched from the node when omitted)")
	positionsCmd.Flags().Uint8("decimals", 18, "token decimals (fetched from the node when possible)")
	positionsCmd.Flags().Int("tx-limit", 50, "transactions per page")
	positionsCmd.Flags().Int("page", 1, "transaction page")
	positionsCmd.Flags().String("out", "", "optional output JSON path")
	root.AddCommand(positionsCmd)

	holdingsCmd := &cobra.Command{
		Use:   "holdings",
		Short: "Compute all token holdings and portfolio stats for an address",
		RunE:  runHoldings,
	}
	holdingsCmd.Flags().String("address", "", "address of interest")
	holdingsCmd.Flags().String("token-type", "", "token type filter (QRC-20, QRC-721, QRC-1155)")
	holdingsCmd.Flags().StringSlice("symbol", nil, "extra symbols to price (comma-separated)")
	holdingsCmd.Flags().Int("tx-limit", 50, "transactions per page")
	holdingsCmd.Flags().Int("page", 1, "transaction page")
	holdingsCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for snapshot persistence")
	holdingsCmd.Flags().String("out", "", "optional snapshot JSONL path")
	root.AddCommand(holdingsCmd)

	root.AddCommand(newStatusCmd())
	root.AddCommand(newBlockCmd())
	root.AddCommand(newBlocksCmd())
	root.AddCommand(newTxCmd())
	root.AddCommand(newAddressCmd())
	root.AddCommand(newMempoolCmd())
	root.AddCommand(newTopCmd())
	root.AddCommand(newSubmitCmd())
	root.AddCommand(newPriceCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func printJSON(value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
