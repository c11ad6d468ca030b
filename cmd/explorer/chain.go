package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qrdxscope/internal/config"
	"qrdxscope/internal/node"
)

// nodeFromFlags builds a node client and logger from the shared flags.
func nodeFromFlags(cmd *cobra.Command) (*node.Client, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadNode(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	preset, err := config.ResolveNetwork(cfg.Network, cfg.NodeURL, cfg.PricingURL)
	if err != nil {
		return nil, nil, err
	}

	client, err := node.NewClient(node.Config{
		BaseURL:      preset.NodeURL,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Logger:       logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show chain status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, logger, err := nodeFromFlags(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			status, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(status)
		},
	}
}

func newBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block <number|hash>",
		Short: "Show a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := nodeFromFlags(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			full, _ := cmd.Flags().GetBool("full-transactions")
			block, err := client.Block(cmd.Context(), args[0], full)
			if err != nil {
				return err
			}
			return printJSON(block)
		},
	}
	cmd.Flags().Bool("full-transactions", false, "include full transaction objects")
	return cmd
}

func newBlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List blocks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, logger, err := nodeFromFlags(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			offset, _ := cmd.Flags().GetInt("offset")
			limit, _ := cmd.Flags().GetInt("limit")
			blocks, err := client.Blocks(cmd.Context(), offset, limit)
			if err != nil {
				return err
			}
			return printJSON(blocks)
		},
	}
	cmd.Flags().Int("offset", 0, "block offset")
	cmd.Flags().Int("limit", 20, "blocks per page (max 512)")
	return cmd
}

func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx <hash>",
		Short: "Show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := nodeFromFlags(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			verify, _ := cmd.Flags().GetBool("verify")
			tx, err := client.Transaction(cmd.Context(), args[0], verify)
			if err != nil {
				return err
			}
			return printJSON(tx)
		},
	}
	cmd.Flags().Bool("verify", false, "ask the node to verify the transaction")
	return cmd
}

func newAddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address <address>",
		Short: "Show address balance and transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := nodeFromFlags(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			txLimit, _ := cmd.Flags().GetInt("tx-limit")
			page, _ := cmd.Flags().GetInt("page")
			showPending, _ := cmd.Flags().GetBool("show-pending")
			info, err := client.AddressInfo(cmd.Context(), args[0], node.AddressInfoOptions{
				TxLimit:     txLimit,
				Page:        page,
				ShowPending: showPending,
			})
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}
	cmd.Flags().Int("tx-limit", 50, "transactions per page")
	cmd.Flags().Int("page", 1, "transaction page")
	cmd.Flags().Bool("show-pending", false, "include pending transactions")
	return cmd
}

func newMempoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mempool",
		Short: "Show pending transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, logger, err := nodeFromFlags(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			pending, err := client.PendingTransactions(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(pending)
		},
	}
}

func newTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "List top addresses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, logger, err := nodeFromFlags(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			limit, _ := cmd.Flags().GetInt("limit")
			orderBy, _ := cmd.Flags().GetString("order-by")
			top, err := client.TopAddresses(cmd.Context(), limit, orderBy)
			if err != nil {
				return err
			}
			return printJSON(top)
		},
	}
	cmd.Flags().Int("limit", 100, "number of addresses")
	cmd.Flags().String("order-by", "balance", "order by balance or transaction_count")
	return cmd
}

func newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <tx.json>",
		Short: "Submit a signed transaction from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := nodeFromFlags(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read transaction file: %w", err)
			}
			var payload map[string]interface{}
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("parse transaction file: %w", err)
			}

			result, err := client.SubmitTransaction(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	return cmd
}
