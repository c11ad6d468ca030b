package main

import (
	"github.com/spf13/cobra"

	"qrdxscope/internal/config"
	"qrdxscope/internal/pricing"
)

func newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price <token>",
		Short: "Show the current or historical price of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadNode(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			preset, err := config.ResolveNetwork(cfg.Network, cfg.NodeURL, cfg.PricingURL)
			if err != nil {
				return err
			}

			client, err := pricing.NewClient(pricing.Config{
				BaseURL: preset.PricingURL,
				Timeout: cfg.Timeout,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			history, _ := cmd.Flags().GetBool("history")
			if history {
				interval, _ := cmd.Flags().GetString("interval")
				limit, _ := cmd.Flags().GetInt("limit")
				data, err := client.History(cmd.Context(), args[0], interval, limit)
				if err != nil {
					return err
				}
				return printJSON(data)
			}

			fallback, _ := cmd.Flags().GetBool("fallback")
			if fallback {
				return printJSON(map[string]interface{}{
					"token":     args[0],
					"price_usd": client.PriceWithFallback(cmd.Context(), args[0]),
				})
			}

			price, err := client.Price(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(price)
		},
	}
	cmd.Flags().Bool("history", false, "show historical prices instead of the current quote")
	cmd.Flags().String("interval", "1d", "history interval (1h, 1d, 1w, 1m)")
	cmd.Flags().Int("limit", 7, "number of history points")
	cmd.Flags().Bool("fallback", false, "fall back to the built-in stub table when the service has no quote")
	return cmd
}
