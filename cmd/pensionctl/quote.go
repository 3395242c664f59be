package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/JimJafar/pension-tracker/internal/config"
	"github.com/JimJafar/pension-tracker/internal/quotes"
	"github.com/JimJafar/pension-tracker/internal/validator"
)

func newQuoteCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "quote <ticker>...",
		Short: "Fetch prices from the market data provider, one request at a time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range args {
				if !validator.ValidTicker(t) {
					return fmt.Errorf("invalid ticker %q", t)
				}
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fetcher := quotes.NewAlphaVantageFetcher(quotes.AlphaVantageConfig{
				APIKey:       cfg.AlphaVantageAPIKey,
				BaseURL:      cfg.AlphaVantageBaseURL,
				SymbolSuffix: cfg.AlphaVantageSymbolSuffix,
				Currency:     cfg.AlphaVantageCurrency,
			}, &http.Client{})
			svc := quotes.NewService(fetcher, quotes.Config{
				RequestInterval: cfg.QuoteRequestInterval,
				FetchTimeout:    cfg.QuoteFetchTimeout,
			})
			defer svc.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			prices := svc.GetPrices(ctx, args)
			for _, ticker := range args {
				q := prices[ticker]
				if q == nil {
					fmt.Fprintf(out, "%-6s  no data\n", ticker)
					continue
				}
				fmt.Fprintf(out, "%-6s  %s %s\n", ticker, q.Price.String(), q.Currency)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall deadline for all lookups")
	return cmd
}
