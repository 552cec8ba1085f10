package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/meridian-group/market-cli/internal/config"
	"github.com/meridian-group/market-cli/internal/fallback"
	"github.com/meridian-group/market-cli/internal/fetcher"
	"github.com/meridian-group/market-cli/internal/pipeline"
	"github.com/meridian-group/market-cli/pkg/fred"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "market-cli",
	Short: "Market and economic data extraction pipeline",
	Long:  "Extracts equity metrics from finance pages and economic series from the FRED API, normalizing both into flat records for reporting.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newService wires the pipeline from loaded config. The FRED client stays
// nil without an API key; operations that need it report the missing
// credential before any I/O.
func newService() (*pipeline.Service, error) {
	fetch := fetcher.NewHTTPClient(fetcher.HTTPOptions{
		UserAgent: cfg.Market.UserAgent,
		Timeout:   time.Duration(cfg.Market.TimeoutSecs) * time.Second,
	})

	var fredClient fred.Client
	if cfg.Fred.APIKey != "" {
		fredClient = fred.NewClient(cfg.Fred.APIKey,
			fred.WithBaseURL(cfg.Fred.BaseURL),
			fred.WithTimeout(time.Duration(cfg.Fred.TimeoutSecs)*time.Second),
		)
	}

	table, err := fallback.DefaultTable()
	if err != nil {
		return nil, fmt.Errorf("load fallback table: %w", err)
	}

	return pipeline.New(fetch, fredClient, fallback.NewCoordinator(table), pipeline.Options{
		MarketBaseURL:     cfg.Market.BaseURL,
		MarketTimeout:     time.Duration(cfg.Market.TimeoutSecs) * time.Second,
		BatchConcurrency:  cfg.Batch.Concurrency,
		InterBatchDelay:   time.Duration(cfg.Batch.InterBatchDelayMS) * time.Millisecond,
		APILimiter:        rate.NewLimiter(2, 4),
		PlausibilityRatio: cfg.Extract.PlausibilityRatio,
	}), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
