package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bycommute/po-sentinel/internal/activity"
	"github.com/bycommute/po-sentinel/internal/analyzer"
	"github.com/bycommute/po-sentinel/internal/config"
	"github.com/bycommute/po-sentinel/internal/resilience"
	"github.com/bycommute/po-sentinel/internal/store"
	"github.com/bycommute/po-sentinel/pkg/odoo"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "po-sentinel",
	Short: "Purchase-order anomaly monitor",
	Long:  "Polls Odoo for open purchase orders, groups them into projects, evaluates the configured anomaly rules and creates follow-up activities.",
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

// newStore builds the file-backed document store from the app config.
func newStore() store.Store {
	return store.NewFile(cfg.Store.RulesPath, cfg.Store.HistoryPath)
}

// newClientFactory returns the ERP client factory, carrying the configured
// rate limit.
func newClientFactory() odoo.Factory {
	limit := cfg.Odoo.RateLimit
	return func(apiURL, apiToken string) odoo.Client {
		return odoo.NewClient(apiURL, apiToken, odoo.WithRateLimit(limit))
	}
}

func newAnalyzer(st store.Store) *analyzer.Service {
	return analyzer.NewService(st, newClientFactory())
}

func newCreator() *activity.Creator {
	return activity.NewCreator(newClientFactory(), resilience.Config{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Delay:       cfg.Retry.Delay,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
