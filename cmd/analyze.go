package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis cycle and print the anomalies as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := newStore()
		report, err := newAnalyzer(st).Run(cmd.Context())
		if err != nil {
			return err
		}

		zap.L().Info("analysis finished",
			zap.Int("projects", report.ProjectCount),
			zap.Int("anomalies", len(report.Anomalies)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
