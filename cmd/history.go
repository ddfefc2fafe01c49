package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the activity ledger and its counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := newStore().LoadHistory(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
