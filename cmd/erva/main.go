package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "erva",
	Short: "ERVA - Excess-Return Valuation Analyzer",
	Long: `ERVA computes per-entity, per-year excess returns (ROE minus the
CAPM cost of equity) from regulatory disclosures, a daily policy-rate
series and market prices.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
