package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "quantlab",
	Short: "Market analysis and strategy backtest API",
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
