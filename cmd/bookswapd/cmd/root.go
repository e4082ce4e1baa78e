// Package cmd implements the CLI commands for bookswapd.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bookswapd",
	Short: "GMU BookSwap marketplace API server",
	Long: "The GMU BookSwap API service: book listing CRUD backed by hosted " +
		"PostgreSQL, with signup, login and session handling delegated to the " +
		"hosted identity provider.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
