// Package cmd implements the bookswap CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/NikhilTirunagiri/GMUBookSwap/internal/api/client"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/session"
	"github.com/NikhilTirunagiri/GMUBookSwap/pkg/cart"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bookswap",
	Short: "CLI client for the GMU BookSwap marketplace",
	Long: `bookswap is a command line client for the GMU BookSwap API.

It browses and searches listings, manages your own listings, keeps a
local cart, and handles signup and login against the BookSwap server.
Login state is stored in a session file so commands stay authenticated
across invocations.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Root returns the root command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bookswap.yaml)")
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "BookSwap API server URL")
	rootCmd.PersistentFlags().String("output", "table", "output format (table or json)")
	rootCmd.PersistentFlags().String("session-file", "", "session file path (default is ~/.config/bookswap/session.json)")
	rootCmd.PersistentFlags().String("cart-file", "", "cart file path (default is ~/.config/bookswap/cart.json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("session-file", rootCmd.PersistentFlags().Lookup("session-file")))
	cobra.CheckErr(viper.BindPFlag("cart-file", rootCmd.PersistentFlags().Lookup("cart-file")))

	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(listingsCmd())
	rootCmd.AddCommand(cartCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bookswap")
	}

	viper.SetEnvPrefix("BOOKSWAP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// sessionPath resolves the session file location, preferring the flag
// or config override over the per-user default.
func sessionPath() string {
	if p := viper.GetString("session-file"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bookswap", "session.json")
}

func cartPath() string {
	if p := viper.GetString("cart-file"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bookswap", "cart.json")
}

// newClient returns an API client that authenticates requests with the
// stored session, along with the session store backing it.
func newClient() (*apiclient.Client, *session.Store) {
	store := session.NewStore(sessionPath())
	c := apiclient.New(viper.GetString("server"), apiclient.WithTokenSource(store))
	return c, store
}

func newManager() *session.Manager {
	c, store := newClient()
	return session.NewManager(c, store)
}

func newCart() (*cart.Cart, error) {
	return cart.New(cartPath())
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
