// Package cmd holds the storefront command line.
package cmd

import (
	"storefront/config"
	"storefront/logger"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront API server",
	Long:          "Storefront serves the catalog, cart, checkout and admin API of a cash-on-delivery shop.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Initialize(cfg.AppEnv)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

// Execute runs the command named on the command line, serve by default.
func Execute() error {
	return rootCmd.Execute()
}
