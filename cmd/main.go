package main

import (
	"os"
	"sway-pr/config"
	"sway-pr/internal/utils"

	"github.com/spf13/cobra"

	_ "sway-pr/docs"
)

// @title Sway PR API
// @version 1.0
// @description Media contact imports, contact queries and outreach for PR campaigns
// @host localhost:8081
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:          "sway-pr",
		Short:        "Sway PR media contact service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.NewConfig()
			if err != nil {
				return err
			}
			if err := utils.ConfigureLogger(loaded.LogLevel, loaded.IsProduction()); err != nil {
				return err
			}
			cfg = *loaded
			return nil
		},
	}

	cmd.AddCommand(
		newServeCmd(&cfg),
		newMigrateCmd(&cfg),
		newCreateUserCmd(&cfg),
	)
	return cmd
}
