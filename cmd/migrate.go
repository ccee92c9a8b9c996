package main

import (
	"sway-pr/config"
	"sway-pr/internal/utils"
	"sway-pr/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cfg, true)
			if err != nil {
				return err
			}
			defer db.Close()
			utils.LogInfo("migrations applied to %s database", cfg.Database.Driver)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cfg, false)
			if err != nil {
				return err
			}
			defer db.Close()
			return migrations.Status(db, cfg.Database.Driver)
		},
	})

	return cmd
}
