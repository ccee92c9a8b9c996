package main

import (
	"fmt"
	"os"
	"sway-pr/config"
	"sway-pr/internal/repositories"
	"sway-pr/internal/services"

	"github.com/spf13/cobra"
)

func newCreateUserCmd(cfg *config.Config) *cobra.Command {
	var (
		username string
		email    string
		password string
		admin    bool
	)

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user who can log in to the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("SWAY_USER_PASSWORD")
			}

			db, err := openDatabase(cfg, true)
			if err != nil {
				return err
			}
			defer db.Close()

			auth := services.NewAuthService(
				repositories.NewSQLUserRepository(db),
				repositories.NewSQLSessionRepository(db),
				cfg.Session.Duration,
			)
			user, err := auth.CreateUser(cmd.Context(), username, email, password, admin)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&password, "password", "", "Password, at least 8 characters; defaults to $SWAY_USER_PASSWORD")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant admin rights")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
