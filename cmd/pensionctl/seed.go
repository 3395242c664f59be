package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JimJafar/pension-tracker/internal/services"
)

func newSeedCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial user if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, manager, err := openDatabase()
			if err != nil {
				return err
			}
			defer manager.Close()

			if err := manager.RunMigrations(); err != nil {
				return err
			}

			if username == "" {
				username = cfg.InitialUsername
			}
			if password == "" {
				password = cfg.InitialPassword
			}

			user, created, err := services.NewUserService(manager.DB()).EnsureUser(username, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "User %s already exists\n", user.Username)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (default INITIAL_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (default INITIAL_PASSWORD)")
	return cmd
}
