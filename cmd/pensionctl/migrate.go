package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JimJafar/pension-tracker/internal/logger"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, manager, err := openDatabase()
				if err != nil {
					return err
				}
				defer manager.Close()
				return manager.RunMigrations()
			},
		},
		&cobra.Command{
			Use:   "down [N]",
			Short: "Roll back N migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("invalid step count %q", args[0])
					}
					steps = n
				}

				_, manager, err := openDatabase()
				if err != nil {
					return err
				}
				defer manager.Close()

				if err := manager.RollbackMigrations(steps); err != nil {
					return err
				}
				logger.Get().Infof("Rolled back %d migration(s)", steps)
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, manager, err := openDatabase()
				if err != nil {
					return err
				}
				defer manager.Close()

				version, dirty, err := manager.MigrationVersion()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Version: %d, Dirty: %v\n", version, dirty)
				return nil
			},
		},
	)
	return migrateCmd
}
