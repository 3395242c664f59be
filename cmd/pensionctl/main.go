// Command pensionctl runs maintenance tasks against the pension tracker
// database: schema migrations, seeding and reconciliation reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JimJafar/pension-tracker/internal/config"
	"github.com/JimJafar/pension-tracker/internal/database"
	"github.com/JimJafar/pension-tracker/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pensionctl",
		Short:        "Pension tracker maintenance",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newMissingCommand())
	rootCmd.AddCommand(newQuoteCommand())
	return rootCmd
}

// openDatabase loads configuration and connects with the configured driver.
func openDatabase() (*config.Config, *database.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	manager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, manager, nil
}
