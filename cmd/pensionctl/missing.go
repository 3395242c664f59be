package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/JimJafar/pension-tracker/internal/reconcile"
	"github.com/JimJafar/pension-tracker/internal/services"
)

func newMissingCommand() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "missing",
		Short: "List overdue regular contributions for every pension of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, manager, err := openDatabase()
			if err != nil {
				return err
			}
			defer manager.Close()

			if username == "" {
				username = cfg.InitialUsername
			}

			db := manager.DB()
			user, err := services.NewUserService(db).GetUserByUsername(username)
			if err != nil {
				return fmt.Errorf("user %q: %w", username, err)
			}

			pensions, err := services.NewPensionService(db).GetUserPensions(user.ID)
			if err != nil {
				return err
			}

			contributions := services.NewContributionService(db)
			out := cmd.OutOrStdout()
			total := 0
			for _, p := range pensions {
				if p.ContributionType != reconcile.ContributionTypeRegularFixed {
					continue
				}
				missing, err := contributions.GetMissingContributions(user.ID, p.ID)
				if err != nil {
					return err
				}
				total += len(missing)
				writeMissing(out, p.Name, missing)
			}

			fmt.Fprintf(out, "%d missing contribution(s)\n", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "User to report on (default INITIAL_USERNAME)")
	return cmd
}

func writeMissing(out io.Writer, pension string, missing []reconcile.MissingContribution) {
	if len(missing) == 0 {
		fmt.Fprintf(out, "%s: up to date\n\n", pension)
		return
	}

	fmt.Fprintf(out, "%s:\n", pension)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  EXPECTED\tAMOUNT\tDAYS OVERDUE")
	for _, m := range missing {
		fmt.Fprintf(tw, "  %s\t%s\t%d\n", m.ExpectedDate.Format(reconcile.DateLayout), formatGBP(m.Amount), m.DaysOverdue)
	}
	_ = tw.Flush()
	fmt.Fprintln(out)
}

// formatGBP renders an amount in pounds, rounded to the penny.
func formatGBP(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).Round(0).IntPart(), money.GBP).Display()
}
