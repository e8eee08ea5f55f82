package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matt-steen/zenith/pkg/model"
	"github.com/matt-steen/zenith/pkg/stats"
)

// summaryCmd prints the budget summary without opening the TUI, for
// quick checks and scripting.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the budget summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if client.UserID() == "" {
			return fmt.Errorf("not logged in; run 'zenith login' first")
		}

		ctx := cmd.Context()

		records, err := client.ListTransactions(ctx)
		if err != nil {
			return err
		}

		transactions := model.TransactionsFromRecords(records)
		summary := stats.CalculateSummary(transactions, time.Now())

		// prefer the server's figures when it can produce them
		if remote, err := client.BudgetSummary(ctx); err == nil && remote.CategoryBreakdown != nil {
			summary.TotalIncome = remote.TotalIncome
			summary.TotalExpenses = remote.TotalExpenses
			summary.Balance = remote.Balance
			summary.CategoryBreakdown = remote.CategoryBreakdown
		} else if err != nil {
			log.Warn().Err(err).Msg("summary fetch failed; using local recompute")
		}

		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "income:   $%.2f\n", summary.TotalIncome)
		fmt.Fprintf(out, "expenses: $%.2f\n", summary.TotalExpenses)
		fmt.Fprintf(out, "balance:  $%.2f\n", summary.Balance)

		chart := stats.BreakdownChart(summary)
		if len(chart.Labels) > 0 {
			fmt.Fprintln(out, "\nspending by category:")

			for i, label := range chart.Labels {
				fmt.Fprintf(out, "  %-20s $%.2f\n", label, chart.Data[i])
			}
		}

		return nil
	},
}
