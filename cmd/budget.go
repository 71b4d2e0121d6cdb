package cmd

import (
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget <trip-id>",
	Short: "Show a trip's budget breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0], "trip")
	if err != nil {
		return err
	}

	svcs, err := newServices()
	if err != nil {
		return err
	}
	defer svcs.Close()
	if err := svcs.requireAuth(); err != nil {
		return err
	}

	ctx, cancel := opContext()
	defer cancel()

	budget, err := svcs.trips.GetBudget(ctx, id)
	if err != nil {
		return friendly(err)
	}
	printBudget(budget)
	return nil
}
