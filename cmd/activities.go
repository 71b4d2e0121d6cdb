package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wayfarer/internal/api"
	"wayfarer/internal/cli"
	"wayfarer/internal/trips"
)

var (
	flagActName  string
	flagCost     string
	flagDuration string
	flagCategory string
)

var activitiesCmd = &cobra.Command{
	Use:     "activities",
	Aliases: []string{"acts"},
	Short:   "Manage the activities of a stop",
}

var activitiesAddCmd = &cobra.Command{
	Use:   "add <stop-id>",
	Short: "Add an activity to a stop",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesAdd,
}

var activitiesUpdateCmd = &cobra.Command{
	Use:   "update <activity-id>",
	Short: "Update an activity's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesUpdate,
}

var activitiesDeleteCmd = &cobra.Command{
	Use:   "delete <activity-id>",
	Short: "Delete an activity",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivitiesDelete,
}

func init() {
	activitiesAddCmd.Flags().StringVar(&flagActName, "name", "", "Activity name")
	activitiesAddCmd.Flags().StringVar(&flagCost, "cost", "", "Cost in dollars (blank or invalid counts as 0)")
	activitiesAddCmd.Flags().StringVar(&flagDuration, "duration", "", "Duration in minutes")
	activitiesAddCmd.Flags().StringVar(&flagCategory, "category", trips.Categories[0],
		"One of: "+strings.Join(trips.Categories, ", "))

	activitiesUpdateCmd.Flags().StringVar(&flagActName, "name", "", "New name")
	activitiesUpdateCmd.Flags().StringVar(&flagCost, "cost", "", "New cost in dollars")
	activitiesUpdateCmd.Flags().StringVar(&flagDuration, "duration", "", "New duration in minutes")
	activitiesUpdateCmd.Flags().StringVar(&flagCategory, "category", "",
		"One of: "+strings.Join(trips.Categories, ", "))

	activitiesDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	activitiesCmd.AddCommand(activitiesAddCmd, activitiesUpdateCmd, activitiesDeleteCmd)
	rootCmd.AddCommand(activitiesCmd)
}

func runActivitiesAdd(_ *cobra.Command, args []string) error {
	stopID, err := parseID(args[0], "stop")
	if err != nil {
		return err
	}
	if flagActName == "" {
		return fmt.Errorf("--name is required")
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

	act, err := svcs.trips.AddActivity(ctx, stopID, api.ActivityCreate{
		StopID:   stopID,
		Name:     strings.TrimSpace(flagActName),
		Cost:     trips.ParseCost(flagCost),
		Duration: trips.ParseDuration(flagDuration),
		Category: flagCategory,
	})
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Added activity %d: %s (%s)\n", act.ID, act.Name, cli.FormatMoney(act.Cost))
	return nil
}

func runActivitiesUpdate(cmd *cobra.Command, args []string) error {
	activityID, err := parseID(args[0], "activity")
	if err != nil {
		return err
	}

	var in api.ActivityUpdate
	if cmd.Flags().Changed("name") {
		name := strings.TrimSpace(flagActName)
		in.Name = &name
	}
	if cmd.Flags().Changed("cost") {
		cost := trips.ParseCost(flagCost)
		in.Cost = &cost
	}
	if cmd.Flags().Changed("duration") {
		duration := trips.ParseDuration(flagDuration)
		in.Duration = &duration
	}
	if cmd.Flags().Changed("category") {
		in.Category = &flagCategory
	}
	if in == (api.ActivityUpdate{}) {
		return fmt.Errorf("nothing to update: pass at least one of --name, --cost, --duration, --category")
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

	act, err := svcs.trips.UpdateActivity(ctx, activityID, in)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Updated activity %d: %s\n", act.ID, act.Name)
	return nil
}

func runActivitiesDelete(_ *cobra.Command, args []string) error {
	activityID, err := parseID(args[0], "activity")
	if err != nil {
		return err
	}

	if !flagYes && !confirm(fmt.Sprintf("Delete activity %d?", activityID)) {
		fmt.Println("Cancelled.")
		return nil
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

	if err := svcs.trips.DeleteActivity(ctx, activityID); err != nil {
		return friendly(err)
	}
	fmt.Printf("Deleted activity %d.\n", activityID)
	return nil
}
