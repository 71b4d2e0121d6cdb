package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wayfarer/internal/api"
	"wayfarer/internal/cli"
	"wayfarer/internal/trips"
)

var (
	flagTitle       string
	flagDescription string
	flagStart       string
	flagEnd         string
	flagYes         bool
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Manage trips",
	RunE:  runTripsList,
}

var tripsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your trips",
	RunE:  runTripsList,
}

var tripsShowCmd = &cobra.Command{
	Use:   "show <trip-id>",
	Short: "Show a trip's itinerary and budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripsShow,
}

var tripsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a trip",
	RunE:  runTripsCreate,
}

var tripsUpdateCmd = &cobra.Command{
	Use:   "update <trip-id>",
	Short: "Update a trip's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripsUpdate,
}

var tripsDeleteCmd = &cobra.Command{
	Use:   "delete <trip-id>",
	Short: "Delete a trip and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripsDelete,
}

func init() {
	tripsCreateCmd.Flags().StringVar(&flagTitle, "title", "", "Trip title")
	tripsCreateCmd.Flags().StringVar(&flagDescription, "description", "", "Trip description")
	tripsCreateCmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD)")
	tripsCreateCmd.Flags().StringVar(&flagEnd, "end", "", "End date (YYYY-MM-DD)")

	tripsUpdateCmd.Flags().StringVar(&flagTitle, "title", "", "New title")
	tripsUpdateCmd.Flags().StringVar(&flagDescription, "description", "", "New description")
	tripsUpdateCmd.Flags().StringVar(&flagStart, "start", "", "New start date (YYYY-MM-DD)")
	tripsUpdateCmd.Flags().StringVar(&flagEnd, "end", "", "New end date (YYYY-MM-DD)")

	tripsDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	tripsCmd.AddCommand(tripsListCmd, tripsShowCmd, tripsCreateCmd, tripsUpdateCmd, tripsDeleteCmd)
	rootCmd.AddCommand(tripsCmd)
}

func runTripsList(_ *cobra.Command, _ []string) error {
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

	ts, err := svcs.trips.ListTrips(ctx)
	if err != nil {
		return friendly(err)
	}
	if len(ts) == 0 {
		fmt.Println("No trips yet — run `wayfarer trips create`.")
		return nil
	}

	rows := make([][]string, len(ts))
	for i, t := range ts {
		rows[i] = []string{
			cli.Truncate(t.Title, 40),
			cli.FormatDateRange(t.StartDate, t.EndDate),
			strconv.Itoa(t.ID),
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Your Trips",
		Headers: []string{"Title", "Dates", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runTripsShow(_ *cobra.Command, args []string) error {
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

	trip, err := svcs.trips.GetTrip(ctx, id)
	if err != nil {
		return friendly(err)
	}
	budget, err := svcs.trips.GetBudget(ctx, id)
	if err != nil {
		return friendly(err)
	}

	fmt.Println(cli.RenderTitle(trip.Title))
	fmt.Printf("  %s\n", cli.FormatDateRange(trip.StartDate, trip.EndDate))
	if trip.Description != "" {
		fmt.Printf("  %s\n", trip.Description)
	}
	fmt.Println()

	if len(trip.Stops) == 0 {
		fmt.Println("  No stops yet.")
	}
	for _, stop := range trip.Stops {
		fmt.Printf("  %s, %s  (%s)  [stop %d]\n",
			stop.CityName, stop.Country,
			cli.FormatDateRange(stop.StartDate, stop.EndDate), stop.ID)
		for _, act := range stop.Activities {
			line := fmt.Sprintf("    - %s  %s", act.Name, cli.FormatMoney(act.Cost))
			if act.Duration > 0 {
				line += "  " + cli.FormatMinutes(act.Duration)
			}
			if act.Category != "" {
				line += "  (" + act.Category + ")"
			}
			fmt.Printf("%s  [activity %d]\n", line, act.ID)
		}
	}
	fmt.Println()

	printBudget(budget)
	return nil
}

func printBudget(b *api.Budget) {
	if len(b.StopsBreakdown) > 0 {
		rows := make([][]string, len(b.StopsBreakdown))
		for i, sc := range b.StopsBreakdown {
			rows[i] = []string{sc.CityName, cli.FormatMoney(sc.TotalCost)}
		}
		rows = append(rows, []string{"Total", cli.FormatMoney(b.TotalCost)})
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Budget",
			Headers: []string{"Stop", "Cost"},
			Rows:    rows,
		}))
		return
	}
	fmt.Printf("  Total budget: %s\n", cli.FormatMoney(b.TotalCost))
}

func runTripsCreate(cmd *cobra.Command, _ []string) error {
	if flagTitle == "" {
		return fmt.Errorf("--title is required (or use `wayfarer tui` for the interactive form)")
	}
	start, err := trips.DateToTimestamp(flagStart)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	end, err := trips.DateToTimestamp(flagEnd)
	if err != nil {
		return fmt.Errorf("--end: %w", err)
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

	trip, err := svcs.trips.CreateTrip(ctx, api.TripCreate{
		Title:       strings.TrimSpace(flagTitle),
		Description: strings.TrimSpace(flagDescription),
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Created trip %d: %s\n", trip.ID, trip.Title)
	return nil
}

func runTripsUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "trip")
	if err != nil {
		return err
	}

	var in api.TripUpdate
	if cmd.Flags().Changed("title") {
		in.Title = &flagTitle
	}
	if cmd.Flags().Changed("description") {
		in.Description = &flagDescription
	}
	if cmd.Flags().Changed("start") {
		start, err := trips.DateToTimestamp(flagStart)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		in.StartDate = &start
	}
	if cmd.Flags().Changed("end") {
		end, err := trips.DateToTimestamp(flagEnd)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}
		in.EndDate = &end
	}
	if in == (api.TripUpdate{}) {
		return fmt.Errorf("nothing to update: pass at least one of --title, --description, --start, --end")
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

	trip, err := svcs.trips.UpdateTrip(ctx, id, in)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Updated trip %d: %s\n", trip.ID, trip.Title)
	return nil
}

func runTripsDelete(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0], "trip")
	if err != nil {
		return err
	}

	if !flagYes && !confirm(fmt.Sprintf("Delete trip %d and all its stops and activities?", id)) {
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

	if err := svcs.trips.DeleteTrip(ctx, id); err != nil {
		return friendly(err)
	}
	fmt.Printf("Deleted trip %d.\n", id)
	return nil
}
