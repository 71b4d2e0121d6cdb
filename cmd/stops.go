package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wayfarer/internal/api"
	"wayfarer/internal/trips"
)

var (
	flagCity    string
	flagCountry string
	flagArrive  string
	flagDepart  string
	flagOrder   int
)

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "Manage the stops of a trip",
}

var stopsAddCmd = &cobra.Command{
	Use:   "add <trip-id>",
	Short: "Add a city stop to a trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runStopsAdd,
}

var stopsUpdateCmd = &cobra.Command{
	Use:   "update <stop-id>",
	Short: "Update a stop's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runStopsUpdate,
}

var stopsDeleteCmd = &cobra.Command{
	Use:   "delete <stop-id>",
	Short: "Delete a stop and its activities",
	Args:  cobra.ExactArgs(1),
	RunE:  runStopsDelete,
}

func init() {
	stopsAddCmd.Flags().StringVar(&flagCity, "city", "", "City name")
	stopsAddCmd.Flags().StringVar(&flagCountry, "country", "", "Country")
	stopsAddCmd.Flags().StringVar(&flagArrive, "arrive", "", "Arrival date (YYYY-MM-DD)")
	stopsAddCmd.Flags().StringVar(&flagDepart, "depart", "", "Departure date (YYYY-MM-DD)")
	stopsAddCmd.Flags().IntVar(&flagOrder, "order", 0, "Position in the itinerary (server assigns when 0)")

	stopsUpdateCmd.Flags().StringVar(&flagCity, "city", "", "New city name")
	stopsUpdateCmd.Flags().StringVar(&flagCountry, "country", "", "New country")
	stopsUpdateCmd.Flags().StringVar(&flagArrive, "arrive", "", "New arrival date (YYYY-MM-DD)")
	stopsUpdateCmd.Flags().StringVar(&flagDepart, "depart", "", "New departure date (YYYY-MM-DD)")
	stopsUpdateCmd.Flags().IntVar(&flagOrder, "order", 0, "New position in the itinerary")

	stopsDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	stopsCmd.AddCommand(stopsAddCmd, stopsUpdateCmd, stopsDeleteCmd)
	rootCmd.AddCommand(stopsCmd)
}

func runStopsAdd(_ *cobra.Command, args []string) error {
	tripID, err := parseID(args[0], "trip")
	if err != nil {
		return err
	}
	if flagCity == "" || flagCountry == "" {
		return fmt.Errorf("--city and --country are required")
	}
	arrive, err := trips.DateToTimestamp(flagArrive)
	if err != nil {
		return fmt.Errorf("--arrive: %w", err)
	}
	depart, err := trips.DateToTimestamp(flagDepart)
	if err != nil {
		return fmt.Errorf("--depart: %w", err)
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

	stop, err := svcs.trips.AddStop(ctx, tripID, api.StopCreate{
		TripID:    tripID,
		CityName:  flagCity,
		Country:   flagCountry,
		StartDate: arrive,
		EndDate:   depart,
		Order:     flagOrder,
	})
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Added stop %d: %s, %s\n", stop.ID, stop.CityName, stop.Country)
	return nil
}

func runStopsUpdate(cmd *cobra.Command, args []string) error {
	stopID, err := parseID(args[0], "stop")
	if err != nil {
		return err
	}

	var in api.StopUpdate
	if cmd.Flags().Changed("city") {
		in.CityName = &flagCity
	}
	if cmd.Flags().Changed("country") {
		in.Country = &flagCountry
	}
	if cmd.Flags().Changed("arrive") {
		arrive, err := trips.DateToTimestamp(flagArrive)
		if err != nil {
			return fmt.Errorf("--arrive: %w", err)
		}
		in.StartDate = &arrive
	}
	if cmd.Flags().Changed("depart") {
		depart, err := trips.DateToTimestamp(flagDepart)
		if err != nil {
			return fmt.Errorf("--depart: %w", err)
		}
		in.EndDate = &depart
	}
	if cmd.Flags().Changed("order") {
		in.Order = &flagOrder
	}
	if in == (api.StopUpdate{}) {
		return fmt.Errorf("nothing to update: pass at least one of --city, --country, --arrive, --depart, --order")
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

	stop, err := svcs.trips.UpdateStop(ctx, stopID, in)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Updated stop %d: %s, %s\n", stop.ID, stop.CityName, stop.Country)
	return nil
}

func runStopsDelete(_ *cobra.Command, args []string) error {
	stopID, err := parseID(args[0], "stop")
	if err != nil {
		return err
	}

	if !flagYes && !confirm(fmt.Sprintf("Delete stop %d and its activities?", stopID)) {
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

	if err := svcs.trips.DeleteStop(ctx, stopID); err != nil {
		return friendly(err)
	}
	fmt.Printf("Deleted stop %d.\n", stopID)
	return nil
}
