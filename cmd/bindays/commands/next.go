package commands

import (
	"bindays-backend/internal/collection"
	"bindays-backend/internal/components/chrono"
	"bindays-backend/lib/serviceutil"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	nextPostcode *string
	nextUprn     *string
	nextOffline  *bool
	nextType     *string
)

func init() {
	nextPostcode = nextCmd.Flags().String("postcode", "", "The postcode of the property.")
	nextUprn = nextCmd.Flags().String("uprn", "", "The unique property reference number of the property.")
	nextOffline = nextCmd.Flags().Bool("offline", false, "Only read the schedule stored in the configured database.")
	nextType = nextCmd.Flags().String("type", "", "Only consider collections of this bin type (ex. \"grey\").")
	rootCmd.AddCommand(nextCmd)
}

var nextCmd = &cobra.Command{
	Use:   "next [--postcode <postcode>] [--uprn <uprn>] [--offline] [--type <bin type>]",
	Short: "Prints the next upcoming collection of a property.",
	Run: func(cmd *cobra.Command, args []string) {
		clock, err := chrono.NewStandardImpl()
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}
		opts := sourceOptions{
			postcode: stringFlag(nextPostcode, config.Postcode),
			uprn:     stringFlag(nextUprn, config.Uprn),
		}

		var events []collection.Collection
		if *nextOffline {
			if config.Database == "" {
				serviceutil.Fatal("failed to read stored schedule", fmt.Errorf("no database configured"))
			}
			events, err = loadStored(cmd.Context(), clock, opts, config.Database)
		} else {
			_, events, err = fetchAndStore(cmd.Context(), clock, opts, config.Database)
			if err != nil && config.Database != "" {
				slog.Warn("failed to fetch schedule, using the stored one", "err", err)
				events, err = loadStored(cmd.Context(), clock, opts, config.Database)
			}
		}
		if err != nil {
			serviceutil.Fatal("failed to get schedule", err)
		}

		if *nextType != "" {
			typ, ok := collection.ResolveType(events, *nextType)
			if !ok {
				fmt.Printf("No %s collections, known types: %v\n", *nextType, collection.Types(events))
				return
			}
			events = collection.OfType(events, typ)
		}

		next, ok := collection.Next(events, clock.Now())
		if !ok {
			fmt.Println("No upcoming collections.")
			return
		}
		fmt.Printf("%s: %s\n", next.Date.Format("Monday 2 January"), next.Type)
	},
}
