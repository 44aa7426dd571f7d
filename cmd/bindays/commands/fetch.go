package commands

import (
	"bindays-backend/internal/components/chrono"
	"bindays-backend/lib/serviceutil"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	fetchPostcode *string
	fetchUprn     *string
	fetchDb       *string
	fetchJson     *bool
	fetchDump     *string
)

func init() {
	fetchPostcode = fetchCmd.Flags().String("postcode", "", "The postcode of the property.")
	fetchUprn = fetchCmd.Flags().String("uprn", "", "The unique property reference number of the property.")
	fetchDb = fetchCmd.Flags().String("db", "", "The database to store the fetched schedule in.")
	fetchJson = fetchCmd.Flags().Bool("json", false, "Print the schedule as json.")
	fetchDump = fetchCmd.Flags().String("dump", "", "A directory to write every http request and response to.")
	rootCmd.AddCommand(fetchCmd)
}

type fetchedJson struct {
	Date string `json:"date"`
	Type string `json:"type"`
	Icon string `json:"icon"`
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--postcode <postcode>] [--uprn <uprn>] [--db <path/to/schedules.db>] [--json] [--dump <dir>]",
	Short: "Fetches the collection schedule of a property.",
	Run: func(cmd *cobra.Command, args []string) {
		clock, err := chrono.NewStandardImpl()
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}

		opts := sourceOptions{
			postcode: stringFlag(fetchPostcode, config.Postcode),
			uprn:     stringFlag(fetchUprn, config.Uprn),
			dump:     *fetchDump,
		}
		source, events, err := fetchAndStore(cmd.Context(), clock, opts, stringFlag(fetchDb, config.Database))
		if err != nil {
			serviceutil.Fatal("failed to fetch schedule", err)
		}

		if !*fetchJson {
			renderCollections(source.Info(), events)
			return
		}

		out := make([]fetchedJson, len(events))
		for i, e := range events {
			out[i] = fetchedJson{
				Date: e.Date.Format(time.DateOnly),
				Type: e.Type,
				Icon: e.Icon,
			}
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(out)
		if err != nil {
			serviceutil.Fatal("failed to encode schedule", err)
		}
	},
}
