package commands

import (
	"bindays-backend/internal/collection"
	"bindays-backend/internal/components/chrono"
	"bindays-backend/internal/service"
	"bindays-backend/lib/serviceutil"
	"bindays-backend/lib/telemetry"
	"time"

	"github.com/spf13/cobra"
)

var servePort *int

func init() {
	servePort = serveCmd.Flags().Int("port", 0, "The port to listen on, defaults to the configured one.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--port <port>]",
	Short: "Serves collection schedules over http.",
	Run: func(cmd *cobra.Command, args []string) {
		clock, err := chrono.NewStandardImpl()
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}

		factory := func(postcode, uprn string) (collection.Source, error) {
			return newSource(clock, sourceOptions{postcode: postcode, uprn: uprn})
		}
		svc, err := service.NewService(
			factory,
			service.WithClock(clock),
			service.WithFetchTimeout(time.Duration(config.TimeoutSeconds)*time.Second*3),
		)
		if err != nil {
			serviceutil.Fatal("failed to create service", err)
		}

		port := config.Server.Port
		if *servePort != 0 {
			port = *servePort
		}

		telemetry.InstrumentPerfStats(cmd.Context())
		err = serviceutil.StartHttpServer(cmd.Context(), port, svc.Handler())
		if err != nil {
			serviceutil.Fatal("failed to serve", err)
		}
	},
}
