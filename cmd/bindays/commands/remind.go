package commands

import (
	"bindays-backend/internal/collection"
	"bindays-backend/internal/components/chrono"
	"bindays-backend/internal/components/telemetry"
	"bindays-backend/internal/notify"
	"bindays-backend/lib/serviceutil"
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var (
	remindCron   *string
	remindWithin *int
)

func init() {
	remindCron = remindCmd.Flags().String("cron", "", "Keep running and send reminders on this cron schedule (ex. \"0 18 * * *\").")
	remindWithin = remindCmd.Flags().Int("within-days", 0, "Only send a reminder if the next collection is at most this many days away, 0 always sends.")
	rootCmd.AddCommand(remindCmd)
}

// remind fetches the schedule and e-mails the next collection, if there is
// one within `within` days.
func remind(ctx context.Context, clock chrono.API, mailer notify.Mailer, within int) error {
	opts := sourceOptions{postcode: config.Postcode, uprn: config.Uprn}
	source, events, err := fetchAndStore(ctx, clock, opts, config.Database)
	if err != nil {
		return err
	}

	now := clock.Now()
	next, ok := collection.Next(events, now)
	if !ok {
		slog.Info("no upcoming collections, not sending a reminder")
		return nil
	}
	if within > 0 && next.Date.After(collection.Day(now).AddDate(0, 0, within)) {
		slog.Info("next collection is too far away, not sending a reminder", "date", next.Date.Format(time.DateOnly))
		return nil
	}

	err = mailer.SendNext(ctx, source.Info(), next)
	if err != nil {
		return err
	}
	slog.Info("sent reminder", "type", next.Type, "date", next.Date.Format(time.DateOnly))
	return nil
}

var remindCmd = &cobra.Command{
	Use:   "remind [--cron <spec>] [--within-days <n>]",
	Short: "E-mails the next upcoming collection to the configured recipients.",
	Run: func(cmd *cobra.Command, args []string) {
		clock, err := chrono.NewStandardImpl()
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}
		mailer := notify.NewMailer(config.Smtp)

		if *remindCron == "" {
			err = remind(cmd.Context(), clock, mailer, *remindWithin)
			if err != nil {
				serviceutil.Fatal("failed to send reminder", err)
			}
			return
		}

		cron := chrono.NewStandardCron(clock, telemetry.SlogAPI{})
		err = cron.Cron(*remindCron, func() {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute*5)
			defer cancel()
			err := remind(ctx, clock, mailer, *remindWithin)
			if err != nil {
				slog.Error("failed to send reminder", "err", err)
			}
		})
		if err != nil {
			serviceutil.Fatal("invalid cron schedule", err)
		}
		slog.Info("waiting for scheduled reminders", "cron", *remindCron)

		<-cmd.Context().Done()
		cron.Stop()
	},
}
