package commands

import (
	"bindays-backend/internal/collection"
	"bindays-backend/internal/components/chrono"
	"bindays-backend/internal/components/telemetry"
	"bindays-backend/internal/scrapers/eastrenfrewshire"
	"bindays-backend/internal/store"
	"bindays-backend/lib/restyutil"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

type sourceOptions struct {
	postcode string
	uprn     string
	// dump, if not empty, is a directory every http exchange is written to
	dump string
}

func newSource(clock chrono.API, opts sourceOptions) (eastrenfrewshire.Source, error) {
	if opts.postcode == "" || opts.uprn == "" {
		return eastrenfrewshire.Source{}, fmt.Errorf("a postcode and uprn must be given by flag or config")
	}
	creds, err := eastrenfrewshire.NewCredentials(opts.postcode, opts.uprn)
	if err != nil {
		return eastrenfrewshire.Source{}, err
	}

	clientOpts := eastrenfrewshire.ClientOptions{
		LandingUrl:       config.LandingUrl,
		Timeout:          time.Duration(config.TimeoutSeconds) * time.Second,
		CloudflareBypass: config.CloudflareBypass,
		Location:         clock.Location(),
		Telemetry:        telemetry.SlogAPI{},
	}
	if opts.dump != "" {
		output, err := restyutil.NewFilesystemOutput(opts.dump)
		if err != nil {
			return eastrenfrewshire.Source{}, err
		}
		clientOpts.Dump = output
	}

	return eastrenfrewshire.NewSource(creds, clientOpts), nil
}

// fetchAndStore fetches the schedule of a property and, if a database is
// given, stores it.
func fetchAndStore(ctx context.Context, clock chrono.API, opts sourceOptions, database string) (eastrenfrewshire.Source, []collection.Collection, error) {
	source, err := newSource(clock, opts)
	if err != nil {
		return source, nil, err
	}
	events, err := source.Fetch(ctx)
	if err != nil {
		return source, nil, err
	}

	if database != "" {
		db, err := store.Open(ctx, database, clock.Location())
		if err != nil {
			return source, nil, err
		}
		defer db.Close()

		creds, _ := eastrenfrewshire.NewCredentials(opts.postcode, opts.uprn)
		err = db.Save(ctx, creds.UPRN(), clock.Now(), events)
		if err != nil {
			return source, nil, err
		}
		slog.Debug("stored schedule", "database", database, "collections", len(events))
	}

	return source, events, nil
}

// loadStored returns the last stored schedule of a property.
func loadStored(ctx context.Context, clock chrono.API, opts sourceOptions, database string) ([]collection.Collection, error) {
	creds, err := eastrenfrewshire.NewCredentials(opts.postcode, opts.uprn)
	if err != nil {
		return nil, err
	}
	db, err := store.Open(ctx, database, clock.Location())
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Load(ctx, creds.UPRN())
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func renderCollections(info collection.Info, events []collection.Collection) {
	t := newTable()
	t.SetTitle(info.Title)
	t.AppendHeader(table.Row{"Date", "Type", "Icon"})
	for _, e := range events {
		t.AppendRow(table.Row{e.Date.Format("Mon 2 Jan 2006"), e.Type, e.Icon})
	}
	t.Render()
}
