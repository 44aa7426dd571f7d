package store

import (
	"bindays-backend/internal/collection"
	"bindays-backend/lib/telemetry"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

var tracer = telemetry.Tracer("bindays.internal.store")

// dates are stored as calendar dates, the location is attached on load
const dateLayout = time.DateOnly

// Store keeps the last fetched schedule of each property.
type Store struct {
	db  *sql.DB
	loc *time.Location
}

// Open opens (creating if needed) the sqlite database at `path` and applies
// the schema. `:memory:` is allowed. Loaded dates are midnight in `loc`.
func Open(ctx context.Context, path string, loc *time.Location) (Store, error) {
	if path == "" {
		return Store{}, fmt.Errorf("a path was not specified")
	}
	if path != ":memory:" {
		_, statErr := os.Stat(path)
		if os.IsNotExist(statErr) {
			f, err := os.Create(path)
			if err != nil {
				return Store{}, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	db.SetMaxOpenConns(1)
	if path != ":memory:" {
		_, err = db.ExecContext(ctx, "PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return Store{}, err
		}
	}
	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys=ON")
	if err != nil {
		db.Close()
		return Store{}, err
	}
	_, err = db.ExecContext(ctx, Schema)
	if err != nil {
		db.Close()
		return Store{}, err
	}
	return NewStore(db, loc), nil
}

// NewStore wraps a database that already has Schema applied.
func NewStore(db *sql.DB, loc *time.Location) Store {
	if loc == nil {
		loc = time.UTC
	}
	return Store{db: db, loc: loc}
}

func (s Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored schedule of a property with `events`, keeping
// their order.
func (s Store) Save(ctx context.Context, uprn string, fetchedAt time.Time, events []collection.Collection) error {
	ctx, span := tracer.Start(ctx, "Save")
	defer span.End()
	span.SetAttributes(
		attribute.String("uprn", uprn),
		attribute.Int("collections", len(events)),
	)

	err := s.save(ctx, uprn, fetchedAt, events)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save schedule")
		return err
	}
	return nil
}

func (s Store) save(ctx context.Context, uprn string, fetchedAt time.Time, events []collection.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from Collection where uprn = ?", uprn)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		`insert into Schedule(uprn, fetched_at) values (?, ?)
		on conflict (uprn) do update set fetched_at = excluded.fetched_at`,
		uprn, fetchedAt.Unix(),
	)
	if err != nil {
		return err
	}

	for i, e := range events {
		_, err = tx.ExecContext(
			ctx,
			"insert into Collection(uprn, position, date, type, icon) values (?, ?, ?, ?, ?)",
			uprn, i, e.Date.Format(dateLayout), e.Type, e.Icon,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load returns the stored schedule of a property in the order it was saved,
// a property that was never saved has an empty schedule.
func (s Store) Load(ctx context.Context, uprn string) ([]collection.Collection, error) {
	ctx, span := tracer.Start(ctx, "Load")
	defer span.End()
	span.SetAttributes(attribute.String("uprn", uprn))

	rows, err := s.db.QueryContext(
		ctx,
		"select date, type, icon from Collection where uprn = ? order by position asc",
		uprn,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query schedule")
		return nil, err
	}
	defer rows.Close()

	events := []collection.Collection{}
	for rows.Next() {
		var date string
		var e collection.Collection
		err = rows.Scan(&date, &e.Type, &e.Icon)
		if err != nil {
			return nil, err
		}
		e.Date, err = time.ParseInLocation(dateLayout, date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", date, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// FetchedAt returns when the schedule of a property was last saved, ok is
// false if it never was.
func (s Store) FetchedAt(ctx context.Context, uprn string) (t time.Time, ok bool, err error) {
	var unix int64
	err = s.db.QueryRowContext(ctx, "select fetched_at from Schedule where uprn = ?", uprn).Scan(&unix)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(unix, 0).In(s.loc), true, nil
}
