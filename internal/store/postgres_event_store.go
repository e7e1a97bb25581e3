package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashysurf/internal/domain"
)

const (
	// DefaultEventTable is the table events are written to.
	DefaultEventTable = "analytics_events"

	dialectPostgres = "postgres"
	colInsertID     = "insert_id"
	colEvent        = "event"
	colDistinctID   = "distinct_id"
	colPageURL      = "page_url"
	colOccurredAt   = "occurred_at"
	colSource       = "source"
	colCampaign     = "campaign"
)

// ErrNilDatabase is returned when a store is built without a connection.
var ErrNilDatabase = errors.New("store: nil database connection")

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresEventStore writes events to a PostgreSQL table. Inserts are
// idempotent on the event's insert id.
type PostgresEventStore struct {
	db    DB
	pool  *pgxpool.Pool
	table string
	log   *slog.Logger
}

var _ domain.EventStore = (*PostgresEventStore)(nil)

// PostgresOption configures a PostgresEventStore.
type PostgresOption func(*PostgresEventStore) error

// WithTable overrides DefaultEventTable.
func WithTable(name string) PostgresOption {
	return func(s *PostgresEventStore) error {
		if name == "" {
			return errors.New("store: empty table name")
		}
		s.table = name
		return nil
	}
}

// WithLogger sets the logger used for query tracing.
func WithLogger(l *slog.Logger) PostgresOption {
	return func(s *PostgresEventStore) error {
		s.log = l
		return nil
	}
}

// OpenPostgresEventStore connects a pool to dsn and builds a store over it.
// Close releases the pool.
func OpenPostgresEventStore(ctx context.Context, dsn string, opts ...PostgresOption) (*PostgresEventStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	s, err := NewPostgresEventStore(pool, opts...)
	if err != nil {
		pool.Close()
		return nil, err
	}
	s.pool = pool
	return s, nil
}

// NewPostgresEventStore builds a store over an existing connection.
func NewPostgresEventStore(db DB, opts ...PostgresOption) (*PostgresEventStore, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	s := &PostgresEventStore{db: db, table: DefaultEventTable, log: slog.Default()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s, nil
}

// Close releases the pool opened by OpenPostgresEventStore.
func (s *PostgresEventStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the events table if it does not exist.
func (s *PostgresEventStore) EnsureSchema(ctx context.Context) error {
	table := pgx.Identifier{s.table}.Sanitize()
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s text PRIMARY KEY,
	%s text NOT NULL,
	%s text NOT NULL,
	%s text NOT NULL DEFAULT '',
	%s timestamptz NOT NULL,
	%s text,
	%s text
)`, table, colInsertID, colEvent, colDistinctID, colPageURL, colOccurredAt, colSource, colCampaign)
	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", s.table, err)
	}
	return nil
}

func (s *PostgresEventStore) TrackEvent(ctx context.Context, ev domain.Event) error {
	query, args, err := s.buildInsertQuery(ev)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	start := time.Now()
	tag, err := s.db.Exec(ctx, query, args...)
	s.log.Debug("executed sql", "query", query, "duration", time.Since(start))
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s.log.Debug("duplicate event ignored", "insert_id", ev.InsertID)
	}
	return nil
}

// ListEvents returns every stored event, oldest first.
func (s *PostgresEventStore) ListEvents(ctx context.Context) ([]domain.Event, error) {
	query, _, err := s.buildSelectQuery()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			ev       domain.Event
			name     string
			distinct string
		)
		if err := rows.Scan(&ev.InsertID, &name, &distinct, &ev.PageURL, &ev.Time,
			&ev.Properties.Source, &ev.Properties.Campaign); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Name = domain.EventName(name)
		ev.DistinctID = domain.DistinctID(distinct)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *PostgresEventStore) buildInsertQuery(ev domain.Event) (string, []any, error) {
	return goqu.Dialect(dialectPostgres).
		Insert(s.table).
		Prepared(true).
		Rows(goqu.Record{
			colInsertID:   ev.InsertID,
			colEvent:      ev.Name.String(),
			colDistinctID: ev.DistinctID.String(),
			colPageURL:    ev.PageURL,
			colOccurredAt: ev.Time.UTC(),
			colSource:     nullable(ev.Properties.Source),
			colCampaign:   nullable(ev.Properties.Campaign),
		}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
}

func (s *PostgresEventStore) buildSelectQuery() (string, []any, error) {
	return goqu.Dialect(dialectPostgres).
		From(s.table).
		Select(colInsertID, colEvent, colDistinctID, colPageURL, colOccurredAt, colSource, colCampaign).
		Order(goqu.I(colOccurredAt).Asc(), goqu.I(colInsertID).Asc()).
		ToSQL()
}

// nullable turns an absent UTM value into SQL NULL.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
