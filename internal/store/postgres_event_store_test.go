package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashysurf/internal/domain"
)

type fakeDB struct {
	execSQL  []string
	execArgs [][]any
	tag      string
	err      error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return pgconn.NewCommandTag(f.tag), f.err
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, f.err
}

func event() domain.Event {
	source, campaign := "google", "spring"
	return domain.Event{
		InsertID:   "id-1",
		Name:       domain.EventVisitWebsite,
		DistinctID: "abc",
		PageURL:    "https://flashysurf.com/",
		Time:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Properties: domain.UTM{Source: &source, Campaign: &campaign},
	}
}

func TestNewPostgresEventStore_NilDB(t *testing.T) {
	_, err := NewPostgresEventStore(nil)
	require.ErrorIs(t, err, ErrNilDatabase)
}

func TestWithTable_RejectsEmpty(t *testing.T) {
	_, err := NewPostgresEventStore(&fakeDB{}, WithTable(""))
	require.Error(t, err)
}

func TestBuildInsertQuery(t *testing.T) {
	s, err := NewPostgresEventStore(&fakeDB{})
	require.NoError(t, err)

	query, args, err := s.buildInsertQuery(event())
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "analytics_events" ("campaign", "distinct_id", "event", "insert_id", "occurred_at", "page_url", "source") `+
			`VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING`,
		query)
	require.Len(t, args, 7)
	assert.Equal(t, "spring", args[0])
	assert.Equal(t, "abc", args[1])
	assert.Equal(t, "Visit Website", args[2])
	assert.Equal(t, "id-1", args[3])
	assert.Equal(t, "https://flashysurf.com/", args[5])
	assert.Equal(t, "google", args[6])
}

func TestBuildSelectQuery(t *testing.T) {
	s, err := NewPostgresEventStore(&fakeDB{}, WithTable("events"))
	require.NoError(t, err)

	query, _, err := s.buildSelectQuery()
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "insert_id", "event", "distinct_id", "page_url", "occurred_at", "source", "campaign" `+
			`FROM "events" ORDER BY "occurred_at" ASC, "insert_id" ASC`,
		query)
}

func TestNullable(t *testing.T) {
	v := "x"
	assert.Nil(t, nullable(nil))
	assert.Equal(t, "x", nullable(&v))
}

func TestTrackEvent_ExecutesInsert(t *testing.T) {
	db := &fakeDB{tag: "INSERT 0 1"}
	s, err := NewPostgresEventStore(db)
	require.NoError(t, err)

	require.NoError(t, s.TrackEvent(context.Background(), event()))
	require.Len(t, db.execSQL, 1)
	assert.Contains(t, db.execSQL[0], `INSERT INTO "analytics_events"`)
	assert.Len(t, db.execArgs[0], 7)
}

func TestTrackEvent_WrapsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	s, err := NewPostgresEventStore(&fakeDB{err: boom})
	require.NoError(t, err)

	err = s.TrackEvent(context.Background(), event())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "insert event")

	_, err = s.ListEvents(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{tag: "CREATE TABLE"}
	s, err := NewPostgresEventStore(db, WithTable("site events"))
	require.NoError(t, err)

	require.NoError(t, s.EnsureSchema(context.Background()))
	require.Len(t, db.execSQL, 1)
	assert.Contains(t, db.execSQL[0], `CREATE TABLE IF NOT EXISTS "site events" (`)
	assert.Contains(t, db.execSQL[0], "insert_id text PRIMARY KEY")
}
