// Package store persists submitted quotes, confirmed orders and saved
// addresses in SQLite.
package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Simplici0/partquote/internal/ids"
)

var ErrNotFound = errors.New("not found")

// TimeLayout is the fixed-width text form of stored timestamps. Every row
// keeps all nine fraction digits so created_at sorts in time order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps the database handle shared by the quote, order and address
// queries.
type Store struct {
	db    *sql.DB
	clock *ids.Clock
	now   func() time.Time
}

// New returns a Store over an already migrated database. A nil clock issues
// ids from the wall clock.
func New(db *sql.DB, clock *ids.Clock) *Store {
	if clock == nil {
		clock = ids.NewClock(nil)
	}
	return &Store{db: db, clock: clock, now: time.Now}
}

func formatTime(t time.Time) string { return t.UTC().Format(TimeLayout) }

// parseTime also reads rows written with a trimmed fraction.
func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
