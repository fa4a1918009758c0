// Package store persists harvested reviews and answers the reporting queries
// built on top of them.
package store

import (
	"context"
	"errors"
	"time"

	"sjsage522/reviewworker/internal/review"
)

// ErrSchemeMismatch is returned when the database was filled under another
// fingerprint scheme
var ErrSchemeMismatch = errors.New("fingerprint scheme mismatch")

// Store is an idempotent sink for reviews keyed by fingerprint and
// publication time
type Store interface {
	// EnsureSchema creates the tables when absent
	EnsureSchema(ctx context.Context) error

	// InsertIfNew stores r unless a record with the same key exists.
	// It reports whether a row was added.
	InsertIfNew(ctx context.Context, r review.Review) (bool, error)

	// Report aggregates the records published in [from, to).
	// A zero bound leaves that side open.
	Report(ctx context.Context, from, to time.Time) (Report, error)

	// Close releases the connection
	Close() error
}

// Report is the read model over the stored reviews
type Report struct {
	From          time.Time
	To            time.Time
	Total         int
	AverageRating float64
	Replied       int
	BySentiment   map[review.Sentiment]int
	Days          []DayStat
}

// DayStat is the rollup of one publication day
type DayStat struct {
	Day           string
	Count         int
	AverageRating float64
}

// ReplyRatio is the share of records that received a business reply
func (r Report) ReplyRatio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Replied) / float64(r.Total)
}
