package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/reviewworker/internal/review"
	harvesterrors "sjsage522/reviewworker/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "reviews.db")
	s, err := Open(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func newReview(title, body string, published *time.Time, rating int) review.Review {
	return review.New(review.Fields{
		PublishedAt:  published,
		ReviewerName: ptr("Marie"),
		Rating:       ptr(rating),
		Title:        ptr(title),
		Body:         ptr(body),
	}, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
}

func TestInsertIfNewIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	published := time.Date(2024, 3, 5, 10, 15, 30, 0, time.UTC)
	r := newReview("Super", "Rapide", &published, 5)

	inserted, err := s.InsertIfNew(ctx, r)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.InsertIfNew(ctx, r)
	require.NoError(t, err)
	assert.False(t, inserted)

	rep, err := s.Report(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Total)
}

func TestInsertIfNewWithoutPublicationTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := newReview("Sans date", "Toujours unique", nil, 3)

	inserted, err := s.InsertIfNew(ctx, r)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.InsertIfNew(ctx, r)
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestInsertIfNewSameContentDifferentDate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	first := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	inserted, err := s.InsertIfNew(ctx, newReview("Bien", "Rien à dire", &first, 4))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.InsertIfNew(ctx, newReview("Bien", "Rien à dire", &second, 4))
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestInsertIfNewRejectsMissingFingerprint(t *testing.T) {
	s := openTestStore(t)

	_, err := s.InsertIfNew(context.Background(), review.New(review.Fields{Rating: ptr(2)}, time.Now()))
	require.Error(t, err)
	typ, ok := harvesterrors.TypeOf(err)
	assert.True(t, ok)
	assert.Equal(t, harvesterrors.ErrorTypeValidation, typ)
}

func TestInsertIfNewCancelledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.InsertIfNew(ctx, newReview("a", "b", nil, 1))
	require.Error(t, err)
	typ, _ := harvesterrors.TypeOf(err)
	assert.Equal(t, harvesterrors.ErrorTypeStore, typ)
}

func TestEnsureSchemaDetectsSchemeMismatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// running it twice is fine
	require.NoError(t, s.EnsureSchema(ctx))

	_, err := s.db.ExecContext(ctx, "UPDATE harvest_meta SET value = 'md5-body-v0' WHERE name = ?", schemeKey)
	require.NoError(t, err)

	err = s.EnsureSchema(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemeMismatch)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "postgres", "x")
	require.Error(t, err)
	typ, _ := harvesterrors.TypeOf(err)
	assert.Equal(t, harvesterrors.ErrorTypeConfiguration, typ)
}

func TestReportAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	day1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	day1b := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	replied := newReview("Réponse", "Le service a répondu", &day2, 3)
	replied.HasReply = true

	for _, r := range []review.Review{
		newReview("Top", "Parfait", &day1, 5),
		newReview("Nul", "Carte bloquée", &day1b, 1),
		replied,
		newReview("Avril", "Hors période", &outside, 4),
		newReview("Sans date", "Pas de publication", nil, 2),
	} {
		inserted, err := s.InsertIfNew(ctx, r)
		require.NoError(t, err)
		require.True(t, inserted)
	}

	rep, err := s.Report(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Total)
	assert.InDelta(t, 3.0, rep.AverageRating, 0.0001)
	assert.Equal(t, 1, rep.Replied)
	assert.InDelta(t, 1.0/3.0, rep.ReplyRatio(), 0.0001)
	assert.Equal(t, map[review.Sentiment]int{
		review.SentimentPositive: 1,
		review.SentimentNegative: 1,
		review.SentimentNeutral:  1,
	}, rep.BySentiment)

	want := []DayStat{
		{Day: "2024-03-01", Count: 2, AverageRating: 3},
		{Day: "2024-03-02", Count: 1, AverageRating: 3},
	}
	if diff := cmp.Diff(want, rep.Days); diff != "" {
		t.Errorf("day rollup mismatch (-want +got):\n%s", diff)
	}

	all, err := s.Report(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 5, all.Total)
	assert.Len(t, all.Days, 3)
	assert.Equal(t, 0, Report{}.Total)
	assert.Zero(t, Report{}.ReplyRatio())
}

func TestInsertIfNewStoresExperienceParts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	dated := newReview("Rapide", "Carte reçue en trois jours", nil, 4)
	dated.Experience = &review.ExperienceDate{Year: 2024, Month: time.March, Day: 2}
	undated := newReview("Lent", "Carte jamais reçue", nil, 1)

	for _, r := range []review.Review{dated, undated} {
		inserted, err := s.InsertIfNew(ctx, r)
		require.NoError(t, err)
		require.True(t, inserted)
	}

	var (
		date             sql.NullString
		day, month, year sql.NullInt64
	)
	row := s.db.QueryRowContext(ctx,
		"SELECT experience_date, experience_day, experience_month, experience_year FROM reviews WHERE content_fingerprint = ?",
		dated.Fingerprint)
	require.NoError(t, row.Scan(&date, &day, &month, &year))
	assert.Equal(t, "2024-03-02", date.String)
	assert.Equal(t, date.String, fmt.Sprintf("%04d-%02d-%02d", year.Int64, month.Int64, day.Int64))

	row = s.db.QueryRowContext(ctx,
		"SELECT experience_date, experience_day, experience_month, experience_year FROM reviews WHERE content_fingerprint = ?",
		undated.Fingerprint)
	require.NoError(t, row.Scan(&date, &day, &month, &year))
	assert.False(t, date.Valid)
	assert.False(t, day.Valid)
	assert.False(t, month.Valid)
	assert.False(t, year.Valid)
}
