package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"sjsage522/reviewworker/internal/review"
	"sjsage522/reviewworker/logger"
	harvesterrors "sjsage522/reviewworker/pkg/errors"
)

const schemeKey = "fingerprint_scheme"

var _ Store = (*SQLStore)(nil)

// SQLStore implements Store on database/sql
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	log     *logger.Logger
}

// Open connects to the database behind driver ("sqlite" or "mysql")
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	var d dialect
	switch driver {
	case "sqlite":
		d = sqliteDialect
	case "mysql":
		d = mysqlDialect
	default:
		return nil, harvesterrors.NewConfiguration("unsupported store driver "+driver, nil)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, harvesterrors.NewStore("open "+d.name, err)
	}
	if d.name == "sqlite" {
		// a single writer avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, harvesterrors.NewStore("ping "+d.name, err)
	}

	return New(db, d.name), nil
}

// New wraps an open database handle. dialectName selects the SQL variant.
func New(db *sql.DB, dialectName string) *SQLStore {
	d := sqliteDialect
	if dialectName == "mysql" {
		d = mysqlDialect
	}
	return &SQLStore{db: db, dialect: d, log: logger.ForStore()}
}

// EnsureSchema creates the tables and records the fingerprint scheme.
// A database created under a different scheme is rejected.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return harvesterrors.NewStore("create schema", err)
		}
	}

	if _, err := s.db.ExecContext(ctx, s.dialect.insertMeta, schemeKey, review.FingerprintScheme); err != nil {
		return harvesterrors.NewStore("record fingerprint scheme", err)
	}

	var scheme string
	if err := s.db.QueryRowContext(ctx, selectMetaSQL, schemeKey).Scan(&scheme); err != nil {
		return harvesterrors.NewStore("read fingerprint scheme", err)
	}
	if scheme != review.FingerprintScheme {
		return harvesterrors.NewStore(
			fmt.Sprintf("store uses %q, worker computes %q", scheme, review.FingerprintScheme),
			ErrSchemeMismatch,
		)
	}

	s.log.Debug().Str("dialect", s.dialect.name).Str("scheme", scheme).Msg("Schema ready")
	return nil
}

// InsertIfNew adds r inside a transaction. The transaction is rolled back on
// any error.
func (s *SQLStore) InsertIfNew(ctx context.Context, r review.Review) (inserted bool, err error) {
	if !r.Hashable() {
		return false, harvesterrors.NewValidation("review has no content fingerprint")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, harvesterrors.NewStore("begin", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.log.Warn().Err(rbErr).Msg("Rollback failed")
			}
		}
	}()

	res, err := tx.ExecContext(ctx, s.dialect.insert, insertArgs(r)...)
	if err != nil {
		return false, harvesterrors.NewStore("insert review", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, harvesterrors.NewStore("rows affected", err)
	}
	if err = tx.Commit(); err != nil {
		return false, harvesterrors.NewStore("commit", err)
	}
	return n == 1, nil
}

// Report aggregates the records published in [from, to)
func (s *SQLStore) Report(ctx context.Context, from, to time.Time) (Report, error) {
	rep := Report{From: from, To: to, BySentiment: make(map[review.Sentiment]int)}
	where, args := rangeFilter(from, to)

	var avg sql.NullFloat64
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(reportTotalsSQL, where), args...)
	if err := row.Scan(&rep.Total, &avg, &rep.Replied); err != nil {
		return Report{}, harvesterrors.NewStore("report totals", err)
	}
	rep.AverageRating = avg.Float64

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(reportSentimentSQL, where), args...)
	if err != nil {
		return Report{}, harvesterrors.NewStore("report sentiment", err)
	}
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			rows.Close()
			return Report{}, harvesterrors.NewStore("scan sentiment", err)
		}
		rep.BySentiment[review.Sentiment(label)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Report{}, harvesterrors.NewStore("report sentiment", err)
	}

	dayWhere := where
	if dayWhere == "" {
		dayWhere = "WHERE publication_key <> ''"
	}
	rows, err = s.db.QueryContext(ctx, fmt.Sprintf(reportDaysSQL, dayWhere), args...)
	if err != nil {
		return Report{}, harvesterrors.NewStore("report days", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d DayStat
		var dayAvg sql.NullFloat64
		if err := rows.Scan(&d.Day, &d.Count, &dayAvg); err != nil {
			return Report{}, harvesterrors.NewStore("scan day", err)
		}
		d.AverageRating = dayAvg.Float64
		rep.Days = append(rep.Days, d)
	}
	if err := rows.Err(); err != nil {
		return Report{}, harvesterrors.NewStore("report days", err)
	}
	return rep, nil
}

// Close closes the database handle
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rangeFilter builds the publication window clause. Records without a
// publication time are outside any bounded window.
func rangeFilter(from, to time.Time) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "publication_key >= ?")
		args = append(args, review.FormatTimestamp(from))
	}
	if !to.IsZero() {
		conds = append(conds, "publication_key < ?", "publication_key <> ''")
		args = append(args, review.FormatTimestamp(to))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func insertArgs(r review.Review) []any {
	return []any{
		r.PublicationKey(),
		valTime(r.PublishedAt),
		valStr(r.ReviewerName),
		valInt(r.ReviewerReviewCount),
		valStr(r.Language),
		valInt(r.Rating),
		valDate(r.Experience),
		valExperience(r.Experience, func(d review.ExperienceDate) int { return d.Day }),
		valExperience(r.Experience, func(d review.ExperienceDate) int { return int(d.Month) }),
		valExperience(r.Experience, func(d review.ExperienceDate) int { return d.Year }),
		valStr(r.Title),
		valStr(r.Content),
		r.Invited,
		r.Fingerprint,
		valSentiment(r.Sentiment),
		r.HasReply,
		valTime(r.RepliedAt),
		review.FormatTimestamp(r.ScrapedAt),
	}
}

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func valTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return review.FormatTimestamp(*p)
}

func valDate(p *review.ExperienceDate) any {
	if p == nil {
		return nil
	}
	return p.String()
}

func valExperience(p *review.ExperienceDate, part func(review.ExperienceDate) int) any {
	if p == nil {
		return nil
	}
	return part(*p)
}

func valSentiment(s review.Sentiment) any {
	if s == "" {
		return nil
	}
	return string(s)
}
