// Package review holds the canonical review record and the pure functions
// that derive its normalized fields.
package review

import (
	"fmt"
	"time"
)

// ExperienceDate is the calendar date of the reviewed experience
type ExperienceDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// Time returns the date at midnight UTC
func (d ExperienceDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String renders the date as YYYY-MM-DD
func (d ExperienceDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Review is one harvested review.
// Optional fields are nil when extraction could not determine them.
type Review struct {
	PublishedAt         *time.Time      `json:"published_at,omitempty"`
	ReviewerName        *string         `json:"reviewer_name,omitempty"`
	ReviewerReviewCount *int            `json:"reviewer_review_count,omitempty"`
	Language            *string         `json:"original_language,omitempty"`
	Rating              *int            `json:"rating,omitempty"`
	Experience          *ExperienceDate `json:"experience,omitempty"`
	Title               *string         `json:"title,omitempty"`
	Content             *string         `json:"content,omitempty"`
	Invited             bool            `json:"is_invited"`
	Fingerprint         string          `json:"content_fingerprint,omitempty"`
	Sentiment           Sentiment       `json:"sentiment,omitempty"`
	HasReply            bool            `json:"has_reply"`
	RepliedAt           *time.Time      `json:"reply_timestamp,omitempty"`
	ScrapedAt           time.Time       `json:"scrape_timestamp"`
}

// Fields are the raw values extracted from one review fragment
type Fields struct {
	PublishedAt         *time.Time
	ReviewerName        *string
	ReviewerReviewCount *int
	Language            *string
	Rating              *int
	Experience          *ExperienceDate
	Title               *string
	Body                *string
	Invited             bool
	HasReply            bool
	RepliedAt           *time.Time
}

// New assembles a Review from extracted fields.
// The title stands in for a missing body, the fingerprint is computed from
// title and body, and the sentiment is derived from the rating.
func New(f Fields, scrapedAt time.Time) Review {
	content := f.Body
	if content == nil {
		content = f.Title
	}

	var repliedAt *time.Time
	if f.HasReply {
		repliedAt = f.RepliedAt
	}

	return Review{
		PublishedAt:         f.PublishedAt,
		ReviewerName:        f.ReviewerName,
		ReviewerReviewCount: f.ReviewerReviewCount,
		Language:            f.Language,
		Rating:              f.Rating,
		Experience:          f.Experience,
		Title:               f.Title,
		Content:             content,
		Invited:             f.Invited,
		Fingerprint:         Fingerprint(deref(f.Title), deref(f.Body)),
		Sentiment:           Classify(f.Rating),
		HasReply:            f.HasReply,
		RepliedAt:           repliedAt,
		ScrapedAt:           scrapedAt.UTC(),
	}
}

// Hashable reports whether the review carries its natural key
func (r Review) Hashable() bool {
	return r.Fingerprint != ""
}

// PublicationKey is the publication half of the uniqueness key.
// An absent publication timestamp maps to the empty string.
func (r Review) PublicationKey() string {
	if r.PublishedAt == nil {
		return ""
	}
	return FormatTimestamp(*r.PublishedAt)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
