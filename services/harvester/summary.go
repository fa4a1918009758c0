package harvester

import (
	"fmt"
	"strings"

	"sjsage522/reviewworker/helpers"
	"sjsage522/reviewworker/internal/review"
)

const (
	// PreviewLimit caps the added reviews listed in a summary
	PreviewLimit = 10

	excerptRunes = 50
)

// StopReason tells why a run ended
type StopReason string

const (
	StopEmpty      StopReason = "empty_page"
	StopMaxPages   StopReason = "max_pages"
	StopFailed     StopReason = "fetch_failed"
	StopStoreError StopReason = "store_error"
	StopCancelled  StopReason = "cancelled"
)

// AddedReview is the preview line of a newly stored review
type AddedReview struct {
	Name        string
	PublishedAt string
	Excerpt     string
}

// Summary accumulates the counters of one run
type Summary struct {
	// PagesVisited counts served pages, the closing empty page included
	PagesVisited int
	NewReviews   int
	Duplicates   int
	Dropped      int
	Added        []AddedReview
	StopReason   StopReason
	LastPage     int
	Err          error
}

// Truncated reports whether the run ended before the listing was exhausted
func (s Summary) Truncated() bool {
	return s.StopReason == StopFailed || s.StopReason == StopStoreError || s.StopReason == StopCancelled
}

func (s *Summary) add(r review.Review) {
	s.NewReviews++
	if len(s.Added) >= PreviewLimit {
		return
	}
	entry := AddedReview{Name: "N/A", PublishedAt: "N/A", Excerpt: "N/A"}
	if r.ReviewerName != nil {
		entry.Name = *r.ReviewerName
	}
	if r.PublishedAt != nil {
		entry.PublishedAt = review.FormatTimestamp(*r.PublishedAt)
	}
	if r.Content != nil {
		entry.Excerpt = helpers.Excerpt(*r.Content, excerptRunes)
	}
	s.Added = append(s.Added, entry)
}

// String renders the run report
func (s Summary) String() string {
	var b strings.Builder

	switch s.StopReason {
	case StopEmpty:
		if s.LastPage > 1 {
			fmt.Fprintf(&b, "Harvest finished: no more reviews after page %d.\n", s.LastPage-1)
		} else {
			b.WriteString("Harvest finished.\n")
		}
	case StopMaxPages:
		fmt.Fprintf(&b, "Harvest finished: page limit reached after page %d.\n", s.LastPage)
	case StopFailed:
		fmt.Fprintf(&b, "Harvest truncated: page %d could not be fetched (%v).\n", s.LastPage, s.Err)
	case StopStoreError:
		fmt.Fprintf(&b, "Harvest aborted on page %d: %v\n", s.LastPage, s.Err)
	case StopCancelled:
		fmt.Fprintf(&b, "Harvest cancelled on page %d.\n", s.LastPage)
	default:
		b.WriteString("Harvest finished.\n")
	}

	fmt.Fprintf(&b, "%d new reviews added to the store.\n", s.NewReviews)
	if s.Duplicates > 0 || s.Dropped > 0 {
		fmt.Fprintf(&b, "%d already stored, %d dropped without fingerprint.\n", s.Duplicates, s.Dropped)
	}

	if len(s.Added) == 0 {
		b.WriteString("No new review this time.")
		return b.String()
	}

	b.WriteString("\nNew reviews:\n")
	for i, a := range s.Added {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  - Name: %s, Published: %s, Excerpt: %s", a.Name, a.PublishedAt, a.Excerpt)
	}
	if s.NewReviews > PreviewLimit {
		fmt.Fprintf(&b, "\n  (limited to the first %d added reviews)", PreviewLimit)
	}
	return b.String()
}
