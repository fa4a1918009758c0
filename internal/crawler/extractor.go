package crawler

import (
	"time"

	"sjsage522/reviewworker/config"
	"sjsage522/reviewworker/internal/review"
	"sjsage522/reviewworker/logger"
)

// Extractor turns one review fragment into a review record
type Extractor struct {
	chains fieldChains
	log    *logger.Logger
}

// NewExtractor creates an extractor for the given template and locale
func NewExtractor(selectors Selectors, locale config.Locale) *Extractor {
	return &Extractor{
		chains: newFieldChains(selectors, locale, review.NewDateNormalizer(locale)),
		log:    logger.ForExtractor(),
	}
}

// Extract runs every field chain independently over the fragment.
// Fields no strategy could read are left absent.
func (e *Extractor) Extract(fragment Node, scrapedAt time.Time) review.Review {
	var (
		f       review.Fields
		missing []string
		c       = e.chains
	)

	if v, _, ok := c.publishedAt.Apply(fragment); ok {
		f.PublishedAt = &v
	} else {
		missing = append(missing, "published_at")
	}
	if v, _, ok := c.name.Apply(fragment); ok {
		f.ReviewerName = &v
	} else {
		missing = append(missing, "reviewer_name")
	}
	if v, _, ok := c.reviewCount.Apply(fragment); ok {
		f.ReviewerReviewCount = &v
	}
	if v, _, ok := c.language.Apply(fragment); ok {
		f.Language = &v
	}
	if v, _, ok := c.rating.Apply(fragment); ok {
		f.Rating = &v
	} else {
		missing = append(missing, "rating")
	}
	if v, _, ok := c.experience.Apply(fragment); ok {
		f.Experience = &v
	}
	if v, _, ok := c.title.Apply(fragment); ok {
		f.Title = &v
	}
	if v, _, ok := c.content.Apply(fragment); ok {
		f.Body = &v
	} else {
		missing = append(missing, "content")
	}
	f.Invited, _, _ = c.invited.Apply(fragment)
	f.HasReply, _, _ = c.hasReply.Apply(fragment)
	if v, _, ok := c.repliedAt.Apply(fragment); ok {
		f.RepliedAt = &v
	}

	if len(missing) > 0 {
		e.log.Debug().Strs("missing", missing).Msg("Review fragment partially extracted")
	}

	return review.New(f, scrapedAt)
}
