package harvester

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"sjsage522/reviewworker/config"
	"sjsage522/reviewworker/internal/crawler"
	"sjsage522/reviewworker/internal/review"
	"sjsage522/reviewworker/logger"
	harvesterrors "sjsage522/reviewworker/pkg/errors"
	"sjsage522/reviewworker/services/metrics"
	"sjsage522/reviewworker/services/publisher"
)

// StreamKey is the field under which reviews are published
const StreamKey = "b64_review"

// PageSource fetches one listing page
type PageSource interface {
	Fetch(ctx context.Context, page int) crawler.FetchResult
}

// ReviewExtractor turns a fragment into a review
type ReviewExtractor interface {
	Extract(fragment crawler.Node, scrapedAt time.Time) review.Review
}

// Sink stores reviews idempotently
type Sink interface {
	InsertIfNew(ctx context.Context, r review.Review) (bool, error)
}

// Harvester walks the listing page by page until it runs dry
type Harvester struct {
	source     PageSource
	extractor  ReviewExtractor
	sink       Sink
	publisher  publisher.Publisher
	limiter    *rate.Limiter
	retries    int
	retryDelay time.Duration
	now        func() time.Time
	log        *logger.Logger
}

// New creates a harvester. pub may be nil to disable the record stream.
func New(cfg config.Config, source PageSource, extractor ReviewExtractor, sink Sink, pub publisher.Publisher) *Harvester {
	limit := rate.Inf
	if cfg.PageDelay > 0 {
		limit = rate.Every(cfg.PageDelay)
	}
	return &Harvester{
		source:     source,
		extractor:  extractor,
		sink:       sink,
		publisher:  pub,
		limiter:    rate.NewLimiter(limit, 1),
		retries:    cfg.FetchRetries,
		retryDelay: cfg.PageDelay,
		now:        time.Now,
		log:        logger.ForHarvester(),
	}
}

// Run harvests from page 1 until a page yields no review. maxPages > 0
// bounds the run. Store failures abort the run and are returned along with
// the partial summary; fetch failures end it with a truncated summary.
func (h *Harvester) Run(ctx context.Context, maxPages int) (sum Summary, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveRun(string(sum.StopReason))
		h.trimStreams()
		h.log.Info().
			Str("stop_reason", string(sum.StopReason)).
			Int("pages", sum.PagesVisited).
			Int("new", sum.NewReviews).
			Int("duplicates", sum.Duplicates).
			Int("dropped", sum.Dropped).
			Dur("elapsed", time.Since(start)).
			Msg("Harvest run finished")
	}()

	for page := 1; ; page++ {
		if maxPages > 0 && page > maxPages {
			sum.StopReason = StopMaxPages
			return sum, nil
		}
		if err := h.limiter.Wait(ctx); err != nil {
			sum.StopReason = StopCancelled
			return sum, err
		}

		sum.LastPage = page
		result := h.fetch(ctx, page)
		metrics.ObservePage(result.Outcome.String())
		if result.Outcome != crawler.OutcomeFailed {
			sum.PagesVisited++
		}

		switch result.Outcome {
		case crawler.OutcomeEmpty:
			sum.StopReason = StopEmpty
			return sum, nil
		case crawler.OutcomeFailed:
			if ctx.Err() != nil {
				sum.StopReason = StopCancelled
				return sum, ctx.Err()
			}
			sum.StopReason = StopFailed
			sum.Err = result.Err
			h.log.Warn().Err(result.Err).Int("page", page).Msg("Stopping run, page unavailable")
			return sum, nil
		}

		scrapedAt := h.now()
		for _, fragment := range result.Fragments {
			if err := h.persist(ctx, fragment, scrapedAt, &sum); err != nil {
				sum.StopReason = StopStoreError
				sum.Err = err
				return sum, fmt.Errorf("page %d: %w", page, err)
			}
		}
		h.log.Debug().Int("page", page).Int("fragments", len(result.Fragments)).Int("new_total", sum.NewReviews).Msg("Page harvested")
	}
}

// fetch retries transient failures with a constant delay
func (h *Harvester) fetch(ctx context.Context, page int) crawler.FetchResult {
	var result crawler.FetchResult

	operation := func() error {
		result = h.source.Fetch(ctx, page)
		if result.Outcome != crawler.OutcomeFailed {
			return nil
		}
		if result.Err == nil {
			result.Err = harvesterrors.NewNetwork(page, "fetch failed", nil)
		}
		if !harvesterrors.IsRetryable(result.Err) {
			return backoff.Permanent(result.Err)
		}
		return result.Err
	}
	notify := func(err error, wait time.Duration) {
		h.log.Warn().Err(err).Int("page", page).Dur("retry_in", wait).Msg("Retrying page fetch")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(h.retryDelay), uint64(max(h.retries, 0))),
		ctx,
	)
	_ = backoff.RetryNotify(operation, policy, notify)
	return result
}

func (h *Harvester) persist(ctx context.Context, fragment crawler.Node, scrapedAt time.Time, sum *Summary) error {
	r := h.extractor.Extract(fragment, scrapedAt)
	if !r.Hashable() {
		sum.Dropped++
		metrics.ObserveReview("dropped")
		name := "N/A"
		if r.ReviewerName != nil {
			name = *r.ReviewerName
		}
		h.log.Warn().Str("reviewer", name).Msg("Review has no content fingerprint, not stored")
		return nil
	}

	inserted, err := h.sink.InsertIfNew(ctx, r)
	if err != nil {
		var he *harvesterrors.HarvestError
		if !errors.As(err, &he) {
			err = harvesterrors.NewStore("insert review", err)
		}
		return err
	}
	if !inserted {
		sum.Duplicates++
		metrics.ObserveReview("duplicate")
		return nil
	}

	sum.add(r)
	metrics.ObserveReview("new")
	h.publish(r)
	return nil
}

func (h *Harvester) publish(r review.Review) {
	if h.publisher == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		logger.LogError("publisher", err, "encode review %s", r.Fingerprint)
		return
	}
	if err := h.publisher.Publish(StreamKey, data); err != nil {
		logger.LogError("publisher", err, "publish review %s", r.Fingerprint)
	}
}

func (h *Harvester) trimStreams() {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.TrimStreams(); err != nil {
		logger.LogError("publisher", err, "stream trimming failed")
	}
}
