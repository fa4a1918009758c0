package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/reviewworker/config"
	"sjsage522/reviewworker/helpers"
	"sjsage522/reviewworker/logger"
	harvesterrors "sjsage522/reviewworker/pkg/errors"
	"sjsage522/reviewworker/services/cache"
	"sjsage522/reviewworker/services/metrics"
)

// Outcome classifies the result of fetching one listing page
type Outcome int

const (
	// OutcomeFragments means the page held at least one review
	OutcomeFragments Outcome = iota
	// OutcomeEmpty means the page was served but held no reviews
	OutcomeEmpty
	// OutcomeFailed means the page could not be retrieved or parsed
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFragments:
		return "fragments"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchResult is what one page fetch produced
type FetchResult struct {
	Page      int
	URL       string
	Outcome   Outcome
	Fragments []Node
	Err       error
}

// Fetcher retrieves listing pages and splits them into review fragments
type Fetcher struct {
	BaseURL   string
	UserAgent string
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration
	Selectors Selectors

	client *http.Client
	log    *logger.Logger
}

// NewFetcher creates a fetcher for the configured listing
func NewFetcher(cfg config.Config, selectors Selectors, cacheSvc cache.CacheService) *Fetcher {
	return &Fetcher{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		CacheKey:  cfg.RateLimitKey,
		CacheSvc:  cacheSvc,
		BlockTime: cfg.BlockTime,
		Selectors: selectors,
		client:    helpers.NewClient(cfg.FetchTimeout),
		log:       logger.ForFetcher(),
	}
}

// Fetch issues one GET for the given page index
func (f *Fetcher) Fetch(ctx context.Context, page int) FetchResult {
	result := FetchResult{Page: page}

	pageURL, err := helpers.PageURL(f.BaseURL, page)
	if err != nil {
		return f.failed(result, harvesterrors.NewParsing(page, "invalid page url", err))
	}
	result.URL = pageURL

	if f.blocked() {
		return f.failed(result, harvesterrors.NewRateLimit(page, f.BlockTime))
	}

	start := time.Now()
	body, err := helpers.FetchWithHeaders(ctx, f.client, pageURL, f.UserAgent)
	metrics.ObserveFetch(fetchStatus(err), time.Since(start))
	if err != nil {
		var statusErr *helpers.StatusError
		if errors.As(err, &statusErr) {
			if statusErr.RateLimited() {
				f.block(page)
				return f.failed(result, harvesterrors.NewRateLimit(page, f.BlockTime))
			}
			if statusErr.PastEnd() {
				result.Outcome = OutcomeEmpty
				f.log.Info().Int("page", page).Int("status", statusErr.StatusCode).Msg("Page not found, end of listing")
				return result
			}
		}
		return f.failed(result, harvesterrors.NewNetwork(page, "fetch failed", err))
	}

	fragments, err := f.fragments(body)
	if err != nil {
		return f.failed(result, harvesterrors.NewParsing(page, "html parse failed", err))
	}

	result.Fragments = fragments
	if len(fragments) == 0 {
		result.Outcome = OutcomeEmpty
		f.log.Info().Int("page", page).Str("url", pageURL).Msg("No review containers found")
	} else {
		result.Outcome = OutcomeFragments
		f.log.Debug().Int("page", page).Int("fragments", len(fragments)).Msg("Page fetched")
	}
	return result
}

// fragments parses the document and returns the article of every review card
func (f *Fetcher) fragments(body io.Reader) ([]Node, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("HTML parse error: %w", err)
	}

	var cards *goquery.Selection
	for _, selector := range f.Selectors.CardList {
		cards = doc.Find(selector)
		if cards.Length() > 0 {
			break
		}
	}
	if cards == nil {
		return nil, nil
	}

	var fragments []Node
	cards.Each(func(i int, card *goquery.Selection) {
		article := card
		if !card.Is(f.Selectors.Article) {
			article = card.Find(f.Selectors.Article).First()
		}
		if article.Length() == 0 {
			f.log.Warn().Int("card", i).Msg("Review card without article, skipped")
			return
		}
		fragments = append(fragments, NewNode(article))
	})
	return fragments, nil
}

func (f *Fetcher) failed(result FetchResult, err error) FetchResult {
	result.Outcome = OutcomeFailed
	result.Err = err
	f.log.Warn().Err(err).Int("page", result.Page).Msg("Page fetch failed")
	return result
}

// blocked reports whether a previous rate-limit response is still in effect
func (f *Fetcher) blocked() bool {
	if f.CacheSvc == nil || f.CacheKey == "" {
		return false
	}
	_, err := f.CacheSvc.Get(f.CacheKey)
	return err == nil
}

func (f *Fetcher) block(page int) {
	if f.CacheSvc == nil || f.CacheKey == "" {
		return
	}
	value := []byte(strconv.Itoa(int(f.BlockTime / time.Second)))
	if err := f.CacheSvc.Set(f.CacheKey, value, f.BlockTime); err != nil {
		f.log.Warn().Err(harvesterrors.NewCache("failed to store rate-limit marker", err)).Int("page", page).Msg("Rate limit not recorded")
	}
}

func fetchStatus(err error) string {
	if err == nil {
		return "ok"
	}
	var statusErr *helpers.StatusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.StatusCode)
	}
	return "error"
}
