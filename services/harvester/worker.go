package harvester

import (
	"context"
	"time"

	"sjsage522/reviewworker/logger"
)

// Worker repeats harvest runs on a fixed interval
type Worker struct {
	harvester *Harvester
	interval  time.Duration
	maxPages  int
	onSummary func(Summary)
	log       *logger.Logger
}

// NewWorker creates a worker. onSummary, when set, receives every run's summary.
func NewWorker(h *Harvester, interval time.Duration, maxPages int, onSummary func(Summary)) *Worker {
	return &Worker{
		harvester: h,
		interval:  interval,
		maxPages:  maxPages,
		onSummary: onSummary,
		log:       logger.ForHarvester(),
	}
}

// Start runs a harvest, then waits for the interval, until ctx is done.
// With a non-positive interval it runs once. A store failure ends the loop.
func (w *Worker) Start(ctx context.Context) error {
	for {
		start := time.Now()
		sum, err := w.harvester.Run(ctx, w.maxPages)
		if w.onSummary != nil {
			w.onSummary(sum)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		w.log.Info().Dur("elapsed", time.Since(start)).Int("new", sum.NewReviews).Msg("Harvest cycle done")

		if w.interval <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.interval):
		}
	}
}
