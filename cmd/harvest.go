package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sjsage522/reviewworker/internal/crawler"
	"sjsage522/reviewworker/logger"
	"sjsage522/reviewworker/services/harvester"
	"sjsage522/reviewworker/services/metrics"
)

func (a *app) harvestCmd() *cobra.Command {
	var (
		maxPages int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Walk the review listing and store every new review",
		Long: `harvest fetches listing pages from page 1 until a page holds no review,
stores each review not seen before and prints a summary of the run.
With --interval the harvest repeats until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			if !cmd.Flags().Changed("max-pages") {
				maxPages = cfg.MaxPages
			}
			if !cmd.Flags().Changed("interval") {
				interval = cfg.CrawlInterval
			}

			ctx := cmd.Context()
			services, err := initializeServices(ctx, &cfg, true)
			if err != nil {
				return err
			}
			defer services.Cleanup()

			if srv := metrics.Serve(cfg.MetricsAddr, metrics.InitRegistry()); srv != nil {
				defer srv.Close()
			}

			selectors := crawler.DefaultSelectors()
			h := harvester.New(
				cfg,
				crawler.NewFetcher(cfg, selectors, services.Cache),
				crawler.NewExtractor(selectors, cfg.Locale),
				services.Store,
				services.Publisher,
			)

			logger.ForHarvester().Info().
				Str("environment", cfg.Environment).
				Str("url", cfg.BaseURL).
				Int("max_pages", maxPages).
				Dur("interval", interval).
				Msg("Starting review harvest")

			out := cmd.OutOrStdout()
			w := harvester.NewWorker(h, interval, maxPages, func(s harvester.Summary) {
				printSummary(out, s)
			})
			return w.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "stop after this many pages (0 walks the whole listing, default MAX_PAGES)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "repeat the harvest on this interval (default CRAWL_INTERVAL_SECONDS)")
	return cmd
}

func printSummary(w io.Writer, s harvester.Summary) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "HARVEST REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, s.String())
	fmt.Fprintln(w, rule)
}
