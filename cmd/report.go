package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"sjsage522/reviewworker/internal/review"
	"sjsage522/reviewworker/services/store"
)

const dayLayout = "2006-01-02"

func (a *app) reportCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print rating, sentiment and reply statistics of the stored reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseWindow(from, to)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			services, err := initializeServices(ctx, a.cfg, false)
			if err != nil {
				return err
			}
			defer services.Cleanup()

			rep, err := services.Store.Report(ctx, start, end)
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first publication day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last publication day to include (YYYY-MM-DD)")
	return cmd
}

// parseWindow turns inclusive day flags into a [start, end) window
func parseWindow(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	if from != "" {
		t, err := time.ParseInLocation(dayLayout, from, time.UTC)
		if err != nil {
			return start, end, fmt.Errorf("invalid --from %q: %w", from, err)
		}
		start = t
	}
	if to != "" {
		t, err := time.ParseInLocation(dayLayout, to, time.UTC)
		if err != nil {
			return start, end, fmt.Errorf("invalid --to %q: %w", to, err)
		}
		end = t.AddDate(0, 0, 1)
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		return start, end, fmt.Errorf("--from %s is after --to %s", from, to)
	}
	return start, end, nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func renderReport(w io.Writer, rep store.Report) {
	fmt.Fprintln(w, "Reviews "+windowLabel(rep))
	totals := newTable(w)
	totals.AppendHeader(table.Row{"Metric", "Value"})
	totals.AppendRows([]table.Row{
		{"Total", rep.Total},
		{"Average rating", fmt.Sprintf("%.2f", rep.AverageRating)},
		{"Positive", rep.BySentiment[review.SentimentPositive]},
		{"Neutral", rep.BySentiment[review.SentimentNeutral]},
		{"Negative", rep.BySentiment[review.SentimentNegative]},
		{"Replied", fmt.Sprintf("%d (%.1f%%)", rep.Replied, rep.ReplyRatio()*100)},
	})
	totals.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	totals.Render()

	if len(rep.Days) == 0 {
		return
	}

	days := newTable(w)
	days.AppendHeader(table.Row{"Day", "Reviews", "Average rating"})
	for _, d := range rep.Days {
		days.AppendRow(table.Row{d.Day, d.Count, fmt.Sprintf("%.2f", d.AverageRating)})
	}
	days.AppendFooter(table.Row{"", rep.Total - undated(rep), ""})
	days.Render()
}

func undated(rep store.Report) int {
	n := rep.Total
	for _, d := range rep.Days {
		n -= d.Count
	}
	return n
}

func windowLabel(rep store.Report) string {
	from, to := "beginning", "now"
	if !rep.From.IsZero() {
		from = rep.From.Format(dayLayout)
	}
	if !rep.To.IsZero() {
		to = rep.To.AddDate(0, 0, -1).Format(dayLayout)
	}
	return from + " to " + to
}
