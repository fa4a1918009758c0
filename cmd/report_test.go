package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/reviewworker/internal/review"
	"sjsage522/reviewworker/services/store"
)

func TestParseWindow(t *testing.T) {
	start, end, err := parseWindow("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), end)

	start, end, err = parseWindow("", "")
	require.NoError(t, err)
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())

	_, _, err = parseWindow("01/03/2024", "")
	assert.Error(t, err)

	_, _, err = parseWindow("2024-03-05", "2024-03-01")
	assert.Error(t, err)
}

func TestRenderReport(t *testing.T) {
	rep := store.Report{
		From:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:            time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Total:         4,
		AverageRating: 3.25,
		Replied:       1,
		BySentiment: map[review.Sentiment]int{
			review.SentimentPositive: 2,
			review.SentimentNegative: 2,
		},
		Days: []store.DayStat{
			{Day: "2024-03-01", Count: 3, AverageRating: 3},
			{Day: "2024-03-02", Count: 1, AverageRating: 4},
		},
	}

	var buf bytes.Buffer
	renderReport(&buf, rep)
	out := buf.String()

	assert.Contains(t, out, "Reviews 2024-03-01 to 2024-03-02")
	assert.Contains(t, out, "3.25")
	assert.Contains(t, out, "1 (25.0%)")
	assert.Contains(t, out, "2024-03-02")
	assert.Contains(t, out, "4.00")
}

func TestRenderEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	renderReport(&buf, store.Report{})

	out := buf.String()
	assert.Contains(t, out, "Reviews beginning to now")
	assert.Contains(t, out, "0 (0.0%)")
	assert.NotContains(t, out, "DAY")
}
