package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/reviewworker/services/metrics"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := metrics.InitRegistry()

	metrics.ObservePage("fragments")
	metrics.ObserveReview("new")
	metrics.ObserveFetch("ok", 12*time.Millisecond)
	metrics.ObserveRun("empty_page")

	rr := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, `reviewworker_pages_total{outcome="fragments"}`)
	assert.Contains(t, out, `reviewworker_reviews_total{result="new"}`)
	assert.Contains(t, out, "reviewworker_fetch_duration_seconds")
	assert.Contains(t, out, `reviewworker_runs_total{stop_reason="empty_page"}`)
}

func TestServeDisabled(t *testing.T) {
	assert.Nil(t, metrics.Serve("", metrics.InitRegistry()))
}
