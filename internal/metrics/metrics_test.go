package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/metrics"
)

func TestPrometheusProvider_ExposesRecordedInstruments(t *testing.T) {
	mp, handler, err := metrics.NewPrometheusProvider()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := metrics.New(mp)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordMutation(ctx, "create")
	m.RecordPersist(ctx, "create", 5*time.Millisecond, nil)
	m.RecordPersist(ctx, "update", time.Millisecond, errors.New("disk full"))
	m.RecordCacheLookup(ctx, true)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "tripplanner_store_mutations")
	assert.Contains(t, text, "tripplanner_store_persist_failures")
	assert.Contains(t, text, "tripplanner_store_persist_duration_seconds")
	assert.Contains(t, text, "tripplanner_insights_cache_lookups")
	assert.Contains(t, text, `op="update"`)
}

func TestNoop_DoesNotPanic(t *testing.T) {
	m := metrics.Noop()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordMutation(ctx, "delete")
		m.RecordPersist(ctx, "delete", time.Second, errors.New("x"))
		m.RecordCacheLookup(ctx, false)
	})
}
