package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/turnstile/internal/metrics"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_RecordQueries(t *testing.T) {
	m := metrics.New()
	hooks := m.Hooks()
	ctx := context.Background()

	base := domain.EventBase{Type: domain.EventQuery, Automaton: "even"}
	hooks.OnQuery(ctx, &domain.QueryEvent{EventBase: base, Length: 3, Accepted: true, Duration: time.Microsecond})
	hooks.OnQuery(ctx, &domain.QueryEvent{EventBase: base, Length: 2})
	hooks.OnQuery(ctx, &domain.QueryEvent{EventBase: base, Length: 1, Err: errors.New("unknown symbol")})
	hooks.OnStore(ctx, &domain.StoreEvent{Operation: "save"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues("even", metrics.ResultAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues("even", metrics.ResultRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Queries.WithLabelValues("even", metrics.ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreWrites.WithLabelValues("save")))
}

func TestHandler_Exposition(t *testing.T) {
	m := metrics.New()
	m.Hooks().OnQuery(context.Background(), &domain.QueryEvent{
		EventBase: domain.EventBase{Automaton: "peg"},
		Accepted:  true,
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `turnstile_queries_total{automaton="peg",result="accepted"} 1`)
}
