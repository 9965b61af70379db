package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openzipkin/zipkin-go/reporter/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveHTTPAndUpstream(t *testing.T) {
	t.Parallel()
	m := NewMetrics("farcaster")

	m.ObserveHTTP(http.MethodGet, "/lookup-user", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "/lookup-user", http.StatusOK, 30*time.Millisecond)
	m.ObserveUpstream("base", "get_transaction_count", "error", time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `farcaster_http_requests_total{method="GET",route="/lookup-user",status="200"} 2`)
	assert.Contains(t, body, `farcaster_upstream_calls_total{operation="get_transaction_count",outcome="error",provider="base"} 1`)
	assert.Contains(t, body, `farcaster_http_request_duration_seconds_count{method="GET",route="/lookup-user"} 2`)
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()
	m := NewMetrics("farcaster")
	m.ObserveUpstream("neynar", "user_by_fid", "success", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `farcaster_upstream_calls_total{operation="user_by_fid",outcome="success",provider="neynar"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}

func TestTracing_DisabledIsPassThrough(t *testing.T) {
	t.Parallel()
	tr, err := NewTracing("svc", "localhost:8080", "")
	require.NoError(t, err)
	require.Nil(t, tr)

	called := false
	h := tr.ServerMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)

	rt, err := tr.WrapTransport(http.DefaultTransport)
	require.NoError(t, err)
	assert.Equal(t, http.DefaultTransport, rt)
	assert.NoError(t, tr.Close())
}

func TestTracing_RecordsServerSpans(t *testing.T) {
	t.Parallel()
	rep := recorder.NewReporter()
	tr, err := newTracing("farcaster-neynar", "localhost:8080", rep)
	require.NoError(t, err)

	h := tr.ServerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	spans := rep.Flush()
	require.Len(t, spans, 1)
	assert.Equal(t, "farcaster-neynar", spans[0].LocalEndpoint.ServiceName)
}
