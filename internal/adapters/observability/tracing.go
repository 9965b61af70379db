package observability

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/middleware/http"
	"github.com/openzipkin/zipkin-go/reporter"
	httpreporter "github.com/openzipkin/zipkin-go/reporter/http"
)

// Tracing bundles a Zipkin tracer with its span reporter. A nil *Tracing is
// valid and disables tracing.
type Tracing struct {
	tracer   *zipkin.Tracer
	reporter reporter.Reporter
}

// NewTracing reports spans to collectorURL (for example
// http://zipkin:9411/api/v2/spans). An empty URL returns nil, nil.
func NewTracing(serviceName, hostPort, collectorURL string) (*Tracing, error) {
	if strings.TrimSpace(collectorURL) == "" {
		return nil, nil
	}
	return newTracing(serviceName, hostPort, httpreporter.NewReporter(collectorURL))
}

func newTracing(serviceName, hostPort string, rep reporter.Reporter) (*Tracing, error) {
	endpoint, err := zipkin.NewEndpoint(serviceName, hostPort)
	if err != nil {
		_ = rep.Close()
		return nil, fmt.Errorf("zipkin endpoint: %w", err)
	}
	tracer, err := zipkin.NewTracer(rep, zipkin.WithLocalEndpoint(endpoint))
	if err != nil {
		_ = rep.Close()
		return nil, fmt.Errorf("zipkin tracer: %w", err)
	}
	return &Tracing{tracer: tracer, reporter: rep}, nil
}

// ServerMiddleware traces inbound requests. Without tracing it is a pass-through.
func (t *Tracing) ServerMiddleware() func(http.Handler) http.Handler {
	if t == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return zipkinhttp.NewServerMiddleware(t.tracer, zipkinhttp.TagResponseSize(true))
}

// WrapTransport traces outbound calls made through base.
func (t *Tracing) WrapTransport(base http.RoundTripper) (http.RoundTripper, error) {
	if t == nil {
		return base, nil
	}
	return zipkinhttp.NewTransport(t.tracer, zipkinhttp.RoundTripper(base), zipkinhttp.TransportTrace(false))
}

func (t *Tracing) Close() error {
	if t == nil {
		return nil
	}
	return t.reporter.Close()
}

var _ io.Closer = (*Tracing)(nil)
