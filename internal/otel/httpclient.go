package otel

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultClientTimeout bounds every outbound call to the file host, identity provider,
// Instagram and the build webhook.
const DefaultClientTimeout = 30 * time.Second

// NewHTTPClient returns an HTTP client whose requests are traced as client spans.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewTransport(),
	}
}

// NewTransport returns the default transport wrapped for tracing.
func NewTransport() http.RoundTripper {
	return otelhttp.NewTransport(http.DefaultTransport)
}
