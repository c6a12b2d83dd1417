// Package mediaflow carries the MediaFlow proxy settings through a request context
// and builds the redirect URLs that route playback through the proxy.
package mediaflow

import (
	"context"
	"net/url"
	"strings"
)

// Config holds the proxy endpoint and its API password.
type Config struct {
	URL      string
	Password string
}

// Enabled reports whether both the endpoint and the password are set.
func (c Config) Enabled() bool {
	return c.URL != "" && c.Password != ""
}

type contextKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the proxy settings carried by ctx, if any.
func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(contextKey{}).(Config)
	return cfg, ok
}

// Supported reports whether requests under ctx may be routed through the proxy.
func Supported(ctx context.Context) bool {
	cfg, ok := FromContext(ctx)
	return ok && cfg.Enabled()
}

// ExtractorRedirectURL builds a URL that asks the proxy to run its own extractor for host
// against target and redirect to the resulting stream.
// Callers must check Supported first; without a config the result is relative.
func ExtractorRedirectURL(ctx context.Context, host string, target *url.URL) *url.URL {
	cfg, _ := FromContext(ctx)

	u, err := url.Parse(strings.TrimRight(cfg.URL, "/") + "/extractor/video")
	if err != nil {
		u = &url.URL{Path: "/extractor/video"}
	}

	q := url.Values{}
	q.Set("host", host)
	q.Set("api_password", cfg.Password)
	q.Set("d", target.String())
	q.Set("redirect_stream", "true")
	u.RawQuery = q.Encode()

	return u
}
