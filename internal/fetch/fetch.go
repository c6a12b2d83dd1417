// Package fetch retrieves remote pages as text for the extractors.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"reel/internal/httputil"
)

// maxBodySize caps how much of a page or script is read into memory.
const maxBodySize = 5 * 1024 * 1024

// ErrNotFound is returned (wrapped) when the remote host answers 404.
var ErrNotFound = errors.New("not found")

// Fetcher performs a GET and returns the response body.
type Fetcher interface {
	Text(ctx context.Context, u *url.URL, opts ...Option) (string, error)
}

// Options are per-request settings.
type Options struct {
	Headers map[string]string
}

// Option mutates Options.
type Option func(*Options)

// WithHeader sets a request header.
func WithHeader(key, value string) Option {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// WithReferer sets the Referer header.
func WithReferer(referer string) Option {
	return WithHeader("Referer", referer)
}

// Apply folds opts into a fresh Options value.
func Apply(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

// Unwrap makes a 404 match ErrNotFound.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// HTTP is the production Fetcher.
type HTTP struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	log       logrus.FieldLogger
}

// Config configures an HTTP fetcher.
type Config struct {
	Client *http.Client
	// RequestsPerSecond throttles outgoing requests; 0 disables throttling.
	RequestsPerSecond float64
	UserAgent         string
	Logger            logrus.FieldLogger
}

// NewHTTP creates an HTTP fetcher.
func NewHTTP(cfg Config) *HTTP {
	f := &HTTP{
		client:    cfg.Client,
		userAgent: cfg.UserAgent,
		log:       cfg.Logger,
	}
	if f.client == nil {
		f.client = httputil.NewClient(httputil.DefaultTimeout)
	}
	if f.userAgent == "" {
		f.userAgent = httputil.DefaultUserAgent
	}
	if f.log == nil {
		f.log = logrus.StandardLogger()
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return f
}

// Text fetches u and returns the body as a string.
func (f *HTTP) Text(ctx context.Context, u *url.URL, opts ...Option) (string, error) {
	if _, err := httputil.ValidateEndpoint(u.String()); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range Apply(opts...).Headers {
		req.Header.Set(k, v)
	}

	f.log.WithFields(logrus.Fields{
		"url":     u.String(),
		"referer": req.Header.Get("Referer"),
	}).Debug("fetching")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: u.String(), Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(body), nil
}
