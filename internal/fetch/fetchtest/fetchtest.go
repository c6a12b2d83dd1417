// Package fetchtest provides an in-memory fetch.Fetcher for tests.
package fetchtest

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"reel/internal/fetch"
)

// Request records one call made against a Fetcher.
type Request struct {
	URL     string
	Headers map[string]string
}

// Handler computes a response at request time.
type Handler func(ctx context.Context) (string, error)

// Fetcher serves canned bodies keyed by absolute URL.
// Unknown URLs fail with a *fetch.StatusError 404. Safe for concurrent use.
type Fetcher struct {
	mu       sync.Mutex
	bodies   map[string]string
	errs     map[string]error
	handlers map[string]Handler
	requests []Request
}

// New creates an empty Fetcher.
func New() *Fetcher {
	return &Fetcher{
		bodies:   make(map[string]string),
		errs:     make(map[string]error),
		handlers: make(map[string]Handler),
	}
}

// Set registers body as the response for rawURL.
func (f *Fetcher) Set(rawURL, body string) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[rawURL] = body
	return f
}

// SetFile registers the contents of testdata file name as the response for rawURL.
func (f *Fetcher) SetFile(t testing.TB, rawURL, name string) *Fetcher {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading test fixture %s: %v", name, err)
	}
	return f.Set(rawURL, string(data))
}

// SetError makes requests for rawURL fail with err.
func (f *Fetcher) SetError(rawURL string, err error) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[rawURL] = err
	return f
}

// SetHandler makes requests for rawURL call h. h runs without the Fetcher's lock
// held, so it may block until ctx is done.
func (f *Fetcher) SetHandler(rawURL string, h Handler) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[rawURL] = h
	return f
}

// Text implements fetch.Fetcher.
func (f *Fetcher) Text(ctx context.Context, u *url.URL, opts ...fetch.Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := u.String()

	f.mu.Lock()
	f.requests = append(f.requests, Request{URL: key, Headers: fetch.Apply(opts...).Headers})
	h, ok := f.handlers[key]
	f.mu.Unlock()

	if ok {
		return h(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.errs[key]; ok {
		return "", err
	}
	body, ok := f.bodies[key]
	if !ok {
		return "", fmt.Errorf("fetchtest: no fixture: %w", &fetch.StatusError{URL: key, Code: 404})
	}
	return body, nil
}

// Requests returns the calls made so far.
func (f *Fetcher) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// RequestFor returns the recorded call for rawURL.
func (f *Fetcher) RequestFor(rawURL string) (Request, bool) {
	for _, r := range f.Requests() {
		if r.URL == rawURL {
			return r, true
		}
	}
	return Request{}, false
}
