// Package extract resolves third-party embed pages into playable stream URLs.
//
// Each supported site is an Extractor. A Registry holds the extractors in priority
// order and dispatches a URL to the first one that supports it.
package extract

import (
	"context"
	"errors"
	"net/url"

	"reel/internal/fetch"
	"reel/internal/media"
)

// DefaultTTL is the suggested cache lifetime, in seconds, for extractors that do not override it.
const DefaultTTL = 3 * 60 * 60

var (
	// ErrNoMatch means no registered extractor handles the URL.
	ErrNoMatch = errors.New("no extractor supports this url")

	// ErrNotFound means the matching extractor found no resolvable stream on the page.
	// A 404 from the fetcher unwraps to the same value.
	ErrNotFound = fetch.ErrNotFound
)

// Extractor encapsulates one site's scraping recipe.
type Extractor interface {
	// ID is stable across versions and prefixes every SourceID.
	ID() string

	// Label is the human-readable name.
	Label() string

	// TTL is the suggested cache lifetime of results, in seconds.
	TTL() int

	// Supports reports whether the extractor handles u. Must not perform I/O.
	Supports(ctx context.Context, u *url.URL) bool

	// Normalize rewrites u into the canonical page URL. Must be idempotent.
	Normalize(u *url.URL) *url.URL

	// Extract resolves an already normalized URL.
	Extract(ctx context.Context, u *url.URL, cc media.CountryCode) ([]media.StreamResult, error)
}

// Run normalizes u and extracts it with e.
func Run(ctx context.Context, e Extractor, u *url.URL, cc media.CountryCode) ([]media.StreamResult, error) {
	return e.Extract(ctx, e.Normalize(u), cc)
}

// identity provides the default Normalize.
type identity struct{}

func (identity) Normalize(u *url.URL) *url.URL { return u }
