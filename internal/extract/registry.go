package extract

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"reel/internal/media"
)

// Registry dispatches URLs to the first extractor that supports them.
// Registration order is priority order. A Registry is immutable and safe for concurrent use.
type Registry struct {
	log        logrus.FieldLogger
	extractors []Extractor
}

// NewRegistry creates a registry over extractors, in priority order.
func NewRegistry(log logrus.FieldLogger, extractors ...Extractor) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		log:        log,
		extractors: append([]Extractor(nil), extractors...),
	}
}

// Extractors returns the registered extractors in priority order.
func (r *Registry) Extractors() []Extractor {
	return append([]Extractor(nil), r.extractors...)
}

// Match returns the first extractor supporting u.
func (r *Registry) Match(ctx context.Context, u *url.URL) (Extractor, bool) {
	return lo.Find(r.extractors, func(e Extractor) bool {
		return e.Supports(ctx, u)
	})
}

// Handle resolves u with the first supporting extractor.
// title is the caller's display title and is only used for diagnostics.
func (r *Registry) Handle(ctx context.Context, u *url.URL, cc media.CountryCode, title string) ([]media.StreamResult, error) {
	e, ok := r.Match(ctx, u)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, u.Host)
	}

	log := r.log.WithFields(logrus.Fields{
		"extractor": e.ID(),
		"url":       u.String(),
		"locale":    cc,
		"title":     title,
	})

	results, err := Run(ctx, e, u, cc)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			log.WithError(err).Debug("no stream found")
		case ctx.Err() != nil:
			log.WithError(err).Debug("extraction cancelled")
		default:
			log.WithError(err).Error("extraction failed")
		}
		return nil, err
	}

	log.WithField("results", len(results)).Debug("extracted")
	return results, nil
}
