package extract

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reel/internal/fetch"
	"reel/internal/media"
	"reel/internal/mediaflow"
)

var (
	uqloadHostRe   = regexp.MustCompile(`uqload`)
	uqloadHeightRe = regexp.MustCompile(`\d{3,}x(\d{3,})`)
)

// Uqload serves uqload embed pages through the MediaFlow proxy, which knows how to
// unpack the player. Only the page metadata is scraped here.
type Uqload struct {
	fetcher fetch.Fetcher
}

// NewUqload creates a Uqload extractor.
func NewUqload(f fetch.Fetcher) *Uqload {
	return &Uqload{fetcher: f}
}

func (*Uqload) ID() string    { return "uqload" }
func (*Uqload) Label() string { return "Uqload (via MediaFlow Proxy)" }

// TTL is zero: proxied URLs embed the proxy password and must not be cached.
func (*Uqload) TTL() int { return 0 }

// Supports requires a uqload host and a configured MediaFlow proxy.
func (*Uqload) Supports(ctx context.Context, u *url.URL) bool {
	return uqloadHostRe.MatchString(u.Host) && mediaflow.Supported(ctx)
}

// Normalize turns /embed-{id}.html into /{id}.html.
func (*Uqload) Normalize(u *url.URL) *url.URL {
	if !strings.Contains(u.Path, "/embed-") {
		return u
	}
	out := *u
	for strings.Contains(out.Path, "/embed-") {
		out.Path = strings.Replace(out.Path, "/embed-", "/", 1)
	}
	out.RawPath = ""
	return &out
}

// Extract fetches the page once and returns a single proxied mp4 result.
func (x *Uqload) Extract(ctx context.Context, u *url.URL, cc media.CountryCode) ([]media.StreamResult, error) {
	html, err := x.fetcher.Text(ctx, u)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return []media.StreamResult{
		{
			URL:      mediaflow.ExtractorRedirectURL(ctx, "Uqload", u).String(),
			Format:   media.MP4,
			Label:    x.Label(),
			SourceID: fmt.Sprintf("%s_%s", x.ID(), cc),
			TTL:      x.TTL(),
			Meta: media.Meta{
				CountryCode: cc,
				Title:       strings.TrimSpace(doc.Find("h1").Text()),
				Height:      parseUqloadHeight(html),
			},
		},
	}, nil
}

// parseUqloadHeight reads the height out of the first WIDTHxHEIGHT token, or returns 0.
func parseUqloadHeight(html string) int {
	m := uqloadHeightRe.FindStringSubmatch(html)
	if m == nil {
		return 0
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return h
}
