package extract

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gosimple/slug"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"reel/internal/fetch"
	"reel/internal/media"
	"reel/internal/playlist"
)

// DefaultVidSrcServers is the server allow-list used when none is configured.
var DefaultVidSrcServers = []string{"CloudStream Pro"}

var (
	vidsrcHostRe   = regexp.MustCompile(`vidsrc`)
	vidsrcScriptRe = regexp.MustCompile(`src:\s?'(.*)'`)
	vidsrcFileRe   = regexp.MustCompile(`file:\s?'(.*)'`)
)

// VidSrc resolves vidsrc aggregator embeds. The embed page lists several upstream
// servers; each allow-listed server is resolved to an HLS playlist in parallel.
type VidSrc struct {
	identity
	fetcher fetch.Fetcher
	servers []string
}

// NewVidSrc creates a VidSrc extractor restricted to the named servers.
// With no names, DefaultVidSrcServers is used.
func NewVidSrc(f fetch.Fetcher, servers ...string) *VidSrc {
	if len(servers) == 0 {
		servers = DefaultVidSrcServers
	}
	return &VidSrc{
		fetcher: f,
		servers: append([]string(nil), servers...),
	}
}

func (*VidSrc) ID() string    { return "vidsrc" }
func (*VidSrc) Label() string { return "VidSrc" }
func (*VidSrc) TTL() int      { return DefaultTTL }

// Supports matches any vidsrc host.
func (*VidSrc) Supports(_ context.Context, u *url.URL) bool {
	return vidsrcHostRe.MatchString(u.Host)
}

// vidsrcServer is one entry of the embed page's server list.
type vidsrcServer struct {
	Name string // raw element text, matched exactly against the allow-list
	Hash string
}

// vidsrcPage is what the top-level embed page yields.
type vidsrcPage struct {
	Title   string
	Origin  *url.URL // scheme://host of the player iframe
	Servers []vidsrcServer
}

// Extract resolves every allow-listed server concurrently. Any failing server
// fails the whole call and discards the others.
func (x *VidSrc) Extract(ctx context.Context, u *url.URL, cc media.CountryCode) ([]media.StreamResult, error) {
	html, err := x.fetcher.Text(ctx, u)
	if err != nil {
		return nil, err
	}

	page, err := parseVidSrcPage(html)
	if err != nil {
		return nil, err
	}

	servers := lo.Filter(page.Servers, func(s vidsrcServer, _ int) bool {
		return lo.Contains(x.servers, s.Name)
	})
	// Source ids are derived from the slug, so the first server per slug wins.
	servers = lo.UniqBy(servers, func(s vidsrcServer) string {
		return slug.Make(s.Name)
	})
	if len(servers) == 0 {
		return nil, fmt.Errorf("%w: no supported server on %s", ErrNotFound, u)
	}

	results := make([]media.StreamResult, len(servers))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range servers {
		g.Go(func() error {
			r, err := x.resolveServer(gctx, page, s, cc)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// resolveServer follows one server's hash page and player script to its playlist.
func (x *VidSrc) resolveServer(ctx context.Context, page *vidsrcPage, s vidsrcServer, cc media.CountryCode) (media.StreamResult, error) {
	referer := fetch.WithReferer(page.Origin.String())

	rcpURL, err := page.Origin.Parse("/rcp/" + s.Hash)
	if err != nil {
		return media.StreamResult{}, fmt.Errorf("%w: bad hash for server %q", ErrNotFound, s.Name)
	}

	rcpHTML, err := x.fetcher.Text(ctx, rcpURL, referer)
	if err != nil {
		return media.StreamResult{}, err
	}

	srcMatch := vidsrcScriptRe.FindStringSubmatch(rcpHTML)
	if srcMatch == nil {
		return media.StreamResult{}, fmt.Errorf("%w: no player script for server %q", ErrNotFound, s.Name)
	}
	scriptURL, err := page.Origin.Parse(srcMatch[1])
	if err != nil {
		return media.StreamResult{}, fmt.Errorf("%w: bad player script url %q: %v", ErrNotFound, srcMatch[1], err)
	}

	playerJS, err := x.fetcher.Text(ctx, scriptURL, referer)
	if err != nil {
		return media.StreamResult{}, err
	}

	fileMatch := vidsrcFileRe.FindStringSubmatch(playerJS)
	if fileMatch == nil {
		return media.StreamResult{}, fmt.Errorf("%w: no playlist for server %q", ErrNotFound, s.Name)
	}
	m3u8URL, err := url.Parse(fileMatch[1])
	if err != nil || !m3u8URL.IsAbs() {
		return media.StreamResult{}, fmt.Errorf("%w: bad playlist url %q", ErrNotFound, fileMatch[1])
	}

	height, err := playlist.GuessHeight(ctx, x.fetcher, m3u8URL)
	if err != nil {
		return media.StreamResult{}, err
	}

	return media.StreamResult{
		URL:      m3u8URL.String(),
		Format:   media.HLS,
		Label:    fmt.Sprintf("%s (%s)", x.Label(), strings.TrimSpace(s.Name)),
		SourceID: fmt.Sprintf("%s_%s_%s", x.ID(), slug.Make(s.Name), cc),
		TTL:      x.TTL(),
		Meta: media.Meta{
			CountryCode: cc,
			Title:       page.Title,
			Height:      height,
		},
	}, nil
}

// parseVidSrcPage extracts the player iframe origin, page title and server list.
func parseVidSrcPage(html string) (*vidsrcPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	src, ok := doc.Find("#player_iframe").Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: no player iframe", ErrNotFound)
	}
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	iframeURL, err := url.Parse(src)
	if err != nil || iframeURL.Host == "" {
		return nil, fmt.Errorf("%w: bad player iframe %q", ErrNotFound, src)
	}

	page := &vidsrcPage{
		Title:  strings.TrimSpace(doc.Find("title").Text()),
		Origin: &url.URL{Scheme: iframeURL.Scheme, Host: iframeURL.Host},
	}

	doc.Find(".server").Each(func(_ int, s *goquery.Selection) {
		hash, exists := s.Attr("data-hash")
		if !exists {
			return
		}
		page.Servers = append(page.Servers, vidsrcServer{
			Name: s.Text(),
			Hash: hash,
		})
	})

	return page, nil
}
