// Package playlist inspects HLS playlists.
package playlist

import (
	"context"
	"net/url"
	"regexp"
	"strconv"

	"github.com/samber/lo"

	"reel/internal/fetch"
)

var resolutionRe = regexp.MustCompile(`RESOLUTION=\d+x(\d+)`)

// GuessHeight fetches the playlist at u and returns the tallest variant height
// advertised in its #EXT-X-STREAM-INF lines. A playlist without resolution
// attributes yields 0 and no error. Fetch failures are returned unchanged.
func GuessHeight(ctx context.Context, f fetch.Fetcher, u *url.URL, opts ...fetch.Option) (int, error) {
	body, err := f.Text(ctx, u, opts...)
	if err != nil {
		return 0, err
	}
	return MaxHeight(body), nil
}

// MaxHeight returns the tallest RESOLUTION height found in an m3u8 document, or 0.
func MaxHeight(m3u8 string) int {
	heights := lo.FilterMap(resolutionRe.FindAllStringSubmatch(m3u8, -1), func(m []string, _ int) (int, bool) {
		h, err := strconv.Atoi(m[1])
		return h, err == nil
	})
	return lo.Max(heights)
}
