package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reel/internal/fetch/fetchtest"
	"reel/internal/media"
	"reel/internal/mediaflow"
)

func mediaflowContext() context.Context {
	return mediaflow.WithConfig(context.Background(), mediaflow.Config{
		URL:      "https://mfp.example.com",
		Password: "secret",
	})
}

func TestUqloadSupports(t *testing.T) {
	x := NewUqload(fetchtest.New())
	u := mustParse(t, "https://uqload.net/embed-abc123.html")

	assert.False(t, x.Supports(context.Background(), u), "needs a proxy")
	assert.True(t, x.Supports(mediaflowContext(), u))
	assert.False(t, x.Supports(mediaflowContext(), mustParse(t, "https://vidsrc.xyz/embed/movie/tt1")))
}

func TestUqloadNormalize(t *testing.T) {
	x := NewUqload(fetchtest.New())

	tests := []struct {
		in   string
		want string
	}{
		{"https://uqload.net/embed-abc123.html", "https://uqload.net/abc123.html"},
		{"https://uqload.net/abc123.html", "https://uqload.net/abc123.html"},
		{"https://uqload.co/embed-embed-abc123.html", "https://uqload.co/abc123.html"},
		{"https://uqload.net/embed-abc123.html?autoplay=1", "https://uqload.net/abc123.html?autoplay=1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			once := x.Normalize(mustParse(t, tt.in))
			assert.Equal(t, tt.want, once.String())
			assert.Equal(t, once.String(), x.Normalize(once).String())
		})
	}
}

func TestUqloadNormalizeDoesNotMutateInput(t *testing.T) {
	x := NewUqload(fetchtest.New())
	u := mustParse(t, "https://uqload.net/embed-abc123.html")

	_ = x.Normalize(u)
	assert.Equal(t, "/embed-abc123.html", u.Path)
}

func TestUqloadExtract(t *testing.T) {
	f := fetchtest.New().SetFile(t, "https://uqload.net/abc123.html", "uqload_embed.html")
	x := NewUqload(f)

	results, err := Run(mediaflowContext(), x, mustParse(t, "https://uqload.net/embed-abc123.html"), media.FR)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, media.MP4, r.Format)
	assert.Equal(t, "Uqload (via MediaFlow Proxy)", r.Label)
	assert.Equal(t, "uqload_fr", r.SourceID)
	assert.Equal(t, 0, r.TTL)
	assert.Equal(t, media.Meta{CountryCode: media.FR, Title: "Movie X", Height: 1080}, r.Meta)

	u := mustParse(t, r.URL)
	assert.Equal(t, "mfp.example.com", u.Host)
	assert.Equal(t, "/extractor/video", u.Path)
	assert.Equal(t, "Uqload", u.Query().Get("host"))
	assert.Equal(t, "secret", u.Query().Get("api_password"))
	assert.Equal(t, "https://uqload.net/abc123.html", u.Query().Get("d"))
	assert.Equal(t, "true", u.Query().Get("redirect_stream"))

	assert.Len(t, f.Requests(), 1)
}

func TestUqloadExtractWithoutHeight(t *testing.T) {
	f := fetchtest.New().SetFile(t, "https://uqload.net/def456.html", "uqload_no_height.html")

	results, err := Run(mediaflowContext(), NewUqload(f), mustParse(t, "https://uqload.net/def456.html"), media.EN)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "Movie Y", results[0].Meta.Title)
	assert.Equal(t, 0, results[0].Meta.Height)
}

func TestUqloadExtractFetchFailure(t *testing.T) {
	boom := errors.New("tls handshake timeout")
	f := fetchtest.New().SetError("https://uqload.net/abc123.html", boom)

	results, err := Run(mediaflowContext(), NewUqload(f), mustParse(t, "https://uqload.net/abc123.html"), media.EN)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, boom)
}

func TestUqloadExtractRemovedVideo(t *testing.T) {
	_, err := Run(mediaflowContext(), NewUqload(fetchtest.New()), mustParse(t, "https://uqload.net/gone.html"), media.EN)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseUqloadHeight(t *testing.T) {
	assert.Equal(t, 720, parseUqloadHeight(`<span>1280x720</span>`))
	assert.Equal(t, 1080, parseUqloadHeight(`1920x1080 then 1280x720`))
	assert.Equal(t, 0, parseUqloadHeight(`<span>HD</span>`))
	assert.Equal(t, 0, parseUqloadHeight(`12x34`))
}
