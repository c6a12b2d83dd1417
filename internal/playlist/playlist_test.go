package playlist

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reel/internal/fetch"
	"reel/internal/fetch/fetchtest"
)

const master = `#EXTM3U
#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=1400000,RESOLUTION=842x480
480/index.m3u8
#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=5000000,RESOLUTION=1920x1080
1080/index.m3u8
#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=2800000,RESOLUTION=1280x720
720/index.m3u8
`

const media = `#EXTM3U
#EXT-X-TARGETDURATION:10
#EXTINF:10.0,
seg-0.ts
#EXT-X-ENDLIST
`

func TestMaxHeight(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"master playlist", master, 1080},
		{"media playlist", media, 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxHeight(tt.doc))
		})
	}
}

func TestGuessHeight(t *testing.T) {
	u, _ := url.Parse("https://cdn.example.com/master.m3u8")
	f := fetchtest.New().Set(u.String(), master)

	h, err := GuessHeight(context.Background(), f, u)
	require.NoError(t, err)
	assert.Equal(t, 1080, h)
}

func TestGuessHeightPropagatesFetchError(t *testing.T) {
	u, _ := url.Parse("https://cdn.example.com/master.m3u8")
	boom := errors.New("connection reset")
	f := fetchtest.New().SetError(u.String(), boom)

	_, err := GuessHeight(context.Background(), f, u, fetch.WithReferer("https://vidsrc.stream"))
	assert.ErrorIs(t, err, boom)

	req, ok := f.RequestFor(u.String())
	require.True(t, ok)
	assert.Equal(t, "https://vidsrc.stream", req.Headers["Referer"])
}
