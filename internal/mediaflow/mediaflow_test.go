package mediaflow

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want bool
	}{
		{"no config", context.Background(), false},
		{"url only", WithConfig(context.Background(), Config{URL: "https://mfp.example.com"}), false},
		{"password only", WithConfig(context.Background(), Config{Password: "secret"}), false},
		{"both", WithConfig(context.Background(), Config{URL: "https://mfp.example.com", Password: "secret"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.ctx))
		})
	}
}

func TestExtractorRedirectURL(t *testing.T) {
	ctx := WithConfig(context.Background(), Config{URL: "https://mfp.example.com/", Password: "secret"})
	target, err := url.Parse("https://uqload.net/abc123.html")
	require.NoError(t, err)

	got := ExtractorRedirectURL(ctx, "Uqload", target)

	assert.Equal(t, "https", got.Scheme)
	assert.Equal(t, "mfp.example.com", got.Host)
	assert.Equal(t, "/extractor/video", got.Path)

	q := got.Query()
	assert.Equal(t, "Uqload", q.Get("host"))
	assert.Equal(t, "secret", q.Get("api_password"))
	assert.Equal(t, "https://uqload.net/abc123.html", q.Get("d"))
	assert.Equal(t, "true", q.Get("redirect_stream"))
}

func TestExtractorRedirectURLKeepsProxyPathPrefix(t *testing.T) {
	ctx := WithConfig(context.Background(), Config{URL: "https://example.com/mfp", Password: "pw"})
	target, _ := url.Parse("https://uqload.net/x.html")

	got := ExtractorRedirectURL(ctx, "Uqload", target)
	assert.Equal(t, "/mfp/extractor/video", got.Path)
}
