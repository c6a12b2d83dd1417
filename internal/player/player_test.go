package player

import (
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"reel/internal/media"
)

var testStream = media.StreamResult{
	URL:      "https://tmstr.vidsrc.stream/stream_new/H4sIAAAAAAAAAw/master.m3u8",
	Format:   media.HLS,
	Label:    "VidSrc (CloudStream Pro)",
	SourceID: "vidsrc_cloudstream-pro_en",
	Meta:     media.Meta{CountryCode: media.EN, Title: "Full Metal Jacket", Height: 1080},
}

func TestNew(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	tests := []struct {
		name string
		want string
	}{
		{"mpv", "mpv"},
		{"vlc", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"VLC", "vlc"},
		{"Celluloid", "celluloid"},
		{"unknown", "mpv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.name, logger).Name())
		})
	}
}

func TestMediaTitle(t *testing.T) {
	assert.Equal(t, "FMJ", MediaTitle(testStream, "FMJ"))
	assert.Equal(t, "Full Metal Jacket", MediaTitle(testStream, ""))

	untitled := testStream
	untitled.Meta.Title = ""
	assert.Equal(t, "VidSrc (CloudStream Pro)", MediaTitle(untitled, ""))
}

func TestMPVArgs(t *testing.T) {
	assert.Equal(t, []string{
		testStream.URL,
		"--force-media-title=Full Metal Jacket",
		"--really-quiet",
		"--hls-bitrate=max",
	}, mpvArgs(testStream, ""))

	mp4 := media.StreamResult{URL: "https://mfp.example.com/extractor/video?d=x", Format: media.MP4, Label: "Uqload (via MediaFlow Proxy)"}
	assert.Equal(t, []string{
		mp4.URL,
		"--force-media-title=Movie X",
		"--really-quiet",
	}, mpvArgs(mp4, "Movie X"))
}

func TestVLCArgs(t *testing.T) {
	assert.Equal(t, []string{
		testStream.URL,
		"--meta-title", "Full Metal Jacket",
		"--play-and-exit",
	}, vlcArgs(testStream, ""))
}

func TestGenericArgs(t *testing.T) {
	assert.Equal(t, []string{testStream.URL, "--force-media-title=FMJ"}, genericArgs(testStream, "FMJ"))
}
