package player

import (
	"context"

	"github.com/sirupsen/logrus"

	"reel/internal/media"
)

// MPV implements the Player interface for mpv.
type MPV struct {
	log logrus.FieldLogger
}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool { return available("mpv") }

// Play launches mpv on the stream.
func (m *MPV) Play(ctx context.Context, stream media.StreamResult, title string) error {
	return run(ctx, m.log, m.Name(), mpvArgs(stream, title))
}

func mpvArgs(stream media.StreamResult, title string) []string {
	args := []string{
		stream.URL,
		"--force-media-title=" + MediaTitle(stream, title),
		"--really-quiet",
	}
	if stream.Format == media.HLS && stream.Meta.Height > 0 {
		args = append(args, "--hls-bitrate=max")
	}
	return args
}
