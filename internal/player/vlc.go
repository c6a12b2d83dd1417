package player

import (
	"context"

	"github.com/sirupsen/logrus"

	"reel/internal/media"
)

// VLC implements the Player interface for VLC media player.
type VLC struct {
	log logrus.FieldLogger
}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool { return available("vlc") }

// Play launches VLC and exits it when the stream ends.
func (v *VLC) Play(ctx context.Context, stream media.StreamResult, title string) error {
	return run(ctx, v.log, v.Name(), vlcArgs(stream, title))
}

func vlcArgs(stream media.StreamResult, title string) []string {
	return []string{
		stream.URL,
		"--meta-title", MediaTitle(stream, title),
		"--play-and-exit",
	}
}
