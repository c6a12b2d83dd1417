package player

import (
	"context"

	"github.com/sirupsen/logrus"

	"reel/internal/media"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
	log  logrus.FieldLogger
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool { return available(g.name) }

// Play launches the player with mpv-style flags.
func (g *Generic) Play(ctx context.Context, stream media.StreamResult, title string) error {
	return run(ctx, g.log, g.name, genericArgs(stream, title))
}

func genericArgs(stream media.StreamResult, title string) []string {
	return []string{stream.URL, "--force-media-title=" + MediaTitle(stream, title)}
}
