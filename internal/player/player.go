// Package player launches external media players on resolved streams.
// Players are started with exec.CommandContext and explicit argument slices.
package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"reel/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play blocks until the player exits.
	Play(ctx context.Context, stream media.StreamResult, title string) error

	// Name returns the player binary name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by case-insensitive name. Unknown names fall back to mpv.
func New(name string, log logrus.FieldLogger) Player {
	if log == nil {
		log = logrus.StandardLogger()
	}
	switch name = strings.ToLower(name); name {
	case "vlc":
		return &VLC{log: log}
	case "iina", "celluloid":
		return &Generic{name: name, log: log}
	default:
		return &MPV{log: log}
	}
}

// MediaTitle picks the window title for a stream: the caller's title, then the
// scraped page title, then the stream label.
func MediaTitle(stream media.StreamResult, title string) string {
	switch {
	case title != "":
		return title
	case stream.Meta.Title != "":
		return stream.Meta.Title
	default:
		return stream.Label
	}
}

func available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// run starts name with args attached to the terminal. A non-zero exit is how most
// players report a user quit, so it is logged and not returned.
func run(ctx context.Context, log logrus.FieldLogger, name string, args []string) error {
	log.WithFields(logrus.Fields{"player": name, "args": args}).Debug("starting player")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.WithField("code", exitErr.ExitCode()).Debug("player exited")
			return nil
		}
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}
