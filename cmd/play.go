package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reel/internal/download"
	"reel/internal/extract"
	"reel/internal/media"
	"reel/internal/player"
	"reel/internal/ui"
)

var (
	flagPlayer   string
	flagDownload string
	flagSave     bool
)

var playCmd = &cobra.Command{
	Use:   "play <url>",
	Short: "Resolve an embed page and play or download a stream",
	Args:  cobra.ExactArgs(1),
	RunE:  playRun,
}

func init() {
	playCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "Media title for the player window and file name")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	playCmd.Flags().StringVarP(&flagDownload, "download", "d", "", "Download to directory instead of playing")
	playCmd.Flags().BoolVarP(&flagSave, "save", "s", false, "Download to the configured download_dir instead of playing")
}

func playRun(cmd *cobra.Command, args []string) error {
	if flagPlayer != "" {
		cfg.Player = flagPlayer
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	ctx := cmd.Context()
	results, err := resolve(ctx, args[0], flagTitle)
	if err != nil {
		return err
	}

	stream, err := chooseStream(ctx, args[0], results, flagTitle)
	if err != nil {
		return err
	}
	title := player.MediaTitle(stream, flagTitle)

	if flagDownload != "" || flagSave {
		dir := flagDownload
		if dir == "" {
			dir, err = cfg.ExpandDownloadDir()
			if err != nil {
				return fmt.Errorf("resolving download dir: %w", err)
			}
		}
		outputPath, err := download.Download(ctx, log, stream, title, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
		return nil
	}

	p := player.New(cfg.Player, log)
	if !p.Available() {
		return fmt.Errorf("%s not found in PATH", p.Name())
	}
	fmt.Fprintf(os.Stderr, "Playing %s (%s)\n", title, stream.Label)
	return p.Play(ctx, stream, title)
}

// chooseStream lets the user pick one of results. An empty list counts as no stream found.
func chooseStream(ctx context.Context, raw string, results []media.StreamResult, title string) (media.StreamResult, error) {
	if len(results) == 0 {
		return media.StreamResult{}, fmt.Errorf("no stream found at %s: %w", raw, extract.ErrNotFound)
	}

	idx, err := ui.Pick(ctx, player.MediaTitle(results[0], title), results)
	if err != nil {
		return media.StreamResult{}, err
	}
	return results[idx], nil
}
