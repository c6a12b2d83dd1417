// Package download saves resolved streams to disk with ffmpeg.
// ffmpeg is started with an explicit argument slice and the output path is
// confined to the download directory.
package download

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"reel/internal/httputil"
	"reel/internal/media"
)

// OutputPath returns where a stream titled title is written inside dir.
func OutputPath(dir, title string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	path, err := httputil.SafeDownloadPath(absDir, httputil.SanitizeFilename(title)+".mp4")
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}
	return path, nil
}

// Args builds the ffmpeg arguments that remux stream into outputPath without re-encoding.
func Args(stream media.StreamResult, title, outputPath string) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-stats",
		"-y",
		"-i", stream.URL,
		"-c", "copy",
	}
	if stream.Format == media.HLS {
		// ADTS audio from TS segments must be repacked for an MP4 container.
		args = append(args, "-bsf:a", "aac_adtstoasc")
	}
	return append(args,
		"-metadata", "title="+title,
		outputPath,
	)
}

// Download fetches stream into dir and returns the written file path.
func Download(ctx context.Context, log logrus.FieldLogger, stream media.StreamResult, title, dir string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	outputPath, err := OutputPath(dir, title)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	log.WithFields(logrus.Fields{
		"source": stream.SourceID,
		"output": outputPath,
	}).Info("downloading")

	cmd := exec.CommandContext(ctx, ffmpegPath, Args(stream, title, outputPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}

	return outputPath, nil
}
