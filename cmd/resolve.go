package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"reel/internal/extract"
	"reel/internal/httputil"
	"reel/internal/media"
	"reel/internal/ui"
)

var (
	flagTitle string
	flagJSON  bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Resolve an embed page into stream URLs",
	Example: `  reel resolve https://vidsrc.xyz/embed/movie/tt0093058
  reel resolve --mediaflow-url https://mfp.example.com --mediaflow-password secret https://uqload.net/embed-abc.html`,
	Args: cobra.ExactArgs(1),
	RunE: resolveRun,
}

func init() {
	resolveCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "Display title, used in logs")
	resolveCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON")
}

func resolveRun(cmd *cobra.Command, args []string) error {
	results, err := resolve(cmd.Context(), args[0], flagTitle)
	if err != nil {
		return err
	}

	if flagJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		return writeJSON(cmd.OutOrStdout(), results)
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderResults(results))
	return nil
}

// resolve validates raw and runs it through the extractor registry.
func resolve(ctx context.Context, raw, title string) ([]media.StreamResult, error) {
	u, err := httputil.ValidateEndpoint(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	results, err := newRegistry().Handle(requestContext(ctx), u, cfg.CountryCode(), title)
	if err != nil {
		return nil, describe(err, raw)
	}
	return results, nil
}

// describe turns the two expected failures into user-facing messages while
// keeping them matchable with errors.Is.
func describe(err error, raw string) error {
	switch {
	case errors.Is(err, extract.ErrNoMatch):
		return fmt.Errorf("no extractor supports %s (run `reel extractors`): %w", raw, err)
	case errors.Is(err, extract.ErrNotFound):
		return fmt.Errorf("no stream found at %s: %w", raw, err)
	default:
		return err
	}
}

func writeJSON(w io.Writer, results []media.StreamResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
