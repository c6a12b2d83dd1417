package httputil

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ValidateEndpoint checks that a URL is absolute and uses HTTP or HTTPS.
func ValidateEndpoint(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("expected an http(s) URL, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("URL has no host")
	}
	return u, nil
}

var filenameReplacer = strings.NewReplacer(
	"..", "_",
	"/", "_",
	"\\", "_",
	"\x00", "",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFilename strips directory components and characters that are unsafe in a filename.
// Stream labels such as "VidSrc (CloudStream Pro)" end up here when downloading.
func SanitizeFilename(name string) string {
	name = filenameReplacer.Replace(filepath.Base(strings.TrimSpace(name)))
	if name == "" || name == "." || name == "_" {
		return "untitled"
	}
	return name
}

// SafeDownloadPath joins dir and a sanitized filename and verifies the result stays inside dir.
func SafeDownloadPath(dir, filename string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	full, err := filepath.Abs(filepath.Join(absDir, SanitizeFilename(filename)))
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	if !strings.HasPrefix(full, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %q escapes %q", full, absDir)
	}

	return full, nil
}
