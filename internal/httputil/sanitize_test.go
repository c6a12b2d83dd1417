package httputil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://mfp.example.com", false},
		{"embed page", "https://vidsrc.xyz/embed/movie/tt0093058", false},
		{"plain http on LAN", "http://192.168.1.10:8888", false},
		{"plain http playlist", "http://tmstr.vidsrc.stream/master.m3u8", false},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"empty string", "", true},
		{"no scheme", "mfp.example.com", true},
		{"ftp", "ftp://mfp.example.com", true},
		{"no host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateEndpoint(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoint(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"stream label", "VidSrc (CloudStream Pro).mkv", "VidSrc (CloudStream Pro).mkv"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"directory components", "/home/user/secret.txt", "secret.txt"},
		{"null bytes", "movie\x00.mkv", "movie.mkv"},
		{"Windows special chars", "movie<>:\"|?*.mkv", "movie_______.mkv"},
		{"double dots", "movie..mkv", "movie_mkv"},
		{"surrounding whitespace", "  Movie X.mkv  ", "Movie X.mkv"},
		{"empty string", "", "untitled"},
		{"just dots", "..", "untitled"},
		{"just dot", ".", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeDownloadPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		wantBase string
	}{
		{"normal", "movie.mkv", "movie.mkv"},
		{"path traversal attempt", "../../etc/passwd", "passwd"},
		{"only dots", "..", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SafeDownloadPath(dir, tt.filename)
			if err != nil {
				t.Fatalf("SafeDownloadPath(%q) error = %v", tt.filename, err)
			}
			if filepath.Base(path) != tt.wantBase {
				t.Errorf("base = %q, want %q", filepath.Base(path), tt.wantBase)
			}
			if !strings.HasPrefix(path, dir) {
				t.Errorf("path %q escapes %q", path, dir)
			}
		})
	}
}
