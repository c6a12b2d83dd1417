// Package media defines shared types for the reel application.
package media

import "fmt"

// Format is the kind of stream a result points at.
type Format string

const (
	MP4 Format = "mp4" // direct file
	HLS Format = "hls" // segmented playlist
)

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case MP4, HLS:
		return true
	default:
		return false
	}
}

// CountryCode is the locale tag attached to every result.
type CountryCode string

const (
	DE CountryCode = "de"
	EN CountryCode = "en"
	ES CountryCode = "es"
	FR CountryCode = "fr"
	IT CountryCode = "it"
	MX CountryCode = "mx"
)

var countryCodes = []CountryCode{DE, EN, ES, FR, IT, MX}

// CountryCodes returns all supported locales.
func CountryCodes() []CountryCode {
	out := make([]CountryCode, len(countryCodes))
	copy(out, countryCodes)
	return out
}

// ParseCountryCode validates a user-supplied locale.
func ParseCountryCode(s string) (CountryCode, error) {
	for _, cc := range countryCodes {
		if string(cc) == s {
			return cc, nil
		}
	}
	return "", fmt.Errorf("unsupported locale %q (valid: %v)", s, countryCodes)
}

// Meta is the metadata carried alongside a stream.
type Meta struct {
	CountryCode CountryCode `json:"countryCode"`
	Title       string      `json:"title"`
	Height      int         `json:"height,omitempty"` // 0 when unknown
}

// StreamResult is a single resolved candidate stream.
type StreamResult struct {
	URL      string `json:"url"`
	Format   Format `json:"format"`
	Label    string `json:"label"`
	SourceID string `json:"sourceId"` // stable dedup/cache key: {extractor}[_{discriminator}]_{locale}
	TTL      int    `json:"ttl"`      // suggested cache lifetime in seconds, 0 disables caching
	Meta     Meta   `json:"meta"`
}

// Quality returns a display label for the stream height.
func (r StreamResult) Quality() string {
	if r.Meta.Height > 0 {
		return fmt.Sprintf("%dp", r.Meta.Height)
	}
	return "unknown"
}
