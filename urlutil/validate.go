// Package urlutil validates remote icon URLs before any network I/O happens.
package urlutil

import (
	"fmt"
	neturl "net/url"
	"strings"
)

// MaxURLLength is the practical limit for URL length.
const MaxURLLength = 2048

// Validate checks that rawURL is a usable HTTP or HTTPS URL: non-empty,
// within MaxURLLength, parseable, http(s) scheme, and carrying a host.
func Validate(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)

	if rawURL == "" {
		return fmt.Errorf("url cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url must use http:// or https://")
	}
	if parsed.Host == "" {
		return fmt.Errorf("url missing host/domain")
	}
	return nil
}

// Parse validates rawURL and returns the parsed form.
func Parse(rawURL string) (*neturl.URL, error) {
	if err := Validate(rawURL); err != nil {
		return nil, err
	}
	return neturl.Parse(strings.TrimSpace(rawURL))
}
