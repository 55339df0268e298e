// ABOUTME: YouTube video ID extraction and validation
// ABOUTME: Handles watch, shortlink, embed, and bare-ID forms
package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsValidVideoID reports whether s looks like a YouTube video ID.
func IsValidVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ExtractVideoID pulls the video ID out of a YouTube URL. Bare IDs are
// accepted as-is.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if IsValidVideoID(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", raw, err)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); IsValidVideoID(id) {
			return id, nil
		}
	case "youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); IsValidVideoID(id) {
				return id, nil
			}
		}
		for _, prefix := range []string{"/embed/", "/v/", "/shorts/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				if id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/"); IsValidVideoID(id) {
					return id, nil
				}
			}
		}
	}

	return "", fmt.Errorf("no video ID in URL %q", raw)
}
