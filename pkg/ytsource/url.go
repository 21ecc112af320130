package ytsource

import (
	"net/url"
	"strings"
)

// IsYouTubeURL reports whether urlStr looks like a youtube.com or
// youtu.be link, so callers can fail fast before shelling out to
// yt-dlp on an obviously-wrong argument.
func IsYouTubeURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
}
