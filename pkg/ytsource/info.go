package ytsource

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawInfo mirrors the handful of yt-dlp JSON fields this package
// needs; yt-dlp's full info dict is much larger and not worth binding.
type rawInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Uploader string `json:"uploader"`
	Channel  string `json:"channel"`
}

// parseInfo extracts the last JSON object in yt-dlp's --print-json
// stdout (one line per downloaded video; a playlist would produce
// more than one, but NoPlaylist restricts us to exactly one).
func parseInfo(stdout string) (Metadata, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) == 0 || lines[len(lines)-1] == "" {
		return Metadata{}, fmt.Errorf("ytsource: no JSON info in yt-dlp output")
	}

	var raw rawInfo
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &raw); err != nil {
		return Metadata{}, fmt.Errorf("ytsource: parsing yt-dlp JSON: %w", err)
	}
	if raw.ID == "" {
		return Metadata{}, fmt.Errorf("ytsource: missing video id in yt-dlp output")
	}

	artist := raw.Artist
	if artist == "" {
		artist = raw.Channel
	}
	if artist == "" {
		artist = raw.Uploader
	}

	return Metadata{
		ID:       raw.ID,
		Title:    raw.Title,
		Artist:   artist,
		Uploader: raw.Uploader,
	}, nil
}
