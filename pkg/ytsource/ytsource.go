// Package ytsource downloads and identifies audio from YouTube so it
// can be ingested like any other recording. It rescues the teacher's
// standalone yt-dlp JSON-shelling script by replacing its exec.Command
// plumbing with lrstanley/go-ytdlp's typed builder.
package ytsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// Metadata is the subset of a YouTube video's info useful as catalog
// metadata once ingested.
type Metadata struct {
	ID       string
	Title    string
	Artist   string
	Uploader string
}

// Download fetches the best-available audio track for url into
// outputDir as a standalone audio file, returning its path and the
// video's metadata.
func Download(ctx context.Context, url, outputDir string) (path string, meta Metadata, err error) {
	ytdlp.MustInstall(ctx, nil)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", Metadata{}, fmt.Errorf("ytsource: creating output dir: %w", err)
	}

	dl := ytdlp.New().
		ExtractAudio().
		NoPlaylist().
		Output(filepath.Join(outputDir, "%(id)s.%(ext)s")).
		PrintJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return "", Metadata{}, fmt.Errorf("ytsource: yt-dlp run failed: %w", err)
	}

	info, err := parseInfo(result.Stdout)
	if err != nil {
		return "", Metadata{}, err
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", Metadata{}, fmt.Errorf("ytsource: reading output dir: %w", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), info.ID+".") {
			return filepath.Join(outputDir, e.Name()), info, nil
		}
	}
	return "", Metadata{}, fmt.Errorf("ytsource: downloaded file for %s not found in %s", info.ID, outputDir)
}
