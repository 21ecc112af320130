package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/echofp/echofp/pkg/audioio"
	"github.com/echofp/echofp/pkg/ytsource"
)

var addYouTubeCmd = &cobra.Command{
	Use:     "add-youtube <url>",
	Aliases: []string{"add-yt"},
	Short:   "Download a YouTube video's audio and ingest it as a recording",
	Args:    cobra.ExactArgs(1),
	RunE:    runAddYouTube,
}

func runAddYouTube(cmd *cobra.Command, args []string) error {
	videoURL := args[0]
	if !ytsource.IsYouTubeURL(videoURL) {
		return fmt.Errorf("not a youtube url: %s", videoURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "echofp-yt-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	fmt.Printf("downloading %s...\n", videoURL)
	path, meta, err := ytsource.Download(ctx, videoURL, tmpDir)
	if err != nil {
		return fmt.Errorf("downloading audio: %w", err)
	}

	samples, sr, err := audioio.LoadSamples(ctx, path, tmpDir, 44100)
	if err != nil {
		return fmt.Errorf("loading audio: %w", err)
	}

	rid := meta.ID
	if rid == "" {
		rid = uuid.New().String()
	}

	result, err := svc.Add(ctx, rid, samples, sr)
	if err != nil {
		return fmt.Errorf("adding recording: %w", err)
	}

	if catalogPath != "" {
		if err := registerCatalogEntry(rid, meta.Title, meta.Artist, videoURL, len(samples)*1000/sr); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to register catalog entry: %v\n", err)
		}
	}

	fmt.Printf("added recording %q (%s): %d fingerprints\n", result.RID, meta.Title, result.FPCount)
	return nil
}
