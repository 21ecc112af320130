package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/echofp/echofp/pkg/audioio"
	"github.com/echofp/echofp/pkg/catalog"
)

var (
	addTitle  string
	addArtist string
	addRID    string
)

var addCmd = &cobra.Command{
	Use:   "add <audio-file>",
	Short: "Ingest an audio file as a new recording",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "recording title (stored in the catalog, if enabled)")
	addCmd.Flags().StringVar(&addArtist, "artist", "", "artist name (stored in the catalog, if enabled)")
	addCmd.Flags().StringVar(&addRID, "rid", "", "recording id; defaults to a freshly generated UUID")
}

func runAdd(cmd *cobra.Command, args []string) error {
	audioPath := args[0]
	rid := addRID
	if rid == "" {
		rid = uuid.New().String()
	}

	bar := progressbar.NewOptions(3,
		progressbar.OptionSetDescription("ingesting "+audioPath),
		progressbar.OptionSetWriter(os.Stderr),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	samples, sr, err := audioio.LoadSamples(ctx, audioPath, os.TempDir(), 44100)
	if err != nil {
		return fmt.Errorf("loading audio: %w", err)
	}
	bar.Add(1)

	result, err := svc.Add(ctx, rid, samples, sr)
	if err != nil {
		return fmt.Errorf("adding recording: %w", err)
	}
	bar.Add(1)

	if catalogPath != "" && (addTitle != "" || addArtist != "") {
		if err := registerCatalogEntry(rid, addTitle, addArtist, audioPath, len(samples)*1000/sr); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to register catalog entry: %v\n", err)
		}
	}
	bar.Add(1)
	fmt.Println()

	fmt.Printf("added recording %q: %d fingerprints\n", result.RID, result.FPCount)
	return nil
}

func registerCatalogEntry(rid, title, artist, sourceURL string, durationMs int) error {
	cat, err := catalog.Open(catalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()
	return cat.RegisterRecording(rid, title, artist, sourceURL, durationMs)
}
