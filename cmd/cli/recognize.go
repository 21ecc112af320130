package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/echofp/echofp/pkg/audioio"
)

var recognizeCmd = &cobra.Command{
	Use:     "recognize <audio-file>",
	Aliases: []string{"match"},
	Short:   "Recognize a short audio clip against the indexed catalog",
	Args:    cobra.ExactArgs(1),
	RunE:    runRecognize,
}

func runRecognize(cmd *cobra.Command, args []string) error {
	audioPath := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	samples, sr, err := audioio.LoadSamples(ctx, audioPath, os.TempDir(), 44100)
	if err != nil {
		return fmt.Errorf("loading audio: %w", err)
	}

	result, err := svc.Recognize(ctx, samples, sr)
	if err != nil {
		return fmt.Errorf("recognizing audio: %w", err)
	}

	if !result.Matched {
		fmt.Printf("no match (%s)\n", result.Message)
		return nil
	}

	fmt.Printf("matched recording %q\n", result.RID)
	fmt.Printf("  confidence: %s (score %d)\n", result.Confidence, result.RawScore)
	fmt.Printf("  position:   %s (%dms)\n", result.Position, result.OffsetMS)
	return nil
}
