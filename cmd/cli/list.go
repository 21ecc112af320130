package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every indexed recording",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	result, err := svc.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing recordings: %w", err)
	}

	if len(result.Recordings) == 0 {
		fmt.Println("no recordings indexed")
		return nil
	}

	for _, r := range result.Recordings {
		fmt.Printf("%-30s %6d fingerprints  %.1fs\n", r.RID, r.FingerprintCount, r.DurationSeconds)
	}
	fmt.Printf("\n%d recordings, %d fingerprints total\n", result.Totals.RecordingCount, result.Totals.FingerprintCount)
	return nil
}
