package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <rid>",
	Short: "Remove a recording and all of its fingerprints",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	rid := args[0]
	if err := svc.DeleteRecording(context.Background(), rid); err != nil {
		return fmt.Errorf("deleting recording %q: %w", rid, err)
	}
	fmt.Printf("deleted recording %q\n", rid)
	return nil
}
