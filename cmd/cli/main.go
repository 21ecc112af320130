package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/echofp/echofp/pkg/catalog"
	"github.com/echofp/echofp/pkg/echofp"
	"github.com/echofp/echofp/pkg/logger"
)

var (
	snapshotPath string
	catalogPath  string
	configPath   string
	svc          echofp.Service
)

var rootCmd = &cobra.Command{
	Use:   "echofp",
	Short: "echofp - acoustic fingerprinting and recognition",
	Long: `echofp fingerprints audio recordings and recognizes short
queries against an indexed catalog, the way Shazam does.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initService()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	},
}

func initService() error {
	var opts []echofp.Option
	if configPath != "" {
		fileOpt, err := echofp.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("loading config file: %w", err)
		}
		opts = append(opts, fileOpt)
	}
	// --snapshot always wins over whatever the config file set, since
	// it has an explicit non-empty default and cobra can't tell "user
	// passed it" from "default value" here.
	if snapshotPath != "" {
		opts = append(opts, echofp.WithSnapshotPath(snapshotPath))
	}
	if catalogPath != "" {
		cat, err := catalog.Open(catalogPath)
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		opts = append(opts, echofp.WithCatalog(cat))
	}

	s, err := echofp.NewService(opts...)
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	svc = s
	return nil
}

func printBanner() {
	banner := `
  ______     _            ______ _____
 |  ____|   | |          |  ____|  __ \
 | |__   ___| |__   ___  | |__  | |__) |
 |  __| / __| '_ \ / _ \ |  __| |  ___/
 | |___| (__| | | | (_) | |      | |
 |______\___|_| |_|\___/  |_|      |_|

        acoustic fingerprinting
`
	fmt.Fprintln(os.Stderr, banner)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "echofp.snapshot", "path to the index snapshot file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to the optional metadata catalog (sqlite); empty disables it")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML pipeline config file; empty uses package defaults")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(addYouTubeCmd)
	rootCmd.AddCommand(recognizeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

func main() {
	printBanner()
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("command failed: %v", err)
		os.Exit(1)
	}
}
