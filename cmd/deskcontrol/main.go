// Package main starts the deskcontrol server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// main is the entrypoint for the deskcontrol server.
func main() {
	var opts runOptions
	rootCmd := &cobra.Command{
		Use:   "deskcontrol",
		Short: "Forward browser input to a remote device as control events",
		Long: `deskcontrol accepts input from an authenticated browser over a websocket,
turns it into control events and forwards them, in order, to a single peer
over a TCP connection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable verbose debug logging")
	rootCmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding .env and config.yaml (default $DATA_DIR or ./data)")
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// versionCmd prints build information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "deskcontrol %s (%s)\n", version, commit)
		},
	}
}
