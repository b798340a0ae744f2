// Klfctl is a control utility for Velux KLF200 gateways.
//
// It provides gateway discovery, scene activation, actuator node
// control, and a house status monitor that republishes node events
// over WebSocket. The tool speaks the gateway's SLIP-framed TLS
// protocol directly.
//
// Usage:
//
//	klfctl [command] [flags]
//
// See 'klfctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "klfctl",
	Short: "Velux KLF200 Gateway Control Utility",
	Long: `A standalone utility for controlling Velux KLF200 gateways.

Provides gateway discovery, scene activation, actuator node control
and a house status monitor over the gateway's native TLS protocol.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("klfctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
