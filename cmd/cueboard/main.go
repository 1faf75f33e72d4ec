// Package main is the entry point for the cueboard CLI.
//
// Cueboard can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	cueboard serve                   # Start with defaults (port 8080)
//	cueboard serve -c config.yaml    # Start with a config file
//	cueboard validate -c config.yaml # Validate configuration
//	cueboard version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "cueboard",
	Short: "A real-time cue broadcaster for live performance",
	Long: `Cueboard broadcasts the current song-section cue to any number of
passive displays in real time.

A director opens the controller page and taps a cue letter (and optionally
a repetition digit); every connected viewer updates the moment the cue
changes. State lives in memory only and resets on restart.

Quick start:
  1. Run: cueboard serve
  2. Open http://localhost:8080 on the director's device
  3. Open http://localhost:8080/view on each display

Example config:
  title: Main Stage
  port: 8080
  wait_timeout: 25s`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this cueboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cueboard %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
