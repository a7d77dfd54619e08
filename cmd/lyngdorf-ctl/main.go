// Lyngdorf-ctl is a command line utility for controlling Lyngdorf audio
// processors and amplifiers over the network.
//
// It speaks the Lyngdorf serial control protocol over TCP and supports the
// MP-40, MP-50, MP-60, TDAI-1120, TDAI-2170 and TDAI-3400. Devices can be
// addressed by IP or by a short name kept in a local config file.
//
// Usage:
//
//	lyngdorf-ctl [command] [flags]
//
// See 'lyngdorf-ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avcontrol/lyngdorf/internal/logging"
	"github.com/avcontrol/lyngdorf/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lyngdorf-ctl",
	Short: "Lyngdorf Device Control Utility",
	Long: `A command line utility for controlling Lyngdorf audio processors.

Connects to MP and TDAI series devices over TCP and exposes power, volume,
source selection and RoomPerfect controls. Devices can be addressed by IP
address or by a short name saved with 'lyngdorf-ctl devices add'.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
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
		fmt.Printf("lyngdorf-ctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
