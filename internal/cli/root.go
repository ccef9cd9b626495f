// Package cli implements the staticbot command line interface.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/staticbot/staticbot/internal/cli.version=1.2.3"
	version = "1.0.0"
	logo    = "\n" +
		"      _        _   _      _           _\n" +
		"  ___| |_ __ _| |_(_) ___| |__   ___ | |_\n" +
		" / __| __/ _` | __| |/ __| '_ \\ / _ \\| __|\n" +
		" \\__ \\ || (_| | |_| | (__| |_) | (_) | |_\n" +
		" |___/\\__\\__,_|\\__|_|\\___|_.__/ \\___/ \\__|\n"
)

var rootCmd = &cobra.Command{
	Use:   "staticbot",
	Short: "staticbot - private group channels for Discord",
	Long:  color.CyanString(logo) + "\nA Discord bot managing ephemeral private group channels through commands.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
}
