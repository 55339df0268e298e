// ABOUTME: Root CLI command and global flags
// ABOUTME: Assembles the fetch, process, and version subcommands
package commands

import (
	"github.com/spf13/cobra"
)

const banner = `
██████╗  █████╗ ███╗   ██╗ ██████╗██╗██╗   ██╗
██╔══██╗██╔══██╗████╗  ██║██╔════╝██║██║   ██║
██████╔╝███████║██╔██╗ ██║██║     ██║██║   ██║
██╔══██╗██╔══██║██║╚██╗██║██║     ██║██║   ██║
██████╔╝██║  ██║██║ ╚████║╚██████╗██║╚██████╔╝
╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝╚═╝ ╚═════╝
`

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banciu",
		Short: "Fetch and chunk Prea Mult Banciu episode transcripts",
		Long: banner + `
banciu builds a retrieval corpus from the Prea Mult Banciu talk show.

The fetch command finds episode videos by Romanian broadcast date and
writes a CSV table. The process command turns each video in that table
into a cleaned, chunked transcript JSON, using subtitles when the
video has them and speech-to-text when it does not.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewProcessCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
