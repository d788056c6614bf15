package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/textfix/cmd/textfix/commands"
	"github.com/walteh/textfix/pkg/report"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	// Create user logger
	userLogger := report.NewUserLogger(ctx)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "textfix",
		Short: "A tool for fixing encoding artifacts in UTF-8 text files",
		Long: `textfix rewrites a list of text files in place: it strips UTF-8
byte-order marks, decodes the HTML entities &apos; &quot; and &amp; back to
their literal characters, and normalizes every line terminator to CRLF.

One file failing never stops the batch; each file is reported individually
and the process exits non-zero if any file could not be fixed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Create root options
	opts := newRootOpts(userLogger)

	// Add commands
	rootCmd.AddCommand(
		commands.NewFixCmd(opts),
		commands.NewCheckCmd(opts),
		commands.NewVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
