package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textfix/cmd/textfix/opts"
	"github.com/walteh/textfix/pkg/report"
)

var (
	// Flags
	configFile string
	debug      bool
	plain      bool
)

// newRootOpts creates a new rootOpts with initialized dependencies. Flag
// values are read through the struct's pointers after cobra has parsed them,
// so the manifest is only loaded once a command actually runs.
func newRootOpts(userLogger *report.UserLogger) *opts.RootOpts {
	return &opts.RootOpts{
		ConfigFile: &configFile,
		Plain:      &plain,
		UserLogger: userLogger,
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "fix manifest path (yaml, json, or hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable color output")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
