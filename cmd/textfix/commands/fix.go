package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/textfix/cmd/textfix/opts"
	"github.com/walteh/textfix/pkg/fixer"
	"github.com/walteh/textfix/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// NewFixCmd creates a new fix command
func NewFixCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [files...]",
		Short: "Rewrite the listed files in place",
		Long: `Fix rewrites every listed file in place.
For each file it will:
1. Read the content as UTF-8 text
2. Strip any byte-order mark and decode &apos; &quot; &amp;
3. Normalize every line terminator to CRLF
4. Write the result back to the same path

Files are processed in the order given. A file that cannot be read or
written is reported and skipped; the rest of the batch still runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paths, rules, cfg, err := resolveInputs(ctx, ro, args)
			if err != nil {
				return err
			}
			ro.UserLogger.LogRunStart("fix", len(paths))

			reporter := report.NewConsole(cmd.OutOrStdout(), report.ConsoleOptions{
				Plain: ro.PlainOutput(cfg),
			})

			f, err := fixer.New(fixer.Options{Rules: rules, Reporter: reporter})
			if err != nil {
				return errors.Errorf("creating fixer: %w", err)
			}

			outcomes, err := f.Fix(ctx, paths)
			if err != nil {
				return errors.Errorf("fixing files: %w", err)
			}

			if failed := countFailed(outcomes); failed > 0 {
				return errors.Errorf("%d of %d files could not be fixed", failed, len(outcomes))
			}
			return nil
		},
	}

	return cmd
}

// countFailed counts the errored outcomes of a pass
func countFailed(outcomes []fixer.Outcome) int {
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}
