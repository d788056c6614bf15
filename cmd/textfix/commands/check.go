package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/textfix/cmd/textfix/opts"
	"github.com/walteh/textfix/pkg/fixer"
	"github.com/walteh/textfix/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(ro *opts.RootOpts) *cobra.Command {
	var async bool

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report which files a fix pass would change, without writing",
		Long: `Check runs the same read-and-transform cycle as fix but writes
nothing back. It reports, per file, whether a fix pass would change it.
Because the pass is read-only it can scan files concurrently with --async;
the report order still matches the input order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			paths, rules, cfg, err := resolveInputs(ctx, ro, args)
			if err != nil {
				return err
			}
			ro.UserLogger.LogRunStart("check", len(paths))

			reporter := report.NewConsole(cmd.OutOrStdout(), report.ConsoleOptions{
				Plain:  ro.PlainOutput(cfg),
				DryRun: true,
			})

			f, err := fixer.New(fixer.Options{Rules: rules, Reporter: reporter})
			if err != nil {
				return errors.Errorf("creating fixer: %w", err)
			}

			outcomes, err := f.Check(ctx, paths, async)
			if err != nil {
				return errors.Errorf("checking files: %w", err)
			}

			if failed := countFailed(outcomes); failed > 0 {
				return errors.Errorf("%d of %d files could not be checked", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "scan files concurrently")

	return cmd
}
