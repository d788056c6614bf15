package commands

import (
	"context"

	"github.com/walteh/textfix/cmd/textfix/opts"
	"github.com/walteh/textfix/pkg/config"
	"github.com/walteh/textfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// resolveInputs turns command-line args and the optional manifest into the
// ordered path list and rule set for a pass. Paths given as args win over the
// manifest's file list; the manifest still contributes its ignore patterns
// and extra rules either way.
func resolveInputs(ctx context.Context, ro *opts.RootOpts, args []string) ([]string, []text.Rule, *config.Config, error) {
	cfg, err := ro.LoadConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	rules := text.DefaultRules()
	var paths []string

	if cfg != nil {
		ro.UserLogger.LogManifest(cfg.Location())
		rules = cfg.TextRules()
		if len(args) > 0 {
			// Args override the manifest file list but keep its ignore filter
			filtered := *cfg
			filtered.Files = args
			paths = filtered.FilteredFiles(ctx)
		} else {
			paths = cfg.FilteredFiles(ctx)
		}
	} else {
		paths = args
	}

	if len(paths) == 0 {
		return nil, nil, nil, errors.Errorf("no files to process: pass paths as arguments or list them in a manifest")
	}

	return paths, rules, cfg, nil
}
