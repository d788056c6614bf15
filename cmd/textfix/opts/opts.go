package opts

import (
	"context"

	"github.com/walteh/textfix/pkg/config"
	"github.com/walteh/textfix/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands. Flag values are held
// as pointers because they are bound before cobra parses the command line.
type RootOpts struct {
	ConfigFile *string
	Plain      *bool
	UserLogger *report.UserLogger
}

// LoadConfig loads the manifest named by the --config flag, or returns nil
// when no manifest was requested.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	if o.ConfigFile == nil || *o.ConfigFile == "" {
		return nil, nil
	}
	cfg, err := config.Load(ctx, *o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading manifest: %w", err)
	}
	return cfg, nil
}

// PlainOutput reports whether color output is disabled, either by flag or by
// the manifest.
func (o *RootOpts) PlainOutput(cfg *config.Config) bool {
	if o.Plain != nil && *o.Plain {
		return true
	}
	return cfg != nil && cfg.Plain
}

// TODO(dr.methodical): 🧪 Add tests for option validation
