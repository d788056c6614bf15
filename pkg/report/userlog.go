package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about a run, separate from
// the per-file outcome stream the Console reporter owns. The CLI uses it for
// lifecycle messages: startup, validation failures, and the final verdict.
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogRunStart announces the start of a pass over n files
func (u *UserLogger) LogRunStart(command string, files int) {
	msg := fmt.Sprintf("%s: processing %d file(s)", command, files)
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	u.log.Info().Msg(msg)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
	}
}

// 📄 LogManifest logs which manifest the path list came from
func (u *UserLogger) LogManifest(path string) {
	msg := fmt.Sprintf("Using manifest %s", filepath.Base(path))
	pterm.Debug.WithPrefix(pterm.Prefix{Text: "📄"}).Println(msg)
	u.log.Debug().Str("manifest", path).Msg("loaded manifest")
}
