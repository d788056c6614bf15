// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/textfix/pkg/fixer"
)

// 🎯 Console writes one human-readable line per outcome plus a completion
// line, mirroring everything to the contextual zerolog logger for debugging.
// It implements fixer.Reporter.
type Console struct {
	w       io.Writer
	mu      sync.Mutex
	dryRun  bool
	success *color.Color
	failure *color.Color
}

// 🔧 ConsoleOptions configures a Console reporter
type ConsoleOptions struct {
	// Plain disables color output
	Plain bool
	// DryRun switches the wording from "fixed" to "would fix", for check
	// passes that write nothing
	DryRun bool
}

// 🏭 NewConsole creates a console reporter writing to w
func NewConsole(w io.Writer, opts ConsoleOptions) *Console {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)
	if opts.Plain {
		success.DisableColor()
		failure.DisableColor()
	}
	return &Console{
		w:       w,
		dryRun:  opts.DryRun,
		success: success,
		failure: failure,
	}
}

// 📝 Outcome implements fixer.Reporter
func (c *Console) Outcome(ctx context.Context, outcome fixer.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := zerolog.Ctx(ctx)

	if outcome.Err != nil {
		fmt.Fprintf(c.w, "%s fixing %s: %v\n", c.failure.Sprint("error"), outcome.Path, outcome.Err)
		logger.Error().Err(outcome.Err).Str("file", outcome.Path).Msg("fix failed")
		return
	}

	verb := "fixed"
	if c.dryRun {
		verb = "would fix"
		if !outcome.Changed {
			verb = "clean"
		}
	}
	fmt.Fprintf(c.w, "%s: %s\n", c.success.Sprint(verb), outcome.Path)

	logger.Info().
		Str("file", outcome.Path).
		Bool("changed", outcome.Changed).
		Int("replacements", outcome.Replacements).
		Msg(verb)
}

// 📝 Summary implements fixer.Reporter
func (c *Console) Summary(ctx context.Context, summary fixer.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "\nAll files processed! (%d fixed, %d failed)\n", summary.Fixed, summary.Failed)

	zerolog.Ctx(ctx).Info().
		Int("total", summary.Total).
		Int("fixed", summary.Fixed).
		Int("failed", summary.Failed).
		Msg("pass complete")
}
