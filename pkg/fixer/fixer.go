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

package fixer

import (
	"bytes"
	"context"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/textfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Outcome is the per-file result of a fix or check pass. Exactly one of
// Fixed or Err is meaningful: an errored file is never marked fixed.
type Outcome struct {
	Path         string // File path as given by the caller
	Fixed        bool   // Whether the file was read, transformed, and written
	Changed      bool   // Whether the written bytes differ from the original
	Replacements int    // Occurrences replaced by the rule set
	Err          error  // Failure cause, when the file could not be fixed
}

// 📊 Summary aggregates a full pass over the path list
type Summary struct {
	Total  int // Paths processed
	Fixed  int // Files successfully rewritten (or clean, for a check pass)
	Failed int // Files that errored
}

// 📢 Reporter receives outcomes as they are produced. Implementations must
// tolerate being called once per path plus once for the final summary.
type Reporter interface {
	Outcome(ctx context.Context, outcome Outcome)
	Summary(ctx context.Context, summary Summary)
}

// 🔧 Options contains configuration for the fixer
type Options struct {
	// Rules is the ordered substitution rule set. Defaults to
	// text.DefaultRules when nil.
	Rules []text.Rule
	// Reporter receives per-file outcomes and the final summary
	Reporter Reporter
}

// 🔨 Fixer rewrites listed files in place, applying its rule set and
// normalizing line terminators to CRLF
type Fixer struct {
	rules    []text.Rule
	replacer *text.Replacer
	reporter Reporter
}

// 🏭 New creates a new fixer with the given options
func New(opts Options) (*Fixer, error) {
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}

	rules := opts.Rules
	if rules == nil {
		rules = text.DefaultRules()
	}
	if err := text.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	return &Fixer{
		rules:    rules,
		replacer: text.NewReplacer(),
		reporter: opts.Reporter,
	}, nil
}

// 🏃 Fix processes every path in order: read as UTF-8, apply the rules,
// normalize line endings, write back in place. A failing file is recorded in
// its outcome and never aborts the batch; only context cancellation stops the
// pass early, leaving the returned outcomes short.
func (f *Fixer) Fix(ctx context.Context, paths []string) ([]Outcome, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(paths)).Msg("starting fix pass")

	outcomes := make([]Outcome, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			f.reporter.Summary(ctx, summarize(outcomes))
			return outcomes, errors.Errorf("fix pass cancelled: %w", err)
		}

		outcome := f.fixOne(ctx, path)
		outcomes = append(outcomes, outcome)
		f.reporter.Outcome(ctx, outcome)
	}

	f.reporter.Summary(ctx, summarize(outcomes))
	return outcomes, nil
}

// 📄 fixOne runs the read-transform-write cycle for a single path
func (f *Fixer) fixOne(ctx context.Context, path string) Outcome {
	logger := zerolog.Ctx(ctx)
	outcome := Outcome{Path: path}

	original, transformed, replacements, err := f.transform(ctx, path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	// Write unconditionally: line endings are normalized for every listed
	// file, so even content-identical files are rewritten in place.
	if err := os.WriteFile(path, transformed, 0o644); err != nil {
		outcome.Err = &WriteError{Path: path, Cause: err}
		return outcome
	}

	outcome.Fixed = true
	outcome.Changed = !bytes.Equal(original, transformed)
	outcome.Replacements = replacements

	logger.Debug().
		Str("file", path).
		Bool("changed", outcome.Changed).
		Int("replacements", replacements).
		Msg("fixed file")

	return outcome
}

// 🔍 transform reads the file and produces its fixed content without writing
func (f *Fixer) transform(ctx context.Context, path string) (original, transformed []byte, replacements int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, 0, &ReadError{Path: path, Cause: err}
	}
	if !utf8.Valid(raw) {
		return nil, nil, 0, &ReadError{Path: path, Cause: errors.New("content is not valid UTF-8")}
	}

	result, err := f.replacer.Replace(ctx, bytes.NewReader(raw), f.rules)
	if err != nil {
		return nil, nil, 0, &ReadError{Path: path, Cause: err}
	}

	fixed := text.NormalizeCRLF(string(result.ModifiedContent))
	return raw, []byte(fixed), result.ReplacementCount, nil
}

// summarize folds outcomes into a Summary
func summarize(outcomes []Outcome) Summary {
	summary := Summary{Total: len(outcomes)}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			summary.Failed++
			continue
		}
		summary.Fixed++
	}
	return summary
}
