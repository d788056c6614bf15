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
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// 🔍 Check runs the read-transform cycle for every path without writing
// anything back, reporting which files a fix pass would change. Because the
// pass is read-only it may scan concurrently when async is set; outcomes are
// still collected and reported in input order so the report stays
// deterministic.
func (f *Fixer) Check(ctx context.Context, paths []string, async bool) ([]Outcome, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(paths)).Bool("async", async).Msg("starting check pass")

	outcomes := make([]Outcome, len(paths))

	if async {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())
		for i, path := range paths {
			i, path := i, path
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes[i] = f.checkOne(gctx, path)
				return nil
			})
		}
		// Per-file failures live in the outcomes; the only group error is
		// context cancellation.
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				for _, outcome := range outcomes[:i] {
					f.reporter.Outcome(ctx, outcome)
				}
				f.reporter.Summary(ctx, summarize(outcomes[:i]))
				return outcomes[:i], err
			}
			outcomes[i] = f.checkOne(ctx, path)
		}
	}

	for _, outcome := range outcomes {
		f.reporter.Outcome(ctx, outcome)
	}
	f.reporter.Summary(ctx, summarize(outcomes))

	return outcomes, nil
}

// 📄 checkOne produces the outcome a fix pass would have for path, minus the
// write
func (f *Fixer) checkOne(ctx context.Context, path string) Outcome {
	outcome := Outcome{Path: path}

	original, transformed, replacements, err := f.transform(ctx, path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Fixed = true
	outcome.Changed = !bytes.Equal(original, transformed)
	outcome.Replacements = replacements
	return outcome
}
