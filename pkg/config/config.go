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

package config

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/textfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is an extra literal replacement applied alongside the built-in
// entity decodes
type Rule struct {
	Old string `json:"old" yaml:"old"` // Original string to replace
	New string `json:"new" yaml:"new"` // New string to use
}

// 📚 Config is a fix manifest: the ordered file list to rewrite plus optional
// tuning for the pass
type Config struct {
	Files  []string `json:"files" yaml:"files"`                       // Ordered list of files to fix
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"` // Glob patterns removing entries from Files
	Rules  []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`   // Extra replacements, applied before the entity decodes
	Plain  bool     `json:"plain,omitempty" yaml:"plain,omitempty"`   // Disable color in the report

	location string // Path the manifest was loaded from
}

// 📍 Location returns the path the manifest was loaded from
func (c *Config) Location() string {
	return c.location
}

// ✅ Validate checks the manifest for obvious mistakes
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return errors.Errorf("manifest lists no files")
	}
	for i, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore pattern %d: invalid pattern %q", i, pattern)
		}
	}
	if err := text.ValidateRules(c.TextRules()); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}
	return nil
}

// 🔍 FilteredFiles returns Files with every entry matching an ignore pattern
// removed, preserving order. Patterns match the listed path itself; the list
// is never expanded, so a pattern can only remove entries.
func (c *Config) FilteredFiles(ctx context.Context) []string {
	if len(c.Ignore) == 0 {
		return c.Files
	}

	logger := zerolog.Ctx(ctx)
	files := make([]string, 0, len(c.Files))
	for _, file := range c.Files {
		if c.shouldIgnore(ctx, file) {
			logger.Debug().Str("file", file).Msg("file removed by ignore pattern")
			continue
		}
		files = append(files, file)
	}
	return files
}

// shouldIgnore reports whether any ignore pattern matches the path
func (c *Config) shouldIgnore(ctx context.Context, path string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range c.Ignore {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(path))
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// 🔧 TextRules converts the manifest's extra rules into the full ordered rule
// set for a pass, keeping the built-in ordering contract intact.
func (c *Config) TextRules() []text.Rule {
	extra := make([]text.Rule, 0, len(c.Rules))
	for _, r := range c.Rules {
		extra = append(extra, text.Rule{From: r.Old, To: r.New})
	}
	return text.RulesWith(extra...)
}
