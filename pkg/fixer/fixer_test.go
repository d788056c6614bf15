package fixer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/textfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// recordingReporter captures outcomes and summaries for assertions
type recordingReporter struct {
	mu        sync.Mutex
	outcomes  []Outcome
	summaries []Summary
}

func (r *recordingReporter) Outcome(ctx context.Context, outcome Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingReporter) Summary(ctx context.Context, summary Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
}

func writeFixture(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func newTestFixer(t *testing.T) (*Fixer, *recordingReporter) {
	t.Helper()
	reporter := &recordingReporter{}
	f, err := New(Options{Reporter: reporter})
	require.NoError(t, err)
	return f, reporter
}

func TestNew(t *testing.T) {
	t.Run("requires_reporter", func(t *testing.T) {
		_, err := New(Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reporter is required")
	})

	t.Run("rejects_invalid_rules", func(t *testing.T) {
		_, err := New(Options{
			Reporter: &recordingReporter{},
			Rules: []text.Rule{
				{From: "&amp;", To: "&"},
				{From: "&quot;", To: `"`},
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validating rules")
	})
}

func TestFixer_Fix_Scenario(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "page.tsx", []byte("\ufeff<p>It&apos;s &quot;ready&quot; &amp; done.</p>\n"))

	f, reporter := newTestFixer(t)
	outcomes, err := f.Fix(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.True(t, outcomes[0].Fixed, "file should be fixed")
	assert.True(t, outcomes[0].Changed, "content should have changed")
	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, 5, outcomes[0].Replacements)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>It's \"ready\" & done.</p>\r\n", string(got), "file should be rewritten clean with CRLF")

	require.Len(t, reporter.outcomes, 1, "reporter should see each outcome")
	require.Len(t, reporter.summaries, 1, "reporter should see the summary")
	assert.Equal(t, Summary{Total: 1, Fixed: 1, Failed: 0}, reporter.summaries[0])
}

func TestFixer_Fix_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "mixed.txt", []byte("one\ntwo\r\nthree&amp;four\r"))

	f, _ := newTestFixer(t)

	_, err := f.Fix(context.Background(), []string{path})
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	outcomes, err := f.Fix(context.Background(), []string{path})
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "second pass should not change content")
	assert.True(t, outcomes[0].Fixed, "second pass still rewrites the file")
	assert.False(t, outcomes[0].Changed, "second pass should report no content change")
}

func TestFixer_Fix_RewritesUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	// Already clean: no BOM, no entities, CRLF terminators
	path := writeFixture(t, dir, "clean.txt", []byte("hello\r\nworld\r\n"))

	f, _ := newTestFixer(t)
	outcomes, err := f.Fix(context.Background(), []string{path})
	require.NoError(t, err)

	assert.True(t, outcomes[0].Fixed, "clean files are still written")
	assert.False(t, outcomes[0].Changed)
	assert.Equal(t, 0, outcomes[0].Replacements)
}

func TestFixer_Fix_PerFileIsolation(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "first.txt", []byte("a&amp;b\n"))
	missing := filepath.Join(dir, "missing.txt")
	third := writeFixture(t, dir, "third.txt", []byte("c&quot;d\n"))

	f, reporter := newTestFixer(t)
	outcomes, err := f.Fix(context.Background(), []string{first, missing, third})
	require.NoError(t, err, "a per-file failure must not abort the batch")
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].Fixed)
	assert.True(t, outcomes[2].Fixed)

	require.Error(t, outcomes[1].Err)
	var readErr *ReadError
	require.True(t, errors.As(outcomes[1].Err, &readErr), "missing file should be a ReadError")
	assert.Equal(t, missing, readErr.Path)
	assert.Contains(t, outcomes[1].Err.Error(), missing, "error should name the failing path")

	gotFirst, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "a&b\r\n", string(gotFirst), "files before the failure are still fixed")

	gotThird, err := os.ReadFile(third)
	require.NoError(t, err)
	assert.Equal(t, "c\"d\r\n", string(gotThird), "files after the failure are still fixed")

	assert.Equal(t, Summary{Total: 3, Fixed: 2, Failed: 1}, reporter.summaries[0])
}

func TestFixer_Fix_InvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "latin1.txt", []byte{'c', 'a', 'f', 0xe9, '\n'})

	f, _ := newTestFixer(t)
	outcomes, err := f.Fix(context.Background(), []string{path})
	require.NoError(t, err)

	require.Error(t, outcomes[0].Err)
	var readErr *ReadError
	require.True(t, errors.As(outcomes[0].Err, &readErr))
	assert.Contains(t, outcomes[0].Err.Error(), "not valid UTF-8")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9, '\n'}, got, "unreadable files must not be touched")
}

func TestFixer_Fix_PreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFixture(t, dir, "b.txt", []byte("b\n")),
		writeFixture(t, dir, "a.txt", []byte("a\n")),
		writeFixture(t, dir, "c.txt", []byte("c\n")),
	}

	f, reporter := newTestFixer(t)
	outcomes, err := f.Fix(context.Background(), paths)
	require.NoError(t, err)

	for i, path := range paths {
		assert.Equal(t, path, outcomes[i].Path, "outcomes should follow input order")
		assert.Equal(t, path, reporter.outcomes[i].Path, "reported order should follow input order")
	}
}

func TestFixer_Fix_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "a.txt", []byte("a\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, _ := newTestFixer(t)
	outcomes, err := f.Fix(ctx, []string{path})
	require.Error(t, err)
	assert.Empty(t, outcomes, "no file should be processed after cancellation")
}

func TestFixer_Fix_WriteError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions do not bind for root")
	}

	dir := t.TempDir()
	path := writeFixture(t, dir, "readonly.txt", []byte("a&amp;b\n"))
	require.NoError(t, os.Chmod(path, 0o444))

	f, reporter := newTestFixer(t)
	outcomes, err := f.Fix(context.Background(), []string{path})
	require.NoError(t, err, "a write failure must not abort the batch")
	require.Len(t, outcomes, 1)

	require.Error(t, outcomes[0].Err)
	var writeErr *WriteError
	require.True(t, errors.As(outcomes[0].Err, &writeErr), "unwritable file should be a WriteError")
	assert.Equal(t, path, writeErr.Path)
	assert.False(t, outcomes[0].Fixed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a&amp;b\n", string(got), "content should be untouched when the open is refused")

	assert.Equal(t, Summary{Total: 1, Fixed: 0, Failed: 1}, reporter.summaries[0])
}

func TestFixer_Check(t *testing.T) {
	dir := t.TempDir()
	dirty := writeFixture(t, dir, "dirty.txt", []byte("x&amp;y\n"))
	clean := writeFixture(t, dir, "clean.txt", []byte("x&y\r\n"))
	missing := filepath.Join(dir, "missing.txt")

	for _, async := range []bool{false, true} {
		name := "sync"
		if async {
			name = "async"
		}
		t.Run(name, func(t *testing.T) {
			f, reporter := newTestFixer(t)
			outcomes, err := f.Check(context.Background(), []string{dirty, clean, missing}, async)
			require.NoError(t, err)
			require.Len(t, outcomes, 3)

			assert.True(t, outcomes[0].Changed, "dirty file would change")
			assert.Equal(t, 1, outcomes[0].Replacements)
			assert.False(t, outcomes[1].Changed, "clean file would not change")
			require.Error(t, outcomes[2].Err)

			// Dry run: nothing on disk moves
			got, err := os.ReadFile(dirty)
			require.NoError(t, err)
			assert.Equal(t, "x&amp;y\n", string(got), "check must not write")

			for i, want := range []string{dirty, clean, missing} {
				assert.Equal(t, want, reporter.outcomes[i].Path, "report order should follow input order")
			}
			assert.Equal(t, Summary{Total: 3, Fixed: 2, Failed: 1}, reporter.summaries[0])
		})
	}
}

// expiringContext reports cancellation once its allowed Err calls are spent,
// simulating a context cancelled partway through a pass
type expiringContext struct {
	context.Context
	remaining int
}

func (c *expiringContext) Err() error {
	if c.remaining <= 0 {
		return context.Canceled
	}
	c.remaining--
	return nil
}

func TestFixer_Check_CancelledMidPass(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "first.txt", []byte("a&amp;b\n"))
	second := writeFixture(t, dir, "second.txt", []byte("c\n"))

	f, reporter := newTestFixer(t)
	ctx := &expiringContext{Context: context.Background(), remaining: 1}

	outcomes, err := f.Check(ctx, []string{first, second}, false)
	require.Error(t, err)
	require.Len(t, outcomes, 1, "only the first file should have been scanned")

	require.Len(t, reporter.outcomes, 1, "scanned outcomes are still reported on cancellation")
	assert.Equal(t, first, reporter.outcomes[0].Path)
	require.Len(t, reporter.summaries, 1)
	assert.Equal(t, Summary{Total: 1, Fixed: 1, Failed: 0}, reporter.summaries[0])

	got, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "c\n", string(got))
}

func TestReadWriteErrors(t *testing.T) {
	readErr := &ReadError{Path: "a.txt", Cause: errors.New("boom")}
	assert.Equal(t, "reading a.txt: boom", readErr.Error())
	assert.Equal(t, "boom", errors.Unwrap(readErr).Error())

	writeErr := &WriteError{Path: "b.txt", Cause: errors.New("disk full")}
	assert.Equal(t, "writing b.txt: disk full", writeErr.Error())
	assert.Equal(t, "disk full", errors.Unwrap(writeErr).Error())
}
