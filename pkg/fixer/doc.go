/*
Package fixer implements the batch read-transform-write cycle at the heart of textfix.

	+-----------+     +------------+     +-----------+
	|  Acquire  | --> | Transform  | --> |  Persist  |
	| (read)    |     | (rules +   |     | (write in |
	|           |     |  CRLF)     |     |  place)   |
	+-----------+     +------------+     +-----------+
	                        |
	                  +-----+-----+
	                  |  Report   |
	                  | (outcome) |
	                  +-----------+

🎯 Purpose:
- Processes an ordered list of file paths, one at a time
- Applies the substitution rule set and line-ending normalization
- Rewrites each file in place and records a per-file Outcome
- Never lets one file's failure abort the batch

🔄 Flow:
1. Read the file as UTF-8 (ReadError on missing, unreadable, or non-UTF-8 files)
2. Apply every rule in order via pkg/text
3. Normalize all line terminators to CRLF
4. Write back, truncating (WriteError on failure; no rollback)
5. Report the outcome and move to the next path

⚡ Key Responsibilities:
- Per-file error isolation
- Outcome and summary reporting via the Reporter interface
- Dry-run checking (Check) with optional concurrent scanning

🤝 Interfaces:
- Reporter: consumer-supplied sink for outcomes and the final summary

📝 Design Philosophy:
The fixer is deliberately a best-effort batch: partial success is expected
and surfaced through outcomes rather than aborting. Writes are unconditional
so line endings are normalized even in files with no entity to decode; a
file's mtime may change when its content did not. Fix passes are strictly
sequential in input order, which keeps the report deterministic and the
failure mode per-file.

🔍 Example:

	reporter := report.NewConsole(os.Stdout, report.ConsoleOptions{})
	f, err := fixer.New(fixer.Options{Reporter: reporter})
	if err != nil {
		return err
	}
	outcomes, err := f.Fix(ctx, paths)
*/
package fixer
