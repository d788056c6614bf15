/*
Package config manages fix-manifest parsing and validation for textfix.

	            +-------------+
	            |   Config    |
	            | (Manifest)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |  JSON   |  |   HCL   |
	+----------+  +---------+  +---------+

🎯 Purpose:
- Loads the ordered file list and pass options from a manifest file
- Supports YAML, JSON, and HCL, chosen by file extension
- Validates the manifest before any file is touched

🔄 Flow:
1. Read the manifest from disk
2. Parse with the format matching the extension (.textfix tries YAML then HCL)
3. Validate: non-empty file list, well-formed ignore patterns, legal rule order
4. Hand the validated Config to the CLI layer

⚡ Key Responsibilities:
- Format abstraction (strict decoding in every format)
- Ignore-pattern filtering of the explicit file list (doublestar globs)
- Converting manifest rules into the pkg/text rule set, preserving the
  contract that the &amp; decode runs last

📝 Design Philosophy:
The manifest only ever narrows the file list. Ignore patterns match the
listed paths themselves; nothing walks directories or expands globs into new
paths, so the set of files a run can touch is exactly what the caller wrote
down.
*/
package config
