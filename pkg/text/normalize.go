package text

import "strings"

// NormalizeCRLF rewrites every line terminator in s to CRLF, regardless of
// which convention (LF, CR, CRLF, or a mix) the source used. Collapsing to LF
// first keeps existing CRLF pairs from doubling.
func NormalizeCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
