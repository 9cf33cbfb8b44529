package pcontext

import (
	"strings"
	"unicode"
)

// defaultSlugify lowercases s and collapses runs of non-alphanumeric
// characters to a single '-', trimming leading/trailing '-'. Heading ids
// are computed from this at render time, never stored on the node
// (spec.md §3.3); dedup suffixing ("-1", "-2") is the renderer's job
// since it needs cross-heading state this pure function doesn't have.
func defaultSlugify(s string) string {
	var b strings.Builder
	lastDash := true // true so a leading run of non-alnum is dropped, not dashed
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
