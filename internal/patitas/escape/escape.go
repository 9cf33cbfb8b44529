// Package escape holds the small set of HTML-escaping helpers shared by
// the renderer and every directive/role handler, so neither package
// needs to import the other just for this (spec.md §4.3's escaping
// rules: text content escapes &<>"', URL attributes additionally escape
// whitespace and control characters).
package escape

import "strings"

var htmlReplacer = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#39;",
)

// HTML escapes text for safe inclusion in HTML element content or a
// double-quoted attribute value.
func HTML(s string) string { return htmlReplacer.Replace(s) }

// URL escapes a destination for inclusion in an href/src attribute:
// HTML-escapes it, then additionally escapes the characters that are
// syntactically significant as attribute delimiters but not already
// covered (backtick, space, and ASCII control characters such as tab
// and newline).
func URL(s string) string {
	s = HTML(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ':
			b.WriteString("%20")
		case '`':
			b.WriteString("%60")
		default:
			if r < 0x20 || r == 0x7f {
				// Tab, newline and the other ASCII control characters.
				const hex = "0123456789ABCDEF"
				b.WriteByte('%')
				b.WriteByte(hex[r>>4])
				b.WriteByte(hex[r&0xf])
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
