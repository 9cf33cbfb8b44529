// Package token defines the lexical token stream Patitas's lexer produces.
// Token kinds and the zero-copy Source-slice-on-Token shape follow the
// teacher's internal/markdown token design, extended with the block-level
// kinds spec.md's lexer needs (fenced/indented code, directive fences,
// tables, thematic breaks, HTML blocks) and with a SourceSpan field used
// only by FencedCodeOpen to carry the Zero-Copy Lexer Handoff span.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	// Structural
	EOF Kind = iota
	Blank
	Text

	// Headings
	ATXHeading // "#"..."######" prefix line
	SetextUnderline

	// Code
	FencedCodeOpen
	FencedCodeLine
	FencedCodeClose
	IndentedCodeLine

	// Containers
	BlockQuoteMarker
	ListMarker

	// Misc block
	ThematicBreak
	HTMLBlockLine
	TableRow
	LinkReferenceDefLine

	// Directive fences (colon fences)
	DirectiveOpen
	DirectiveClose
	DirectiveOptionLine

	// Paragraph continuation line (plain text not otherwise classified)
	ParagraphLine
)

var kindNames = [...]string{
	"EOF", "Blank", "Text", "ATXHeading", "SetextUnderline",
	"FencedCodeOpen", "FencedCodeLine", "FencedCodeClose", "IndentedCodeLine",
	"BlockQuoteMarker", "ListMarker", "ThematicBreak", "HTMLBlockLine",
	"TableRow", "LinkReferenceDefLine", "DirectiveOpen", "DirectiveClose",
	"DirectiveOptionLine", "ParagraphLine",
}

// String returns a human-readable name for debugging.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Token is a value type describing one line (or line fragment) of
// classified input. Source is a zero-copy slice into the original buffer.
type Token struct {
	Kind Kind

	// Start/End are byte offsets into the source buffer for this token's
	// own text (e.g. the "# Heading" line, the "```python" fence line).
	Start int
	End   int

	// Source is the zero-copy slice [Start:End] of the original buffer.
	Source []byte

	// HeadingLevel is set for ATXHeading/SetextUnderline (1-6).
	HeadingLevel int

	// FenceChar is the run character for fenced code ('`' or '~') or a
	// directive fence's ':'.
	FenceChar byte

	// FenceLen is the run length of the opening fence.
	FenceLen int

	// Info is the trailing info string on a fence-open line (language tag
	// for code fences, "{name} title" payload for directive fences).
	Info string

	// Body is set only on FencedCodeOpen: the Zero-Copy Lexer Handoff span
	// covering the fence body, populated once the matching close is found.
	// Start/End of Body are byte offsets into the source, independent of
	// this token's own Start/End (which describe the opening fence line).
	Body Body

	// ListOrdered/ListStart/ListIndent describe a ListMarker token.
	ListOrdered bool
	ListStart   int
	ListIndent  int

	// BlockQuoteIndent is the column at which blockquote content begins.
	BlockQuoteIndent int
}

// Body is the ZCLH span recorded on a FencedCodeOpen token once its
// matching close fence is found during lexing.
type Body struct {
	Start int
	End   int
}

// Text returns the token's own source text as a string (a copy).
func (t Token) Text() string { return string(t.Source) }

// Len returns the byte length of the token's own source range.
func (t Token) Len() int { return t.End - t.Start }
