package lexer

import (
	"bytes"

	"github.com/lbliii/patitas/internal/patitas/token"
)

// These helpers classify a single physical line with a bounded, O(line
// length) scan and no backtracking, matching spec.md §4.1's parsing-cost
// guarantee. Each returns ok=false rather than erroring when the line
// doesn't match, letting lexNormalLine fall through to the next
// classifier and eventually to ParagraphLine.

// leadingSpaces returns the number of leading space/tab columns, tabs
// counted as advancing to the next multiple of 4 (CommonMark tab
// expansion), and the byte index past them.
func leadingSpaces(line []byte) (cols, idx int) {
	for idx < len(line) {
		switch line[idx] {
		case ' ':
			cols++
		case '\t':
			cols += 4 - (cols % 4)
		default:
			return cols, idx
		}
		idx++
	}
	return cols, idx
}

func matchATXHeading(line []byte) (level int, ok bool) {
	cols, idx := leadingSpaces(line)
	if cols >= 4 {
		return 0, false
	}
	start := idx
	for idx < len(line) && line[idx] == '#' {
		idx++
	}
	level = idx - start
	if level < 1 || level > 6 {
		return 0, false
	}
	if idx == len(line) {
		return level, true
	}
	if line[idx] != ' ' && line[idx] != '\t' {
		return 0, false
	}
	return level, true
}

func matchFenceOpen(line []byte) (ch byte, runLen int, info string, ok bool) {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) {
		return 0, 0, "", false
	}
	c := line[idx]
	if c != '`' && c != '~' {
		return 0, 0, "", false
	}
	start := idx
	for idx < len(line) && line[idx] == c {
		idx++
	}
	runLen = idx - start
	if runLen < minFenceRun {
		return 0, 0, "", false
	}
	rest := bytes.TrimSpace(line[idx:])
	if c == '`' && bytes.IndexByte(rest, '`') >= 0 {
		// A backtick fence's info string may not itself contain a backtick.
		return 0, 0, "", false
	}
	return c, runLen, string(rest), true
}

func matchFenceClose(line []byte, ch byte, openRunLen int) (runLen int, ok bool) {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) || line[idx] != ch {
		return 0, false
	}
	start := idx
	for idx < len(line) && line[idx] == ch {
		idx++
	}
	runLen = idx - start
	if runLen < openRunLen {
		return 0, false
	}
	if len(bytes.TrimSpace(line[idx:])) != 0 {
		return 0, false
	}
	return runLen, true
}

// matchDirectiveFenceOpen recognizes a colon-fence directive open line:
// a run of 3+ colons followed by "{name}" and an optional title/options
// payload, e.g. ":::{note} Careful". The Open Question of exact-match
// vs >=-length colon-fence closing is resolved in DESIGN.md: closing
// requires a run length >= the opening run, matching the fenced-code
// convention this syntax is modeled on.
func matchDirectiveFenceOpen(line []byte) (runLen int, info string, ok bool) {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) || line[idx] != ':' {
		return 0, "", false
	}
	start := idx
	for idx < len(line) && line[idx] == ':' {
		idx++
	}
	runLen = idx - start
	if runLen < minFenceRun {
		return 0, "", false
	}
	rest := bytes.TrimSpace(line[idx:])
	if len(rest) == 0 || rest[0] != '{' {
		return 0, "", false
	}
	return runLen, string(rest), true
}

func matchDirectiveFenceClose(line []byte) (runLen int, ok bool) {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) || line[idx] != ':' {
		return 0, false
	}
	start := idx
	for idx < len(line) && line[idx] == ':' {
		idx++
	}
	runLen = idx - start
	if runLen < minFenceRun {
		return 0, false
	}
	if len(bytes.TrimSpace(line[idx:])) != 0 {
		return 0, false
	}
	return runLen, true
}

// isThematicBreak matches 3+ of the same character (*, -, _), optionally
// space-separated, and nothing else on the line.
func isThematicBreak(line []byte) bool {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) {
		return false
	}
	c := line[idx]
	if c != '*' && c != '-' && c != '_' {
		return false
	}
	count := 0
	for ; idx < len(line); idx++ {
		switch line[idx] {
		case c:
			count++
		case ' ', '\t':
			// allowed between markers
		default:
			return false
		}
	}
	return count >= 3
}

// MatchBlockQuoteMarker reports whether line begins a blockquote
// container: an optional up-to-3-space indent, '>', and an optional
// single following space. indent is the column where quoted content
// begins (used by the parser to strip the marker on continuation lines).
func MatchBlockQuoteMarker(line []byte) (indent int, ok bool) {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) || line[idx] != '>' {
		return 0, false
	}
	idx++
	consumedSpace := 0
	if idx < len(line) && (line[idx] == ' ' || line[idx] == '\t') {
		idx++
		consumedSpace = 1
	}
	return cols + 1 + consumedSpace, true
}

// MatchListMarker recognizes an unordered ('-', '*', '+') or ordered
// (digits followed by '.' or ')') list item marker at the start of a
// line, followed by at least one space or end-of-line.
func MatchListMarker(line []byte) (tok token.Token, ok bool) {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) {
		return token.Token{}, false
	}

	switch line[idx] {
	case '-', '*', '+':
		markerEnd := idx + 1
		if markerEnd < len(line) && line[markerEnd] != ' ' && line[markerEnd] != '\t' {
			return token.Token{}, false
		}
		// A run of 3+ of the same char is a thematic break, not a list
		// marker; isThematicBreak is checked before this in lexNormalLine.
		indentCols, _ := leadingSpaces(line[markerEnd:])
		return token.Token{
			Kind: token.ListMarker, ListOrdered: false,
			ListIndent: cols + 1 + minInt(indentCols+1, 4),
		}, true

	default:
		if line[idx] < '0' || line[idx] > '9' {
			return token.Token{}, false
		}
		start := idx
		for idx < len(line) && line[idx] >= '0' && line[idx] <= '9' {
			idx++
		}
		if idx-start > 9 {
			return token.Token{}, false
		}
		if idx >= len(line) || (line[idx] != '.' && line[idx] != ')') {
			return token.Token{}, false
		}
		n := 0
		for _, d := range line[start:idx] {
			n = n*10 + int(d-'0')
		}
		markerEnd := idx + 1
		if markerEnd < len(line) && line[markerEnd] != ' ' && line[markerEnd] != '\t' {
			return token.Token{}, false
		}
		indentCols, _ := leadingSpaces(line[markerEnd:])
		return token.Token{
			Kind: token.ListMarker, ListOrdered: true, ListStart: n,
			ListIndent: markerEnd - start + cols + minInt(indentCols+1, 4),
		}, true
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// isOptionLine recognizes a directive option line, "key: value" sitting
// immediately under a directive-open line, distinguished from a table
// row or paragraph by a leading ":" prefix convention
// (":key: value").
func isOptionLine(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " \t")
	if len(trimmed) < 2 || trimmed[0] != ':' {
		return false
	}
	rest := trimmed[1:]
	colonIdx := bytes.IndexByte(rest, ':')
	return colonIdx > 0
}

// isLinkReferenceDefLine recognizes "[label]: destination" optionally
// followed by a title, at up to 3 spaces of indent.
func isLinkReferenceDefLine(line []byte) bool {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) || line[idx] != '[' {
		return false
	}
	closeIdx := bytes.IndexByte(line[idx:], ']')
	if closeIdx < 0 {
		return false
	}
	closeIdx += idx
	if closeIdx+1 >= len(line) || line[closeIdx+1] != ':' {
		return false
	}
	rest := bytes.TrimSpace(line[closeIdx+2:])
	return len(rest) > 0
}

var htmlBlockTags = [][]byte{
	[]byte("!--"),
	[]byte("script"), []byte("style"), []byte("pre"), []byte("textarea"),
	[]byte("div"), []byte("p"), []byte("table"), []byte("ul"), []byte("ol"),
	[]byte("section"), []byte("article"), []byte("aside"), []byte("nav"),
	[]byte("header"), []byte("footer"), []byte("figure"), []byte("blockquote"),
	[]byte("h1"), []byte("h2"), []byte("h3"), []byte("h4"), []byte("h5"), []byte("h6"),
}

// looksLikeHTMLBlockStart is a simplified stand-in for CommonMark's full
// seven HTML-block-start conditions: it recognizes a line beginning with
// "<" followed by a known block-level tag name or an HTML comment opener.
// It does not distinguish the seven precise start/end conditions the
// CommonMark spec defines per type; anything it misses still renders
// correctly as inline HTML or escaped text, just not as a raw block.
func looksLikeHTMLBlockStart(line []byte) bool {
	cols, idx := leadingSpaces(line)
	if cols >= 4 || idx >= len(line) || line[idx] != '<' {
		return false
	}
	rest := line[idx+1:]
	rest = bytes.TrimPrefix(rest, []byte("/"))
	lower := bytes.ToLower(rest)
	for _, tag := range htmlBlockTags {
		if bytes.HasPrefix(lower, tag) {
			return true
		}
	}
	return false
}

// looksLikeTableRow requires at least one unescaped, unquoted '|' on the
// line. Whether it is actually part of a table (needs a following
// delimiter row) is decided by the parser, which has lookahead.
func looksLikeTableRow(line []byte) bool {
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if line[i] == '|' {
			return true
		}
	}
	return false
}

// isIndentedCode requires a 4+ column indent and that the line is not
// itself inside a list continuation (the parser resolves that ambiguity
// using open-container state; the lexer only reports the raw indent).
func isIndentedCode(line []byte) bool {
	cols, idx := leadingSpaces(line)
	return cols >= 4 && idx < len(line)
}
