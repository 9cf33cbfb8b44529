package parser

import (
	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/lexer"
	"github.com/lbliii/patitas/internal/patitas/source"
	"github.com/lbliii/patitas/internal/patitas/token"
)

// Container handling (blockquote and list nesting) is kept out of the
// lexer deliberately (DESIGN.md): MatchBlockQuoteMarker/MatchListMarker
// report only the first marker at a line's start, and it is this
// package's job to recursively strip that marker, re-lex the dedented
// body, and parse it as an independent sub-document. Stripping a
// container prefix copies bytes (it is not a uniform-width slice of the
// original buffer), so nested node spans are approximate — anchored to
// the enclosing container's outer [start,end) rather than their own
// precise offsets. This does not affect content hashing or equality
// (computeHash never reads Start/End), only span-based tooling.

// parseBlockQuote consumes one blockquote container: a run of
// BlockQuoteMarker lines plus any immediately-following lazy-continuation
// lines (CommonMark's lazy-continuation rule, simplified to "any
// paragraph-like line directly after, with no intervening blank").
func (p *Parser) parseBlockQuote(toks []token.Token, i int, full []byte) (ast.Node, int) {
	start := toks[i].Start
	var body []byte

loop:
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Kind == token.BlockQuoteMarker:
			line := full[t.Start:t.End]
			// Drop the leading indentation, the '>' marker and one optional
			// space after it: the prefix BlockQuoteIndent measures in columns.
			k := 0
			for k < len(line) && line[k] != '>' {
				k++
			}
			if k < len(line) {
				k++
			}
			if k < len(line) && (line[k] == ' ' || line[k] == '\t') {
				k++
			}
			stripped := line[k:]
			body = append(body, stripped...)
			body = append(body, '\n')
			i++
		case isParagraphContinuation(t.Kind):
			body = append(body, full[t.Start:t.End]...)
			body = append(body, '\n')
			i++
		default:
			break loop
		}
	}
	end := start
	if i > 0 {
		end = toks[i-1].End
	}
	children := p.parseBlocksFromBytes(body)
	return ast.NewBlockQuote(start, end, full[start:end], children), i
}

// parseList consumes one list: a run of items at the same marker kind
// (bullet vs. ordered), each item's content dedented by its marker's
// ListIndent and parsed as its own sub-document. Tightness is decided by
// whether any two items are separated by a blank line.
func (p *Parser) parseList(toks []token.Token, i int, full []byte) (ast.Node, int) {
	start := toks[i].Start
	ordered := toks[i].ListOrdered
	startNum := toks[i].ListStart
	if startNum == 0 {
		startNum = 1
	}

	var items []ast.Node
	tight := true
	sawBlankBetween := false

	for i < len(toks) {
		t := toks[i]
		if t.Kind == token.Blank {
			sawBlankBetween = true
			i++
			continue
		}
		if t.Kind != token.ListMarker || t.ListOrdered != ordered {
			break
		}
		if sawBlankBetween && len(items) > 0 {
			tight = false
		}
		sawBlankBetween = false

		itemStart := t.Start
		indent := t.ListIndent
		var body []byte
		line := full[t.Start:t.End]
		// Drop the leading indentation, the marker ("-", "*", "+", or
		// digits followed by "." or ")") and one space after it.
		k := 0
		for k < len(line) && (line[k] == ' ' || line[k] == '\t') {
			k++
		}
		for ordered && k < len(line) && line[k] >= '0' && line[k] <= '9' {
			k++
		}
		if k < len(line) {
			k++
		}
		if k < len(line) && (line[k] == ' ' || line[k] == '\t') {
			k++
		}
		firstLine := line[k:]
		body = append(body, firstLine...)
		body = append(body, '\n')
		i++

		for i < len(toks) {
			nt := toks[i]
			if nt.Kind == token.ListMarker || nt.Kind == token.BlockQuoteMarker {
				break
			}
			if nt.Kind == token.Blank {
				// A blank line ends the item unless a further indented line
				// continues it; lookahead without consuming keeps this O(n)
				// amortized since each token is visited a bounded number of
				// times across the whole list.
				if i+1 < len(toks) && isIndentedContinuation(toks[i+1], full, indent) {
					body = append(body, '\n')
					i++
					continue
				}
				break
			}
			if !isParagraphContinuation(nt.Kind) && nt.Kind != token.IndentedCodeLine {
				break
			}
			body = append(body, stripColumns(full[nt.Start:nt.End], indent)...)
			body = append(body, '\n')
			i++
		}

		itemEnd := itemStart
		if i > 0 {
			itemEnd = toks[i-1].End
		}
		var checked *bool
		if p.cfg.TaskListsEnabled {
			checked = parseTaskListMarker(body)
		}
		children := p.parseBlocksFromBytes(body)
		items = append(items, ast.NewListItem(itemStart, itemEnd, full[itemStart:itemEnd], children, checked))
	}

	end := start
	if i > 0 {
		end = toks[i-1].End
	}
	return ast.NewList(start, end, full[start:end], items, ordered, startNum, tight), i
}

func isIndentedContinuation(t token.Token, full []byte, indent int) bool {
	if t.Kind == token.Blank {
		return false
	}
	cols := 0
	line := full[t.Start:t.End]
	for _, b := range line {
		if b == ' ' {
			cols++
		} else if b == '\t' {
			cols += 4 - (cols % 4)
		} else {
			break
		}
	}
	return cols >= indent
}

// parseTaskListMarker recognizes a GFM task-list checkbox ("[ ] "/"[x] ")
// at the start of an item's first line, returning nil when absent.
func parseTaskListMarker(body []byte) *bool {
	if len(body) < 4 || body[0] != '[' {
		return nil
	}
	mark := body[1]
	if body[2] != ']' {
		return nil
	}
	checked := mark == 'x' || mark == 'X'
	if mark != ' ' && !checked {
		return nil
	}
	return &checked
}

// stripColumns removes up to n leading indentation columns (space=1,
// tab=advance-to-multiple-of-4) from line, copying the remainder.
func stripColumns(line []byte, n int) []byte {
	cols, idx := 0, 0
	for idx < len(line) && cols < n {
		switch line[idx] {
		case ' ':
			cols++
		case '\t':
			cols += 4 - (cols % 4)
		default:
			return line[idx:]
		}
		idx++
	}
	out := make([]byte, len(line)-idx)
	copy(out, line[idx:])
	return out
}

// parseBlocksFromBytes re-lexes a (copied, dedented) sub-buffer and
// parses it as an independent block sequence, sharing this Parser's
// reference-definition table and footnote accumulator.
func (p *Parser) parseBlocksFromBytes(body []byte) []ast.Node {
	sub := source.New(body, "")
	toks := lexer.New(sub).All()
	return p.parseBlocks(toks, body)
}
