package parser

import (
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/token"
)

// collectRefDefs makes a first pass over the full token stream collecting
// link reference definitions ("[label]: dest \"title\""), first
// occurrence wins on a duplicate label (spec.md §4.2). Footnote
// definitions ("[^label]: ...") are handled separately in parseBlocks,
// since they (unlike link refs) contribute visible content to the
// document.
func collectRefDefs(toks []token.Token) map[string]refDef {
	defs := make(map[string]refDef)
	for _, t := range toks {
		if t.Kind != token.LinkReferenceDefLine {
			continue
		}
		line := t.Text()
		if isFootnoteDefLine(line) {
			continue
		}
		label, dest, title, ok := parseRefDefLine(line)
		if !ok {
			continue
		}
		key := normalizeLabel(label)
		if _, exists := defs[key]; !exists {
			defs[key] = refDef{dest: dest, title: title}
		}
	}
	return defs
}

// normalizeLabel applies CommonMark's case-insensitive, whitespace-
// collapsing reference label matching.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

func parseRefDefLine(line string) (label, dest, title string, ok bool) {
	if len(line) == 0 || line[0] != '[' {
		return "", "", "", false
	}
	close := strings.IndexByte(line, ']')
	if close < 0 || close+1 >= len(line) || line[close+1] != ':' {
		return "", "", "", false
	}
	label = line[1:close]
	rest := strings.TrimSpace(line[close+2:])
	if rest == "" {
		return "", "", "", false
	}

	var destEnd int
	if rest[0] == '<' {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return "", "", "", false
		}
		dest = rest[1:end]
		destEnd = end + 1
	} else {
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			dest = rest
			destEnd = len(rest)
		} else {
			dest = rest[:end]
			destEnd = end
		}
	}

	title = parseOptionalTitle(strings.TrimSpace(rest[destEnd:]))
	return label, dest, title, true
}

func parseOptionalTitle(s string) string {
	if len(s) < 2 {
		return ""
	}
	open, close := s[0], s[len(s)-1]
	if (open == '"' && close == '"') || (open == '\'' && close == '\'') || (open == '(' && close == ')') {
		return s[1 : len(s)-1]
	}
	return ""
}

// resolveRef looks up a reference label, returning its destination and
// title. Unresolved references degrade to plain text at the call site
// rather than erroring.
func (p *Parser) resolveRef(label string) (dest, title string, ok bool) {
	d, found := p.refDefs[normalizeLabel(label)]
	if !found {
		return "", "", false
	}
	return d.dest, d.title, true
}

// parseFootnoteDef consumes a "[^label]: ..." line (and, kept simple, any
// immediately following lines indented by 4+ columns as continuation
// text) as one FootnoteDefNode, appending it to p.footnoteDefs in
// definition order. The appearance order of a label is recorded
// separately, by scanFootnoteRef, when a reference to it is parsed.
func (p *Parser) parseFootnoteDef(toks []token.Token, i int, full []byte) int {
	t := toks[i]
	line := t.Text()
	close := strings.IndexByte(line, ']')
	label := line[2:close]
	rest := strings.TrimSpace(line[close+2:])

	start := t.Start
	end := t.End
	text := rest
	i++
	for i < len(toks) && toks[i].Kind == token.IndentedCodeLine {
		end = toks[i].End
		text += "\n" + strings.TrimSpace(toks[i].Text())
		i++
	}
	text = strings.TrimSpace(text)

	bodySrc := full[start:end]
	var children []ast.Node
	if text != "" {
		inlineStart := t.Start + strings.Index(string(full[t.Start:t.End]), rest)
		children = p.parseInline([]byte(text), inlineStart)
	}
	para := ast.NewParagraph(start, end, bodySrc, children)
	fn := ast.NewFootnoteDef(start, end, bodySrc, []ast.Node{para}, label)
	p.footnoteDefs = append(p.footnoteDefs, fn)
	return i
}
