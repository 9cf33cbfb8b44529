package parser

import (
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/token"
)

// parseDirective consumes one colon-fence directive block (spec.md
// §4.3): an open line "{name} optional title", zero or more
// ":key: value" option lines, nested block content, and a close fence
// whose colon run is >= the open fence's run length (the Open Question
// this resolves is recorded in DESIGN.md, mirroring the fenced-code
// convention this syntax is modeled on). An unterminated directive
// absorbs the rest of the document, matching the lexer's own
// unterminated-fence behavior.
func (p *Parser) parseDirective(toks []token.Token, i int, full []byte) (ast.Node, int) {
	open := toks[i]
	name, title := parseDirectiveHeader(open.Info)
	openRunLen := open.FenceLen
	i++

	options := make(map[string]string)
	for i < len(toks) && toks[i].Kind == token.DirectiveOptionLine {
		k, v, ok := parseOptionLine(toks[i].Text())
		if ok {
			options[k] = v
		}
		i++
	}

	bodyStart := i
	for i < len(toks) {
		t := toks[i]
		if t.Kind == token.DirectiveClose && t.FenceLen >= openRunLen {
			break
		}
		i++
	}
	bodyToks := toks[bodyStart:i]

	var children []ast.Node
	if len(bodyToks) > 0 {
		children = p.parseBlocks(bodyToks, full)
	}

	end := open.End
	if i < len(toks) {
		end = toks[i].End
		i++
	} else if len(bodyToks) > 0 {
		end = bodyToks[len(bodyToks)-1].End
	}

	node := ast.NewDirective(open.Start, end, full[open.Start:end], children, name, title, options)
	return node, i
}

// parseDirectiveHeader splits a directive open line's info payload,
// "{name} optional title text", into its name and title.
func parseDirectiveHeader(info string) (name, title string) {
	info = strings.TrimSpace(info)
	if len(info) == 0 || info[0] != '{' {
		return "", ""
	}
	closeIdx := strings.IndexByte(info, '}')
	if closeIdx < 0 {
		return strings.TrimSuffix(info[1:], "}"), ""
	}
	name = info[1:closeIdx]
	title = strings.TrimSpace(info[closeIdx+1:])
	return name, title
}

// parseOptionLine splits a ":key: value" directive option line.
func parseOptionLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 2 || trimmed[0] != ':' {
		return "", "", false
	}
	rest := trimmed[1:]
	idx := strings.IndexByte(rest, ':')
	if idx <= 0 {
		return "", "", false
	}
	return rest[:idx], strings.TrimSpace(rest[idx+1:]), true
}
