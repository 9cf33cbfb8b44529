package parser

import (
	"bytes"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
)

// scanAutolinkOrRawHTML handles a "<...>" span: either a CommonMark
// autolink (<scheme:...> or <email@host>) or a raw inline HTML tag,
// comment, or processing instruction passed through verbatim.
func scanAutolinkOrRawHTML(text []byte, i, base int) (ast.Node, int, bool) {
	close := bytes.IndexByte(text[i+1:], '>')
	if close < 0 {
		return nil, 0, false
	}
	end := i + 1 + close + 1
	inner := string(text[i+1 : i+1+close])
	if isAutolinkScheme(inner) {
		return ast.NewLink(base+i, base+end, text[i:end], []ast.Node{ast.NewText(base+i+1, base+i+1+close, text[i+1:i+1+close])}, inner, ""), end, true
	}
	if isAutolinkEmail(inner) {
		return ast.NewLink(base+i, base+end, text[i:end], []ast.Node{ast.NewText(base+i+1, base+i+1+close, text[i+1:i+1+close])}, "mailto:"+inner, ""), end, true
	}
	if looksLikeTag(inner) {
		return ast.NewHTMLInline(base+i, base+end, text[i:end]), end, true
	}
	return nil, 0, false
}

func isAutolinkScheme(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 2 || colon > 32 {
		return false
	}
	scheme := s[:colon]
	for i, c := range scheme {
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isAlnum := isAlpha || (c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlnum {
			return false
		}
	}
	rest := s[colon+1:]
	return !strings.ContainsAny(rest, " \t\n<>") && len(rest) > 0
}

func isAutolinkEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t\n<>")
}

func looksLikeTag(s string) bool {
	s = strings.TrimPrefix(s, "/")
	if strings.HasPrefix(s, "!") || strings.HasPrefix(s, "?") {
		return true
	}
	if len(s) == 0 {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// scanLinkOrImage parses "[text](dest \"title\")" or "[text][ref]" or the
// shorthand reference "[text]", starting at the opening '['. isImage
// tells it whether to build an ImageNode (the caller has already
// consumed the leading '!').
func (p *Parser) scanLinkOrImage(text []byte, i, base int, isImage bool) (ast.Node, int, bool) {
	if i >= len(text) || text[i] != '[' {
		return nil, 0, false
	}
	labelEnd := findMatchingBracket(text, i)
	if labelEnd < 0 {
		return nil, 0, false
	}
	labelText := text[i+1 : labelEnd]
	afterLabel := labelEnd + 1

	if afterLabel < len(text) && text[afterLabel] == '(' {
		dest, title, end, ok := parseInlineDestTitle(text, afterLabel)
		if ok {
			return p.buildLinkNode(isImage, base+i, base+end, text[i:end], labelText, base+i+1, dest, title), end, true
		}
	}

	if afterLabel < len(text) && text[afterLabel] == '[' {
		refEnd := findMatchingBracket(text, afterLabel)
		if refEnd >= 0 {
			label := string(labelText)
			if refEnd > afterLabel+1 {
				label = string(text[afterLabel+1 : refEnd])
			}
			if dest, title, ok := p.resolveRef(label); ok {
				end := refEnd + 1
				return p.buildLinkNode(isImage, base+i, base+end, text[i:end], labelText, base+i+1, dest, title), end, true
			}
		}
		return nil, 0, false
	}

	if dest, title, ok := p.resolveRef(string(labelText)); ok {
		return p.buildLinkNode(isImage, base+i, base+afterLabel, text[i:afterLabel], labelText, base+i+1, dest, title), afterLabel, true
	}
	return nil, 0, false
}

func (p *Parser) buildLinkNode(isImage bool, start, end int, src, labelText []byte, labelBase int, dest, title string) ast.Node {
	children := p.parseInlineLine(labelText, labelBase)
	if isImage {
		return ast.NewImage(start, end, src, children, dest, title)
	}
	return ast.NewLink(start, end, src, children, dest, title)
}

// findMatchingBracket finds the ']' matching the '[' at text[open],
// accounting for nested brackets and backslash escapes.
func findMatchingBracket(text []byte, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseInlineDestTitle parses "(dest \"title\")" starting at the '('.
func parseInlineDestTitle(text []byte, open int) (dest, title string, end int, ok bool) {
	i := open + 1
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	destStart := i
	if i < len(text) && text[i] == '<' {
		close := bytes.IndexByte(text[i+1:], '>')
		if close < 0 {
			return "", "", 0, false
		}
		dest = string(text[i+1 : i+1+close])
		i = i + 1 + close + 1
	} else {
		depth := 0
		for i < len(text) {
			c := text[i]
			if c == '\\' {
				i += 2
				continue
			}
			if c == '(' {
				depth++
			}
			if c == ')' {
				if depth == 0 {
					break
				}
				depth--
			}
			if c == ' ' || c == '\t' {
				break
			}
			i++
		}
		dest = string(text[destStart:i])
	}

	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	if i < len(text) && text[i] != ')' {
		qc := text[i]
		if qc == '"' || qc == '\'' {
			close := bytes.IndexByte(text[i+1:], qc)
			if close < 0 {
				return "", "", 0, false
			}
			title = string(text[i+1 : i+1+close])
			i = i + 1 + close + 1
			for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
				i++
			}
		}
	}
	if i >= len(text) || text[i] != ')' {
		return "", "", 0, false
	}
	return dest, title, i + 1, true
}

// scanFootnoteRef handles "[^label]", the caller having already checked
// text[i] == '[' && text[i+1] == '^'.
func (p *Parser) scanFootnoteRef(text []byte, i, base int) (ast.Node, int, bool) {
	close := findMatchingBracket(text, i)
	if close < 0 {
		return nil, 0, false
	}
	label := string(text[i+2 : close])
	if label == "" {
		return nil, 0, false
	}
	idx, seen := p.footnoteOrder[label]
	if !seen {
		idx = len(p.footnoteOrder) + 1
		p.footnoteOrder[label] = idx
	}
	end := close + 1
	return ast.NewFootnoteRef(base+i, base+end, text[i:end], label, idx), end, true
}

// scanRole handles "{name}`content`" (spec.md §4.4).
func (p *Parser) scanRole(text []byte, i, base int) (ast.Node, int, bool) {
	rel := bytes.IndexByte(text[i:], '}')
	if rel < 0 {
		return nil, 0, false
	}
	close := i + rel
	if close == i+1 {
		return nil, 0, false
	}
	name := string(text[i+1 : close])
	if strings.ContainsAny(name, " \t\n") {
		return nil, 0, false
	}
	if close+1 >= len(text) || text[close+1] != '`' {
		return nil, 0, false
	}
	bodyStart := close + 2
	bodyEnd := findBacktickRun(text, bodyStart, 1)
	if bodyEnd < 0 {
		return nil, 0, false
	}
	content := string(text[bodyStart:bodyEnd])
	end := bodyEnd + 1
	return ast.NewRole(base+i, base+end, text[i:end], name, content), end, true
}

// scanInlineMath handles "$...$" inline math spans.
func scanInlineMath(text []byte, i, base int) (ast.Node, int, bool) {
	if i+1 >= len(text) || text[i+1] == ' ' {
		return nil, 0, false
	}
	close := -1
	for j := i + 1; j < len(text); j++ {
		if text[j] == '$' && text[j-1] != ' ' {
			close = j
			break
		}
	}
	if close < 0 {
		return nil, 0, false
	}
	body := string(text[i+1 : close])
	end := close + 1
	return ast.NewMath(base+i, base+end, text[i:end], body), end, true
}
