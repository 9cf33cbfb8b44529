// Package parser turns a lexer.Lexer's token stream into an immutable
// ast.DocumentNode. It is grounded on the teacher's internal/markdown
// parser.go: a single forward pass over tokens, an explicit "open
// containers" loop for blockquote/list nesting, a reference-definition
// collection pre-pass, and an inlineParser delimiter-stack for
// emphasis/strong resolution — generalized from Spectr's Section/
// Requirement/Scenario grammar to spec.md §4.2's full CommonMark+GFM
// block grammar, and extended with directive/role/table/footnote/math
// parsing. Parse never panics on malformed input (spec.md §4.2's
// never-raises failure semantics): anything it cannot make sense of
// degrades to a Paragraph or Text node rather than erroring.
package parser

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/lexer"
	"github.com/lbliii/patitas/internal/patitas/pcontext"
	"github.com/lbliii/patitas/internal/patitas/source"
	"github.com/lbliii/patitas/internal/patitas/token"
)

// errNilSource is the one error Parse ever returns (spec.md §4.2's
// never-raises-on-malformed-input contract applies to Markdown content,
// not to a missing Source).
var errNilSource = errors.New("patitas: Parse called with a nil Source")

// Parser holds the configuration and per-parse state (reference
// definitions, footnote definitions, role/directive registries) needed
// to turn one Source into one ast.DocumentNode. A Parser is reused
// across parses via Reinit, matching spec.md §4.7's instance-pool model;
// it holds no state that must survive between separate Parse calls.
type Parser struct {
	cfg pcontext.ParseConfig

	refDefs       map[string]refDef
	footnoteDefs  []*ast.FootnoteDefNode
	footnoteOrder map[string]int
}

type refDef struct {
	dest  string
	title string
}

// New constructs a Parser using cfg. Passing the zero ParseConfig parses
// CommonMark with no GFM extensions; directive blocks and role syntax are
// parsed under every ParseConfig.
func New(cfg pcontext.ParseConfig) *Parser {
	return &Parser{cfg: cfg}
}

// Reinit clears per-parse state, letting a pooled Parser be reused
// (spec.md §4.7).
func (p *Parser) Reinit(cfg pcontext.ParseConfig) {
	p.cfg = cfg
	p.refDefs = nil
	p.footnoteDefs = nil
	p.footnoteOrder = nil
}

// Parse lexes src and builds its AST. It never returns an error for
// malformed Markdown (spec.md §4.2): a returned error only ever
// indicates a nil src.
func (p *Parser) Parse(src *source.Source) (*ast.DocumentNode, error) {
	if src == nil {
		return nil, errNilSource
	}
	toks := lexer.New(src).All()
	p.refDefs = collectRefDefs(toks)
	p.footnoteDefs = nil
	p.footnoteOrder = make(map[string]int)

	content := stripDefinitionLines(toks, p.cfg.FootnotesEnabled)
	children := p.parseBlocks(content, src.Bytes())

	allChildren := make([]ast.Node, 0, len(children)+len(p.footnoteDefs))
	allChildren = append(allChildren, children...)
	for _, fn := range p.footnoteDefs {
		allChildren = append(allChildren, fn)
	}

	return ast.NewDocument(0, src.Len(), src.Bytes(), allChildren), nil
}

// parseBlocks is the open-containers block loop: it scans tokens left to
// right, dispatching each to the block kind it starts and consuming
// however many tokens that block needs (spec.md §4.2).
func (p *Parser) parseBlocks(toks []token.Token, full []byte) []ast.Node {
	var out []ast.Node
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch t.Kind {
		case token.EOF, token.Blank:
			i++

		case token.ATXHeading:
			out = append(out, p.parseHeading(t, full))
			i++

		case token.ThematicBreak:
			out = append(out, ast.NewThematicBreak(t.Start, t.End, full[t.Start:t.End]))
			i++

		case token.FencedCodeOpen:
			out = append(out, p.parseFencedCode(t, full))
			i++

		case token.IndentedCodeLine:
			node, next := p.parseIndentedCode(toks, i, full)
			out = append(out, node)
			i = next

		case token.BlockQuoteMarker:
			node, next := p.parseBlockQuote(toks, i, full)
			out = append(out, node)
			i = next

		case token.ListMarker:
			node, next := p.parseList(toks, i, full)
			out = append(out, node)
			i = next

		case token.HTMLBlockLine:
			node, next := p.parseHTMLBlock(toks, i, full)
			out = append(out, node)
			i = next

		case token.TableRow:
			if p.cfg.TablesEnabled {
				if node, next, ok := p.tryParseTable(toks, i, full); ok {
					out = append(out, node)
					i = next
					continue
				}
			}
			node, next := p.parseParagraph(toks, i, full)
			out = append(out, node)
			i = next

		case token.DirectiveOpen:
			node, next := p.parseDirective(toks, i, full)
			out = append(out, node)
			i = next

		case token.LinkReferenceDefLine:
			if p.cfg.FootnotesEnabled && isFootnoteDefLine(t.Text()) {
				i = p.parseFootnoteDef(toks, i, full)
			} else if isFootnoteDefLine(t.Text()) {
				node, next := p.parseParagraph(toks, i, full)
				out = append(out, node)
				i = next
			} else {
				i++
			}

		case token.ParagraphLine:
			if p.cfg.MathEnabled && isMathFenceLine(t) {
				node, next := p.parseMathBlock(toks, i, full)
				out = append(out, node)
				i = next
				continue
			}
			node, next := p.parseParagraph(toks, i, full)
			out = append(out, node)
			i = next

		default:
			node, next := p.parseParagraph(toks, i, full)
			out = append(out, node)
			i = next
		}
	}
	return out
}

func (p *Parser) parseHeading(t token.Token, full []byte) *ast.HeadingNode {
	innerStart, innerEnd := headingTextSpan(t)
	children := p.parseInline(full[innerStart:innerEnd], innerStart)
	return ast.NewHeading(t.Start, t.End, full[t.Start:t.End], children, t.HeadingLevel, true)
}

// headingTextSpan returns the byte offsets of an ATX heading's text,
// after the "#"s and all of the spaces and tabs that follow them, and before any
// trailing "#"s CommonMark allows as a closing sequence.
func headingTextSpan(t token.Token) (start, end int) {
	line := t.Text()
	idx := 0
	for idx < len(line) && (line[idx] == ' ' || line[idx] == '\t') {
		idx++
	}
	for idx < len(line) && line[idx] == '#' {
		idx++
	}
	for idx < len(line) && (line[idx] == ' ' || line[idx] == '\t') {
		idx++
	}
	contentStart := idx
	end2 := len(line)
	for end2 > contentStart && (line[end2-1] == ' ' || line[end2-1] == '\t') {
		end2--
	}
	trail := end2
	for trail > contentStart && line[trail-1] == '#' {
		trail--
	}
	if trail < end2 && (trail == contentStart || line[trail-1] == ' ' || line[trail-1] == '\t') {
		end2 = trail
		for end2 > contentStart && (line[end2-1] == ' ' || line[end2-1] == '\t') {
			end2--
		}
	}
	return t.Start + contentStart, t.Start + end2
}

func (p *Parser) parseFencedCode(t token.Token, full []byte) *ast.FencedCodeNode {
	lang := t.Info
	for i := 0; i < len(lang); i++ {
		if lang[i] == ' ' || lang[i] == '\t' {
			lang = lang[:i]
			break
		}
	}
	highlightLines := parseHighlightLines(t.Info)
	body := full[t.Body.Start:t.Body.End]
	return ast.NewFencedCode(t.Start, t.Body.End, full[t.Start:t.Body.End], t.Info, lang, body, highlightLines)
}

// parseHighlightLines extracts a `{1,3-5,7}`-style line-highlight spec
// from a fenced code block's info string, returning a sorted,
// deduplicated set of 1-based line numbers (spec.md §4.4). Returns nil
// if info carries no such `{...}` suffix, or if it parses to an empty set.
func parseHighlightLines(info string) []int {
	start := strings.IndexByte(info, '{')
	if start < 0 {
		return nil
	}
	end := strings.IndexByte(info[start:], '}')
	if end < 0 {
		return nil
	}
	spec := info[start+1 : start+end]

	set := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		loN, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			continue
		}
		hiN := loN
		if isRange {
			hiN, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				continue
			}
		}
		if loN > hiN {
			loN, hiN = hiN, loN
		}
		for n := loN; n <= hiN; n++ {
			set[n] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// isMathFenceLine reports whether t is a bare "$$" line opening (or
// closing) a display-math block (spec.md §4.1's MathBlock extension).
func isMathFenceLine(t token.Token) bool {
	line := strings.TrimSpace(t.Text())
	return line == "$$"
}

// parseMathBlock consumes a "$$" line, every line up to (and including)
// the matching closing "$$" line, and builds a MathBlockNode from the
// lines between them. An unterminated block absorbs the rest of the
// document, matching the parser's never-panic degrade-gracefully rule.
func (p *Parser) parseMathBlock(toks []token.Token, i int, full []byte) (ast.Node, int) {
	start := toks[i].Start
	i++
	bodyStart := i
	for i < len(toks) {
		if toks[i].Kind == token.ParagraphLine && isMathFenceLine(toks[i]) {
			break
		}
		if toks[i].Kind == token.EOF {
			break
		}
		i++
	}
	var bodyEnd int
	if bodyStart < i {
		bodyEnd = toks[i-1].End
	} else {
		bodyEnd = toks[bodyStart-1].End
	}
	bodyStartOff := start
	if bodyStart < len(toks) && bodyStart < i {
		bodyStartOff = toks[bodyStart].Start
	}
	var body []byte
	if bodyStart < i {
		body = full[bodyStartOff:bodyEnd]
	}
	end := bodyEnd
	if i < len(toks) && toks[i].Kind == token.ParagraphLine {
		end = toks[i].End
		i++
	}
	return ast.NewMathBlock(start, end, full[start:end], body), i
}

func (p *Parser) parseIndentedCode(toks []token.Token, i int, full []byte) (ast.Node, int) {
	start := i
	for i < len(toks) && (toks[i].Kind == token.IndentedCodeLine || toks[i].Kind == token.Blank) {
		i++
	}
	for i > start && toks[i-1].Kind == token.Blank {
		i--
	}
	first, last := toks[start], toks[i-1]
	body := full[first.Start:last.End]
	return ast.NewIndentedCode(first.Start, last.End, body, body), i
}

func (p *Parser) parseHTMLBlock(toks []token.Token, i int, full []byte) (ast.Node, int) {
	start := i
	for i < len(toks) && toks[i].Kind == token.HTMLBlockLine {
		i++
	}
	first, last := toks[start], toks[i-1]
	return ast.NewHTMLBlock(first.Start, last.End, full[first.Start:last.End]), i
}

// parseParagraph consumes consecutive ParagraphLine/TableRow(fallback)/
// Text tokens as one paragraph, lazily absorbing anything that isn't a
// clear block-start (CommonMark's "lazy continuation" rule, simplified).
// The token at i always belongs to the paragraph, so a line no other
// block claims (such as a stray ":::" fence) becomes paragraph text.
func (p *Parser) parseParagraph(toks []token.Token, i int, full []byte) (ast.Node, int) {
	start := i
	i++
	for i < len(toks) && isParagraphContinuation(toks[i].Kind) {
		i++
	}
	first, last := toks[start], toks[i-1]
	children := p.parseInline(full[first.Start:last.End], first.Start)
	return ast.NewParagraph(first.Start, last.End, full[first.Start:last.End], children), i
}

func isParagraphContinuation(k token.Kind) bool {
	switch k {
	case token.ParagraphLine, token.TableRow, token.DirectiveOptionLine:
		return true
	default:
		return false
	}
}

// stripDefinitionLines drops link-reference-definition lines (always)
// and, when footnotes are disabled, leaves footnote-definition-looking
// lines (which start "[^label]:") to be parsed as ordinary paragraphs
// instead.
func stripDefinitionLines(toks []token.Token, footnotesEnabled bool) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.LinkReferenceDefLine && !isFootnoteDefLine(t.Text()) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func isFootnoteDefLine(line string) bool {
	return len(line) > 1 && line[0] == '[' && len(line) > 2 && line[1] == '^'
}
