// Package lexer scans a source buffer into a stream of line-oriented
// tokens in a single forward pass, never backtracking past the current
// line. It is the Go-native analog of the teacher's internal/markdown
// hand-rolled byte lexer (token.go/lexer.go), generalized from a
// character-level token stream to the line-level token stream spec.md's
// §3.2 describes, and extended with Zero-Copy Lexer Handoff span tracking
// for fenced code bodies (spec.md §4.1).
package lexer

import (
	"bytes"

	"github.com/lbliii/patitas/internal/patitas/source"
	"github.com/lbliii/patitas/internal/patitas/token"
)

// State mirrors spec.md §4.1's line modes. A Lexer is always in exactly
// one state; fenced code and HTML blocks absorb lines without running
// inline-triggering classification on them.
type State uint8

const (
	StateNormal State = iota
	StateFencedCode
	StateHTMLBlock
)

const minFenceRun = 3

// Lexer converts a Source into a stream of Tokens. It is single-use: once
// Next returns a token.EOF-kind token, all further calls keep returning it.
//
// Lexer never raises on malformed input (spec.md §4.1's error behaviour):
// anything it cannot classify becomes a ParagraphLine token.
type Lexer struct {
	src *source.Source
	pos int

	state     State
	fenceChar byte
	fenceLen  int

	// TextTransformer is applied after classification, only to lines
	// already classified as ParagraphLine, and only to the token's
	// Source: the line is not re-classified, so a transformed line that
	// starts with a block-triggering character (such as "#") stays a
	// ParagraphLine, and Start/End still span the untransformed bytes.
	// It never runs inside fenced code or HTML blocks, and never
	// introduces newlines (any embedded newline in the transform's
	// output is collapsed to a space).
	TextTransformer func(string) string

	atEOF bool
}

// New constructs a Lexer over src, starting at byte offset 0.
func New(src *source.Source) *Lexer {
	return &Lexer{src: src}
}

// Pos returns the lexer's current byte offset.
func (l *Lexer) Pos() int { return l.pos }

// State returns the lexer's current line mode.
func (l *Lexer) State() State { return l.state }

// Next returns the next token in the stream. Once input is exhausted it
// returns an EOF-kind token on every subsequent call.
func (l *Lexer) Next() token.Token {
	if l.atEOF {
		return l.eofToken()
	}
	if l.pos >= l.src.Len() {
		l.atEOF = true
		return l.eofToken()
	}

	switch l.state {
	case StateFencedCode:
		return l.lexFencedCodeLine()
	case StateHTMLBlock:
		return l.lexHTMLBlockLine()
	default:
		return l.lexNormalLine()
	}
}

// All consumes the remainder of the stream and returns every token,
// including the trailing EOF token.
func (l *Lexer) All() []token.Token {
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) eofToken() token.Token {
	return token.Token{Kind: token.EOF, Start: l.src.Len(), End: l.src.Len()}
}

// nextLine returns the next raw physical line starting at l.pos (excluding
// its trailing newline), the byte offset where the line starts, and the
// byte offset where the *next* line begins (i.e. past this line's
// newline, or end-of-buffer if there is none). It advances l.pos to that
// next-line offset.
func (l *Lexer) nextLine() (line []byte, start, nextStart int) {
	buf := l.src.Bytes()
	start = l.pos
	idx := bytes.IndexByte(buf[start:], '\n')
	if idx < 0 {
		nextStart = len(buf)
		line = buf[start:]
	} else {
		nextStart = start + idx + 1
		line = buf[start : start+idx]
		// Normalize a trailing \r (CRLF) out of the line's own content.
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	l.pos = nextStart
	return line, start, nextStart
}

func (l *Lexer) lexNormalLine() token.Token {
	line, start, _ := l.nextLine()

	if len(bytesTrimRight(line)) == 0 {
		return token.Token{Kind: token.Blank, Start: start, End: start + len(line), Source: line}
	}

	if level, ok := matchATXHeading(line); ok {
		return token.Token{
			Kind: token.ATXHeading, Start: start, End: start + len(line),
			Source: line, HeadingLevel: level,
		}
	}

	if ch, runLen, info, ok := matchFenceOpen(line); ok {
		return l.openFencedCode(line, start, ch, runLen, info)
	}

	if runLen, info, ok := matchDirectiveFenceOpen(line); ok {
		return token.Token{
			Kind: token.DirectiveOpen, Start: start, End: start + len(line),
			Source: line, FenceChar: ':', FenceLen: runLen, Info: info,
		}
	}
	if runLen, ok := matchDirectiveFenceClose(line); ok {
		return token.Token{
			Kind: token.DirectiveClose, Start: start, End: start + len(line),
			Source: line, FenceChar: ':', FenceLen: runLen,
		}
	}

	if isThematicBreak(line) {
		return token.Token{Kind: token.ThematicBreak, Start: start, End: start + len(line), Source: line}
	}

	if indent, ok := MatchBlockQuoteMarker(line); ok {
		return token.Token{
			Kind: token.BlockQuoteMarker, Start: start, End: start + len(line),
			Source: line, BlockQuoteIndent: indent,
		}
	}

	if info, ok := MatchListMarker(line); ok {
		info.Start, info.End = start, start+len(line)
		info.Source = line
		return info
	}

	if isOptionLine(line) {
		return token.Token{Kind: token.DirectiveOptionLine, Start: start, End: start + len(line), Source: line}
	}

	if isLinkReferenceDefLine(line) {
		return token.Token{Kind: token.LinkReferenceDefLine, Start: start, End: start + len(line), Source: line}
	}

	if looksLikeHTMLBlockStart(line) {
		l.state = StateHTMLBlock
		return token.Token{Kind: token.HTMLBlockLine, Start: start, End: start + len(line), Source: line}
	}

	if looksLikeTableRow(line) {
		return token.Token{Kind: token.TableRow, Start: start, End: start + len(line), Source: line}
	}

	if isIndentedCode(line) {
		return token.Token{Kind: token.IndentedCodeLine, Start: start, End: start + len(line), Source: line}
	}

	text := l.maybeTransform(line)
	return token.Token{Kind: token.ParagraphLine, Start: start, End: start + len(line), Source: text}
}

func (l *Lexer) maybeTransform(line []byte) []byte {
	if l.TextTransformer == nil {
		return line
	}
	out := l.TextTransformer(string(line))
	if bytes.ContainsRune([]byte(out), '\n') {
		out = string(bytes.ReplaceAll([]byte(out), []byte("\n"), []byte(" ")))
	}
	return []byte(out)
}

// openFencedCode performs the Zero-Copy Lexer Handoff without changing
// l.state (it stays StateNormal): it scans forward to find the matching close
// fence (or EOF) without ever copying the body, recording only its
// [start,end) span on the returned token's Body field.
func (l *Lexer) openFencedCode(openLine []byte, openStart int, ch byte, runLen int, info string) token.Token {
	tok := token.Token{
		Kind: token.FencedCodeOpen, Start: openStart, End: openStart + len(openLine),
		Source: openLine, FenceChar: ch, FenceLen: runLen, Info: info,
	}

	bodyStart := l.pos
	buf := l.src.Bytes()

	for {
		if l.pos >= len(buf) {
			tok.Body = token.Body{Start: bodyStart, End: len(buf)}
			return tok
		}
		lineStart := l.pos
		line, _, _ := l.nextLine()
		if closeRunLen, ok := matchFenceClose(line, ch, runLen); ok {
			_ = closeRunLen
			tok.Body = token.Body{Start: bodyStart, End: lineStart}
			return tok
		}
	}
}

func (l *Lexer) lexFencedCodeLine() token.Token {
	// openFencedCode already consumed the whole fenced region, closing
	// fence line included, in one call (or ran to EOF), and it never sets
	// StateFencedCode, so Next() does not reach this branch; it falls
	// back to normal lexing.
	l.state = StateNormal
	return l.lexNormalLine()
}

func (l *Lexer) lexHTMLBlockLine() token.Token {
	line, start, _ := l.nextLine()
	if len(bytesTrimRight(line)) == 0 {
		l.state = StateNormal
		return token.Token{Kind: token.Blank, Start: start, End: start + len(line), Source: line}
	}
	return token.Token{Kind: token.HTMLBlockLine, Start: start, End: start + len(line), Source: line}
}

func bytesTrimRight(b []byte) []byte {
	return bytes.TrimRight(b, " \t")
}
