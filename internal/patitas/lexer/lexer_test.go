package lexer

import (
	"testing"

	"github.com/lbliii/patitas/internal/patitas/source"
	"github.com/lbliii/patitas/internal/patitas/token"
)

func lexAll(t *testing.T, content string) []token.Token {
	t.Helper()
	src := source.New([]byte(content), "test.md")
	l := New(src)
	toks := l.All()
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("expected trailing EOF token, got %+v", toks)
	}
	return toks
}

func TestLexer_ATXHeading(t *testing.T) {
	toks := lexAll(t, "## Title\n")
	if toks[0].Kind != token.ATXHeading {
		t.Fatalf("kind = %v, want ATXHeading", toks[0].Kind)
	}
	if toks[0].HeadingLevel != 2 {
		t.Fatalf("level = %d, want 2", toks[0].HeadingLevel)
	}
}

func TestLexer_ParagraphFallback(t *testing.T) {
	toks := lexAll(t, "just some text\n")
	if toks[0].Kind != token.ParagraphLine {
		t.Fatalf("kind = %v, want ParagraphLine", toks[0].Kind)
	}
}

func TestLexer_BlankLine(t *testing.T) {
	toks := lexAll(t, "\n")
	if toks[0].Kind != token.Blank {
		t.Fatalf("kind = %v, want Blank", toks[0].Kind)
	}
}

func TestLexer_ThematicBreak(t *testing.T) {
	for _, line := range []string{"---\n", "***\n", "___\n", "- - -\n"} {
		toks := lexAll(t, line)
		if toks[0].Kind != token.ThematicBreak {
			t.Errorf("line %q: kind = %v, want ThematicBreak", line, toks[0].Kind)
		}
	}
}

func TestLexer_ThematicBreakVsListMarker(t *testing.T) {
	toks := lexAll(t, "- item\n")
	if toks[0].Kind != token.ListMarker {
		t.Fatalf("kind = %v, want ListMarker for single-dash item", toks[0].Kind)
	}
}

func TestLexer_FencedCodeZCLH(t *testing.T) {
	content := "```go\nfunc main() {}\n```\nafter\n"
	src := source.New([]byte(content), "test.md")
	l := New(src)

	open := l.Next()
	if open.Kind != token.FencedCodeOpen {
		t.Fatalf("kind = %v, want FencedCodeOpen", open.Kind)
	}
	if open.Info != "go" {
		t.Fatalf("info = %q, want go", open.Info)
	}
	body := src.Slice(open.Body.Start, open.Body.End)
	if string(body) != "func main() {}\n" {
		t.Fatalf("ZCLH body = %q, want %q", body, "func main() {}\n")
	}

	next := l.Next()
	if next.Kind != token.ParagraphLine || next.Text() != "after" {
		t.Fatalf("next token = %+v, want paragraph line 'after'", next)
	}
}

func TestLexer_FencedCodeUnterminated(t *testing.T) {
	content := "```\nline one\nline two\n"
	src := source.New([]byte(content), "test.md")
	l := New(src)
	open := l.Next()
	if open.Kind != token.FencedCodeOpen {
		t.Fatalf("kind = %v, want FencedCodeOpen", open.Kind)
	}
	if open.Body.End != src.Len() {
		t.Fatalf("unterminated fence body should run to EOF: end=%d, len=%d", open.Body.End, src.Len())
	}
}

func TestLexer_DirectiveFence(t *testing.T) {
	toks := lexAll(t, ":::{note} Careful\n")
	if toks[0].Kind != token.DirectiveOpen {
		t.Fatalf("kind = %v, want DirectiveOpen", toks[0].Kind)
	}
	if toks[0].Info != "{note} Careful" {
		t.Fatalf("info = %q", toks[0].Info)
	}
}

func TestLexer_BlockQuoteMarker(t *testing.T) {
	toks := lexAll(t, "> quoted\n")
	if toks[0].Kind != token.BlockQuoteMarker {
		t.Fatalf("kind = %v, want BlockQuoteMarker", toks[0].Kind)
	}
}

func TestLexer_TableRow(t *testing.T) {
	toks := lexAll(t, "| a | b |\n")
	if toks[0].Kind != token.TableRow {
		t.Fatalf("kind = %v, want TableRow", toks[0].Kind)
	}
}

func TestLexer_IndentedCode(t *testing.T) {
	toks := lexAll(t, "    code here\n")
	if toks[0].Kind != token.IndentedCodeLine {
		t.Fatalf("kind = %v, want IndentedCodeLine", toks[0].Kind)
	}
}

func TestLexer_TextTransformerElevation(t *testing.T) {
	src := source.New([]byte("plain text\n"), "test.md")
	l := New(src)
	l.TextTransformer = func(s string) string { return "# " + s }
	tok := l.Next()
	if tok.Kind != token.ParagraphLine {
		t.Fatalf("kind = %v, want ParagraphLine (transform output is not re-classified)", tok.Kind)
	}
	if tok.Text() != "# plain text" {
		t.Fatalf("text = %q", tok.Text())
	}
}

func TestLexer_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"", "\x00\x01\x02", "```", ":::", "> ", strings200dashes(),
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("lexer panicked on %q: %v", in, r)
				}
			}()
			lexAll(t, in)
		}()
	}
}

func strings200dashes() string {
	b := make([]byte, 200)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
