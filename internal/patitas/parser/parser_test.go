package parser

import (
	"strings"
	"testing"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/pcontext"
	"github.com/lbliii/patitas/internal/patitas/source"
)

func parse(t *testing.T, cfg pcontext.ParseConfig, text string) *ast.DocumentNode {
	t.Helper()
	doc, err := New(cfg).Parse(source.New([]byte(text), "test.md"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func fullCfg() pcontext.ParseConfig {
	return pcontext.ParseConfig{
		TablesEnabled: true, StrikethroughEnabled: true, TaskListsEnabled: true,
		FootnotesEnabled: true, MathEnabled: true, AutolinksEnabled: true,
	}
}

func TestParse_HeadingAndParagraph(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "# Title\n\nSome body text.\n")
	if len(doc.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(doc.Children()))
	}
	h, ok := doc.Children()[0].(*ast.HeadingNode)
	if !ok || h.Level != 1 {
		t.Fatalf("expected level-1 heading, got %#v", doc.Children()[0])
	}
	if _, ok := doc.Children()[1].(*ast.ParagraphNode); !ok {
		t.Fatalf("expected paragraph, got %#v", doc.Children()[1])
	}
}

func TestParse_FencedCodeZeroCopyBody(t *testing.T) {
	src := "```go\nfunc main() {}\n```\n"
	doc := parse(t, pcontext.ParseConfig{}, src)
	code, ok := doc.Children()[0].(*ast.FencedCodeNode)
	if !ok {
		t.Fatalf("expected fenced code, got %#v", doc.Children()[0])
	}
	if code.Lang != "go" {
		t.Fatalf("expected lang go, got %q", code.Lang)
	}
	if string(code.Body) != "func main() {}\n" {
		t.Fatalf("unexpected body: %q", code.Body)
	}
}

func TestParse_EmphasisAndStrong(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "a *b* c **d** e\n")
	para := doc.Children()[0].(*ast.ParagraphNode)
	var sawEm, sawStrong bool
	for _, c := range para.Children() {
		switch c.(type) {
		case *ast.EmphasisNode:
			sawEm = true
		case *ast.StrongNode:
			sawStrong = true
		}
	}
	if !sawEm || !sawStrong {
		t.Fatalf("expected both emphasis and strong, got em=%v strong=%v", sawEm, sawStrong)
	}
}

func TestParse_LinkWithTitle(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, `[home](https://example.com "Home Page")`+"\n")
	para := doc.Children()[0].(*ast.ParagraphNode)
	link, ok := para.Children()[0].(*ast.LinkNode)
	if !ok {
		t.Fatalf("expected link, got %#v", para.Children()[0])
	}
	if link.Dest != "https://example.com" || link.Title != "Home Page" {
		t.Fatalf("unexpected link: %+v", link)
	}
}

func TestParse_ReferenceLinkResolution(t *testing.T) {
	src := "[home][ref]\n\n[ref]: https://example.com \"Home\"\n"
	doc := parse(t, pcontext.ParseConfig{}, src)
	para := doc.Children()[0].(*ast.ParagraphNode)
	link, ok := para.Children()[0].(*ast.LinkNode)
	if !ok {
		t.Fatalf("expected resolved link, got %#v", para.Children()[0])
	}
	if link.Dest != "https://example.com" {
		t.Fatalf("unexpected dest: %q", link.Dest)
	}
}

func TestParse_CodeSpan(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "call `fn()` now\n")
	para := doc.Children()[0].(*ast.ParagraphNode)
	var found bool
	for _, c := range para.Children() {
		if cs, ok := c.(*ast.CodeSpanNode); ok {
			found = true
			if cs.Code != "fn()" {
				t.Fatalf("unexpected code: %q", cs.Code)
			}
		}
	}
	if !found {
		t.Fatal("expected a code span")
	}
}

func TestParse_BlockQuoteNesting(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "> quoted text\n> more text\n")
	bq, ok := doc.Children()[0].(*ast.BlockQuoteNode)
	if !ok {
		t.Fatalf("expected blockquote, got %#v", doc.Children()[0])
	}
	if len(bq.Children()) == 0 {
		t.Fatal("expected blockquote children")
	}
}

func TestParse_UnorderedList(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "- one\n- two\n- three\n")
	list, ok := doc.Children()[0].(*ast.ListNode)
	if !ok {
		t.Fatalf("expected list, got %#v", doc.Children()[0])
	}
	if len(list.Children()) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list.Children()))
	}
}

func TestParse_OrderedListStartNumber(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "5. five\n6. six\n")
	list := doc.Children()[0].(*ast.ListNode)
	if !list.Ordered || list.Start != 5 {
		t.Fatalf("expected ordered list starting at 5, got %+v", list)
	}
}

func TestParse_TaskListChecked(t *testing.T) {
	doc := parse(t, fullCfg(), "- [x] done\n- [ ] todo\n")
	list := doc.Children()[0].(*ast.ListNode)
	item0 := list.Children()[0].(*ast.ListItemNode)
	item1 := list.Children()[1].(*ast.ListItemNode)
	if item0.Checked == nil || !*item0.Checked {
		t.Fatal("expected first item checked")
	}
	if item1.Checked == nil || *item1.Checked {
		t.Fatal("expected second item unchecked")
	}
}

func TestParse_Table(t *testing.T) {
	src := "| A | B |\n| --- | ---: |\n| 1 | 2 |\n"
	doc := parse(t, fullCfg(), src)
	table, ok := doc.Children()[0].(*ast.TableNode)
	if !ok {
		t.Fatalf("expected table, got %#v", doc.Children()[0])
	}
	if len(table.Align) != 2 || table.Align[1] != ast.AlignRight {
		t.Fatalf("unexpected alignment: %+v", table.Align)
	}
	if len(table.Children()) != 2 {
		t.Fatalf("expected header + 1 body row, got %d", len(table.Children()))
	}
}

func TestParse_Strikethrough(t *testing.T) {
	doc := parse(t, fullCfg(), "~~gone~~ remains\n")
	para := doc.Children()[0].(*ast.ParagraphNode)
	if _, ok := para.Children()[0].(*ast.StrikethroughNode); !ok {
		t.Fatalf("expected strikethrough, got %#v", para.Children()[0])
	}
}

func TestParse_FootnoteRefAndDef(t *testing.T) {
	src := "see it[^1]\n\n[^1]: the footnote body\n"
	doc := parse(t, fullCfg(), src)
	para := doc.Children()[0].(*ast.ParagraphNode)
	var ref *ast.FootnoteRefNode
	for _, c := range para.Children() {
		if r, ok := c.(*ast.FootnoteRefNode); ok {
			ref = r
		}
	}
	if ref == nil || ref.Label != "1" {
		t.Fatalf("expected footnote ref label 1, got %+v", ref)
	}
	last := doc.Children()[len(doc.Children())-1]
	fn, ok := last.(*ast.FootnoteDefNode)
	if !ok || fn.Label != "1" {
		t.Fatalf("expected trailing footnote def, got %#v", last)
	}
}

func TestParse_InlineMath(t *testing.T) {
	doc := parse(t, fullCfg(), "energy is $E=mc^2$ always\n")
	para := doc.Children()[0].(*ast.ParagraphNode)
	var found bool
	for _, c := range para.Children() {
		if m, ok := c.(*ast.MathNode); ok {
			found = true
			if m.Body != "E=mc^2" {
				t.Fatalf("unexpected math body: %q", m.Body)
			}
		}
	}
	if !found {
		t.Fatal("expected inline math node")
	}
}

func TestParse_MathBlock(t *testing.T) {
	doc := parse(t, fullCfg(), "$$\nE = mc^2\n$$\n")
	mb, ok := doc.Children()[0].(*ast.MathBlockNode)
	if !ok {
		t.Fatalf("expected math block, got %#v", doc.Children()[0])
	}
	if string(mb.Body) != "E = mc^2" {
		t.Fatalf("unexpected math block body: %q", mb.Body)
	}
}

func TestParse_Directive(t *testing.T) {
	src := ":::{note} Careful\nBody text.\n:::\n"
	doc := parse(t, pcontext.ParseConfig{}, src)
	dir, ok := doc.Children()[0].(*ast.DirectiveNode)
	if !ok {
		t.Fatalf("expected directive, got %#v", doc.Children()[0])
	}
	if dir.Name != "note" || dir.Title != "Careful" {
		t.Fatalf("unexpected directive: %+v", dir)
	}
}

func TestParse_DirectiveWithOptions(t *testing.T) {
	src := ":::{figure}\n:alt: a picture\n:width: 200\nCaption.\n:::\n"
	doc := parse(t, pcontext.ParseConfig{}, src)
	dir := doc.Children()[0].(*ast.DirectiveNode)
	if dir.Options["alt"] != "a picture" || dir.Options["width"] != "200" {
		t.Fatalf("unexpected options: %+v", dir.Options)
	}
}

func TestParse_Role(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "press {kbd}`Ctrl+C` to stop\n")
	para := doc.Children()[0].(*ast.ParagraphNode)
	var role *ast.RoleNode
	for _, c := range para.Children() {
		if r, ok := c.(*ast.RoleNode); ok {
			role = r
		}
	}
	if role == nil || role.Name != "kbd" || role.Content != "Ctrl+C" {
		t.Fatalf("unexpected role: %+v", role)
	}
}

func TestParse_FencedCodeHighlightLines(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "```go {1,3-5,7}\nfunc main() {}\n```\n")
	code, ok := doc.Children()[0].(*ast.FencedCodeNode)
	if !ok {
		t.Fatalf("expected fenced code, got %#v", doc.Children()[0])
	}
	if code.Lang != "go" {
		t.Fatalf("expected lang go, got %q", code.Lang)
	}
	want := []int{1, 3, 4, 5, 7}
	if len(code.HighlightLines) != len(want) {
		t.Fatalf("unexpected highlight lines: %v", code.HighlightLines)
	}
	for i, n := range want {
		if code.HighlightLines[i] != n {
			t.Fatalf("unexpected highlight lines: %v", code.HighlightLines)
		}
	}
}

func TestParse_FencedCodeNoHighlightLines(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "```go\nfunc main() {}\n```\n")
	code := doc.Children()[0].(*ast.FencedCodeNode)
	if code.HighlightLines != nil {
		t.Fatalf("expected nil highlight lines, got %v", code.HighlightLines)
	}
}

func TestParse_ThematicBreak(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "above\n\n---\n\nbelow\n")
	var found bool
	for _, c := range doc.Children() {
		if _, ok := c.(*ast.ThematicBreakNode); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected thematic break")
	}
}

func TestParse_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		strings.Repeat("*", 500),
		"[[[[[[[unterminated",
		"```unterminated fence\nstill going",
		":::{unterminated directive\nstill going",
		"[^1] [^1] [^1]",
		string([]byte{0x00, 0xff, 0xfe, '\n'}),
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parse panicked on %q: %v", in, r)
				}
			}()
			parse(t, fullCfg(), in)
		}()
	}
}

func TestParse_HardLineBreak(t *testing.T) {
	doc := parse(t, pcontext.ParseConfig{}, "line one  \nline two\n")
	para := doc.Children()[0].(*ast.ParagraphNode)
	var found bool
	for _, c := range para.Children() {
		if _, ok := c.(*ast.LineBreakNode); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a hard line break")
	}
}

func TestParse_DeterministicAcrossRuns(t *testing.T) {
	src := ":::{note} T\nbody **bold** and *em*\n:::\n"
	d1 := parse(t, pcontext.ParseConfig{}, src)
	d2 := parse(t, pcontext.ParseConfig{}, src)
	if d1.Hash() != d2.Hash() {
		t.Fatalf("expected identical hashes across repeated parses, got %d vs %d", d1.Hash(), d2.Hash())
	}
}

func TestParse_NilSourceReturnsError(t *testing.T) {
	doc, err := New(pcontext.ParseConfig{}).Parse(nil)
	if err == nil || doc != nil {
		t.Fatalf("expected (nil, error) for a nil Source, got (%#v, %v)", doc, err)
	}
}
