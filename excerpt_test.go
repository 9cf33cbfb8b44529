package patitas

import (
	"strings"
	"testing"

	"github.com/lbliii/patitas/internal/patitas/pcontext"
)

func TestExtractExcerpt_FirstParagraph(t *testing.T) {
	doc, err := ParseToAST([]byte("# Title\n\nThe quick brown fox jumps over the lazy dog.\n\nSecond paragraph.\n"), "x.md", pcontext.ParseConfig{})
	if err != nil {
		t.Fatalf("ParseToAST: %v", err)
	}
	got := ExtractExcerpt(doc, 0)
	if !strings.Contains(got, "quick brown fox") {
		t.Fatalf("expected first paragraph text, got %q", got)
	}
	if strings.Contains(got, "Second paragraph") {
		t.Fatalf("excerpt leaked past the first paragraph: %q", got)
	}
}

func TestExtractExcerpt_TruncatesAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 100)
	doc, err := ParseToAST([]byte(long+"\n"), "x.md", pcontext.ParseConfig{})
	if err != nil {
		t.Fatalf("ParseToAST: %v", err)
	}
	got := ExtractExcerpt(doc, 20)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if strings.HasSuffix(strings.TrimSuffix(got, "…"), " ") {
		t.Fatalf("expected no trailing space before ellipsis, got %q", got)
	}
}

func TestExtractExcerpt_NoParagraphReturnsEmpty(t *testing.T) {
	doc, err := ParseToAST([]byte("# Only a heading\n"), "x.md", pcontext.ParseConfig{})
	if err != nil {
		t.Fatalf("ParseToAST: %v", err)
	}
	if got := ExtractExcerpt(doc, 0); got != "" {
		t.Fatalf("expected empty excerpt with no paragraph, got %q", got)
	}
}

func TestExtractExcerpt_SearchesIntoListItems(t *testing.T) {
	doc, err := ParseToAST([]byte("- first item text here\n- second item\n"), "x.md", pcontext.ParseConfig{})
	if err != nil {
		t.Fatalf("ParseToAST: %v", err)
	}
	got := ExtractExcerpt(doc, 0)
	if !strings.Contains(got, "first item text here") {
		t.Fatalf("expected excerpt to descend into list item, got %q", got)
	}
}

func TestExtractMetaDescription_UsesDefaultLength(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 40)
	doc, err := ParseToAST([]byte(long+"\n"), "x.md", pcontext.ParseConfig{})
	if err != nil {
		t.Fatalf("ParseToAST: %v", err)
	}
	got := ExtractMetaDescription(doc, 0)
	if len([]rune(got)) > DefaultMetaDescriptionLength+1 {
		t.Fatalf("expected meta description capped near %d runes, got %d: %q", DefaultMetaDescriptionLength, len([]rune(got)), got)
	}
}
