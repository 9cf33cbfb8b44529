package patitas

import (
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/render"
)

// DefaultExcerptLength is the excerpt character cap used when
// ParseWithTOC's caller does not pick its own (no exact default survives
// in the retrieved original-implementation source; chosen as a
// conventional SSG excerpt length).
const DefaultExcerptLength = 300

// DefaultMetaDescriptionLength is the meta-description character cap,
// grounded on the original template filter's literal `meta_description(160)`
// call found in the retrieved test fixtures.
const DefaultMetaDescriptionLength = 160

// ExtractExcerpt returns the plain-text content of doc's first paragraph,
// truncated to at most maxChars grapheme clusters at a word boundary.
// Supplements spec.md §6.1's `parse_with_toc` contract (extract_excerpt
// in the original implementation); maxChars<=0 uses DefaultExcerptLength.
func ExtractExcerpt(doc *ast.DocumentNode, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultExcerptLength
	}
	text, ok := firstParagraphText(doc.Children())
	if !ok {
		return ""
	}
	return truncateAtWord(text, maxChars)
}

// ExtractMetaDescription returns doc's first paragraph as plain text,
// truncated to at most maxChars grapheme clusters at a word boundary
// (extract_meta_description in the original implementation). maxChars<=0
// uses DefaultMetaDescriptionLength.
func ExtractMetaDescription(doc *ast.DocumentNode, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMetaDescriptionLength
	}
	text, ok := firstParagraphText(doc.Children())
	if !ok {
		return ""
	}
	return truncateAtWord(text, maxChars)
}

// firstParagraphText depth-first searches nodes for the first
// ParagraphNode (inside a list item or block quote counts), returning its
// flattened plain text.
func firstParagraphText(nodes []ast.Node) (string, bool) {
	for _, n := range nodes {
		if p, ok := n.(*ast.ParagraphNode); ok {
			return render.PlainText(p.Children()), true
		}
		if text, ok := firstParagraphText(n.Children()); ok {
			return text, true
		}
	}
	return "", false
}

// truncateAtWord truncates s to at most maxChars grapheme clusters,
// backing up to the preceding space if the cut lands mid-word, and
// appends an ellipsis when truncation actually occurred.
func truncateAtWord(s string, maxChars int) string {
	s = strings.Join(strings.Fields(s), " ")
	truncated := render.TruncateGraphemes(s, maxChars)
	if truncated == s {
		return s
	}
	if i := strings.LastIndexByte(truncated, ' '); i > 0 {
		truncated = truncated[:i]
	}
	return strings.TrimRight(truncated, " ") + "…"
}
