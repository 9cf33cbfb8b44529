package render

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/escape"
)

func (r *Renderer) renderInlines(nodes []ast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(r.renderInline(n))
	}
	return b.String()
}

func (r *Renderer) renderInline(n ast.Node) string {
	switch v := n.(type) {
	case *ast.TextNode:
		text := string(v.Source())
		r.meta.AddWords(len(strings.Fields(text)))
		return escape.HTML(text)
	case *ast.EmphasisNode:
		return "<em>" + r.renderInlines(v.Children()) + "</em>"
	case *ast.StrongNode:
		return "<strong>" + r.renderInlines(v.Children()) + "</strong>"
	case *ast.StrikethroughNode:
		return "<del>" + r.renderInlines(v.Children()) + "</del>"
	case *ast.LinkNode:
		r.meta.AddLink(v.Dest)
		title := ""
		if v.Title != "" {
			title = fmt.Sprintf(` title="%s"`, escape.HTML(v.Title))
		}
		return fmt.Sprintf(`<a href="%s"%s>%s</a>`, escape.URL(v.Dest), title, r.renderInlines(v.Children()))
	case *ast.ImageNode:
		r.meta.AddImageRef(v.Dest)
		title := ""
		if v.Title != "" {
			title = fmt.Sprintf(` title="%s"`, escape.HTML(v.Title))
		}
		alt := r.plainText(v.Children())
		return fmt.Sprintf(`<img src="%s" alt="%s"%s />`, escape.URL(v.Dest), escape.HTML(alt), title)
	case *ast.CodeSpanNode:
		return "<code>" + escape.HTML(v.Code) + "</code>"
	case *ast.LineBreakNode:
		return "<br />\n"
	case *ast.SoftBreakNode:
		return "\n"
	case *ast.HTMLInlineNode:
		return string(v.Source())
	case *ast.MathNode:
		r.meta.MarkMath()
		return `<span class="math-inline">$` + escape.HTML(v.Body) + `$</span>`
	case *ast.FootnoteRefNode:
		label := escape.HTML(v.Label)
		return fmt.Sprintf(`<sup id="fnref-%s"><a href="#fn-%s">%d</a></sup>`, label, label, v.Index)
	case *ast.RoleNode:
		return r.renderRole(v)
	default:
		return ""
	}
}

// plainText flattens nodes to their textual content, discarding markup —
// used for heading slugs and image alt text.
func (r *Renderer) plainText(nodes []ast.Node) string {
	return PlainText(nodes)
}

// PlainText flattens nodes to their textual content, discarding markup.
// Exported so callers outside this package (excerpt/meta-description
// extraction) can reuse the same flattening without driving a full
// Renderer.
func PlainText(nodes []ast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writePlainText(&b, n)
	}
	return b.String()
}

func writePlainText(b *strings.Builder, n ast.Node) {
	switch v := n.(type) {
	case *ast.TextNode:
		b.Write(v.Source())
	case *ast.CodeSpanNode:
		b.WriteString(v.Code)
	case *ast.MathNode:
		b.WriteString(v.Body)
	case *ast.SoftBreakNode:
		b.WriteByte(' ')
	case *ast.LineBreakNode:
		b.WriteByte(' ')
	case *ast.RoleNode:
		b.WriteString(v.Content)
	default:
		for _, c := range n.Children() {
			writePlainText(b, c)
		}
	}
}
