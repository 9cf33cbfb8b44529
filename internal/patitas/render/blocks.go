package render

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/escape"
)

// renderBlocks renders a sequence of block nodes, each on its own line.
func (r *Renderer) renderBlocks(nodes []ast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(r.renderBlock(n))
	}
	return b.String()
}

func (r *Renderer) renderBlock(n ast.Node) string {
	switch v := n.(type) {
	case *ast.HeadingNode:
		return r.renderHeading(v)
	case *ast.ParagraphNode:
		return "<p>" + r.renderInlines(v.Children()) + "</p>\n"
	case *ast.FencedCodeNode:
		return r.renderCode(v)
	case *ast.IndentedCodeNode:
		r.meta.AddCodeLanguage("")
		return "<pre><code>" + escape.HTML(string(v.Body)) + "</code></pre>\n"
	case *ast.BlockQuoteNode:
		return "<blockquote>\n" + r.renderBlocks(v.Children()) + "</blockquote>\n"
	case *ast.ListNode:
		return r.renderList(v)
	case *ast.ThematicBreakNode:
		return "<hr />\n"
	case *ast.HTMLBlockNode:
		return string(v.Source())
	case *ast.TableNode:
		return r.renderTable(v)
	case *ast.MathBlockNode:
		r.meta.MarkMath()
		return `<div class="math-block">$$` + escape.HTML(string(v.Body)) + "$$</div>\n"
	case *ast.DirectiveNode:
		return r.renderDirective(v)
	case *ast.FootnoteDefNode:
		// Encountered only for a footnote def nested inside a container
		// (e.g. a blockquote); top-level defs are pulled out and rendered
		// by renderFootnoteSection instead.
		return r.renderFootnoteItem(v)
	default:
		return ""
	}
}

func (r *Renderer) renderHeading(h *ast.HeadingNode) string {
	text := r.plainText(h.Children())
	r.meta.AddHeading()
	slug := r.slugFor(text)
	r.toc = append(r.toc, TOCEntry{Level: h.Level, Text: text, Slug: slug})
	inner := r.renderInlines(h.Children())
	return fmt.Sprintf("<h%d id=\"%s\">%s</h%d>\n", h.Level, escape.HTML(slug), inner, h.Level)
}

func (r *Renderer) renderList(l *ast.ListNode) string {
	var b strings.Builder
	if l.Ordered {
		if l.Start != 1 {
			fmt.Fprintf(&b, "<ol start=\"%d\">\n", l.Start)
		} else {
			b.WriteString("<ol>\n")
		}
	} else {
		b.WriteString("<ul>\n")
	}
	for _, c := range l.Children() {
		item, ok := c.(*ast.ListItemNode)
		if !ok {
			continue
		}
		b.WriteString(r.renderListItem(item, l.Tight))
	}
	if l.Ordered {
		b.WriteString("</ol>\n")
	} else {
		b.WriteString("</ul>\n")
	}
	return b.String()
}

func (r *Renderer) renderListItem(item *ast.ListItemNode, tight bool) string {
	var b strings.Builder
	b.WriteString("<li>")
	if item.Checked != nil {
		if *item.Checked {
			b.WriteString(`<input type="checkbox" checked disabled /> `)
		} else {
			b.WriteString(`<input type="checkbox" disabled /> `)
		}
	}
	children := item.Children()
	if tight && len(children) == 1 {
		if p, ok := children[0].(*ast.ParagraphNode); ok {
			b.WriteString(r.renderInlines(p.Children()))
			b.WriteString("</li>\n")
			return b.String()
		}
	}
	b.WriteString(r.renderBlocks(children))
	b.WriteString("</li>\n")
	return b.String()
}

func (r *Renderer) renderTable(t *ast.TableNode) string {
	r.meta.MarkTable()
	rows := t.Children()
	var b strings.Builder
	b.WriteString("<table>\n")
	if len(rows) > 0 {
		if row, ok := rows[0].(*ast.TableRowNode); ok {
			b.WriteString("<thead>\n")
			b.WriteString(r.renderTableRow(row, t.Align))
			b.WriteString("</thead>\n")
		}
	}
	if len(rows) > 1 {
		b.WriteString("<tbody>\n")
		for _, rowNode := range rows[1:] {
			if row, ok := rowNode.(*ast.TableRowNode); ok {
				b.WriteString(r.renderTableRow(row, t.Align))
			}
		}
		b.WriteString("</tbody>\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}

func (r *Renderer) renderTableRow(row *ast.TableRowNode, align []ast.ColumnAlign) string {
	var b strings.Builder
	b.WriteString("<tr>")
	tag := "td"
	if row.Header {
		tag = "th"
	}
	for i, c := range row.Children() {
		cell, ok := c.(*ast.TableCellNode)
		if !ok {
			continue
		}
		style := ""
		if i < len(align) {
			switch align[i] {
			case ast.AlignLeft:
				style = ` style="text-align:left"`
			case ast.AlignCenter:
				style = ` style="text-align:center"`
			case ast.AlignRight:
				style = ` style="text-align:right"`
			}
		}
		fmt.Fprintf(&b, "<%s%s>%s</%s>", tag, style, r.renderInlines(cell.Children()), tag)
	}
	b.WriteString("</tr>\n")
	return b.String()
}

func (r *Renderer) renderFootnoteSection(defs []*ast.FootnoteDefNode) string {
	var b strings.Builder
	b.WriteString(`<section class="footnotes"><ol>` + "\n")
	for _, fn := range defs {
		b.WriteString(r.renderFootnoteItem(fn))
	}
	b.WriteString("</ol></section>\n")
	return b.String()
}

func (r *Renderer) renderFootnoteItem(fn *ast.FootnoteDefNode) string {
	label := escape.HTML(fn.Label)
	var b strings.Builder
	fmt.Fprintf(&b, `<li id="fn-%s">`, label)
	b.WriteString(r.renderBlocks(fn.Children()))
	fmt.Fprintf(&b, ` <a href="#fnref-%s" class="footnote-backref">&#8617;</a>`, label)
	b.WriteString("</li>\n")
	return b.String()
}
