package patitas

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/escape"
)

// RenderTOC builds a nested `<ul class="toc">` from entries — spec.md
// §6.5's TOC output shape. Grounded directly on the original
// implementation's HTMLRenderer.get_toc_html (renderers/html.py):
// walking the flat heading list once, opening a nested `<ul>` whenever
// the level increases, closing one level per step down, and closing the
// previous `<li>` before a sibling at the same level.
func RenderTOC(entries []TOCEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<ul class="toc">`)
	prevLevel := entries[0].Level

	for i, h := range entries {
		switch {
		case h.Level > prevLevel:
			for d := 0; d < h.Level-prevLevel; d++ {
				b.WriteString("<ul>")
			}
		case h.Level < prevLevel:
			for d := 0; d < prevLevel-h.Level; d++ {
				b.WriteString("</li></ul>")
			}
			b.WriteString("</li>")
		case i > 0:
			b.WriteString("</li>")
		}
		fmt.Fprintf(&b, `<li><a href="#%s">%s</a>`, escape.HTML(h.Slug), escape.HTML(h.Text))
		prevLevel = h.Level
	}

	b.WriteString("</li>")
	b.WriteString("</ul>")
	return b.String()
}
