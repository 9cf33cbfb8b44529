package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/escape"
	"github.com/lbliii/patitas/internal/patitas/pcontext"
)

// renderCode implements spec.md §4.4's four-path fenced-code rendering
// over code.Body, the ZCLH zero-copy span. The code's language is
// recorded into RenderMetadata regardless of which path below renders
// it:
//
//  1. "mermaid" fences render as a client-rendered diagram container,
//     the body HTML-escaped but otherwise unchanged (mermaid.js parses
//     its own DSL).
//  2. If the host wired a sub-lexer delegate (cfg.Delegate, spec.md
//     §6.2) that claims the language, its tokens render wrapped in a
//     standard container — ZCLH's handoff half, the body span passed
//     through without ever being copied to a string first.
//  3. Else if the host wired an external highlighter (cfg.Highlighter,
//     spec.md §6.2's highlighter capability), it gets next refusal.
//  4. HighlightSemantic marks the block for a client-side/CSS-only
//     semantic highlighter instead of baking classes in at render time;
//     otherwise the body is escaped and rendered plain.
//
// In the delegate, semantic and plain paths, code.HighlightLines (parsed
// from the fence's info string, e.g. `{1,3-5,7}`) is carried onto the
// output as a data-highlight-lines attribute for the host's CSS/JS to
// act on; the mermaid and external-highlighter paths do not emit it.
func (r *Renderer) renderCode(code *ast.FencedCodeNode) string {
	r.meta.AddCodeLanguage(code.Lang)
	body := code.Body

	if code.Lang == "mermaid" {
		return `<div class="mermaid">` + escape.HTML(string(body)) + "</div>\n"
	}

	hlAttr := highlightLinesAttr(code.HighlightLines)

	if r.cfg.Delegate != nil && r.cfg.Delegate.SupportsLanguage(code.Lang) {
		tokens := r.cfg.Delegate.TokenizeRange(body, 0, len(body), code.Lang)
		langAttr := ""
		if code.Lang != "" {
			langAttr = fmt.Sprintf(" class=\"language-%s\"", escape.HTML(code.Lang))
		}
		return fmt.Sprintf("<pre><code%s data-delegate=\"%s\"%s>%s</code></pre>\n",
			langAttr, escape.HTML(code.Lang), hlAttr, renderDelegateTokens(tokens))
	}

	if r.cfg.Highlighter != nil {
		if html, ok := r.cfg.Highlighter(string(body), code.Lang); ok {
			return html
		}
	}

	langAttr := ""
	if code.Lang != "" {
		langAttr = fmt.Sprintf(" class=\"language-%s\"", escape.HTML(code.Lang))
	}
	if r.cfg.Highlight == pcontext.HighlightSemantic {
		return fmt.Sprintf("<pre><code%s data-highlight=\"semantic\"%s>%s</code></pre>\n", langAttr, hlAttr, escape.HTML(string(body)))
	}
	return fmt.Sprintf("<pre><code%s%s>%s</code></pre>\n", langAttr, hlAttr, escape.HTML(string(body)))
}

// highlightLinesAttr renders a parsed line-highlight set as a
// data-highlight-lines="1,3,4,5,7" attribute, or "" if lines is empty.
func highlightLinesAttr(lines []int) string {
	if len(lines) == 0 {
		return ""
	}
	parts := make([]string, len(lines))
	for i, n := range lines {
		parts[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf(" data-highlight-lines=\"%s\"", strings.Join(parts, ","))
}

// renderDelegateTokens concatenates a delegate's tokens into HTML: a
// token with HTML set is emitted verbatim (the delegate did its own
// markup), otherwise its Value is entity-escaped and wrapped in a span
// carrying Type as a CSS class (spec.md §6.2's `{value, type, html?}`).
func renderDelegateTokens(tokens []pcontext.DelegateToken) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.HTML != "" {
			b.WriteString(t.HTML)
			continue
		}
		if t.Type == "" {
			b.WriteString(escape.HTML(t.Value))
			continue
		}
		fmt.Fprintf(&b, `<span class="tok-%s">%s</span>`, escape.HTML(t.Type), escape.HTML(t.Value))
	}
	return b.String()
}
