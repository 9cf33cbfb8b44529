package directive

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/escape"
	"github.com/lbliii/patitas/internal/patitas/pcontext"
)

// NavEntry is one link a page-dependent directive renders: breadcrumbs,
// prev/next, siblings, or related pages. The host supplies these via
// RequestContext.Page (an opaque any); pageDependentDirective looks it
// up through the NavProvider interface so Patitas never needs to know
// the host's concrete page type.
type NavEntry struct {
	Title string
	URL   string
}

// NavProvider is implemented by a host's page type to answer the four
// PageDependentDirectives navigation questions. A page that doesn't
// implement it simply renders nothing for these directives, matching
// spec.md §7's best-effort propagation mode: a missing capability
// degrades silently rather than failing the whole render.
type NavProvider interface {
	Breadcrumbs() []NavEntry
	PrevNext() (prev, next *NavEntry)
	Siblings() []NavEntry
	Related() []NavEntry
}

// pageDependentDirective renders one of the four PageDependentDirectives
// from the RequestContext's Page, if it implements NavProvider.
type pageDependentDirective struct{ name string }

func (p *pageDependentDirective) Names() []string    { return []string{p.name} }
func (p *pageDependentDirective) Contract() Contract { return Contract{} }

func (p *pageDependentDirective) Render(_ *ast.DirectiveNode, _ string) (string, error) {
	rc, ok := pcontext.TryGetRequestContext()
	if !ok || rc.Page == nil {
		return "", nil
	}
	nav, ok := rc.Page.(NavProvider)
	if !ok {
		return "", nil
	}

	switch p.name {
	case "breadcrumbs":
		return renderNavList("breadcrumbs", nav.Breadcrumbs()), nil
	case "siblings":
		return renderNavList("siblings", nav.Siblings()), nil
	case "related":
		return renderNavList("related", nav.Related()), nil
	case "prev-next":
		prev, next := nav.PrevNext()
		var b strings.Builder
		b.WriteString(`<div class="prev-next">`)
		if prev != nil {
			fmt.Fprintf(&b, `<a class="prev" href="%s">%s</a>`, escape.URL(prev.URL), escape.HTML(prev.Title))
		}
		if next != nil {
			fmt.Fprintf(&b, `<a class="next" href="%s">%s</a>`, escape.URL(next.URL), escape.HTML(next.Title))
		}
		b.WriteString(`</div>`)
		return b.String(), nil
	default:
		return "", nil
	}
}

func renderNavList(cssClass string, entries []NavEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<nav class="%s"><ol>`, cssClass)
	for _, e := range entries {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, escape.URL(e.URL), escape.HTML(e.Title))
	}
	b.WriteString(`</ol></nav>`)
	return b.String()
}
