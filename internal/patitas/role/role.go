// Package role implements Patitas's inline role extension system
// (spec.md §4.4): {name}`content` markup dispatched to a RoleRegistry of
// named handlers. Structurally this is directive.Registry's inline
// sibling — a smaller immutable lookup table, since roles have no
// contract/nesting rules, only a name and a render function over their
// raw backtick-delimited content.
package role

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/escape"
)

// Handler renders one role's content string into an HTML fragment.
type Handler func(content string) (string, error)

// Registry is an immutable-after-construction name-to-Handler lookup
// table, built once and shared read-only across concurrent
// parses/renders (spec.md §5).
type Registry struct {
	byName map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{byName: make(map[string]Handler)} }

// Register adds h under name.
func (r *Registry) Register(name string, h Handler) { r.byName[name] = h }

// Lookup returns the handler registered for name, if any.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// XrefResolver resolves a {ref}`target` or {doc}`target` role's target
// into a URL and display title, or ok=false if it cannot be resolved
// (spec.md §6.2's cross-reference index capability).
type XrefResolver func(target string) (url, title string, ok bool)

// NewStandardRegistry builds the Registry carrying the 8 built-in roles
// spec.md §4.4 names: ref, doc, kbd, abbr, math, sub, sup, icon.
// xref may be nil; ref/doc then render their target as literal text.
func NewStandardRegistry(xref XrefResolver) *Registry {
	r := NewRegistry()

	r.Register("ref", refHandler(xref, false))
	r.Register("doc", refHandler(xref, true))

	r.Register("kbd", func(content string) (string, error) {
		var b strings.Builder
		for i, key := range strings.Split(content, "+") {
			if i > 0 {
				b.WriteString("+")
			}
			fmt.Fprintf(&b, `<kbd>%s</kbd>`, escape.HTML(strings.TrimSpace(key)))
		}
		return b.String(), nil
	})

	// abbr uses "ABBR (expansion)" — parentheses, not the angle-bracket
	// "Display Text <target-id>" format ref/doc use (spec.md §4.4).
	r.Register("abbr", func(content string) (string, error) {
		term, expansion, ok := strings.Cut(content, "(")
		if !ok {
			return fmt.Sprintf(`<abbr>%s</abbr>`, escape.HTML(strings.TrimSpace(content))), nil
		}
		expansion = strings.TrimSuffix(strings.TrimSpace(expansion), ")")
		return fmt.Sprintf(`<abbr title="%s">%s</abbr>`, escape.HTML(expansion), escape.HTML(strings.TrimSpace(term))), nil
	})

	r.Register("math", func(content string) (string, error) {
		return fmt.Sprintf(`<span class="math-inline">%s</span>`, escape.HTML(content)), nil
	})

	r.Register("sub", func(content string) (string, error) {
		return fmt.Sprintf(`<sub>%s</sub>`, escape.HTML(content)), nil
	})

	r.Register("sup", func(content string) (string, error) {
		return fmt.Sprintf(`<sup>%s</sup>`, escape.HTML(content)), nil
	})

	// icon folds in the original's inline_icon.py template-function
	// plugin behavior: a bare icon name renders an inline <span> the
	// host's CSS/icon-font is expected to style (spec.md §12 decision,
	// see DESIGN.md).
	r.Register("icon", func(content string) (string, error) {
		return fmt.Sprintf(`<span class="icon icon-%s" aria-hidden="true"></span>`, escape.HTML(content)), nil
	})

	return r
}

func refHandler(xref XrefResolver, isDoc bool) Handler {
	return func(content string) (string, error) {
		target := content
		display := ""
		if t, d, ok := strings.Cut(content, "<"); ok {
			target = strings.TrimSpace(strings.TrimSuffix(d, ">"))
			display = strings.TrimSpace(t)
		}
		if xref == nil {
			label := display
			if label == "" {
				label = target
			}
			return escape.HTML(label), nil
		}
		url, title, ok := xref(target)
		if !ok {
			label := display
			if label == "" {
				label = target
			}
			return escape.HTML(label), nil
		}
		label := display
		if label == "" {
			label = title
		}
		_ = isDoc
		return fmt.Sprintf(`<a href="%s" class="xref">%s</a>`, escape.URL(url), escape.HTML(label)), nil
	}
}
