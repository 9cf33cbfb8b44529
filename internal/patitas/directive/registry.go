// Package directive implements Patitas's colon-fence block extension
// system (spec.md §4.3): a DirectiveRegistry of named handlers, each
// declaring a DirectiveContract (where it may appear, what it requires
// or forbids as children) and a Render method. This is grounded on
// original_source/bengal/parsing/backends/patitas/directives/builtins/*.py
// (one handler class per file there; consolidated here into fewer files
// since Go's shorter per-type boilerplate doesn't need the 1:1 file
// split Python's import-by-module convention favors) and on the
// teacher's registry-as-immutable-lookup-table pattern used for its own
// theme/provider registries (spec.md §9's design note: registries are
// built once at startup and never mutated during a parse or render).
package directive

import (
	"sort"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
)

// PageDependentDirectives is the fixed set of directives whose output
// depends on host-supplied page/site navigation data rather than purely
// on their own content — breadcrumbs, prev/next, siblings, related.
// Grounded directly on the original's PAGE_DEPENDENT_DIRECTIVES constant.
var PageDependentDirectives = map[string]struct{}{
	"breadcrumbs": {},
	"prev-next":   {},
	"siblings":    {},
	"related":     {},
}

// Contract describes where a directive may legally appear and what
// children it requires or forbids. A zero Contract means "no constraint".
type Contract struct {
	RequiredParent    string
	ForbiddenChildren []string
	RequiredChildren  []string
}

// Check reports a contract violation, or "" if node satisfies c given
// parentName (the enclosing directive's name, or "" at the top level).
func (c Contract) Check(parentName string, childNames []string) string {
	if c.RequiredParent != "" && c.RequiredParent != parentName {
		return "requires parent directive " + c.RequiredParent + ", found " + orNone(parentName)
	}
	for _, forbidden := range c.ForbiddenChildren {
		for _, child := range childNames {
			if child == forbidden {
				return "forbids child directive " + forbidden
			}
		}
	}
	for _, required := range c.RequiredChildren {
		found := false
		for _, child := range childNames {
			if child == required {
				found = true
				break
			}
		}
		if !found {
			return "requires at least one child directive " + required
		}
	}
	return ""
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// Handler implements one directive's contract (checked by the renderer
// when it invokes the handler, and by ValidateTree) and its render-time
// HTML production.
type Handler interface {
	// Names returns every name this handler answers to (one handler may
	// register several aliases for one underlying rendering).
	Names() []string
	Contract() Contract
	// Render produces the directive's HTML, given its already-rendered
	// children HTML and its parsed Options/Title.
	Render(node *ast.DirectiveNode, renderedChildren string) (string, error)
}

// ChildPreparer is implemented by directives that need to rewrite their
// own children before the renderer renders them bottom-up — the
// concrete mechanism behind spec.md §9's parent-context-injection design
// note. A "steps" directive uses this to inject each "step" child's
// position (its "_step_number" option) before that child is rendered;
// most directives don't implement this and are rendered with their
// children exactly as parsed.
type ChildPreparer interface {
	PrepareChildren(node *ast.DirectiveNode) []ast.Node
}

// Registry is an immutable-after-construction lookup table from
// directive name to Handler, built once and shared read-only across
// concurrent parses/renders (spec.md §5).
type Registry struct {
	byName map[string]Handler
}

// NewRegistry returns an empty registry. Use Register to populate it,
// then treat it as read-only.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Handler)}
}

// Register adds h under every name it answers to.
func (r *Registry) Register(h Handler) {
	for _, name := range h.Names() {
		r.byName[name] = h
	}
}

// Lookup returns the handler registered for name, if any.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// Names returns every registered directive name, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// CacheKey computes a structural key for node suitable for a host's
// directive-render cache (spec.md §4.3's caching hook): the directive
// name, its sorted option pairs, and its content hash, so two
// syntactically identical directive invocations share a cache entry
// regardless of surrounding document content.
func CacheKey(node *ast.DirectiveNode) string {
	var b strings.Builder
	b.WriteString(node.Name)
	b.WriteByte('|')
	keys := make([]string, 0, len(node.Options))
	for k := range node.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(node.Options[k])
		b.WriteByte(';')
	}
	b.WriteByte('|')
	b.WriteString(strconvUint64(node.Hash()))
	return b.String()
}

func strconvUint64(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
