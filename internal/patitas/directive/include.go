package directive

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/escape"
	"github.com/lbliii/patitas/internal/patitas/perr"
)

// FileResolver is the host-supplied capability spec.md §6.2 names for
// include/literalinclude directives: given a target path (relative to
// the current document), it returns the target's contents or an error.
// It is the only directive capability the concurrency model (spec.md
// §5) allows to block, since it may perform file or network I/O.
type FileResolver func(target string) (content string, err error)

// includeDirective renders an included file's content either as Markdown
// (further processed by the caller — this handler just returns the raw
// content marked for re-parsing via a sentinel wrapper) or, for
// literalinclude, as an escaped, verbatim code block.
type includeDirective struct {
	literal  bool
	resolver FileResolver
}

// WithResolver returns a copy of the include/literalinclude handler
// bound to resolver. NewStandardRegistry calls this once at registry
// construction time using the host's resolver capability.
func (i *includeDirective) WithResolver(resolver FileResolver) Handler {
	return &includeDirective{literal: i.literal, resolver: resolver}
}

func (i *includeDirective) Names() []string {
	if i.literal {
		return []string{"literalinclude"}
	}
	return []string{"include"}
}

func (i *includeDirective) Contract() Contract { return Contract{} }

func (i *includeDirective) Render(node *ast.DirectiveNode, _ string) (string, error) {
	target := StringOption(node.Options, "", "path")
	if i.resolver == nil {
		return "", &perr.IncludeResolutionError{Target: target, Cause: fmt.Errorf("no file resolver configured")}
	}
	content, err := i.resolver(target)
	if err != nil {
		return "", &perr.IncludeResolutionError{Target: target, Cause: err}
	}
	if !i.literal {
		// Markdown includes are re-parsed by the caller (the renderer
		// recognizes this sentinel prefix and recurses); this package
		// has no parser dependency to do that itself without an import
		// cycle (parser depends on directive for dispatch).
		return includeSentinel + content, nil
	}
	lang := StringOption(node.Options, "text", "language")
	var b strings.Builder
	fmt.Fprintf(&b, `<pre><code class="language-%s">`, escape.HTML(lang))
	b.WriteString(escape.HTML(content))
	b.WriteString(`</code></pre>`)
	return b.String(), nil
}

// includeSentinel prefixes a raw-Markdown include's resolved content so
// the renderer can recognize it needs a nested parse/render pass rather
// than literal HTML.
const includeSentinel = "\x00patitas-include\x00"

// IncludeSentinel exposes includeSentinel to the render package.
func IncludeSentinel() string { return includeSentinel }
