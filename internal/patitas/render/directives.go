package render

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/directive"
	"github.com/lbliii/patitas/internal/patitas/escape"
	"github.com/lbliii/patitas/internal/patitas/parser"
	"github.com/lbliii/patitas/internal/patitas/perr"
	"github.com/lbliii/patitas/internal/patitas/source"
)

// renderDirective dispatches a DirectiveNode to its registered handler,
// applying spec.md §4.3's full render contract: a cache lookup keyed by
// directive.CacheKey, ChildPreparer-based parent-context injection
// before children render, panic recovery wrapping a failing handler in
// perr.HandlerPanicError, and recognizing the include sentinel to
// recurse into a nested parse/render pass rather than treating it as
// literal HTML. Any failure degrades to the directive's rendered
// children (or, lacking a handler at all, the same) rather than halting
// the render — spec.md §7's best-effort propagation mode.
func (r *Renderer) renderDirective(node *ast.DirectiveNode) (out string) {
	handler, ok := r.directives.Lookup(node.Name)
	if !ok {
		r.reportError(&perr.UnknownDirectiveError{Name: node.Name}, "directive")
		return r.renderBlocks(node.Children())
	}

	parentName := ""
	if n := len(r.directiveStack); n > 0 {
		parentName = r.directiveStack[n-1]
	}
	if reason := handler.Contract().Check(parentName, childDirectiveNames(node.Children())); reason != "" {
		r.reportError(&perr.DirectiveContractError{Directive: node.Name, Reason: reason}, "directive")
	}

	key := directive.CacheKey(node)
	if r.cfg.DirectiveCacheGet != nil {
		if cached, ok := r.cfg.DirectiveCacheGet(key); ok {
			return cached
		}
	}

	children := node.Children()
	if cp, ok := handler.(directive.ChildPreparer); ok {
		children = cp.PrepareChildren(node)
	}
	r.directiveStack = append(r.directiveStack, node.Name)
	renderedChildren := r.renderBlocks(children)
	r.directiveStack = r.directiveStack[:len(r.directiveStack)-1]

	defer func() {
		if rec := recover(); rec != nil {
			r.reportError(&perr.HandlerPanicError{Directive: node.Name, Cause: fmt.Errorf("%v", rec)}, "directive render")
			out = renderedChildren
		}
	}()

	html, err := handler.Render(node, renderedChildren)
	if err != nil {
		r.reportError(err, "directive render")
		return renderedChildren
	}

	if strings.HasPrefix(html, directive.IncludeSentinel()) {
		// Included Markdown is never cached here: the resolver may return
		// different content on a later render (spec.md §6.2), so caching
		// it under the including directive's key would go stale silently.
		return r.renderIncludedMarkdown(strings.TrimPrefix(html, directive.IncludeSentinel()))
	}

	if r.cfg.DirectiveCacheSet != nil {
		r.cfg.DirectiveCacheSet(key, html)
	}
	return html
}

// renderIncludedMarkdown re-parses raw (an included file's contents)
// with the Renderer's configured ParseConfig and renders the result
// inline, implementing the include directive's "re-parse as Markdown"
// half of spec.md §4.3 (the directive package does not import the
// parser; its include handler only marks the content for re-parsing).
func (r *Renderer) renderIncludedMarkdown(raw string) string {
	p := parser.New(r.parseCfg)
	doc, err := p.Parse(source.New([]byte(raw), ""))
	if err != nil {
		r.reportError(&perr.IncludeResolutionError{Cause: err}, "include re-parse")
		return escape.HTML(raw)
	}
	return r.renderBlocks(doc.Children())
}

// renderRole dispatches a RoleNode to its registered handler, with the
// same panic-recovery and best-effort degradation as renderDirective.
func (r *Renderer) renderRole(node *ast.RoleNode) (out string) {
	handler, ok := r.roles.Lookup(node.Name)
	if !ok {
		r.reportError(&perr.UnknownRoleError{Name: node.Name}, "role")
		return fmt.Sprintf(`<span class="role role-%s">%s</span>`, escape.HTML(node.Name), escape.HTML(node.Content))
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.reportError(&perr.HandlerPanicError{Directive: node.Name, Cause: fmt.Errorf("%v", rec)}, "role render")
			out = escape.HTML(node.Content)
		}
	}()

	html, err := handler(node.Content)
	if err != nil {
		r.reportError(err, "role render")
		return escape.HTML(node.Content)
	}
	return html
}

// childDirectiveNames returns the names of children that are themselves
// DirectiveNodes, for Contract.Check's forbidden/required-child rules.
func childDirectiveNames(children []ast.Node) []string {
	var out []string
	for _, c := range children {
		if d, ok := c.(*ast.DirectiveNode); ok {
			out = append(out, d.Name)
		}
	}
	return out
}
