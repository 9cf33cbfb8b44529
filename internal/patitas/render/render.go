// Package render turns an immutable ast.DocumentNode into HTML. It is
// grounded on the teacher's internal/markdown/printer.go dispatch
// pattern (one method per node kind, switched on a closed type set) and
// on original_source/bengal/rendering/renderers/html.py's block/inline
// split, generalized from the teacher's Section/Requirement/Scenario
// print methods to spec.md §3.3's full Block/Inline node set plus
// directive/role dispatch.
//
// A Renderer holds no state that must survive past one Render call
// except its directive/role registries, which are immutable lookup
// tables built once (spec.md §5) and safe to share across concurrent
// renders. Per-render state (word count, TOC, slug dedup counters,
// accumulated handler errors) lives in the Renderer's own fields and is
// reset at the top of every Render call, so one Renderer serves one
// Render call at a time.
package render

import (
	"github.com/hashicorp/go-multierror"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/directive"
	"github.com/lbliii/patitas/internal/patitas/pcontext"
	"github.com/lbliii/patitas/internal/patitas/perr"
	"github.com/lbliii/patitas/internal/patitas/role"
)

// TOCEntry is one heading collected into a document's table of contents
// during rendering (spec.md §3.4).
type TOCEntry struct {
	Level int
	Text  string
	Slug  string
}

// Renderer renders one ast.DocumentNode at a time via Render. It is not
// safe for concurrent Render calls: Render keeps its working state in
// the per-render fields below. Concurrent renders each use their own
// Renderer; the registries it points at may be shared.
type Renderer struct {
	cfg        pcontext.RenderConfig
	parseCfg   pcontext.ParseConfig
	directives *directive.Registry
	roles      *role.Registry

	// per-render state, reset at the top of every Render call
	meta           *pcontext.RenderMetadata
	toc            []TOCEntry
	slugCounts     map[string]int
	errs           *multierror.Error
	directiveStack []string // enclosing directive names, for Contract.Check
}

// New builds a Renderer from cfg. parseCfg is used only to re-parse
// Markdown pulled in by an "include" directive (spec.md §4.3): it should
// normally be the same ParseConfig the document itself was parsed with.
// cfg.DirectiveRegistry/RoleRegistry, if set to the concrete registry
// types, are used as-is; otherwise New builds the standard built-in
// registries with no file resolver or cross-reference support wired in.
func New(cfg pcontext.RenderConfig, parseCfg pcontext.ParseConfig) *Renderer {
	r := &Renderer{cfg: cfg, parseCfg: parseCfg}
	if dr, ok := cfg.DirectiveRegistry.(*directive.Registry); ok && dr != nil {
		r.directives = dr
	} else {
		r.directives = directive.NewStandardRegistry(nil)
	}
	if rr, ok := cfg.RoleRegistry.(*role.Registry); ok && rr != nil {
		r.roles = rr
	} else {
		r.roles = role.NewStandardRegistry(nil)
	}
	return r
}

// Reinit reconfigures a pooled Renderer for reuse (spec.md §4.7), leaving
// it in the same observable state New(cfg, parseCfg) would produce. Safe
// to call only between Render calls, never concurrently with one.
func (r *Renderer) Reinit(cfg pcontext.RenderConfig, parseCfg pcontext.ParseConfig) {
	r.cfg = cfg
	r.parseCfg = parseCfg
	if dr, ok := cfg.DirectiveRegistry.(*directive.Registry); ok && dr != nil {
		r.directives = dr
	} else {
		r.directives = directive.NewStandardRegistry(nil)
	}
	if rr, ok := cfg.RoleRegistry.(*role.Registry); ok && rr != nil {
		r.roles = rr
	} else {
		r.roles = role.NewStandardRegistry(nil)
	}
}

// Render produces doc's HTML, its accumulated RenderMetadata, and its
// heading TOC. The returned error is non-nil only when one or more
// directive/role handlers failed or panicked, an include could not be
// re-parsed, or (with ParseConfig.StrictContracts set) a directive broke
// its contract (spec.md §7's best-effort mode): the HTML is still
// complete, with each failing handler degraded to its rendered children
// or escaped literal content.
func (r *Renderer) Render(doc *ast.DocumentNode) (string, *pcontext.RenderMetadata, []TOCEntry, error) {
	r.meta = pcontext.NewRenderMetadata()
	r.toc = nil
	r.slugCounts = make(map[string]int)
	r.errs = nil
	r.directiveStack = nil

	top, footnotes := splitFootnoteDefs(doc.Children())
	html := r.renderBlocks(top)
	if len(footnotes) > 0 {
		html += r.renderFootnoteSection(footnotes)
	}

	var err error
	if r.errs != nil {
		err = r.errs.ErrorOrNil()
	}
	return html, r.meta, r.toc, err
}

func splitFootnoteDefs(nodes []ast.Node) (top []ast.Node, footnotes []*ast.FootnoteDefNode) {
	for _, n := range nodes {
		if fn, ok := n.(*ast.FootnoteDefNode); ok {
			footnotes = append(footnotes, fn)
			continue
		}
		top = append(top, n)
	}
	return top, footnotes
}

func (r *Renderer) reportError(err error, context string) {
	if rc, ok := pcontext.TryGetRequestContext(); ok {
		rc.ReportError(err, context)
	}
	switch err.(type) {
	case *perr.UnknownDirectiveError, *perr.UnknownRoleError:
		// The output already degrades (children, or a role span), so these
		// reach only the RequestContext handler.
		return
	case *perr.DirectiveContractError:
		if !r.parseCfg.StrictContracts {
			return
		}
	}
	r.errs = multierror.Append(r.errs, err)
}
