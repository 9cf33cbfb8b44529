package directive

import "github.com/lbliii/patitas/internal/patitas/ast"

// ContractViolation reports one directive whose placement or children
// failed its Contract check, independent of any particular render —
// grounded on the original's validator.py plugin pass
// (rendering/plugins/directives/validator.py), which walks the already-
// built tree once and reports every violation together rather than one
// at a time as render.Renderer.renderDirective discovers them inline.
type ContractViolation struct {
	Directive string // the violating directive's name
	Reason    string // Contract.Check's message
	Start     int    // byte offset into the parsed source, for diagnostics
	End       int
}

// ValidateTree walks doc and reports every ContractViolation a render
// with registry would hit, without rendering anything. This is the
// standalone "second opinion" spec.md §4.3's inline reporting doesn't
// preclude: a CLI `check` subcommand (or a pre-publish lint step) wants
// the full set of violations in one pass, not one discovered per
// directive as rendering reaches it and possibly short-circuited by an
// earlier panic.
//
// Unregistered directive names are not reported here: ValidateTree
// checks placement/children contracts for directives the registry
// knows about, the same way render.Renderer's inline check only runs
// after a successful Lookup. An unknown-directive warning is a
// render-time concern (perr.UnknownDirectiveError), not a contract
// violation.
func ValidateTree(doc *ast.DocumentNode, registry *Registry) []ContractViolation {
	if registry == nil {
		return nil
	}
	var violations []ContractViolation
	walkDirectives(doc.Children(), "", registry, &violations)
	return violations
}

func walkDirectives(nodes []ast.Node, parentName string, registry *Registry, out *[]ContractViolation) {
	for _, n := range nodes {
		d, isDirective := n.(*ast.DirectiveNode)
		if isDirective {
			if handler, ok := registry.Lookup(d.Name); ok {
				reason := handler.Contract().Check(parentName, childDirectiveNames(d.Children()))
				if reason != "" {
					start, end := d.Span()
					*out = append(*out, ContractViolation{
						Directive: d.Name,
						Reason:    reason,
						Start:     start,
						End:       end,
					})
				}
			}
			walkDirectives(d.Children(), d.Name, registry, out)
			continue
		}
		walkDirectives(n.Children(), parentName, registry, out)
	}
}

// childDirectiveNames returns the names of children that are themselves
// DirectiveNodes, mirroring render.childDirectiveNames (duplicated
// rather than shared to avoid a render->directive->render import cycle;
// directive cannot import render).
func childDirectiveNames(children []ast.Node) []string {
	var out []string
	for _, c := range children {
		if d, ok := c.(*ast.DirectiveNode); ok {
			out = append(out, d.Name)
		}
	}
	return out
}
