package directive

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/escape"
)

// stepsDirective and stepDirective are the directive system's concrete
// example of parent-context injection (spec.md §9's design note): a
// step's step number is not stored on the step's own DirectiveNode by
// the parser (which has no numbering context at parse time), but
// assigned by the parent steps directive's PrepareChildren, called by
// the renderer right before it renders each child bottom-up — exactly
// mirroring the original StepsDirective.parse() injecting
// step_number/heading_level into each child StepOptions before handing
// them to the step handler.
type stepsDirective struct{}

func (stepsDirective) Names() []string    { return []string{"steps"} }
func (stepsDirective) Contract() Contract { return Contract{} }

func (stepsDirective) PrepareChildren(node *ast.DirectiveNode) []ast.Node {
	start := IntOption(node.Options, 1, "start")
	children := node.Children()
	out := make([]ast.Node, len(children))
	n := start
	for i, child := range children {
		stepNode, ok := child.(*ast.DirectiveNode)
		if !ok || stepNode.Name != "step" {
			out[i] = child
			continue
		}
		out[i] = withInjectedStepNumber(stepNode, n)
		n++
	}
	return out
}

func (stepsDirective) Render(node *ast.DirectiveNode, renderedChildren string) (string, error) {
	start := IntOption(node.Options, 1, "start")
	return fmt.Sprintf(`<ol class="steps" start="%d">%s</ol>`, start, renderedChildren), nil
}

// withInjectedStepNumber returns a DirectiveNode equal to node except
// its Options carries an injected "_step_number", never mutating node
// itself (nodes are immutable — spec.md §3.3).
func withInjectedStepNumber(node *ast.DirectiveNode, n int) *ast.DirectiveNode {
	opts := make(map[string]string, len(node.Options)+1)
	for k, v := range node.Options {
		opts[k] = v
	}
	opts["_step_number"] = fmt.Sprintf("%d", n)
	start, end := node.Span()
	return ast.NewDirective(start, end, node.Source(), node.Children(), node.Name, node.Title, opts)
}

type stepDirective struct{}

func (stepDirective) Names() []string    { return []string{"step"} }
func (stepDirective) Contract() Contract { return Contract{RequiredParent: "steps"} }

func (stepDirective) Render(node *ast.DirectiveNode, renderedChildren string) (string, error) {
	num := StringOption(node.Options, "", "_step_number")
	optional := BoolOption(node.Options, false, "optional")
	duration := StringOption(node.Options, "", "duration")

	var b strings.Builder
	b.WriteString(`<li class="step"`)
	if num != "" {
		fmt.Fprintf(&b, ` data-step="%s"`, escape.HTML(num))
	}
	b.WriteString(`>`)
	if node.Title != "" {
		fmt.Fprintf(&b, `<div class="step-title">%s`, escape.HTML(node.Title))
		if optional {
			b.WriteString(` <span class="step-optional">(optional)</span>`)
		}
		if duration != "" {
			fmt.Fprintf(&b, ` <span class="step-duration">%s</span>`, escape.HTML(duration))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`<div class="step-body">`)
	b.WriteString(renderedChildren)
	b.WriteString(`</div></li>`)
	return b.String(), nil
}
