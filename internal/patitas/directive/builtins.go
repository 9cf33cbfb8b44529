package directive

import (
	"fmt"
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/escape"
)

// wrapperDirective renders <div class="{cssClass}"> around its rendered
// children, optionally prefixed by a title bar. This covers the large
// family of directives that are, structurally, "a styled box around
// already-rendered content": admonitions, dropdown, cards and tab panes,
// each differing only in CSS class and whether a title renders. The
// external embeds use embedDirective instead.
type wrapperDirective struct {
	names    []string
	cssClass string
	contract Contract
	// titled, if true, renders node.Title in a title element only when
	// it is non-empty. If false, an empty Title falls back to the
	// directive name (title-cased), so a title element always renders.
	titled bool
}

func (w *wrapperDirective) Names() []string   { return w.names }
func (w *wrapperDirective) Contract() Contract { return w.contract }

func (w *wrapperDirective) Render(node *ast.DirectiveNode, renderedChildren string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s">`, escape.HTML(w.cssClass))
	title := node.Title
	if title == "" && !w.titled {
		title = strings.Title(node.Name) //nolint:staticcheck // simple display label, not Unicode-sensitive casing
	}
	if title != "" {
		fmt.Fprintf(&b, `<div class="%s-title">%s</div>`, escape.HTML(w.cssClass), escape.HTML(title))
	}
	b.WriteString(`<div class="` + escape.HTML(w.cssClass) + `-body">`)
	b.WriteString(renderedChildren)
	b.WriteString("</div></div>")
	return b.String(), nil
}

// admonitionNames lists the ten admonition kinds spec.md §4.3 names,
// all rendered identically aside from their CSS class.
var admonitionNames = []string{
	"note", "tip", "warning", "danger", "error",
	"info", "example", "success", "caution", "seealso",
}

// NewStandardRegistry builds the Registry carrying every built-in
// directive handler spec.md §4.3 names. resolver may be nil; it is
// wired into the include/literalinclude handlers, which fail with
// perr.IncludeResolutionError at render time if used without one.
func NewStandardRegistry(resolver FileResolver) *Registry {
	r := NewRegistry()

	for _, name := range admonitionNames {
		r.Register(&wrapperDirective{
			names:    []string{name},
			cssClass: "admonition admonition-" + name,
		})
	}

	r.Register(&wrapperDirective{names: []string{"dropdown"}, cssClass: "dropdown", titled: true})
	r.Register(&wrapperDirective{names: []string{"tab-set"}, cssClass: "tab-set"})
	r.Register(&wrapperDirective{names: []string{"tab-item"}, cssClass: "tab-item", titled: true, contract: Contract{RequiredParent: "tab-set"}})
	r.Register(&wrapperDirective{names: []string{"code-tabs"}, cssClass: "code-tabs"})
	r.Register(&wrapperDirective{names: []string{"cards"}, cssClass: "cards"})
	r.Register(&wrapperDirective{names: []string{"card"}, cssClass: "card", titled: true, contract: Contract{RequiredParent: "cards"}})
	r.Register(&wrapperDirective{names: []string{"child-cards"}, cssClass: "child-cards"})
	r.Register(&wrapperDirective{names: []string{"gallery"}, cssClass: "gallery"})
	r.Register(&wrapperDirective{names: []string{"data-table"}, cssClass: "data-table"})
	r.Register(&wrapperDirective{names: []string{"glossary"}, cssClass: "glossary"})
	r.Register(&audioDirective{})

	for _, name := range []string{"gist", "codepen", "codesandbox", "stackblitz", "spotify", "soundcloud"} {
		r.Register(&embedDirective{name: name})
	}
	for _, name := range []string{"youtube", "vimeo", "tiktok", "video"} {
		r.Register(&embedDirective{name: name, iframeLike: true})
	}

	for _, kind := range []string{"since", "deprecated", "changed"} {
		r.Register(&versionBadgeDirective{kind: kind})
	}

	r.Register(&wrapperDirective{names: []string{"button"}, cssClass: "directive-button", titled: true})
	r.Register(&wrapperDirective{names: []string{"badge"}, cssClass: "directive-badge", titled: true})
	r.Register(&rubricDirective{})
	r.Register(&targetDirective{})

	r.Register(&checklistDirective{})
	r.Register(&listTableDirective{})
	r.Register(&figureDirective{})

	r.Register(&stepsDirective{})
	r.Register(&stepDirective{})

	r.Register((&includeDirective{literal: false}).WithResolver(resolver))
	r.Register((&includeDirective{literal: true}).WithResolver(resolver))

	r.Register(&pageDependentDirective{name: "breadcrumbs"})
	r.Register(&pageDependentDirective{name: "prev-next"})
	r.Register(&pageDependentDirective{name: "siblings"})
	r.Register(&pageDependentDirective{name: "related"})

	r.Register(&executableCellDirective{})

	return r
}

// embedDirective renders a third-party embed (iframe-based for video
// hosts, anchor-based for code/audio embeds) from the directive's
// "url"/"id" option.
type embedDirective struct {
	name       string
	iframeLike bool
}

func (e *embedDirective) Names() []string    { return []string{e.name} }
func (e *embedDirective) Contract() Contract { return Contract{} }

func (e *embedDirective) Render(node *ast.DirectiveNode, _ string) (string, error) {
	src := StringOption(node.Options, "", "url")
	if src == "" {
		src = StringOption(node.Options, "", "id")
	}
	if e.iframeLike {
		return fmt.Sprintf(
			`<div class="embed embed-%s"><iframe src="%s" loading="lazy" allowfullscreen></iframe></div>`,
			escape.HTML(e.name), escape.URL(src),
		), nil
	}
	return fmt.Sprintf(
		`<div class="embed embed-%s"><a href="%s" target="_blank" rel="noopener">%s</a></div>`,
		escape.HTML(e.name), escape.URL(src), escape.HTML(strings.Title(e.name)), //nolint:staticcheck
	), nil
}

// versionBadgeDirective renders an inline note for the since/deprecated/
// changed version-badge kinds spec.md §4.3 names, from a required
// "version" option and optional title as the explanatory note text.
type versionBadgeDirective struct{ kind string }

func (v *versionBadgeDirective) Names() []string    { return []string{v.kind} }
func (v *versionBadgeDirective) Contract() Contract { return Contract{} }

func (v *versionBadgeDirective) Render(node *ast.DirectiveNode, renderedChildren string) (string, error) {
	version := StringOption(node.Options, "", "version")
	return fmt.Sprintf(
		`<div class="version-badge version-%s"><span class="version-badge-label">%s %s</span>%s</div>`,
		escape.HTML(v.kind), escape.HTML(strings.Title(v.kind)), escape.HTML(version), renderedChildren, //nolint:staticcheck
	), nil
}

type rubricDirective struct{}

func (rubricDirective) Names() []string    { return []string{"rubric"} }
func (rubricDirective) Contract() Contract { return Contract{} }
func (rubricDirective) Render(node *ast.DirectiveNode, _ string) (string, error) {
	return fmt.Sprintf(`<p class="rubric">%s</p>`, escape.HTML(node.Title)), nil
}

type targetDirective struct{}

func (targetDirective) Names() []string    { return []string{"target"} }
func (targetDirective) Contract() Contract { return Contract{} }
func (targetDirective) Render(node *ast.DirectiveNode, _ string) (string, error) {
	id := StringOption(node.Options, "", "id")
	return fmt.Sprintf(`<span id="%s" class="target-anchor"></span>`, escape.HTML(id)), nil
}

// checklistDirective wraps its (already-rendered, task-list) children in
// a labeled container; the checked/unchecked rendering itself happens in
// the block renderer from ListItemNode.Checked, not here.
type checklistDirective struct{}

func (checklistDirective) Names() []string    { return []string{"checklist"} }
func (checklistDirective) Contract() Contract { return Contract{} }
func (checklistDirective) Render(node *ast.DirectiveNode, renderedChildren string) (string, error) {
	title := node.Title
	var header string
	if title != "" {
		header = fmt.Sprintf(`<div class="checklist-title">%s</div>`, escape.HTML(title))
	}
	return `<div class="checklist">` + header + renderedChildren + `</div>`, nil
}

// listTableDirective renders a CSV-like list-of-rows option set into a
// table; each option "row-N" holds a "|"-separated set of cell values
// (a degenerate text-only table alternative to GFM pipe tables, useful
// when a cell needs to contain a literal "|").
type listTableDirective struct{}

func (listTableDirective) Names() []string    { return []string{"list-table"} }
func (listTableDirective) Contract() Contract { return Contract{} }
func (listTableDirective) Render(node *ast.DirectiveNode, renderedChildren string) (string, error) {
	header := StringOption(node.Options, "", "header")
	var b strings.Builder
	b.WriteString(`<table class="list-table">`)
	if header != "" {
		b.WriteString("<thead><tr>")
		for _, cell := range strings.Split(header, "|") {
			fmt.Fprintf(&b, "<th>%s</th>", escape.HTML(strings.TrimSpace(cell)))
		}
		b.WriteString("</tr></thead>")
	}
	b.WriteString("<tbody>")
	b.WriteString(renderedChildren)
	b.WriteString("</tbody></table>")
	return b.String(), nil
}

// figureDirective renders an <img> with an optional <figcaption> built
// from the directive's rendered children (the caption content).
type figureDirective struct{}

func (figureDirective) Names() []string    { return []string{"figure"} }
func (figureDirective) Contract() Contract { return Contract{} }
func (figureDirective) Render(node *ast.DirectiveNode, renderedChildren string) (string, error) {
	src := StringOption(node.Options, "", "src")
	alt := StringOption(node.Options, "", "alt")
	var b strings.Builder
	b.WriteString(`<figure class="figure">`)
	fmt.Fprintf(&b, `<img src="%s" alt="%s" loading="lazy" />`, escape.URL(src), escape.HTML(alt))
	if renderedChildren != "" {
		b.WriteString(`<figcaption>` + renderedChildren + `</figcaption>`)
	}
	b.WriteString(`</figure>`)
	return b.String(), nil
}

// audioDirective renders an HTML5 <audio> element from the directive's
// "src" option, alongside figure and gallery as one of spec.md §4.3's
// three media directives.
type audioDirective struct{}

func (audioDirective) Names() []string    { return []string{"audio"} }
func (audioDirective) Contract() Contract { return Contract{} }
func (audioDirective) Render(node *ast.DirectiveNode, _ string) (string, error) {
	src := StringOption(node.Options, "", "src")
	return fmt.Sprintf(`<audio controls src="%s"></audio>`, escape.URL(src)), nil
}

// executableCellDirective renders a "marimo"-style executable code cell
// as plain fenced output at render time (spec.md §1's Non-goals exclude
// actual execution; only the static wrapper markup is this package's job).
type executableCellDirective struct{}

func (executableCellDirective) Names() []string    { return []string{"marimo", "exec"} }
func (executableCellDirective) Contract() Contract { return Contract{} }
func (executableCellDirective) Render(node *ast.DirectiveNode, renderedChildren string) (string, error) {
	return `<div class="executable-cell" data-language="` + escape.HTML(StringOption(node.Options, "python", "language")) + `">` +
		renderedChildren + `</div>`, nil
}
