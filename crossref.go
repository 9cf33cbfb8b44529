package patitas

import (
	"github.com/lbliii/patitas/internal/patitas/externalref"
	"github.com/lbliii/patitas/internal/patitas/xref"
)

// CrossReferencer is the installed post-processing pass spec.md §6.1's
// `enable_cross_references` describes: a value bound to one
// cross-reference Index (and, optionally, an external-project resolver
// and unresolved-reference Tracker) whose Process method rewrites every
// `[[...]]` token in a fully-rendered HTML string into the anchor (or
// broken-reference marker) it resolves to.
//
// Unlike the single installer function spec.md names, Go's lack of
// implicit per-thread mutable installed state makes an explicit value
// the idiomatic shape here: a host builds one CrossReferencer per site
// build (or per page, if per-page index scoping is needed) and calls
// Process on each page's rendered HTML, rather than mutating a package-
// level "currently enabled" flag that every Parse call would have to
// consult.
type CrossReferencer struct {
	idx      *xref.Index
	external xref.ExternalResolver
	tracker  *xref.Tracker
}

// EnableCrossReferences builds a CrossReferencer over idx. external may
// be nil (every `ext:project:target` token then renders as the
// unresolved fallback, spec.md §6.4); tracker may be nil to skip
// unresolved-reference bookkeeping. externalref.Resolver satisfies
// xref.ExternalResolver, so the three-tier external resolution it
// implements plugs in directly as external.
func EnableCrossReferences(idx *xref.Index, external xref.ExternalResolver, tracker *xref.Tracker) *CrossReferencer {
	return &CrossReferencer{idx: idx, external: external, tracker: tracker}
}

// Process rewrites every cross-reference token in html, leaving code
// spans untouched (xref.Substitute).
func (c *CrossReferencer) Process(html string) string {
	return xref.Substitute(html, c.idx, xref.Options{External: c.external, Tracker: c.tracker})
}

// Unresolved returns every unresolved cross-reference token recorded by
// this CrossReferencer's Tracker, or nil if none was supplied.
func (c *CrossReferencer) Unresolved() []xref.UnresolvedRef {
	return c.tracker.Unresolved()
}

// NewExternalResolver builds the three-tier external-reference resolver
// spec.md §6.4 describes (URL templates, cached host-supplied JSON
// indexes, graceful fallback), suitable for passing as
// EnableCrossReferences' external argument.
func NewExternalResolver(templates map[string]string, loader externalref.Loader) *externalref.Resolver {
	return externalref.NewResolver(templates, loader)
}
