// Package xref implements spec.md §6.1/§6.2's cross-reference
// post-processing pass: resolving `[[path]]`, `[[path|text]]`,
// `[[#heading]]`, `[[!target]]`, and `[[id:custom]]` link tokens left
// in already-rendered HTML into `<a>` tags (or, for `[[ext:project:
// target]]`, delegating to an externalref.Resolver).
//
// This is deliberately a post-render pass over the final HTML string,
// not a parser extension: spec.md §1 places cross-reference indexing
// and resolution outside the core's strict-O(n)/no-backtracking parse
// pipeline, consuming an index the host builds from its own page
// graph. Grounded on bengal/rendering/plugins/cross_references.py's
// CrossReferencePlugin.
package xref

// Entry describes one referenceable target: a page, or an anchor
// (heading or target directive) within a page. Grounded on
// bengal/postprocess/xref_index.py's index entry shape (§6.4).
type Entry struct {
	Type    string // page, class, function, method, module, cli, endpoint
	URL     string
	Title   string
	Summary string
}

// AnchorEntry pairs an Entry with the specific in-page anchor ID a
// heading or target directive resolved to.
type AnchorEntry struct {
	Entry
	AnchorID string
}

// Index is the host-built cross-reference table spec.md §6.2 names:
// by_path, by_slug, by_id, by_heading, by_anchor. It is read-only once
// constructed and safe for concurrent Substitute calls (spec.md §5).
type Index struct {
	ByPath    map[string]Entry
	BySlug    map[string][]Entry
	ByID      map[string]Entry
	ByHeading map[string][]AnchorEntry
	ByAnchor  map[string]AnchorEntry
}

// NewIndex returns an empty, ready-to-populate Index.
func NewIndex() *Index {
	return &Index{
		ByPath:    make(map[string]Entry),
		BySlug:    make(map[string][]Entry),
		ByID:      make(map[string]Entry),
		ByHeading: make(map[string][]AnchorEntry),
		ByAnchor:  make(map[string]AnchorEntry),
	}
}
