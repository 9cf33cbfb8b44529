package xref

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/lbliii/patitas/internal/patitas/escape"
)

// tokenPattern matches `[[ref]]` and `[[ref|text]]`, mirroring the
// original plugin's compiled-once pattern.
var tokenPattern = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)

// codeBlockPattern matches <pre>...</pre> and <code ...>...</code>
// spans so Substitute can skip them. This is the fix for the documented
// bug (test_xref_bug.py) where an earlier revision substituted inside
// code blocks because it hooked the text-node renderer directly instead
// of scanning the final HTML with code spans excluded.
var codeBlockPattern = regexp.MustCompile(`(?is)(<pre.*?</pre>|<code[^>]*>.*?</code>)`)

// ExternalResolver resolves an `[[ext:project:target]]` token (spec.md
// §6.4). externalref.Resolver implements this.
type ExternalResolver interface {
	Resolve(project, target, text string) string
}

// UnresolvedRef records a cross-reference token that could not be
// resolved, for host-side health checks (grounded on the original's
// UnresolvedRef dataclass).
type UnresolvedRef struct {
	Kind string // path, id, anchor, heading, ext
	Ref  string
}

// Tracker accumulates UnresolvedRefs across one or more Substitute
// calls. Safe for concurrent use; a Renderer-per-goroutine build can
// share one Tracker across pages.
type Tracker struct {
	mu         sync.Mutex
	unresolved []UnresolvedRef
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker { return &Tracker{} }

func (t *Tracker) record(ref UnresolvedRef) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.unresolved = append(t.unresolved, ref)
	t.mu.Unlock()
}

// Unresolved returns a snapshot of every ref recorded so far.
func (t *Tracker) Unresolved() []UnresolvedRef {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]UnresolvedRef, len(t.unresolved))
	copy(out, t.unresolved)
	return out
}

// Options configures a Substitute call.
type Options struct {
	// External resolves "ext:project:target" tokens. Nil renders every
	// such token as an unresolved fallback (spec.md §6.4).
	External ExternalResolver
	// Tracker, if non-nil, records every unresolved token encountered.
	Tracker *Tracker
}

// Substitute scans html for `[[...]]` cross-reference tokens outside of
// <pre>/<code> spans and replaces each with a resolved <a> (or, for
// unresolved/external-unresolved refs, a `broken-ref`/`extref-unresolved`
// marker), per spec.md §6.1's enable_cross_references contract.
func Substitute(html string, idx *Index, opts Options) string {
	if idx == nil || !strings.Contains(html, "[[") {
		return html
	}

	locs := codeBlockPattern.FindAllStringIndex(html, -1)
	if len(locs) == 0 {
		return substituteText(html, idx, opts)
	}

	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		b.WriteString(substituteText(html[prev:loc[0]], idx, opts))
		b.WriteString(html[loc[0]:loc[1]])
		prev = loc[1]
	}
	b.WriteString(substituteText(html[prev:], idx, opts))
	return b.String()
}

func substituteText(text string, idx *Index, opts Options) string {
	if !strings.Contains(text, "[[") {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := tokenPattern.FindStringSubmatch(m)
		ref := strings.TrimSpace(sub[1])
		var linkText string
		if len(sub) > 2 && sub[2] != "" {
			linkText = strings.TrimSpace(sub[2])
		}
		switch {
		case strings.HasPrefix(ref, "!"):
			return resolveTarget(idx, opts, ref[1:], linkText)
		case strings.HasPrefix(ref, "#"):
			return resolveHeading(idx, opts, ref, linkText)
		case strings.HasPrefix(ref, "id:"):
			return resolveID(idx, opts, ref[3:], linkText)
		case strings.HasPrefix(ref, "ext:"):
			return resolveExternal(opts, ref[4:], linkText)
		default:
			return resolvePath(idx, opts, ref, linkText)
		}
	})
}

func resolvePath(idx *Index, opts Options, path, text string) string {
	anchor := ""
	if i := strings.Index(path, "#"); i >= 0 {
		anchor = "#" + path[i+1:]
		path = path[:i]
	}
	clean := strings.TrimSuffix(path, ".md")

	entry, ok := idx.ByPath[clean]
	if !ok {
		if slugged := idx.BySlug[clean]; len(slugged) > 0 {
			entry, ok = slugged[0], true
		}
	}
	if !ok {
		opts.Tracker.record(UnresolvedRef{Kind: "path", Ref: path})
		return brokenRef(path, text)
	}
	label := text
	if label == "" {
		label = entry.Title
	}
	return fmt.Sprintf(`<a href="%s%s">%s</a>`, escape.URL(entry.URL), escape.HTML(anchor), escape.HTML(label))
}

func resolveID(idx *Index, opts Options, id, text string) string {
	entry, ok := idx.ByID[id]
	if !ok {
		opts.Tracker.record(UnresolvedRef{Kind: "id", Ref: id})
		return brokenRef("id:"+id, text)
	}
	label := text
	if label == "" {
		label = entry.Title
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, escape.URL(entry.URL), escape.HTML(label))
}

func resolveTarget(idx *Index, opts Options, anchorID, text string) string {
	key := strings.ToLower(anchorID)
	entry, ok := idx.ByAnchor[key]
	if !ok {
		opts.Tracker.record(UnresolvedRef{Kind: "anchor", Ref: anchorID})
		return brokenRef("!"+anchorID, text)
	}
	label := text
	if label == "" {
		label = titleCase(anchorID)
	}
	return fmt.Sprintf(`<a href="%s#%s">%s</a>`, escape.URL(entry.URL), escape.HTML(entry.AnchorID), escape.HTML(label))
}

func resolveHeading(idx *Index, opts Options, anchor, text string) string {
	key := strings.ToLower(strings.TrimPrefix(anchor, "#"))

	// Explicit anchor IDs (target directives and {#custom-id} headings)
	// take priority over plain heading-text lookup.
	if entry, ok := idx.ByAnchor[key]; ok {
		label := text
		if label == "" {
			label = titleCase(key)
		}
		return fmt.Sprintf(`<a href="%s#%s">%s</a>`, escape.URL(entry.URL), escape.HTML(entry.AnchorID), escape.HTML(label))
	}

	results := idx.ByHeading[key]
	if len(results) == 0 {
		opts.Tracker.record(UnresolvedRef{Kind: "heading", Ref: anchor})
		return brokenRef(anchor, text)
	}
	entry := results[0]
	label := text
	if label == "" {
		label = titleCase(key)
	}
	return fmt.Sprintf(`<a href="%s#%s">%s</a>`, escape.URL(entry.URL), escape.HTML(entry.AnchorID), escape.HTML(label))
}

func resolveExternal(opts Options, ref, text string) string {
	project, target, ok := strings.Cut(ref, ":")
	if !ok || opts.External == nil {
		opts.Tracker.record(UnresolvedRef{Kind: "ext", Ref: ref})
		return fmt.Sprintf(`<code class="extref extref-unresolved">ext:%s</code>`, escape.HTML(ref))
	}
	return opts.External.Resolve(project, target, text)
}

func brokenRef(ref, text string) string {
	label := text
	if label == "" {
		label = ref
	}
	return fmt.Sprintf(`<span class="broken-ref" data-ref="%s" title="Reference not found: %s">[%s]</span>`,
		escape.HTML(ref), escape.HTML(ref), escape.HTML(label))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
