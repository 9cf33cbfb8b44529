// Package externalref implements spec.md §6.4's three-tier external
// reference resolution for `[[ext:project:target]]` cross-project links:
// an instant offline URL template, a cached external xref.json index,
// and a graceful fallback that never fails a render. Grounded on
// bengal/rendering/external_refs/resolver.py's ExternalRefResolver.
//
// The core performs no network I/O itself (spec.md §1 scopes
// "external-reference resolution over HTTP" to the host): fetching and
// caching raw index bytes is the host's job, supplied here as a Loader
// capability hook, the same shape as directive.FileResolver.
package externalref

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/lbliii/patitas/internal/patitas/escape"
)

// Entry is one parsed xref.json entry (spec.md §6.4).
type Entry struct {
	Type    string `json:"type"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// indexDocument mirrors the xref.json wire format spec.md §6.4 defines.
type indexDocument struct {
	Version string `json:"version"`
	Project struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"project"`
	Entries map[string]Entry `json:"entries"`
}

// UnresolvedRef records an external reference that fell through to the
// tier-3 fallback, for host-side health checks.
type UnresolvedRef struct {
	Project    string
	Target     string
	SourceFile string
	Line       int
}

// Loader fetches the raw xref.json bytes for project, however the host
// wants (network, local file, embedded asset). Returning an error or
// nil bytes is treated as "no index available" (tier 2 miss, not a
// render failure).
type Loader func(project string) ([]byte, error)

// Resolver implements the three-tier resolution chain. Safe for
// concurrent Resolve calls; the lazily-built per-project index cache
// and the unresolved-refs log are mutex-guarded.
type Resolver struct {
	templates map[string]string
	loader    Loader

	mu         sync.Mutex
	indexes    map[string]map[string]Entry
	unresolved []UnresolvedRef
}

// NewResolver builds a Resolver. templates maps a project name to a URL
// template (see ResolveTemplate); loader is nil-safe (a nil loader means
// tier 2 always misses, falling through to tier 3).
func NewResolver(templates map[string]string, loader Loader) *Resolver {
	return &Resolver{
		templates: templates,
		loader:    loader,
		indexes:   make(map[string]map[string]Entry),
	}
}

// Resolve implements xref.ExternalResolver, satisfying the three tiers
// in order: URL template, cached/loaded index, graceful fallback.
func (r *Resolver) Resolve(project, target, text string) string {
	if url, ok := r.resolveTemplate(project, target); ok {
		label := text
		if label == "" {
			label = displayName(target)
		}
		return fmt.Sprintf(`<a href="%s" class="extref">%s</a>`, escape.URL(url), escape.HTML(label))
	}

	if entry, ok := r.resolveIndex(project, target); ok {
		label := text
		if label == "" {
			label = entry.Title
		}
		titleAttr := ""
		if entry.Summary != "" {
			titleAttr = fmt.Sprintf(` title="%s"`, escape.HTML(entry.Summary))
		}
		return fmt.Sprintf(`<a href="%s" class="extref"%s>%s</a>`, escape.URL(entry.Path), titleAttr, escape.HTML(label))
	}

	r.recordUnresolved(project, target, "", 0)
	label := text
	if label == "" {
		label = target
	}
	return fmt.Sprintf(`<code class="extref extref-unresolved">ext:%s:%s</code>`, escape.HTML(project), escape.HTML(label))
}

// CanResolve reports whether project/target resolves via template or
// index, without recording an unresolved entry or rendering anything.
func (r *Resolver) CanResolve(project, target string) bool {
	if _, ok := r.resolveTemplate(project, target); ok {
		return true
	}
	_, ok := r.resolveIndex(project, target)
	return ok
}

// Unresolved returns a snapshot of every fallback hit recorded so far.
func (r *Resolver) Unresolved() []UnresolvedRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]UnresolvedRef, len(r.unresolved))
	copy(out, r.unresolved)
	return out
}

func (r *Resolver) recordUnresolved(project, target, sourceFile string, line int) {
	r.mu.Lock()
	r.unresolved = append(r.unresolved, UnresolvedRef{Project: project, Target: target, SourceFile: sourceFile, Line: line})
	r.mu.Unlock()
}

func (r *Resolver) resolveTemplate(project, target string) (string, bool) {
	tmpl, ok := r.templates[project]
	if !ok || tmpl == "" {
		return "", false
	}
	return ResolveTemplate(tmpl, target), true
}

func (r *Resolver) resolveIndex(project, target string) (Entry, bool) {
	r.mu.Lock()
	idx, loaded := r.indexes[project]
	r.mu.Unlock()
	if !loaded {
		idx = r.loadIndex(project)
		r.mu.Lock()
		r.indexes[project] = idx
		r.mu.Unlock()
	}
	entry, ok := idx[target]
	return entry, ok
}

func (r *Resolver) loadIndex(project string) map[string]Entry {
	if r.loader == nil {
		return nil
	}
	raw, err := r.loader(project)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var doc indexDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	entries := make(map[string]Entry, len(doc.Entries))
	baseURL := strings.TrimSuffix(doc.Project.URL, "/")
	for key, e := range doc.Entries {
		if e.Path != "" && !strings.HasPrefix(e.Path, "http://") && !strings.HasPrefix(e.Path, "https://") && baseURL != "" {
			e.Path = baseURL + e.Path
		}
		entries[key] = e
	}
	return entries
}

// ResolveTemplate expands a URL template against target, offering the
// {target}, {module}, {name}, and {name_lower} substitution variables
// (spec.md §6.4; grounded on resolve_template in the original).
//
// "pathlib.Path" -> module="pathlib", name="Path".
func ResolveTemplate(template, target string) string {
	module, name := target, target
	if i := strings.LastIndex(target, "."); i >= 0 {
		module, name = target[:i], target[i+1:]
	}
	r := strings.NewReplacer(
		"{target}", target,
		"{module}", module,
		"{name}", name,
		"{name_lower}", strings.ToLower(name),
	)
	return r.Replace(template)
}

func displayName(target string) string {
	if i := strings.LastIndex(target, "."); i >= 0 {
		return target[i+1:]
	}
	return target
}
