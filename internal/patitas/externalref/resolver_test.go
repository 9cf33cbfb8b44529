package externalref

import (
	"strings"
	"testing"
)

func defaultTemplates() map[string]string {
	return map[string]string{
		"python": "https://docs.python.org/3/library/{module}.html#{name}",
		"numpy":  "https://numpy.org/doc/stable/reference/generated/numpy.{target}.html",
	}
}

func TestResolve_URLTemplate(t *testing.T) {
	r := NewResolver(defaultTemplates(), nil)
	html := r.Resolve("python", "pathlib.Path", "")
	if !strings.Contains(html, `href="https://docs.python.org/3/library/pathlib.html#Path"`) {
		t.Fatalf("unexpected html: %s", html)
	}
	if !strings.Contains(html, `class="extref"`) {
		t.Fatalf("expected extref class: %s", html)
	}
}

func TestResolve_URLTemplateCustomText(t *testing.T) {
	r := NewResolver(defaultTemplates(), nil)
	html := r.Resolve("python", "pathlib.Path", "Path class")
	if !strings.Contains(html, ">Path class</a>") {
		t.Fatalf("unexpected html: %s", html)
	}
}

func TestResolve_CachedIndex(t *testing.T) {
	loaded := 0
	loader := func(project string) ([]byte, error) {
		loaded++
		return []byte(`{
			"version": "1",
			"project": {"name": "Kida", "url": "https://kida.dev/"},
			"entries": {"Markup": {"type": "class", "path": "/api/python/kida/#Markup", "title": "Markup"}}
		}`), nil
	}
	r := NewResolver(nil, loader)

	html := r.Resolve("kida", "Markup", "")
	if !strings.Contains(html, `href="https://kida.dev/api/python/kida/#Markup"`) {
		t.Fatalf("unexpected html: %s", html)
	}

	// Second resolve for the same project must not reload the index.
	r.Resolve("kida", "Markup", "")
	if loaded != 1 {
		t.Fatalf("expected index to be loaded once, got %d loads", loaded)
	}
}

func TestResolve_GracefulFallback(t *testing.T) {
	r := NewResolver(defaultTemplates(), nil)
	html := r.Resolve("unknown_project", "SomeClass", "")
	if !strings.Contains(html, "<code") || !strings.Contains(html, "extref-unresolved") {
		t.Fatalf("expected unresolved fallback, got %s", html)
	}
	if !strings.Contains(html, "ext:unknown_project:SomeClass") {
		t.Fatalf("expected project:target in fallback, got %s", html)
	}
}

func TestResolve_TracksUnresolved(t *testing.T) {
	r := NewResolver(nil, nil)
	r.Resolve("unknown", "Target", "")
	refs := r.Unresolved()
	if len(refs) != 1 || refs[0].Project != "unknown" || refs[0].Target != "Target" {
		t.Fatalf("unexpected unresolved refs: %+v", refs)
	}
}

func TestCanResolve(t *testing.T) {
	r := NewResolver(defaultTemplates(), nil)
	if !r.CanResolve("python", "pathlib.Path") {
		t.Fatal("expected CanResolve true for templated project")
	}
	if r.CanResolve("unknown_project", "SomeClass") {
		t.Fatal("expected CanResolve false for unknown project")
	}
}

func TestResolveTemplate(t *testing.T) {
	url := ResolveTemplate("https://docs.python.org/3/library/{module}.html#{name}", "pathlib.Path")
	if url != "https://docs.python.org/3/library/pathlib.html#Path" {
		t.Fatalf("unexpected url: %s", url)
	}
}
