package xref

import (
	"strings"
	"testing"
)

func testIndex() *Index {
	idx := NewIndex()
	idx.ByPath["docs/installation"] = Entry{URL: "/docs/installation/", Title: "Installation"}
	idx.BySlug["installation"] = []Entry{{URL: "/docs/installation/", Title: "Installation"}}
	idx.ByID["my-page"] = Entry{URL: "/docs/installation/", Title: "Installation"}
	idx.ByHeading["getting-started"] = []AnchorEntry{{Entry: Entry{URL: "/guide/", Title: "Guide"}, AnchorID: "getting-started"}}
	idx.ByAnchor["my-target"] = AnchorEntry{Entry: Entry{URL: "/guide/", Title: "Guide"}, AnchorID: "my-target"}
	return idx
}

func TestSubstitute_PathReference(t *testing.T) {
	out := Substitute("See [[docs/installation]] for more.", testIndex(), Options{})
	if !strings.Contains(out, `<a href="/docs/installation/">Installation</a>`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSubstitute_PathWithCustomText(t *testing.T) {
	out := Substitute("[[docs/installation|Install]]", testIndex(), Options{})
	if !strings.Contains(out, `>Install</a>`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSubstitute_SkipsCodeBlocks(t *testing.T) {
	src := "Here: [[docs/installation]]\n\n```\nvar x = [[docs/installation]];\n```\n"
	html := "<p>Here: [[docs/installation]]</p>\n<pre><code>var x = [[docs/installation]];\n</code></pre>\n"
	_ = src
	out := Substitute(html, testIndex(), Options{})

	preStart := strings.Index(out, "<pre>")
	preEnd := strings.Index(out, "</pre>")
	codeHTML := out[preStart:preEnd]
	if strings.Contains(codeHTML, "<a href=") {
		t.Fatalf("cross-reference substituted inside code block: %s", codeHTML)
	}
	if !strings.Contains(codeHTML, "[[docs/installation]]") {
		t.Fatalf("expected literal token preserved in code block, got %s", codeHTML)
	}

	outsideCode := out[:preStart]
	if !strings.Contains(outsideCode, `<a href="/docs/installation/">`) {
		t.Fatalf("expected substitution outside code block, got %s", outsideCode)
	}
}

func TestSubstitute_SlugFallback(t *testing.T) {
	out := Substitute("[[installation]]", testIndex(), Options{})
	if !strings.Contains(out, `href="/docs/installation/"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSubstitute_BrokenPathReference(t *testing.T) {
	out := Substitute("[[no/such/page]]", testIndex(), Options{})
	if !strings.Contains(out, `class="broken-ref"`) {
		t.Fatalf("expected broken-ref marker, got %s", out)
	}
}

func TestSubstitute_IDReference(t *testing.T) {
	out := Substitute("[[id:my-page]]", testIndex(), Options{})
	if !strings.Contains(out, `href="/docs/installation/"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSubstitute_TargetReference(t *testing.T) {
	out := Substitute("[[!my-target]]", testIndex(), Options{})
	if !strings.Contains(out, `href="/guide/#my-target"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSubstitute_HeadingReference(t *testing.T) {
	out := Substitute("[[#getting-started]]", testIndex(), Options{})
	if !strings.Contains(out, `href="/guide/#getting-started"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSubstitute_UnresolvedExternalWithoutResolver(t *testing.T) {
	out := Substitute("[[ext:python:pathlib.Path]]", testIndex(), Options{})
	if !strings.Contains(out, `extref-unresolved`) {
		t.Fatalf("expected unresolved external marker, got %s", out)
	}
}

func TestSubstitute_TracksUnresolved(t *testing.T) {
	tracker := NewTracker()
	Substitute("[[missing/page]] and [[id:no-such-id]]", testIndex(), Options{Tracker: tracker})
	refs := tracker.Unresolved()
	if len(refs) != 2 {
		t.Fatalf("expected 2 unresolved refs, got %+v", refs)
	}
}

type fakeExternal struct{}

func (fakeExternal) Resolve(project, target, text string) string {
	return "<a href=\"https://example.com/" + project + "/" + target + "\" class=\"extref\">" + target + "</a>"
}

func TestSubstitute_ExternalResolverDelegation(t *testing.T) {
	out := Substitute("[[ext:python:pathlib.Path]]", testIndex(), Options{External: fakeExternal{}})
	if !strings.Contains(out, `href="https://example.com/python/pathlib.Path"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}
