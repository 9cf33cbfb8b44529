package render

import (
	"strings"
	"testing"

	"github.com/lbliii/patitas/internal/patitas/directive"
	"github.com/lbliii/patitas/internal/patitas/parser"
	"github.com/lbliii/patitas/internal/patitas/pcontext"
	"github.com/lbliii/patitas/internal/patitas/role"
	"github.com/lbliii/patitas/internal/patitas/source"
)

func renderSrc(t *testing.T, parseCfg pcontext.ParseConfig, renderCfg pcontext.RenderConfig, text string) (string, *pcontext.RenderMetadata, []TOCEntry) {
	t.Helper()
	doc, err := parser.New(parseCfg).Parse(source.New([]byte(text), "test.md"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	html, meta, toc, err := New(renderCfg, parseCfg).Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return html, meta, toc
}

func fullParseCfg() pcontext.ParseConfig {
	return pcontext.ParseConfig{
		TablesEnabled: true, StrikethroughEnabled: true, TaskListsEnabled: true,
		FootnotesEnabled: true, MathEnabled: true, AutolinksEnabled: true,
	}
}

func TestRender_HeadingSlugAndTOC(t *testing.T) {
	html, _, toc := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, "# Hello World\n\nbody\n")
	if !strings.Contains(html, `<h1 id="hello-world">`) {
		t.Fatalf("unexpected html: %s", html)
	}
	if len(toc) != 1 || toc[0].Slug != "hello-world" || toc[0].Level != 1 {
		t.Fatalf("unexpected toc: %+v", toc)
	}
}

func TestRender_DuplicateHeadingSlugsDedup(t *testing.T) {
	_, _, toc := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, "# Same\n\n# Same\n")
	if len(toc) != 2 || toc[0].Slug != "same" || toc[1].Slug != "same-1" {
		t.Fatalf("unexpected toc dedup: %+v", toc)
	}
}

func TestRender_FencedCodePlain(t *testing.T) {
	html, meta, _ := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, "```go\nfunc f() {}\n```\n")
	if !strings.Contains(html, `<pre><code class="language-go"`) {
		t.Fatalf("unexpected html: %s", html)
	}
	if _, ok := meta.CodeLanguages["go"]; !meta.HasCode || !ok {
		t.Fatalf("expected go in code languages, got %+v", meta.CodeLanguages)
	}
}

func TestRender_MermaidCode(t *testing.T) {
	html, meta, _ := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, "```mermaid\ngraph TD;\n```\n")
	if !strings.Contains(html, `<div class="mermaid">`) {
		t.Fatalf("unexpected html: %s", html)
	}
	if !meta.HasMermaid {
		t.Fatal("expected HasMermaid")
	}
}

func TestRender_ExternalHighlighterHook(t *testing.T) {
	cfg := pcontext.DefaultRenderConfig
	cfg.Highlighter = func(code, lang string) (string, bool) {
		return "<pre class=\"hl\">" + code + "</pre>", true
	}
	html, _, _ := renderSrc(t, pcontext.ParseConfig{}, cfg, "```py\nx = 1\n```\n")
	if !strings.Contains(html, `class="hl"`) {
		t.Fatalf("expected highlighter output, got %s", html)
	}
}

func TestRender_Admonition(t *testing.T) {
	html, _, _ := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, ":::{note} Careful\nBody text.\n:::\n")
	if !strings.Contains(html, `admonition-note`) || !strings.Contains(html, "Body text.") {
		t.Fatalf("unexpected html: %s", html)
	}
}

func TestRender_UnknownDirectiveDegradesToChildren(t *testing.T) {
	html, _, _ := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, ":::{no-such-directive}\nFallback text.\n:::\n")
	if !strings.Contains(html, "Fallback text.") {
		t.Fatalf("expected degraded children, got %s", html)
	}
}

func TestRender_StepsInjectsStepNumber(t *testing.T) {
	src := "::::{steps}\n:::{step} First\nDo it.\n:::\n:::{step} Second\nThen this.\n:::\n::::\n"
	html, _, _ := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, src)
	if !strings.Contains(html, `data-step="1"`) || !strings.Contains(html, `data-step="2"`) {
		t.Fatalf("expected injected step numbers, got %s", html)
	}
}

func TestRender_RoleKbd(t *testing.T) {
	html, _, _ := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, "press {kbd}`Ctrl+C` now\n")
	if !strings.Contains(html, "<kbd>Ctrl</kbd>") || !strings.Contains(html, "<kbd>C</kbd>") {
		t.Fatalf("unexpected html: %s", html)
	}
}

func TestRender_LinkAndImageMetadata(t *testing.T) {
	html, meta, _ := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig,
		"[ex](https://example.com)\n\n![alt text](/img.png)\n")
	if !strings.Contains(html, `href="https://example.com"`) {
		t.Fatalf("unexpected html: %s", html)
	}
	if len(meta.ExternalLinks) != 1 || meta.ExternalLinks[0] != "https://example.com" {
		t.Fatalf("unexpected external links: %+v", meta.ExternalLinks)
	}
	if len(meta.ImageRefs) != 1 || meta.ImageRefs[0] != "/img.png" {
		t.Fatalf("unexpected image refs: %+v", meta.ImageRefs)
	}
}

func TestRender_TaskListCheckbox(t *testing.T) {
	html, _, _ := renderSrc(t, fullParseCfg(), pcontext.DefaultRenderConfig, "- [x] done\n- [ ] todo\n")
	if !strings.Contains(html, `checked disabled`) {
		t.Fatalf("unexpected html: %s", html)
	}
}

func TestRender_TableAlignment(t *testing.T) {
	html, meta, _ := renderSrc(t, fullParseCfg(), pcontext.DefaultRenderConfig, "| A | B |\n| --- | ---: |\n| 1 | 2 |\n")
	if !strings.Contains(html, `text-align:right`) {
		t.Fatalf("unexpected html: %s", html)
	}
	if !meta.HasTable {
		t.Fatal("expected HasTable")
	}
}

func TestRender_FootnoteSection(t *testing.T) {
	html, _, _ := renderSrc(t, fullParseCfg(), pcontext.DefaultRenderConfig, "see[^1]\n\n[^1]: explained here\n")
	if !strings.Contains(html, `class="footnotes"`) || !strings.Contains(html, `id="fn-1"`) || !strings.Contains(html, `id="fnref-1"`) {
		t.Fatalf("unexpected html: %s", html)
	}
}

func TestRender_IncludeDirectiveReparsesMarkdown(t *testing.T) {
	resolver := func(target string) (string, error) {
		return "# Included Heading\n\nIncluded body.\n", nil
	}
	cfg := pcontext.DefaultRenderConfig
	cfg.DirectiveRegistry = directive.NewStandardRegistry(resolver)
	html, _, toc := renderSrc(t, pcontext.ParseConfig{}, cfg, ":::{include}\n:path: other.md\n:::\n")
	if !strings.Contains(html, "Included body.") {
		t.Fatalf("expected included content rendered, got %s", html)
	}
	if len(toc) != 1 || toc[0].Text != "Included Heading" {
		t.Fatalf("expected included heading in toc, got %+v", toc)
	}
}

func TestRender_VoidElementsSelfClose(t *testing.T) {
	html, _, _ := renderSrc(t, fullParseCfg(), pcontext.DefaultRenderConfig,
		"---\n\n![alt](/img.png)\nline one  \nline two\n\n- [x] done\n")
	for _, want := range []string{"<hr />\n", `<img src="/img.png" alt="alt" />`, "<br />\n", "checked disabled />"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected self-closing void element %q, got %s", want, html)
		}
	}
	for _, bad := range []string{"<hr>\n", "<br>\n"} {
		if strings.Contains(html, bad) {
			t.Fatalf("found non-self-closing void element %q in %s", bad, html)
		}
	}
}

func TestRender_UnknownRoleRendersSpan(t *testing.T) {
	cfg := pcontext.DefaultRenderConfig
	cfg.RoleRegistry = role.NewStandardRegistry(nil)
	html, _, _ := renderSrc(t, fullParseCfg(), cfg, "a {bogus}`stuff` b\n")
	if !strings.Contains(html, `<span class="role role-bogus">stuff</span>`) {
		t.Fatalf("expected unknown-role span, got %s", html)
	}
}

func TestRender_FencedCodeHighlightLines(t *testing.T) {
	html, _, _ := renderSrc(t, pcontext.ParseConfig{}, pcontext.DefaultRenderConfig, "```go {1,3-5,7}\nfunc f() {}\n```\n")
	if !strings.Contains(html, `data-highlight-lines="1,3,4,5,7"`) {
		t.Fatalf("expected parsed highlight-lines attribute, got %s", html)
	}
}

type stubDelegate struct{ lang string }

func (d stubDelegate) SupportsLanguage(lang string) bool { return lang == d.lang }
func (d stubDelegate) TokenizeRange(source []byte, start, end int, lang string) []pcontext.DelegateToken {
	return []pcontext.DelegateToken{
		{Value: "func", Type: "keyword"},
		{Value: " ", Type: ""},
		{Value: string(source[start:end]), Type: "", HTML: "<b>raw</b>"},
	}
}

func TestRender_CodeDelegateClaimsLanguage(t *testing.T) {
	cfg := pcontext.DefaultRenderConfig
	cfg.Delegate = stubDelegate{lang: "go"}
	html, _, _ := renderSrc(t, pcontext.ParseConfig{}, cfg, "```go\nfunc f() {}\n```\n")
	if !strings.Contains(html, `data-delegate="go"`) || !strings.Contains(html, `<span class="tok-keyword">func</span>`) || !strings.Contains(html, "<b>raw</b>") {
		t.Fatalf("expected delegate-rendered tokens, got %s", html)
	}
}

func TestRender_CodeDelegateFallsBackForUnclaimedLanguage(t *testing.T) {
	cfg := pcontext.DefaultRenderConfig
	cfg.Delegate = stubDelegate{lang: "python"}
	html, _, _ := renderSrc(t, pcontext.ParseConfig{}, cfg, "```go\nfunc f() {}\n```\n")
	if strings.Contains(html, "data-delegate") {
		t.Fatalf("expected delegate to be skipped for unclaimed language, got %s", html)
	}
	if !strings.Contains(html, `<pre><code class="language-go"`) {
		t.Fatalf("expected plain fallback rendering, got %s", html)
	}
}

func TestRender_DirectiveCacheHook(t *testing.T) {
	cache := make(map[string]string)
	cfg := pcontext.DefaultRenderConfig
	cfg.DirectiveCacheGet = func(key string) (string, bool) { v, ok := cache[key]; return v, ok }
	cfg.DirectiveCacheSet = func(key, html string) { cache[key] = html }
	src := ":::{note}\nCached body.\n:::\n"
	html1, _, _ := renderSrc(t, pcontext.ParseConfig{}, cfg, src)
	if len(cache) != 1 {
		t.Fatalf("expected one cache entry, got %d", len(cache))
	}
	html2, _, _ := renderSrc(t, pcontext.ParseConfig{}, cfg, src)
	if html1 != html2 {
		t.Fatalf("expected identical cached output, got %q vs %q", html1, html2)
	}
}
