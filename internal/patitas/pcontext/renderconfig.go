package pcontext

// HighlightStyle selects how fenced code is decorated at render time
// (spec.md §4.3's code-block 4-path rendering logic).
type HighlightStyle string

const (
	HighlightSemantic HighlightStyle = "semantic"
	HighlightPygments HighlightStyle = "pygments"
)

// DelegateToken is one lexical unit a Delegate emits for a source span
// (spec.md §6.2: `{value, type, html?}`). If HTML is non-empty, it is
// emitted verbatim (the delegate did its own markup); otherwise Value is
// entity-escaped and wrapped using Type as a CSS class.
type DelegateToken struct {
	Value string
	Type  string
	HTML  string
}

// Delegate is a host-supplied sub-lexer that tokenises source spans
// without the renderer copying the source buffer (spec.md §2's
// Zero-Copy Lexer Handoff, §6.2's sub-lexer delegate capability).
// SupportsLanguage reports whether the delegate claims a fenced code
// block's language tag; TokenizeRange is then called with the exact
// source span (never a copied substring) to tokenize.
type Delegate interface {
	SupportsLanguage(lang string) bool
	TokenizeRange(source []byte, start, end int, lang string) []DelegateToken
}

// RenderConfig controls HTML rendering: the external highlighter choice,
// the registries a directive/role can look up, a text transformer (the
// renderer does not apply it to anything), the slug function headings
// use, and whether an external highlighter
// (Pygments-compatible Rosetta call) is actually available.
type RenderConfig struct {
	Highlight         HighlightStyle
	DirectiveRegistry any
	RoleRegistry      any
	TextTransformer   func(string) string
	Slugify           func(string) string
	RosettesAvailable bool

	// Delegate, if non-nil, gets first refusal on a fenced code block's
	// language (spec.md §4.4 step 2), ahead of Highlighter — the
	// sub-lexer handoff half of ZCLH.
	Delegate Delegate

	// Highlighter is the host's external syntax-highlighter hook
	// (spec.md §4.3's "external highlighter" code-rendering path). It
	// receives a fenced code block's body and language tag and returns
	// already-highlighted HTML, or ok=false to fall back to the
	// semantic/plain-escape path. Nil when no highlighter is wired.
	Highlighter func(code, lang string) (html string, ok bool)

	// DirectiveCacheGet/DirectiveCacheSet implement spec.md §4.3's
	// directive-render cache hook, keyed by directive.CacheKey. Both nil
	// disables caching.
	DirectiveCacheGet func(key string) (html string, ok bool)
	DirectiveCacheSet func(key, html string)
}

// DefaultSlugify lowercases, replaces runs of non-alphanumerics with a
// single '-', and trims leading/trailing '-'. It is the fallback used
// when RenderConfig.Slugify is nil.
func DefaultSlugify(s string) string { return defaultSlugify(s) }

// DefaultRenderConfig uses semantic highlighting and the stdlib slugifier.
var DefaultRenderConfig = RenderConfig{
	Highlight: HighlightSemantic,
	Slugify:   DefaultSlugify,
}

var renderConfigSlot = NewSlot(DefaultRenderConfig)

func GetRenderConfig() RenderConfig {
	v, _ := renderConfigSlot.Get()
	return v
}

func SetRenderConfig(cfg RenderConfig) Token[RenderConfig] {
	return renderConfigSlot.Set(cfg)
}

func ResetRenderConfig(tok Token[RenderConfig]) {
	renderConfigSlot.Reset(tok)
}

func WithRenderConfig(cfg RenderConfig, fn func()) {
	renderConfigSlot.With(cfg, fn)
}
