package pcontext

// ParseConfig controls which GFM extensions a parse enables and which
// directive registry/text transformer it uses (spec.md §3.4). It is an
// immutable value; "changing" it means building a new ParseConfig and
// installing it in a Slot, never mutating fields in place.
type ParseConfig struct {
	TablesEnabled       bool
	StrikethroughEnabled bool
	TaskListsEnabled    bool
	FootnotesEnabled    bool
	MathEnabled         bool
	AutolinksEnabled    bool

	DirectiveRegistry any // *directive.Registry; any to avoid an import cycle
	RoleRegistry      any // *role.Registry

	// StrictContracts, when true, makes a directive contract violation
	// (wrong parent, forbidden child) part of the error the renderer's
	// Render returns. When false the violation reaches only the
	// RequestContext error handler, if one is installed.
	StrictContracts bool

	// TextTransformer is carried on the config but the parser does not
	// read it: it is not passed to the lexer, so parsing ignores it.
	// (lexer.Lexer has a TextTransformer field of its own.)
	TextTransformer func(string) string
}

// DefaultParseConfig is CommonMark-only: no GFM extensions and no strict
// contracts. Directive and role syntax is parsed under every config.
var DefaultParseConfig = ParseConfig{}

// parseConfigSlot is the package-level ambient ParseConfig slot.
var parseConfigSlot = NewSlot(DefaultParseConfig)

// GetParseConfig returns the currently installed ParseConfig, or
// DefaultParseConfig if none has been Set.
func GetParseConfig() ParseConfig {
	v, _ := parseConfigSlot.Get()
	return v
}

// SetParseConfig installs cfg and returns a Token to restore the prior
// value via ResetParseConfig.
func SetParseConfig(cfg ParseConfig) Token[ParseConfig] {
	return parseConfigSlot.Set(cfg)
}

// ResetParseConfig restores the ParseConfig captured by tok.
func ResetParseConfig(tok Token[ParseConfig]) {
	parseConfigSlot.Reset(tok)
}

// WithParseConfig runs fn with cfg installed, then restores the prior
// value even if fn panics.
func WithParseConfig(cfg ParseConfig, fn func()) {
	parseConfigSlot.With(cfg, fn)
}
