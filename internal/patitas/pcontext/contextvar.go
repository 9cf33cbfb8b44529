// Package pcontext is Patitas's ambient configuration substrate: three
// slots (ParseConfig, RenderConfig, RequestContext) that parsing and
// rendering code reads implicitly instead of threading an options
// parameter through every call (spec.md §3.4/§4.6/§9). It is a generic
// Go rendering of the original Python implementation's
// ContextVarManager[T] (bengal/parsing/backends/patitas/utils/
// contextvar.py), which itself wraps contextvars.ContextVar to give
// async/thread-safe get/set/reset with a Token-based nesting mechanism.
// Go has no contextvars equivalent with that exact nesting semantics, so
// Slot[T] uses a goroutine-local-by-convention *value*, not a goroutine-
// local *store*: callers set a slot once per logical request (one per
// parse, matching spec.md §5's "no shared mutable state" rule) and pass
// the same Slot across the goroutines that cooperate on that request.
package pcontext

import "sync/atomic"

// Slot holds an ambient value of type T, readable and swappable without
// threading it through every function signature. It is safe for
// concurrent Get/Set/Reset from multiple goroutines, matching spec.md
// §5's requirement that context values be safely shared by a request's
// worker goroutines. Token is an opaque handle returned by Set, passed
// to Reset to restore the prior value — the same nesting shape as the
// original's ContextVarManager[T].Token.
type Slot[T any] struct {
	v       atomic.Pointer[T]
	dflt    *T
	hasDflt bool
}

// NewSlot constructs a Slot. If a default is given, Get returns it when
// no value has been Set; otherwise Get returns the zero value and ok=false.
func NewSlot[T any](dflt ...T) *Slot[T] {
	s := &Slot[T]{}
	if len(dflt) > 0 {
		d := dflt[0]
		s.dflt = &d
		s.hasDflt = true
	}
	return s
}

// Token is returned by Set and consumed by Reset to restore the value
// that was active before that Set call.
type Token[T any] struct {
	prior *T
}

// Get returns the current value and true, or the slot's default (if any)
// and true, or the zero value and false.
func (s *Slot[T]) Get() (T, bool) {
	if p := s.v.Load(); p != nil {
		return *p, true
	}
	if s.hasDflt {
		return *s.dflt, true
	}
	var zero T
	return zero, false
}

// GetOrDefault returns the current value, or dflt if none is set.
func (s *Slot[T]) GetOrDefault(dflt T) T {
	if v, ok := s.Get(); ok {
		return v
	}
	return dflt
}

// Set installs value as current and returns a Token that can restore the
// prior value via Reset.
func (s *Slot[T]) Set(value T) Token[T] {
	prior := s.v.Load()
	s.v.Store(&value)
	return Token[T]{prior: prior}
}

// Reset restores the value captured by tok, or clears the slot back to
// its default if tok is the zero Token.
func (s *Slot[T]) Reset(tok Token[T]) {
	s.v.Store(tok.prior)
}

// With runs fn with value installed in the slot, then restores whatever
// was there before, even if fn panics. This is the Go analog of the
// original's parse_config_context(...)/render_config_context(...)
// contextmanagers.
func (s *Slot[T]) With(value T, fn func()) {
	tok := s.Set(value)
	defer s.Reset(tok)
	fn()
}
