// Package perr defines Patitas's typed error taxonomy (spec.md §7): the
// handful of conditions a parse or render can encounter, each as its own
// struct implementing error's Error()/Unwrap() pair. This follows the
// shape of the teacher's now-deleted internal/specterrs package
// (MarkdownParseError/EmptyContentError/BinaryContentError: a struct per
// condition, each wrapping an optional underlying cause), generalized
// from Spectr's accept/archive/git-workflow error set to spec.md §7's
// six error classes.
package perr

import "fmt"

// DirectiveContractError reports a directive used somewhere its
// DirectiveContract forbids (wrong parent, forbidden/missing required
// child).
type DirectiveContractError struct {
	Directive string
	Reason    string
}

func (e *DirectiveContractError) Error() string {
	return fmt.Sprintf("directive %q violates its contract: %s", e.Directive, e.Reason)
}

// UnknownDirectiveError reports a colon-fence naming a directive with no
// registered handler.
type UnknownDirectiveError struct {
	Name string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown directive %q", e.Name)
}

// UnknownRoleError reports an inline role with no registered handler.
type UnknownRoleError struct {
	Name string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Name)
}

// HandlerPanicError wraps a recovered panic from a directive/role
// handler's Render call, so a single bad handler cannot take down a
// whole render (spec.md §4.3's cache+fallback rendering rule).
type HandlerPanicError struct {
	Directive string
	Cause     error
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("directive %q handler panicked: %v", e.Directive, e.Cause)
}

func (e *HandlerPanicError) Unwrap() error { return e.Cause }

// IncludeResolutionError reports an include/literalinclude directive
// whose target file could not be resolved or read (spec.md §6.2's file
// resolver capability).
type IncludeResolutionError struct {
	Target string
	Cause  error
}

func (e *IncludeResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve include target %q: %v", e.Target, e.Cause)
}

func (e *IncludeResolutionError) Unwrap() error { return e.Cause }

// MissingRequestContextError reports code that required a RequestContext
// (e.g. an include directive's file resolver) when none was installed.
type MissingRequestContextError struct {
	Operation string
	Cause     error
}

func (e *MissingRequestContextError) Error() string {
	return fmt.Sprintf("%s requires a RequestContext: %v", e.Operation, e.Cause)
}

func (e *MissingRequestContextError) Unwrap() error { return e.Cause }

// ExternalReferenceError reports a cross-reference or external-reference
// lookup that failed to resolve (spec.md §6.2's xref index /
// external-reference-resolver capabilities).
type ExternalReferenceError struct {
	Target string
	Reason string
}

func (e *ExternalReferenceError) Error() string {
	return fmt.Sprintf("cannot resolve reference %q: %s", e.Target, e.Reason)
}
