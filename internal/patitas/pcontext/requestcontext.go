package pcontext

// FileRef names the document a parse/render is currently processing: an
// absolute path for file-system operations (the include resolver's
// containment root check) and a root-relative path for anything the host
// wants to display or key a cache on. It replaces the original
// implementation's convention of deriving a "current directory" by
// slicing a page object's path string (spec.md §9's resolved Open
// Question): every caller that needs this now takes a FileRef value
// instead of re-deriving it from a host page object.
type FileRef struct {
	Absolute     string
	RootRelative string
}

// RequestContext carries per-request, host-supplied capabilities a parse
// or render may need: the source file being processed, a page/site
// handle opaque to Patitas (the host's own types), an error-reporting
// callback, strict-mode toggling, and a link resolver for directive/role
// handlers that need to turn a relative target into a final URL. Unlike
// ParseConfig/RenderConfig there is no library-wide default: a missing
// RequestContext is a programming error in the host, not a situation to
// silently degrade from, so GetRequestContext fails fast.
type RequestContext struct {
	CurrentFile *FileRef // the document being parsed, if any
	Page        any      // host's page handle, opaque to Patitas
	Site        any      // host's site handle, opaque to Patitas

	ErrorHandler func(err error, context string)
	StrictMode   bool
	LinkResolver func(target string) (string, bool)
	TraceEnabled bool
}

// ResolveLink asks LinkResolver (if set) to resolve target, returning
// ("", false) if there is no resolver or it declines.
func (rc RequestContext) ResolveLink(target string) (string, bool) {
	if rc.LinkResolver == nil {
		return "", false
	}
	return rc.LinkResolver(target)
}

// ReportError routes err through ErrorHandler if one is set; otherwise,
// in StrictMode it returns err for the caller to propagate, and
// otherwise it is swallowed (spec.md §7's best-effort propagation mode).
func (rc RequestContext) ReportError(err error, context string) error {
	if rc.ErrorHandler != nil {
		rc.ErrorHandler(err, context)
		return nil
	}
	if rc.StrictMode {
		return err
	}
	return nil
}

// RequestContextError is returned by GetRequestContext when no
// RequestContext has been installed for the current parse/render.
type RequestContextError struct {
	Message string
}

func (e *RequestContextError) Error() string { return e.Message }

var requestContextSlot = NewSlot[RequestContext]()

// GetRequestContext returns the installed RequestContext, or a
// RequestContextError if none has been Set for this parse/render.
func GetRequestContext() (RequestContext, error) {
	v, ok := requestContextSlot.Get()
	if !ok {
		return RequestContext{}, &RequestContextError{Message: "no RequestContext installed for this parse/render"}
	}
	return v, nil
}

// TryGetRequestContext returns the installed RequestContext and true, or
// the zero value and false if none has been Set.
func TryGetRequestContext() (RequestContext, bool) {
	return requestContextSlot.Get()
}

func SetRequestContext(rc RequestContext) Token[RequestContext] {
	return requestContextSlot.Set(rc)
}

func ResetRequestContext(tok Token[RequestContext]) {
	requestContextSlot.Reset(tok)
}

func WithRequestContext(rc RequestContext, fn func()) {
	requestContextSlot.With(rc, fn)
}
