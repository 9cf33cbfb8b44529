// Package patitas is the library API a host site generator imports
// (spec.md §6.1): one-shot and batch parse+render entry points, AST-only
// parsing, render-only rendering, and the TOC/excerpt/context variants a
// typical static-site build needs. It is the first consumer wiring
// together internal/patitas/{lexer,parser,ast,render,pcontext,pool}:
// every lower package is usable standalone (as their own tests show),
// but a host program reaches for this package, not internal/patitas/*
// directly.
//
// Every entry point here is thread-safe: each call acquires its own
// pooled Parser/Renderer and touches no state shared across concurrent
// calls beyond the pools themselves, which are internally synchronized
// (spec.md §6.1's "every entry point materialises its own per-thread
// configuration and pooled instances").
package patitas

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/parser"
	"github.com/lbliii/patitas/internal/patitas/pcontext"
	"github.com/lbliii/patitas/internal/patitas/pool"
	"github.com/lbliii/patitas/internal/patitas/render"
	"github.com/lbliii/patitas/internal/patitas/source"
)

// FileRef re-exports pcontext.FileRef, the document a RequestContext is
// currently processing.
type FileRef = pcontext.FileRef

// TOCEntry re-exports render.TOCEntry, one heading collected into a
// document's table of contents.
type TOCEntry = render.TOCEntry

// RenderMetadata re-exports pcontext.RenderMetadata.
type RenderMetadata = pcontext.RenderMetadata

// Options bundles the ParseConfig/RenderConfig pair every entry point in
// this package takes, plus the source file path used for error messages
// and carried onto RequestContext.CurrentFile by ParseWithContext.
type Options struct {
	Parse      pcontext.ParseConfig
	Render     pcontext.RenderConfig
	SourceFile string
}

// poolCapacity reads PATITAS_POOL_SIZE, falling back to
// pool.DefaultCapacity — spec.md §4.7's "configurable via environment
// variable" pool-sizing knob.
func poolCapacity() int {
	if v := os.Getenv("PATITAS_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return pool.DefaultCapacity
}

var parserPool = pool.New(poolCapacity(),
	func() *parser.Parser { return parser.New(pcontext.ParseConfig{}) },
	func(p *parser.Parser) { p.Reinit(pcontext.ParseConfig{}) },
)

var rendererPool = pool.New(poolCapacity(),
	func() *render.Renderer { return render.New(pcontext.RenderConfig{}, pcontext.ParseConfig{}) },
	func(r *render.Renderer) { r.Reinit(pcontext.RenderConfig{}, pcontext.ParseConfig{}) },
)

func parseToAST(src []byte, sourceFile string, cfg pcontext.ParseConfig) (*ast.DocumentNode, *source.Source, error) {
	s := source.New(src, sourceFile)
	var doc *ast.DocumentNode
	var err error
	parserPool.Use(func(p *parser.Parser) {
		p.Reinit(cfg)
		doc, err = p.Parse(s)
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, s, nil
}

func renderDoc(doc *ast.DocumentNode, cfg pcontext.RenderConfig, parseCfg pcontext.ParseConfig) (string, *RenderMetadata, []TOCEntry, error) {
	var html string
	var meta *RenderMetadata
	var toc []TOCEntry
	var err error
	rendererPool.Use(func(r *render.Renderer) {
		r.Reinit(cfg, parseCfg)
		html, meta, toc, err = r.Render(doc)
	})
	return html, meta, toc, err
}

// Parse is a one-shot parse + render: spec.md §6.1's `parse`. The
// returned error is non-nil only when a directive/role handler failed or
// panicked (render-time, best-effort mode); src itself is never rejected
// for being malformed Markdown.
func Parse(src []byte, opts Options) (string, error) {
	doc, _, err := parseToAST(src, opts.SourceFile, opts.Parse)
	if err != nil {
		return "", err
	}
	html, _, _, err := renderDoc(doc, opts.Render, opts.Parse)
	return html, err
}

// parallelThresholdBytes is the total input size below which ParseMany
// parses sequentially rather than paying worker-pool setup cost (spec.md
// §5's "below a small input threshold it falls back to sequential to
// amortise overhead").
const parallelThresholdBytes = 64 << 10

// ParseMany parses and renders sources in parallel, sizing its worker
// pool from the CPU count and falling back to sequential execution for
// small batches — spec.md §6.1/§5's `parse_many`. The pooled
// Parser/Renderer instances are shared, bounded pools (internal/patitas/
// pool's doc comment) rather than one pool per worker goroutine, since
// Go has no per-goroutine-local storage to key a true per-thread pool on;
// this preserves the two properties spec.md §4.7 requires — bounded
// capacity and reuse — without the exact per-OS-thread pool shape.
func ParseMany(sources [][]byte, opts Options) ([]string, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	total := 0
	for _, s := range sources {
		total += len(s)
	}
	workers := runtime.NumCPU()
	if workers > len(sources) {
		workers = len(sources)
	}

	if workers <= 1 || total < parallelThresholdBytes {
		out := make([]string, len(sources))
		for i, s := range sources {
			html, err := Parse(s, opts)
			if err != nil {
				return nil, err
			}
			out[i] = html
		}
		return out, nil
	}

	out := make([]string, len(sources))
	errs := make([]error, len(sources))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i], errs[i] = Parse(sources[i], opts)
			}
		}()
	}
	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseToAST parses src into an immutable Document without rendering it —
// spec.md §6.1's `parse_to_ast`.
func ParseToAST(src []byte, sourceFile string, cfg pcontext.ParseConfig) (*ast.DocumentNode, error) {
	doc, _, err := parseToAST(src, sourceFile, cfg)
	return doc, err
}

// RenderAST renders doc into HTML, accumulated RenderMetadata, and a
// heading TOC — spec.md §6.1's `render_ast`. src must be the Source doc
// was parsed from: every FencedCodeNode.Body and every node's raw-text
// Source() slice aliases src's underlying buffer (the ZCLH zero-copy
// handoff, spec.md §2), so the caller must keep src reachable for the
// duration of this call even though RenderAST never reads from it
// directly — doc's nodes already hold their own slices of it.
func RenderAST(doc *ast.DocumentNode, src *source.Source, cfg pcontext.RenderConfig, parseCfg pcontext.ParseConfig) (string, *RenderMetadata, []TOCEntry, error) {
	return renderDoc(doc, cfg, parseCfg)
}

// ParseWithTOC parses and renders src, additionally returning a nested
// TOC `<ul>`, a plain-text excerpt, and a meta-description string
// extracted from the document's first paragraph — spec.md §6.1's
// `parse_with_toc`, the common SSG page-build path.
func ParseWithTOC(src []byte, opts Options) (html, tocHTML, excerpt, metaDescription string, err error) {
	doc, _, err := parseToAST(src, opts.SourceFile, opts.Parse)
	if err != nil {
		return "", "", "", "", err
	}
	html, _, toc, err := renderDoc(doc, opts.Render, opts.Parse)
	if err != nil {
		return "", "", "", "", err
	}
	tocHTML = RenderTOC(toc)
	excerpt = ExtractExcerpt(doc, DefaultExcerptLength)
	metaDescription = ExtractMetaDescription(doc, DefaultMetaDescriptionLength)
	return html, tocHTML, excerpt, metaDescription, nil
}

// ParseWithContext parses and renders src with rc installed as the
// ambient RequestContext for the duration of the call, enabling
// directive/role handlers that need RequestContext.ResolveLink or
// RequestContext.ReportError — spec.md §6.1's `parse_with_context`. If
// opts.SourceFile is set and rc.CurrentFile is nil, CurrentFile is filled
// in from it.
func ParseWithContext(src []byte, opts Options, rc pcontext.RequestContext) (string, error) {
	if rc.CurrentFile == nil && opts.SourceFile != "" {
		rc.CurrentFile = &FileRef{Absolute: opts.SourceFile}
	}
	tok := pcontext.SetRequestContext(rc)
	defer pcontext.ResetRequestContext(tok)
	return Parse(src, opts)
}

// ParseWithTOCAndContext combines ParseWithTOC and ParseWithContext —
// spec.md §6.1's `parse_with_toc_and_context`.
func ParseWithTOCAndContext(src []byte, opts Options, rc pcontext.RequestContext) (html, tocHTML, excerpt, metaDescription string, err error) {
	if rc.CurrentFile == nil && opts.SourceFile != "" {
		rc.CurrentFile = &FileRef{Absolute: opts.SourceFile}
	}
	tok := pcontext.SetRequestContext(rc)
	defer pcontext.ResetRequestContext(tok)
	return ParseWithTOC(src, opts)
}
