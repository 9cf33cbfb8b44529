// Package resolve implements directive.FileResolver for include and
// literalinclude directives (spec.md §6.2): resolving a target path
// relative to the document requesting it, enforcing containment under a
// configured root, rejecting symlinks, detecting include cycles, and
// bounding per-file size — all against a host-supplied afero.Fs rather
// than the real filesystem directly, grounded on the teacher's own
// afero.Fs-based DirectoryInitializer (internal/initialize/providers/
// directory.go), which this package generalizes from "create this
// directory" to "read and validate this file".
package resolve

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/lbliii/patitas/internal/patitas/directive"
	"github.com/lbliii/patitas/internal/patitas/perr"
)

// Default limits applied when a Config leaves them at zero.
const (
	DefaultMaxIncludes = 64
	DefaultMaxSize     = 10 << 20 // 10 MiB
)

// Config configures a Resolver's containment root and limits.
type Config struct {
	Fs   afero.Fs // filesystem includes are read from
	Root string   // absolute containment root; every resolved path must stay under this

	// MaxIncludes bounds how many distinct files one render may include
	// (directly or transitively), the backstop against include cycles
	// and runaway include chains. Zero means DefaultMaxIncludes.
	MaxIncludes int
	// MaxSize bounds the byte size of any single included file. Zero
	// means DefaultMaxSize.
	MaxSize int64
}

// Resolver holds Config, immutable once built. It performs no I/O or
// resolution itself — ForRender produces the actual
// directive.FileResolver closure, since cycle/count tracking is
// inherently per-render state (spec.md §5 forbids shared mutable state
// across concurrent renders), letting one Resolver be shared safely
// across goroutines each rendering their own document.
type Resolver struct {
	cfg Config
}

// New builds a Resolver from cfg, filling in default limits.
func New(cfg Config) *Resolver {
	if cfg.MaxIncludes <= 0 {
		cfg.MaxIncludes = DefaultMaxIncludes
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	return &Resolver{cfg: cfg}
}

// ForRender returns a directive.FileResolver scoped to one render of one
// document rooted at currentFile (an absolute or root-relative path).
// Every resolved target is checked against the set of files already
// included in this render: including the exact same file twice within
// one render is rejected, which is both the include-cycle guard (a
// direct or indirect self-include necessarily repeats a path) and a
// simple, sound bound on total work — at the cost of also rejecting a
// legitimate "diamond" inclusion of one shared file from two unrelated
// places in the same document, a trade-off made in favor of simplicity
// over precision (see DESIGN.md).
func (r *Resolver) ForRender(currentFile string) directive.FileResolver {
	c := &chain{
		cfg:  r.cfg,
		base: filepath.Dir(normalize(currentFile)),
		seen: make(map[string]struct{}),
	}
	return c.resolve
}

type chain struct {
	cfg  Config
	base string

	mu   sync.Mutex
	seen map[string]struct{}
}

func (c *chain) resolve(target string) (string, error) {
	c.mu.Lock()
	count := len(c.seen)
	c.mu.Unlock()
	if count >= c.cfg.MaxIncludes {
		return "", &perr.IncludeResolutionError{Target: target, Cause: fmt.Errorf("include count exceeds limit of %d", c.cfg.MaxIncludes)}
	}

	abs, err := containedPath(c.cfg.Root, filepath.Join(c.base, target))
	if err != nil {
		return "", &perr.IncludeResolutionError{Target: target, Cause: err}
	}

	c.mu.Lock()
	_, cyclic := c.seen[abs]
	if !cyclic {
		c.seen[abs] = struct{}{}
	}
	c.mu.Unlock()
	if cyclic {
		return "", &perr.IncludeResolutionError{Target: target, Cause: fmt.Errorf("include cycle detected: %s already included in this render", abs)}
	}

	// Lstat where the filesystem supports it: Stat follows links, so a
	// symlink would never show ModeSymlink.
	var info fs.FileInfo
	if ls, ok := c.cfg.Fs.(afero.Lstater); ok {
		info, _, err = ls.LstatIfPossible(abs)
	} else {
		info, err = c.cfg.Fs.Stat(abs)
	}
	if err != nil {
		return "", &perr.IncludeResolutionError{Target: target, Cause: err}
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return "", &perr.IncludeResolutionError{Target: target, Cause: fmt.Errorf("refusing to follow symlink: %s", abs)}
	}
	if info.Size() > c.cfg.MaxSize {
		return "", &perr.IncludeResolutionError{Target: target, Cause: fmt.Errorf("%s (%d bytes) exceeds size limit of %d bytes", abs, info.Size(), c.cfg.MaxSize)}
	}

	content, err := afero.ReadFile(c.cfg.Fs, abs)
	if err != nil {
		return "", &perr.IncludeResolutionError{Target: target, Cause: err}
	}
	return string(content), nil
}

// containedPath joins root and candidate, cleans the result, and
// verifies it still falls under root — rejecting any ../ escape attempt
// regardless of how deeply the target path tries to traverse out.
func containedPath(root, candidate string) (string, error) {
	root = normalize(root)
	clean := filepath.Clean(candidate)
	if !filepath.IsAbs(clean) {
		clean = filepath.Join(root, clean)
	}
	clean = normalize(clean)

	rel, err := filepath.Rel(root, clean)
	if err != nil {
		return "", fmt.Errorf("path %q escapes containment root %q", candidate, root)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes containment root %q", candidate, root)
	}
	return clean, nil
}

func normalize(p string) string {
	return filepath.Clean(p)
}
