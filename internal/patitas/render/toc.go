package render

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/lbliii/patitas/internal/patitas/pcontext"
)

// maxSlugGraphemes bounds a generated heading slug's length in grapheme
// clusters (not bytes or runes), so multi-byte scripts and emoji don't
// get split mid-cluster the way a naive byte truncation would.
const maxSlugGraphemes = 100

// slugFor computes heading h's id: cfg.Slugify (or the package default)
// over its plain text, truncated to maxSlugGraphemes grapheme clusters,
// then disambiguated against every slug already produced by this render
// with a "-1", "-2", ... suffix (spec.md §3.4's TOC/anchor rules).
func (r *Renderer) slugFor(text string) string {
	slugify := r.cfg.Slugify
	if slugify == nil {
		slugify = pcontext.DefaultSlugify
	}
	base := truncateGraphemes(slugify(text), maxSlugGraphemes)
	if base == "" {
		base = "section"
	}
	n := r.slugCounts[base]
	r.slugCounts[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// TruncateGraphemes truncates s to at most limit grapheme clusters,
// exported for callers outside this package (excerpt extraction) that
// need the same multi-byte-safe truncation headings use for slugs.
func TruncateGraphemes(s string, limit int) string {
	return truncateGraphemes(s, limit)
}

func truncateGraphemes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(s)
	var b strings.Builder
	count := 0
	for g.Next() {
		count++
		if count > limit {
			break
		}
		b.WriteString(g.Str())
	}
	return b.String()
}
