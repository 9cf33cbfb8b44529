// Package source holds the immutable byte buffer a parse runs over, plus
// the location and span types every AST node and token is anchored to.
package source

import "fmt"

// Source is an immutable byte sequence with 1-based line/column indexing.
// The caller owns the underlying bytes for the lifetime of any parse or
// render that references them; Source never copies them.
type Source struct {
	bytes    []byte
	file     string
	lineOfs  []int // byte offset of the start of each line, 0-indexed by line number - 1
}

// New wraps content as a Source. file is an optional path used only for
// error messages; pass "" when there is none.
func New(content []byte, file string) *Source {
	s := &Source{bytes: content, file: file}
	s.indexLines()
	return s
}

func (s *Source) indexLines() {
	s.lineOfs = append(s.lineOfs, 0)
	for i, b := range s.bytes {
		if b == '\n' {
			s.lineOfs = append(s.lineOfs, i+1)
		}
	}
}

// Bytes returns the underlying buffer. Callers must not mutate it.
func (s *Source) Bytes() []byte { return s.bytes }

// File returns the optional source file path, or "" if none was given.
func (s *Source) File() string { return s.file }

// Len returns the number of bytes in the source.
func (s *Source) Len() int { return len(s.bytes) }

// Slice returns the zero-copy byte slice for span(start, end).
func (s *Source) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(s.bytes) {
		end = len(s.bytes)
	}
	if start >= end {
		return nil
	}
	return s.bytes[start:end]
}

// Location converts a byte offset into a 1-based (line, column) pair.
func (s *Source) Location(offset int) Location {
	// Binary search would be faster for large files; lines are scanned
	// once at construction, so a linear search here keeps this type small
	// and dependency-free. Callers needing this on a hot path (renderer
	// error messages) do so rarely relative to total bytes parsed.
	line := 0
	for i := len(s.lineOfs) - 1; i >= 0; i-- {
		if s.lineOfs[i] <= offset {
			line = i
			break
		}
	}
	col := offset - s.lineOfs[line] + 1
	return Location{Line: line + 1, Column: col}
}

// Location is a 1-based (line, column) pair.
type Location struct {
	Line   int
	Column int
}

// String renders a Location as "line:column".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Span is a byte-offset range [Start, End) into a Source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (sp Span) Len() int { return sp.End - sp.Start }

// IsEmpty reports whether the span covers zero bytes.
func (sp Span) IsEmpty() bool { return sp.Start >= sp.End }
