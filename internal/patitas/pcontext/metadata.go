package pcontext

import "sync"

// RenderMetadata accumulates facts discovered during a single render
// pass: word count, which optional features the document actually used
// (math/code/mermaid/tables), code languages seen, and the link/image
// references collected for a host's site-wide link graph to consume
// (spec.md §3.4, §6.1). It is built fresh per render and handed back to
// the caller; it is not an ambient Slot value because its mutation
// happens incrementally during the walk rather than being swapped
// wholesale like ParseConfig/RenderConfig.
type RenderMetadata struct {
	mu sync.Mutex

	WordCount      int
	CodeLanguages  map[string]struct{}
	HasMath        bool
	HasCode        bool
	HasMermaid     bool
	HasTable       bool
	InternalLinks  []string
	ExternalLinks  []string
	ImageRefs      []string
	HeadingCount   int
}

// NewRenderMetadata returns a zeroed, ready-to-use RenderMetadata.
func NewRenderMetadata() *RenderMetadata {
	return &RenderMetadata{CodeLanguages: make(map[string]struct{})}
}

func (m *RenderMetadata) AddWords(n int) {
	m.mu.Lock()
	m.WordCount += n
	m.mu.Unlock()
}

func (m *RenderMetadata) AddCodeLanguage(lang string) {
	if lang == "" {
		return
	}
	m.mu.Lock()
	m.HasCode = true
	if lang == "mermaid" {
		m.HasMermaid = true
	}
	m.CodeLanguages[lang] = struct{}{}
	m.mu.Unlock()
}

func (m *RenderMetadata) MarkMath() {
	m.mu.Lock()
	m.HasMath = true
	m.mu.Unlock()
}

func (m *RenderMetadata) MarkTable() {
	m.mu.Lock()
	m.HasTable = true
	m.mu.Unlock()
}

func (m *RenderMetadata) AddHeading() {
	m.mu.Lock()
	m.HeadingCount++
	m.mu.Unlock()
}

// AddLink records dest as internal (no scheme, doesn't start with "//")
// or external.
func (m *RenderMetadata) AddLink(dest string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if isExternalDest(dest) {
		m.ExternalLinks = append(m.ExternalLinks, dest)
	} else {
		m.InternalLinks = append(m.InternalLinks, dest)
	}
}

func (m *RenderMetadata) AddImageRef(dest string) {
	m.mu.Lock()
	m.ImageRefs = append(m.ImageRefs, dest)
	m.mu.Unlock()
}

func isExternalDest(dest string) bool {
	for i := 0; i < len(dest); i++ {
		switch dest[i] {
		case ':':
			return true
		case '/':
			return i+1 < len(dest) && dest[i+1] == '/'
		case '.', '-', '_', '~':
			continue
		default:
			if (dest[i] >= 'a' && dest[i] <= 'z') || (dest[i] >= 'A' && dest[i] <= 'Z') || (dest[i] >= '0' && dest[i] <= '9') {
				continue
			}
			return false
		}
	}
	return false
}
