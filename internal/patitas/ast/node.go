// Package ast defines Patitas's closed, immutable AST node set: a
// Document root over Block nodes, which themselves hold Inline nodes.
// The Node interface, its baseNode embedding, and the FNV-1a
// hash-then-deep-compare Equal implementation are carried forward from
// the teacher's internal/markdown/node.go, generalized from Spectr's
// Section/Requirement/Scenario node set to the Block/Inline variants
// spec.md §3.3 defines. Unlike the teacher's single NodeBuilder covering
// every node's type-specific fields through one shared struct, each
// Patitas node variant is its own concrete type: the variant set here is
// roughly double the teacher's, and one builder carrying 30+ optional
// setters would be harder to use correctly than per-type constructors -
// see DESIGN.md.
//
// Nodes never hold a parent pointer (spec.md §3.3's AST invariant);
// anything that needs ancestor context (heading ids, directive
// required_parent checks) receives it as an explicit argument during a
// traversal, never via node state.
package ast

import "hash/fnv"

// NodeType classifies a node as one of the closed Block or Inline kinds.
type NodeType uint8

const (
	// Block kinds
	Document NodeType = iota
	Heading
	Paragraph
	FencedCode
	IndentedCode
	BlockQuote
	List
	ListItem
	ThematicBreak
	HTMLBlock
	Table
	TableRow
	TableCell
	MathBlock
	FootnoteDef
	Directive

	// Inline kinds
	Text
	Emphasis
	Strong
	Link
	Image
	CodeSpan
	LineBreak
	SoftBreak
	HTMLInline
	Strikethrough
	Math
	FootnoteRef
	Role
)

var nodeTypeNames = [...]string{
	"Document", "Heading", "Paragraph", "FencedCode", "IndentedCode",
	"BlockQuote", "List", "ListItem", "ThematicBreak", "HTMLBlock",
	"Table", "TableRow", "TableCell", "MathBlock", "FootnoteDef", "Directive",
	"Text", "Emphasis", "Strong", "Link", "Image", "CodeSpan", "LineBreak",
	"SoftBreak", "HTMLInline", "Strikethrough", "Math", "FootnoteRef", "Role",
}

// String returns a human-readable node type name.
func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "Unknown"
}

// IsBlock reports whether t is one of the block-level kinds.
func (t NodeType) IsBlock() bool { return t <= Directive }

// IsInline reports whether t is one of the inline kinds.
func (t NodeType) IsInline() bool { return t > Directive }

// Node is implemented by every AST node. All nodes are immutable once
// constructed; there is no parent back-reference (spec.md §3.3).
type Node interface {
	NodeType() NodeType
	Span() (start, end int)
	Hash() uint64
	Source() []byte
	Children() []Node
	Equal(other Node) bool
}

// baseNode holds the fields common to every node variant.
type baseNode struct {
	nodeType NodeType
	hash     uint64
	start    int
	end      int
	source   []byte
	children []Node
}

func (n *baseNode) NodeType() NodeType    { return n.nodeType }
func (n *baseNode) Span() (int, int)      { return n.start, n.end }
func (n *baseNode) Hash() uint64          { return n.hash }
func (n *baseNode) Source() []byte        { return n.source }

func (n *baseNode) Children() []Node {
	if n.children == nil {
		return nil
	}
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

// Equal compares n against other using the package-level hash-then-deep
// structural comparison. Every concrete node variant gets this for free
// by embedding baseNode.
func (n *baseNode) Equal(other Node) bool { return Equal(n, other) }

// newBase fills in the shared fields and computes the content hash. extra
// carries any type-specific bytes (e.g. a heading's level, a link's
// destination) that should participate in identity/equality but live
// outside source/children.
func newBase(nodeType NodeType, start, end int, src []byte, children []Node, extra []byte) baseNode {
	return baseNode{
		nodeType: nodeType,
		start:    start,
		end:      end,
		source:   src,
		children: append([]Node(nil), children...),
		hash:     computeHash(nodeType, children, src, extra),
	}
}

func computeHash(nodeType NodeType, children []Node, src []byte, extra []byte) uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(nodeType)})
	var buf [8]byte
	for _, c := range children {
		ch := c.Hash()
		for i := 0; i < 8; i++ {
			buf[i] = byte(ch >> (56 - 8*i))
		}
		h.Write(buf[:])
	}
	h.Write(src)
	h.Write(extra)
	return h.Sum64()
}

// Equal performs a hash-fast-path, deep-compare-fallback structural
// comparison, matching the teacher's equalNodes.
func Equal(a, b Node) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.NodeType() != b.NodeType() || a.Hash() != b.Hash() {
		return false
	}
	as, bs := a.Source(), b.Source()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}
