package ast

// TextNode is a run of plain text with no further inline structure.
type TextNode struct {
	baseNode
}

func NewText(start, end int, src []byte) *TextNode {
	return &TextNode{newBase(Text, start, end, src, nil, nil)}
}

// EmphasisNode is *single-delimiter* emphasis. Children are inline nodes.
type EmphasisNode struct {
	baseNode
}

func NewEmphasis(start, end int, src []byte, children []Node) *EmphasisNode {
	return &EmphasisNode{newBase(Emphasis, start, end, src, children, nil)}
}

// StrongNode is **double-delimiter** strong emphasis.
type StrongNode struct {
	baseNode
}

func NewStrong(start, end int, src []byte, children []Node) *StrongNode {
	return &StrongNode{newBase(Strong, start, end, src, children, nil)}
}

// LinkNode is [text](dest "title") or a reference-style link resolved to
// its destination during parsing.
type LinkNode struct {
	baseNode
	Dest  string
	Title string
}

func NewLink(start, end int, src []byte, children []Node, dest, title string) *LinkNode {
	extra := []byte(dest + "\x00" + title)
	return &LinkNode{newBase(Link, start, end, src, children, extra), dest, title}
}

// ImageNode is ![alt](dest "title"). Children carry the alt-text inline
// content (rendered to a plain-text alt attribute, per CommonMark).
type ImageNode struct {
	baseNode
	Dest  string
	Title string
}

func NewImage(start, end int, src []byte, children []Node, dest, title string) *ImageNode {
	extra := []byte(dest + "\x00" + title)
	return &ImageNode{newBase(Image, start, end, src, children, extra), dest, title}
}

// CodeSpanNode is `inline code`. Code is the span's literal content with
// CommonMark's backtick-escaping already resolved.
type CodeSpanNode struct {
	baseNode
	Code string
}

func NewCodeSpan(start, end int, src []byte, code string) *CodeSpanNode {
	return &CodeSpanNode{newBase(CodeSpan, start, end, src, nil, []byte(code)), code}
}

// LineBreakNode is a hard line break (two-or-more trailing spaces, or a
// trailing backslash, followed by a newline).
type LineBreakNode struct {
	baseNode
}

func NewLineBreak(start, end int, src []byte) *LineBreakNode {
	return &LineBreakNode{newBase(LineBreak, start, end, src, nil, nil)}
}

// SoftBreakNode is a plain newline inside a paragraph.
type SoftBreakNode struct {
	baseNode
}

func NewSoftBreak(start, end int, src []byte) *SoftBreakNode {
	return &SoftBreakNode{newBase(SoftBreak, start, end, src, nil, nil)}
}

// HTMLInlineNode is a raw inline HTML tag passed through verbatim.
type HTMLInlineNode struct {
	baseNode
}

func NewHTMLInline(start, end int, src []byte) *HTMLInlineNode {
	return &HTMLInlineNode{newBase(HTMLInline, start, end, src, nil, nil)}
}

// StrikethroughNode is ~~struck~~ text (GFM extension).
type StrikethroughNode struct {
	baseNode
}

func NewStrikethrough(start, end int, src []byte, children []Node) *StrikethroughNode {
	return &StrikethroughNode{newBase(Strikethrough, start, end, src, children, nil)}
}

// MathNode is inline math ($...$).
type MathNode struct {
	baseNode
	Body string
}

func NewMath(start, end int, src []byte, body string) *MathNode {
	return &MathNode{newBase(Math, start, end, src, nil, []byte(body)), body}
}

// FootnoteRefNode is a [^label] reference to a FootnoteDefNode. Index is
// assigned during parsing in order of first appearance.
type FootnoteRefNode struct {
	baseNode
	Label string
	Index int
}

func NewFootnoteRef(start, end int, src []byte, label string, index int) *FootnoteRefNode {
	extra := append([]byte(label+"\x00"), byte(index>>8), byte(index))
	return &FootnoteRefNode{newBase(FootnoteRef, start, end, src, nil, extra), label, index}
}

// RoleNode is an inline role extension, {name}`content` (spec.md §4.4).
type RoleNode struct {
	baseNode
	Name    string
	Content string
}

func NewRole(start, end int, src []byte, name, content string) *RoleNode {
	extra := []byte(name + "\x00" + content)
	return &RoleNode{newBase(Role, start, end, src, nil, extra), name, content}
}
