package ast

import "sort"

// DocumentNode is the AST root. Children are the top-level block nodes.
type DocumentNode struct {
	baseNode
}

// NewDocument builds a Document node over children spanning [start,end).
func NewDocument(start, end int, src []byte, children []Node) *DocumentNode {
	return &DocumentNode{newBase(Document, start, end, src, children, nil)}
}

// HeadingNode is an ATX or setext heading. Level is 1-6. Children are the
// heading's inline content; its slug/anchor id is computed at render
// time, never stored on the node (spec.md §3.3).
type HeadingNode struct {
	baseNode
	Level int
	ATX   bool // true for "#"-style, false for setext ("===="/"----")
}

func NewHeading(start, end int, src []byte, children []Node, level int, atx bool) *HeadingNode {
	extra := []byte{byte(level), boolByte(atx)}
	return &HeadingNode{newBase(Heading, start, end, src, children, extra), level, atx}
}

// ParagraphNode holds a paragraph's inline content.
type ParagraphNode struct {
	baseNode
}

func NewParagraph(start, end int, src []byte, children []Node) *ParagraphNode {
	return &ParagraphNode{newBase(Paragraph, start, end, src, children, nil)}
}

// FencedCodeNode is a fenced code block. Body is the ZCLH span: the raw
// code bytes referenced directly from the source buffer rather than
// copied, per spec.md §4.1. Info is the fence's raw info string; Lang is
// the first whitespace-delimited word of Info, typically a language tag.
// HighlightLines is the sorted, deduplicated set of 1-based line numbers
// named by a `{1,3-5,7}` suffix in Info (spec.md §4.4), or nil if Info
// carries no such suffix.
type FencedCodeNode struct {
	baseNode
	Info           string
	Lang           string
	Body           []byte // zero-copy slice into source, from the ZCLH span
	HighlightLines []int
}

func NewFencedCode(start, end int, src []byte, info, lang string, body []byte, highlightLines []int) *FencedCodeNode {
	extra := append([]byte(info+"\x00"+lang), body...)
	for _, n := range highlightLines {
		extra = append(extra, byte(n), byte(n>>8))
	}
	return &FencedCodeNode{newBase(FencedCode, start, end, src, nil, extra), info, lang, body, highlightLines}
}

// IndentedCodeNode is a 4-space-indented code block.
type IndentedCodeNode struct {
	baseNode
	Body []byte
}

func NewIndentedCode(start, end int, src []byte, body []byte) *IndentedCodeNode {
	return &IndentedCodeNode{newBase(IndentedCode, start, end, src, nil, body), body}
}

// BlockQuoteNode holds nested block children.
type BlockQuoteNode struct {
	baseNode
}

func NewBlockQuote(start, end int, src []byte, children []Node) *BlockQuoteNode {
	return &BlockQuoteNode{newBase(BlockQuote, start, end, src, children, nil)}
}

// ListNode is an ordered or unordered list. Tight is immutable once the
// list is built (spec.md §3.3): it is decided once, during parsing, by
// whether any item is separated from its neighbor by a blank line.
type ListNode struct {
	baseNode
	Ordered bool
	Start   int // starting number for ordered lists
	Tight   bool
}

func NewList(start, end int, src []byte, children []Node, ordered bool, startNum int, tight bool) *ListNode {
	extra := []byte{boolByte(ordered), byte(startNum), boolByte(tight)}
	return &ListNode{newBase(List, start, end, src, children, extra), ordered, startNum, tight}
}

// ListItemNode is a single item of a List. Children are block nodes
// (typically one Paragraph, or more for a loose item).
type ListItemNode struct {
	baseNode
	Checked *bool // non-nil for GFM task-list items
}

func NewListItem(start, end int, src []byte, children []Node, checked *bool) *ListItemNode {
	extra := []byte{0}
	if checked != nil {
		extra[0] = 1
		if *checked {
			extra = append(extra, 1)
		} else {
			extra = append(extra, 0)
		}
	}
	return &ListItemNode{newBase(ListItem, start, end, src, children, extra), checked}
}

// ThematicBreakNode is a horizontal rule.
type ThematicBreakNode struct {
	baseNode
}

func NewThematicBreak(start, end int, src []byte) *ThematicBreakNode {
	return &ThematicBreakNode{newBase(ThematicBreak, start, end, src, nil, nil)}
}

// HTMLBlockNode is a raw passthrough HTML block.
type HTMLBlockNode struct {
	baseNode
}

func NewHTMLBlock(start, end int, src []byte) *HTMLBlockNode {
	return &HTMLBlockNode{newBase(HTMLBlock, start, end, src, nil, nil)}
}

// TableNode is a GFM table. Children are TableRow nodes; the first is
// the header row. Align holds one alignment per column.
type TableNode struct {
	baseNode
	Align []ColumnAlign
}

// ColumnAlign is a table column's alignment, parsed from its delimiter row.
type ColumnAlign uint8

const (
	AlignNone ColumnAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func NewTable(start, end int, src []byte, children []Node, align []ColumnAlign) *TableNode {
	extra := make([]byte, len(align))
	for i, a := range align {
		extra[i] = byte(a)
	}
	return &TableNode{newBase(Table, start, end, src, children, extra), align}
}

// TableRowNode holds TableCell children. Header is true for the table's
// first row.
type TableRowNode struct {
	baseNode
	Header bool
}

func NewTableRow(start, end int, src []byte, children []Node, header bool) *TableRowNode {
	return &TableRowNode{newBase(TableRow, start, end, src, children, []byte{boolByte(header)}), header}
}

// TableCellNode holds a cell's inline content.
type TableCellNode struct {
	baseNode
}

func NewTableCell(start, end int, src []byte, children []Node) *TableCellNode {
	return &TableCellNode{newBase(TableCell, start, end, src, children, nil)}
}

// MathBlockNode is a display-math block ($$...$$).
type MathBlockNode struct {
	baseNode
	Body []byte
}

func NewMathBlock(start, end int, src []byte, body []byte) *MathBlockNode {
	return &MathBlockNode{newBase(MathBlock, start, end, src, nil, body), body}
}

// FootnoteDefNode is a footnote definition ([^label]: ...). Children are
// its block content.
type FootnoteDefNode struct {
	baseNode
	Label string
}

func NewFootnoteDef(start, end int, src []byte, children []Node, label string) *FootnoteDefNode {
	return &FootnoteDefNode{newBase(FootnoteDef, start, end, src, children, []byte(label)), label}
}

// DirectiveNode is a colon-fence block extension (spec.md §4.3). Options
// holds the directive's parsed option values; the parser populates it
// from the block's ":key: value" lines without consulting any registry
// or contract, and render-time parent-context injection (e.g. a steps
// directive giving each child step a "_step_number" option) happens by
// the parent handler rebuilding a child's
// Options before rendering it, never by mutating the node in place.
type DirectiveNode struct {
	baseNode
	Name    string
	Title   string
	Options map[string]string
}

func NewDirective(start, end int, src []byte, children []Node, name, title string, options map[string]string) *DirectiveNode {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	extra := []byte(name + "\x00" + title)
	for _, k := range keys {
		extra = append(extra, []byte(k+"="+options[k]+";")...)
	}
	return &DirectiveNode{newBase(Directive, start, end, src, children, extra), name, title, options}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
