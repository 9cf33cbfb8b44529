package ast

// Visitor is implemented by anything that wants to traverse an AST.
// Embed BaseVisitor and override only the Visit* methods you need, the
// same shape as the teacher's Wikilink/Requirement/Scenario extraction
// visitors in internal/markdown/api.go.
type Visitor interface {
	VisitDocument(n *DocumentNode) WalkAction
	VisitHeading(n *HeadingNode) WalkAction
	VisitParagraph(n *ParagraphNode) WalkAction
	VisitFencedCode(n *FencedCodeNode) WalkAction
	VisitIndentedCode(n *IndentedCodeNode) WalkAction
	VisitBlockQuote(n *BlockQuoteNode) WalkAction
	VisitList(n *ListNode) WalkAction
	VisitListItem(n *ListItemNode) WalkAction
	VisitThematicBreak(n *ThematicBreakNode) WalkAction
	VisitHTMLBlock(n *HTMLBlockNode) WalkAction
	VisitTable(n *TableNode) WalkAction
	VisitTableRow(n *TableRowNode) WalkAction
	VisitTableCell(n *TableCellNode) WalkAction
	VisitMathBlock(n *MathBlockNode) WalkAction
	VisitFootnoteDef(n *FootnoteDefNode) WalkAction
	VisitDirective(n *DirectiveNode) WalkAction
	VisitText(n *TextNode) WalkAction
	VisitEmphasis(n *EmphasisNode) WalkAction
	VisitStrong(n *StrongNode) WalkAction
	VisitLink(n *LinkNode) WalkAction
	VisitImage(n *ImageNode) WalkAction
	VisitCodeSpan(n *CodeSpanNode) WalkAction
	VisitLineBreak(n *LineBreakNode) WalkAction
	VisitSoftBreak(n *SoftBreakNode) WalkAction
	VisitHTMLInline(n *HTMLInlineNode) WalkAction
	VisitStrikethrough(n *StrikethroughNode) WalkAction
	VisitMath(n *MathNode) WalkAction
	VisitFootnoteRef(n *FootnoteRefNode) WalkAction
	VisitRole(n *RoleNode) WalkAction
}

// WalkAction controls traversal after a Visit* call returns.
type WalkAction uint8

const (
	// Continue descends into the visited node's children.
	Continue WalkAction = iota
	// SkipChildren visits the node itself but does not descend.
	SkipChildren
)

// BaseVisitor implements Visitor with every method returning Continue.
// Embed it and override only the methods a concrete visitor cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitDocument(*DocumentNode) WalkAction           { return Continue }
func (BaseVisitor) VisitHeading(*HeadingNode) WalkAction             { return Continue }
func (BaseVisitor) VisitParagraph(*ParagraphNode) WalkAction         { return Continue }
func (BaseVisitor) VisitFencedCode(*FencedCodeNode) WalkAction       { return Continue }
func (BaseVisitor) VisitIndentedCode(*IndentedCodeNode) WalkAction   { return Continue }
func (BaseVisitor) VisitBlockQuote(*BlockQuoteNode) WalkAction       { return Continue }
func (BaseVisitor) VisitList(*ListNode) WalkAction                   { return Continue }
func (BaseVisitor) VisitListItem(*ListItemNode) WalkAction           { return Continue }
func (BaseVisitor) VisitThematicBreak(*ThematicBreakNode) WalkAction { return Continue }
func (BaseVisitor) VisitHTMLBlock(*HTMLBlockNode) WalkAction         { return Continue }
func (BaseVisitor) VisitTable(*TableNode) WalkAction                 { return Continue }
func (BaseVisitor) VisitTableRow(*TableRowNode) WalkAction           { return Continue }
func (BaseVisitor) VisitTableCell(*TableCellNode) WalkAction         { return Continue }
func (BaseVisitor) VisitMathBlock(*MathBlockNode) WalkAction         { return Continue }
func (BaseVisitor) VisitFootnoteDef(*FootnoteDefNode) WalkAction     { return Continue }
func (BaseVisitor) VisitDirective(*DirectiveNode) WalkAction         { return Continue }
func (BaseVisitor) VisitText(*TextNode) WalkAction                   { return Continue }
func (BaseVisitor) VisitEmphasis(*EmphasisNode) WalkAction           { return Continue }
func (BaseVisitor) VisitStrong(*StrongNode) WalkAction                { return Continue }
func (BaseVisitor) VisitLink(*LinkNode) WalkAction                   { return Continue }
func (BaseVisitor) VisitImage(*ImageNode) WalkAction                 { return Continue }
func (BaseVisitor) VisitCodeSpan(*CodeSpanNode) WalkAction           { return Continue }
func (BaseVisitor) VisitLineBreak(*LineBreakNode) WalkAction         { return Continue }
func (BaseVisitor) VisitSoftBreak(*SoftBreakNode) WalkAction         { return Continue }
func (BaseVisitor) VisitHTMLInline(*HTMLInlineNode) WalkAction       { return Continue }
func (BaseVisitor) VisitStrikethrough(*StrikethroughNode) WalkAction { return Continue }
func (BaseVisitor) VisitMath(*MathNode) WalkAction                   { return Continue }
func (BaseVisitor) VisitFootnoteRef(*FootnoteRefNode) WalkAction     { return Continue }
func (BaseVisitor) VisitRole(*RoleNode) WalkAction                   { return Continue }

// Walk traverses root depth-first, dispatching each node to the matching
// Visit* method. A WalkAction of SkipChildren from a Visit* call stops
// the walk from descending into that node's children.
func Walk(root Node, v Visitor) {
	if root == nil {
		return
	}
	action := dispatch(root, v)
	if action == SkipChildren {
		return
	}
	for _, child := range root.Children() {
		Walk(child, v)
	}
}

func dispatch(n Node, v Visitor) WalkAction {
	switch t := n.(type) {
	case *DocumentNode:
		return v.VisitDocument(t)
	case *HeadingNode:
		return v.VisitHeading(t)
	case *ParagraphNode:
		return v.VisitParagraph(t)
	case *FencedCodeNode:
		return v.VisitFencedCode(t)
	case *IndentedCodeNode:
		return v.VisitIndentedCode(t)
	case *BlockQuoteNode:
		return v.VisitBlockQuote(t)
	case *ListNode:
		return v.VisitList(t)
	case *ListItemNode:
		return v.VisitListItem(t)
	case *ThematicBreakNode:
		return v.VisitThematicBreak(t)
	case *HTMLBlockNode:
		return v.VisitHTMLBlock(t)
	case *TableNode:
		return v.VisitTable(t)
	case *TableRowNode:
		return v.VisitTableRow(t)
	case *TableCellNode:
		return v.VisitTableCell(t)
	case *MathBlockNode:
		return v.VisitMathBlock(t)
	case *FootnoteDefNode:
		return v.VisitFootnoteDef(t)
	case *DirectiveNode:
		return v.VisitDirective(t)
	case *TextNode:
		return v.VisitText(t)
	case *EmphasisNode:
		return v.VisitEmphasis(t)
	case *StrongNode:
		return v.VisitStrong(t)
	case *LinkNode:
		return v.VisitLink(t)
	case *ImageNode:
		return v.VisitImage(t)
	case *CodeSpanNode:
		return v.VisitCodeSpan(t)
	case *LineBreakNode:
		return v.VisitLineBreak(t)
	case *SoftBreakNode:
		return v.VisitSoftBreak(t)
	case *HTMLInlineNode:
		return v.VisitHTMLInline(t)
	case *StrikethroughNode:
		return v.VisitStrikethrough(t)
	case *MathNode:
		return v.VisitMath(t)
	case *FootnoteRefNode:
		return v.VisitFootnoteRef(t)
	case *RoleNode:
		return v.VisitRole(t)
	default:
		return Continue
	}
}
