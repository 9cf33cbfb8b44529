package ast

import "testing"

func TestEqual_SameContentSameHash(t *testing.T) {
	a := NewHeading(0, 9, []byte("# Title"), []Node{NewText(2, 7, []byte("Title"))}, 1, true)
	b := NewHeading(0, 9, []byte("# Title"), []Node{NewText(2, 7, []byte("Title"))}, 1, true)
	if a.Hash() != b.Hash() {
		t.Fatalf("expected equal hashes for identical content")
	}
	if !Equal(a, b) {
		t.Fatalf("expected Equal(a, b) to be true")
	}
}

func TestEqual_DifferentLevelDifferentHash(t *testing.T) {
	a := NewHeading(0, 9, []byte("# Title"), nil, 1, true)
	b := NewHeading(0, 9, []byte("# Title"), nil, 2, true)
	if a.Hash() == b.Hash() {
		t.Fatalf("expected different hashes for different heading levels")
	}
	if Equal(a, b) {
		t.Fatalf("expected Equal(a, b) to be false")
	}
}

func TestDirectiveNode_OptionOrderDoesNotAffectHash(t *testing.T) {
	a := NewDirective(0, 10, nil, nil, "note", "", map[string]string{"a": "1", "b": "2"})
	b := NewDirective(0, 10, nil, nil, "note", "", map[string]string{"b": "2", "a": "1"})
	if a.Hash() != b.Hash() {
		t.Fatalf("directive hash must be independent of map iteration order")
	}
}

func TestChildren_ReturnsDefensiveCopy(t *testing.T) {
	child := NewText(0, 1, []byte("x"))
	p := NewParagraph(0, 1, []byte("x"), []Node{child})
	got := p.Children()
	got[0] = NewText(0, 1, []byte("y"))
	if p.Children()[0].(*TextNode).Source()[0] != 'x' {
		t.Fatalf("mutating the returned slice must not affect the node")
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	inner := NewText(0, 1, []byte("x"))
	para := NewParagraph(0, 1, []byte("x"), []Node{inner})
	doc := NewDocument(0, 1, []byte("x"), []Node{para})

	visited := 0
	counter := &countingVisitor{BaseVisitor: BaseVisitor{}, onParagraph: func() WalkAction {
		visited++
		return SkipChildren
	}}
	Walk(doc, counter)
	if visited != 1 {
		t.Fatalf("expected paragraph visited once, got %d", visited)
	}
	if counter.textVisits != 0 {
		t.Fatalf("expected SkipChildren to prevent descending into text child, got %d visits", counter.textVisits)
	}
}

type countingVisitor struct {
	BaseVisitor
	onParagraph func() WalkAction
	textVisits  int
}

func (c *countingVisitor) VisitParagraph(*ParagraphNode) WalkAction { return c.onParagraph() }
func (c *countingVisitor) VisitText(*TextNode) WalkAction {
	c.textVisits++
	return Continue
}
