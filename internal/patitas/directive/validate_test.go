package directive

import (
	"testing"

	"github.com/lbliii/patitas/internal/patitas/ast"
)

func TestValidateTree_NoViolationsOnWellFormedTree(t *testing.T) {
	r := NewStandardRegistry(nil)
	tabSet := ast.NewDirective(0, 10, []byte(""), []ast.Node{
		ast.NewDirective(0, 5, []byte(""), nil, "tab-item", "One", nil),
	}, "tab-set", "", nil)
	doc := ast.NewDocument(0, 10, []byte(""), []ast.Node{tabSet})

	violations := ValidateTree(doc, r)
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %+v", violations)
	}
}

func TestValidateTree_ReportsRequiredParentViolation(t *testing.T) {
	r := NewStandardRegistry(nil)
	// tab-item outside of any tab-set violates its RequiredParent contract.
	orphan := ast.NewDirective(3, 8, []byte(""), nil, "tab-item", "Orphan", nil)
	doc := ast.NewDocument(0, 8, []byte(""), []ast.Node{orphan})

	violations := ValidateTree(doc, r)
	if len(violations) != 1 {
		t.Fatalf("expected exactly one violation, got %+v", violations)
	}
	v := violations[0]
	if v.Directive != "tab-item" {
		t.Fatalf("expected violation on tab-item, got %q", v.Directive)
	}
	if v.Start != 3 || v.End != 8 {
		t.Fatalf("expected span (3,8), got (%d,%d)", v.Start, v.End)
	}
}

func TestValidateTree_DescendsIntoNonDirectiveContainers(t *testing.T) {
	r := NewStandardRegistry(nil)
	orphan := ast.NewDirective(0, 5, []byte(""), nil, "card", "Inner", nil)
	list := ast.NewListItem(0, 5, []byte(""), []ast.Node{orphan}, nil)
	doc := ast.NewDocument(0, 5, []byte(""), []ast.Node{list})

	violations := ValidateTree(doc, r)
	if len(violations) != 1 || violations[0].Directive != "card" {
		t.Fatalf("expected the card violation to surface through the list item, got %+v", violations)
	}
}

func TestValidateTree_NilRegistryReturnsNil(t *testing.T) {
	doc := ast.NewDocument(0, 0, nil, nil)
	if got := ValidateTree(doc, nil); got != nil {
		t.Fatalf("expected nil for a nil registry, got %v", got)
	}
}

func TestValidateTree_UnregisteredDirectiveIsNotAViolation(t *testing.T) {
	r := NewStandardRegistry(nil)
	unknown := ast.NewDirective(0, 5, []byte(""), nil, "not-a-real-directive", "", nil)
	doc := ast.NewDocument(0, 5, []byte(""), []ast.Node{unknown})

	if got := ValidateTree(doc, r); len(got) != 0 {
		t.Fatalf("expected no violations for an unregistered directive name, got %+v", got)
	}
}
