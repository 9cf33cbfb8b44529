package directive

import (
	"strings"
	"testing"

	"github.com/lbliii/patitas/internal/patitas/ast"
)

func TestNewStandardRegistry_AdmonitionsRegistered(t *testing.T) {
	r := NewStandardRegistry(nil)
	for _, name := range admonitionNames {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("expected admonition %q to be registered", name)
		}
	}
}

func TestNewStandardRegistry_AdmonitionNamesMatchSpec(t *testing.T) {
	r := NewStandardRegistry(nil)
	for _, name := range []string{
		"note", "tip", "warning", "danger", "error",
		"info", "example", "success", "caution", "seealso",
	} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("expected spec-named admonition %q to be registered", name)
		}
	}
	for _, name := range []string{"important", "hint", "attention"} {
		if _, ok := r.Lookup(name); ok {
			t.Errorf("unexpected non-spec admonition %q registered", name)
		}
	}
}

func TestNewStandardRegistry_MediaDirectivesRegistered(t *testing.T) {
	r := NewStandardRegistry(nil)
	for _, name := range []string{"figure", "audio", "gallery"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("expected media directive %q to be registered", name)
		}
	}
}

func TestAudioDirective_Render(t *testing.T) {
	r := NewStandardRegistry(nil)
	h, ok := r.Lookup("audio")
	if !ok {
		t.Fatal("audio not registered")
	}
	node := ast.NewDirective(0, 10, []byte(":::{audio}"), nil, "audio", "", map[string]string{"src": "/clip.mp3"})
	out, err := h.Render(node, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<audio controls src="/clip.mp3">`) {
		t.Fatalf("unexpected render output: %s", out)
	}
}

func TestNewStandardRegistry_VideoEmbedNamesMatchSpec(t *testing.T) {
	r := NewStandardRegistry(nil)
	for _, name := range []string{"youtube", "vimeo", "tiktok", "video"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("expected video embed %q to be registered", name)
		}
	}
	if _, ok := r.Lookup("embed"); ok {
		t.Error("unexpected non-spec directive \"embed\" registered")
	}
}

func TestNewStandardRegistry_VersionBadgeNamesMatchSpec(t *testing.T) {
	r := NewStandardRegistry(nil)
	for _, name := range []string{"since", "deprecated", "changed"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("expected version badge %q to be registered", name)
		}
	}
	if _, ok := r.Lookup("versionadded"); ok {
		t.Error("unexpected non-spec directive \"versionadded\" registered")
	}
}

func TestWrapperDirective_RendersTitleAndBody(t *testing.T) {
	r := NewStandardRegistry(nil)
	h, ok := r.Lookup("note")
	if !ok {
		t.Fatal("note not registered")
	}
	node := ast.NewDirective(0, 10, []byte(":::{note}"), nil, "note", "Careful", nil)
	out, err := h.Render(node, "<p>body</p>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Careful") || !strings.Contains(out, "<p>body</p>") {
		t.Fatalf("unexpected render output: %s", out)
	}
}

func TestContract_RequiredParentViolation(t *testing.T) {
	c := Contract{RequiredParent: "tab-set"}
	if msg := c.Check("tab-set", nil); msg != "" {
		t.Fatalf("expected no violation, got %q", msg)
	}
	if msg := c.Check("", nil); msg == "" {
		t.Fatalf("expected a violation when parent is missing")
	}
}

func TestStepsDirective_InjectsSequentialStepNumbers(t *testing.T) {
	r := NewStandardRegistry(nil)
	stepsHandler, _ := r.Lookup("steps")
	preparer := stepsHandler.(ChildPreparer)

	step1 := ast.NewDirective(0, 5, nil, nil, "step", "First", nil)
	step2 := ast.NewDirective(5, 10, nil, nil, "step", "Second", nil)
	stepsNode := ast.NewDirective(0, 10, nil, []ast.Node{step1, step2}, "steps", "", nil)

	prepared := preparer.PrepareChildren(stepsNode)
	if len(prepared) != 2 {
		t.Fatalf("expected 2 prepared children, got %d", len(prepared))
	}
	first := prepared[0].(*ast.DirectiveNode)
	second := prepared[1].(*ast.DirectiveNode)
	if first.Options["_step_number"] != "1" || second.Options["_step_number"] != "2" {
		t.Fatalf("unexpected step numbers: %v, %v", first.Options, second.Options)
	}
}

func TestCacheKey_IndependentOfOptionOrder(t *testing.T) {
	a := ast.NewDirective(0, 5, []byte("x"), nil, "note", "", map[string]string{"a": "1", "b": "2"})
	b := ast.NewDirective(0, 5, []byte("x"), nil, "note", "", map[string]string{"b": "2", "a": "1"})
	if CacheKey(a) != CacheKey(b) {
		t.Fatalf("cache key should be independent of option map iteration order")
	}
}

func TestBoolOption_Aliases(t *testing.T) {
	opts := map[string]string{"collapsed": "yes"}
	if !BoolOption(opts, false, "collapsed") {
		t.Fatalf("expected 'yes' to parse as true")
	}
	if BoolOption(map[string]string{}, true, "missing") != true {
		t.Fatalf("expected default to be returned when option is absent")
	}
}
