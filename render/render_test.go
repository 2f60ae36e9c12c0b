package render_test

import (
	"testing"

	"github.com/minusone-go/minusone/cst"
	"github.com/minusone-go/minusone/engine"
	"github.com/minusone-go/minusone/psrules"
	"github.com/minusone-go/minusone/render"
	"github.com/minusone-go/minusone/tree"
)

func fold(t *testing.T, src string) (*tree.Node, *tree.View) {
	t.Helper()
	p, err := cst.New()
	if err != nil {
		t.Fatalf("cst.New: %v", err)
	}
	root, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	v := tree.NewView(root)
	if _, engErr := engine.Run(root, v, psrules.PowershellStrategy{}, psrules.NewRuleSet(), engine.Options{}); engErr != nil {
		t.Fatalf("engine.Run: %v", engErr)
	}
	return root, v
}

func TestRenderFoldedArithmetic(t *testing.T) {
	root, v := fold(t, "1+2*3")
	got := render.Render(root, v, render.Options{})
	if got != "7" {
		t.Fatalf("expected %q, got %q", "7", got)
	}
}

func TestRenderAssignmentAndVariableSubstitution(t *testing.T) {
	root, v := fold(t, "$x = 1+1\n$x")
	got := render.Render(root, v, render.Options{})
	want := "$x = 2\n2"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderRemovesDeadAssignment(t *testing.T) {
	root, v := fold(t, "$y = 1\n$z = 2\n$z")
	got := render.Render(root, v, render.Options{RemoveDeadAssignments: true})
	want := "$z = 2\n2"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderKeepsReadAssignmentWithoutOption(t *testing.T) {
	root, v := fold(t, "$y = 1\n$z = 2\n$z")
	got := render.Render(root, v, render.Options{})
	want := "$y = 1\n$z = 2\n2"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderTaggedWrapsTokenKinds(t *testing.T) {
	root, v := fold(t, "1+2*3")
	got := render.RenderTagged(root, v, render.Options{})
	want := `<span class="tok-number">7</span>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStripComments(t *testing.T) {
	src := "# leading comment\n$x = 1 <# inline block #>\n$x"
	got := render.StripComments(src)
	want := "\n$x = 1 \n$x"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDeadAssignments(t *testing.T) {
	root, _ := fold(t, "$used = 1\n$unused = 2\n$used")
	dead := render.DeadAssignments(root)
	if !dead["unused"] {
		t.Fatalf("expected unused to be dead, got %+v", dead)
	}
	if dead["used"] {
		t.Fatalf("did not expect used to be dead, got %+v", dead)
	}
}
