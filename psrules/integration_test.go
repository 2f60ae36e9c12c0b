package psrules_test

import (
	"testing"

	"github.com/minusone-go/minusone/cst"
	"github.com/minusone-go/minusone/engine"
	"github.com/minusone-go/minusone/psrules"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
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
	_, engErr := engine.Run(root, v, psrules.PowershellStrategy{}, psrules.NewRuleSet(), engine.Options{})
	if engErr != nil {
		t.Fatalf("engine.Run: %v", engErr)
	}
	return root, v
}

func TestArithmeticFolding(t *testing.T) {
	root, v := fold(t, "1+2*3")
	ann, ok := v.Get(root.Child(0))
	if !ok || ann.Kind != value.KindNum || ann.Int() != 7 {
		t.Fatalf("expected Num(7), got %+v ok=%v", ann, ok)
	}
}

func TestStringConcatFolding(t *testing.T) {
	root, v := fold(t, `'foo' + 'bar'`)
	ann, ok := v.Get(root.Child(0))
	if !ok || ann.Kind != value.KindStr || ann.String() != "foobar" {
		t.Fatalf("expected Str(foobar), got %+v ok=%v", ann, ok)
	}
}

func TestCastCharJoinFolding(t *testing.T) {
	root, v := fold(t, "65,66,67 | % { [char] $_ }")
	ann, ok := v.Get(root.Child(0))
	if !ok || ann.Kind != value.KindArray {
		t.Fatalf("expected Array, got %+v ok=%v", ann, ok)
	}
	elems := ann.Elems()
	if len(elems) != 3 || elems[0].String() != "A" || elems[1].String() != "B" || elems[2].String() != "C" {
		t.Fatalf("expected [A B C], got %+v", elems)
	}
}

func TestBase64DecodeAndUTF8Folding(t *testing.T) {
	root, v := fold(t, `[System.Text.Encoding]::UTF8.GetString([Convert]::FromBase64String("aGk="))`)
	ann, ok := v.Get(root.Child(0))
	if !ok || ann.Kind != value.KindStr || ann.String() != "hi" {
		t.Fatalf("expected Str(hi), got %+v ok=%v", ann, ok)
	}
}

func TestElementAccessWithNegativeRange(t *testing.T) {
	root, v := fold(t, "'gnirtSteG'[-1..-9]")
	ann, ok := v.Get(root.Child(0))
	if !ok || ann.Kind != value.KindStr || ann.String() != "GetString" {
		t.Fatalf("expected Str(GetString), got %+v ok=%v", ann, ok)
	}
}

func TestComparisonFolding(t *testing.T) {
	root, v := fold(t, "1 -eq 1")
	ann, ok := v.Get(root.Child(0))
	if !ok || ann.Kind != value.KindBool || !ann.BoolVal() {
		t.Fatalf("expected Bool(true), got %+v ok=%v", ann, ok)
	}
}

func TestVarBindingUnderPredictableFlow(t *testing.T) {
	root, v := fold(t, "$x = 1+1\n$x")
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(root.Children))
	}
	ann, ok := v.Get(root.Children[1])
	if !ok || ann.Kind != value.KindNum || ann.Int() != 2 {
		t.Fatalf("expected $x to resolve to Num(2), got %+v ok=%v", ann, ok)
	}
}

func TestVarBindingNotTrustedInsideLoop(t *testing.T) {
	root, v := fold(t, "$x = 1\nwhile ($true) { $x = 2 }\n$x")
	ann, ok := v.Get(root.Children[2])
	if ok && ann.Kind == value.KindNum && ann.Int() == 2 {
		t.Fatalf("did not expect the loop body's assignment to be trusted: %+v", ann)
	}
	_ = ok
}

func TestStringReplaceCoercesNonStringArgs(t *testing.T) {
	root, v := fold(t, `'abc.def.ghi'.replace('abc',1).replace('def',2).replace('ghi',3)`)
	ann, ok := v.Get(root.Child(0))
	if !ok || ann.Kind != value.KindStr || ann.String() != "1.2.3" {
		t.Fatalf("expected Str(1.2.3), got %+v ok=%v", ann, ok)
	}
}

func TestVarBindingNotTrustedInLoopCondition(t *testing.T) {
	root, v := fold(t, "$x = 1\nwhile ($x -eq 1) { $x = 2 }")
	whileStmt := root.Children[1]
	cond := whileStmt.Child(0)
	ann, ok := v.Get(cond)
	if ok && ann.IsRaw && ann.Kind == value.KindBool && ann.BoolVal() {
		t.Fatalf("did not expect the loop condition to fold to Bool(true) from a stale binding: %+v", ann)
	}
}
