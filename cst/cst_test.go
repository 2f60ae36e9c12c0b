package cst

import "testing"

func TestParseIntegerAddition(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root, err := p.Parse("1+2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(root.Children))
	}
	add := root.Children[0]
	if add.Kind != "additive_expression" || add.Text != "+" {
		t.Fatalf("expected additive_expression(+), got %s(%q)", add.Kind, add.Text)
	}
	if len(add.Children) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(add.Children))
	}
	if add.Children[0].Kind != "decimal_integer_literal" || add.Children[0].Text != "1" {
		t.Fatalf("left operand mismatch: %+v", add.Children[0])
	}
}

func TestParseArrayLiteral(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root, err := p.Parse("65,66,67")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	arr := root.Children[0]
	if arr.Kind != "array_literal" || len(arr.Children) != 3 {
		t.Fatalf("expected array_literal with 3 elements, got %s with %d", arr.Kind, len(arr.Children))
	}
}

func TestParseCastExpression(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root, err := p.Parse("[char] 65")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cast := root.Children[0]
	if cast.Kind != "cast_expression" || cast.Text != "char" {
		t.Fatalf("expected cast_expression(char), got %s(%q)", cast.Kind, cast.Text)
	}
}

func TestParseElementAccessWithRange(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root, err := p.Parse("'gnirtSteG'[-1..-9]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	acc := root.Children[0]
	if acc.Kind != "element_access" {
		t.Fatalf("expected element_access, got %s", acc.Kind)
	}
	if acc.Children[0].Kind != "string_literal" {
		t.Fatalf("expected string_literal base, got %s", acc.Children[0].Kind)
	}
	idx := acc.Children[1]
	if idx.Kind != "range_expression" {
		t.Fatalf("expected range_expression index, got %s", idx.Kind)
	}
}

func TestParseStaticMemberInvocation(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root, err := p.Parse(`[Convert]::FromBase64String("aGk=")`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	inv := root.Children[0]
	if inv.Kind != "invocation_expression" || inv.Text != "FromBase64String" {
		t.Fatalf("expected invocation_expression(FromBase64String), got %s(%q)", inv.Kind, inv.Text)
	}
	if inv.Children[0].Kind != "type_literal" || inv.Children[0].Text != "Convert" {
		t.Fatalf("expected type_literal(Convert), got %+v", inv.Children[0])
	}
}

func TestParseIfAssignmentForeach(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	src := `$x = 1
if ($x -eq 1) { $y = 2 }
foreach ($i in $x) { $y = $i }`
	root, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(root.Children))
	}
	if root.Children[0].Kind != "assignment_expression" {
		t.Fatalf("expected assignment_expression, got %s", root.Children[0].Kind)
	}
	if root.Children[1].Kind != "if_statement" {
		t.Fatalf("expected if_statement, got %s", root.Children[1].Kind)
	}
	if root.Children[2].Kind != "foreach_statement" {
		t.Fatalf("expected foreach_statement, got %s", root.Children[2].Kind)
	}
}
