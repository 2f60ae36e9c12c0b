package psrules

import (
	"strconv"

	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// ParseInt resolves an integer literal's text to a Raw Num, grounded on the
// original's ps/integer.rs ParseInt (there adapted to a placeholder
// constant; here it actually parses, since nothing downstream could fold
// without a real value).
type ParseInt struct{ rule.Base }

func (ParseInt) Name() string { return "ParseInt" }

func (ParseInt) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "decimal_integer_literal" {
		return
	}
	text := n.Text
	base := 10
	if len(text) > 2 && (text[1] == 'x' || text[1] == 'X') && text[0] == '0' {
		base = 0 // strconv.ParseInt auto-detects 0x
	}
	i, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return
	}
	v.Set(n, value.Num(i).AsRaw())
}

// AddInt folds `+`/`-` over a pair of already-inferred operands, grounded
// on ps/mod.rs's AddInt entry: it is the arithmetic half of
// additive_expression, delegating to value.Add/value.Sub which also cover
// the Str/Array overloads spec.md §4.1 assigns to the same operator text.
type AddInt struct{ rule.Base }

func (AddInt) Name() string { return "AddInt" }

func (AddInt) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "additive_expression" || n.ChildCount() != 2 {
		return
	}
	left, ok1 := v.Get(n.Child(0))
	right, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 {
		return
	}
	var folded value.Folded
	switch n.Text {
	case "+":
		folded = value.Add(left, right)
	case "-":
		folded = value.Sub(left, right)
	default:
		return
	}
	if !folded.Ok {
		return
	}
	v.Set(n, folded.Value.AsRaw())
}

// MultInt folds `*`/`/` over a pair of already-inferred operands.
type MultInt struct{ rule.Base }

func (MultInt) Name() string { return "MultInt" }

func (MultInt) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "multiplicative_expression" || n.ChildCount() != 2 {
		return
	}
	left, ok1 := v.Get(n.Child(0))
	right, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 {
		return
	}
	var folded value.Folded
	switch n.Text {
	case "*":
		folded = value.Mult(left, right)
	case "/":
		folded = value.Div(left, right)
	default:
		return
	}
	if !folded.Ok {
		return
	}
	v.Set(n, folded.Value.AsRaw())
}
