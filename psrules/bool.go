package psrules

import (
	"strings"

	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// ParseBool folds the $true/$false automatic variables, grounded on
// ps/bool.rs's ParseBool. cst normalizes the leading '$' away, so the node
// is a plain "variable" whose text is "true"/"false".
type ParseBool struct{ rule.Base }

func (ParseBool) Name() string { return "ParseBool" }

func (ParseBool) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "variable" {
		return
	}
	switch strings.ToLower(n.Text) {
	case "true":
		v.Set(n, value.Bool(true).AsRaw())
	case "false":
		v.Set(n, value.Bool(false).AsRaw())
	}
}

// Comparison folds -eq/-ne/-lt/-le/-gt/-ge and their case-sensitive -c*
// variants over a pair of inferred operands, grounded on ps/bool.rs's
// Comparison.
type Comparison struct{ rule.Base }

func (Comparison) Name() string { return "Comparison" }

func (Comparison) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "binary_expression" || n.ChildCount() != 2 {
		return
	}
	op := strings.ToLower(n.Text)
	caseSensitive := false
	base := op
	if strings.HasPrefix(op, "-c") && len(op) > 2 {
		caseSensitive = true
		base = "-" + op[2:]
	}
	switch base {
	case "-eq", "-ne", "-lt", "-le", "-gt", "-ge":
	default:
		return
	}
	left, ok1 := v.Get(n.Child(0))
	right, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 {
		return
	}
	folded := value.Compare(left, right, base, caseSensitive)
	if !folded.Ok {
		return
	}
	v.Set(n, folded.Value.AsRaw())
}

// Not folds the boolean negation operator ('!' or '-not') over a known
// Bool operand, grounded on ps/bool.rs's Not.
type Not struct{ rule.Base }

func (Not) Name() string { return "Not" }

func (Not) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "unary_expression" || n.ChildCount() != 1 {
		return
	}
	if n.Text != "!" && n.Text != "-not" {
		return
	}
	operand, ok := v.Get(n.Child(0))
	if !ok {
		return
	}
	folded := value.Not(operand)
	if !folded.Ok {
		return
	}
	v.Set(n, folded.Value.AsRaw())
}

// BoolAlgebra folds -and/-or/-xor over a pair of known Bool operands,
// grounded on ps/bool.rs's BoolAlgebra.
type BoolAlgebra struct{ rule.Base }

func (BoolAlgebra) Name() string { return "BoolAlgebra" }

func (BoolAlgebra) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "logical_expression" || n.ChildCount() != 2 {
		return
	}
	left, ok1 := v.Get(n.Child(0))
	right, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 {
		return
	}
	var folded value.Folded
	switch strings.ToLower(n.Text) {
	case "-and":
		folded = value.And(left, right)
	case "-or":
		folded = value.Or(left, right)
	case "-xor":
		folded = value.Xor(left, right)
	default:
		return
	}
	if !folded.Ok {
		return
	}
	v.Set(n, folded.Value.AsRaw())
}
