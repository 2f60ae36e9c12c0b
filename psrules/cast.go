package psrules

import (
	"strings"

	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// Cast folds cast_expression nodes whose operand is already inferred,
// dispatching on the normalized target type name, grounded on ps/cast.rs.
type Cast struct{ rule.Base }

func (Cast) Name() string { return "Cast" }

func (Cast) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "cast_expression" || n.ChildCount() != 1 {
		return
	}
	operand, ok := v.Get(n.Child(0))
	if !ok {
		return
	}
	var folded value.Folded
	switch strings.ToLower(n.Text) {
	case "int", "int32", "int64", "long", "byte", "uint32":
		folded = value.CastToNum(operand)
	case "string":
		folded = value.CastToStr(operand)
	case "char":
		folded = value.CastToChar(operand)
	case "bool", "boolean":
		folded = value.CastToBool(operand)
	default:
		return
	}
	if !folded.Ok {
		return
	}
	v.Set(n, folded.Value.AsRaw())
}

// CastNull folds a unary +/- applied to an empty $() subexpression to 0,
// grounded on ps/cast.rs's CastNull: PowerShell coerces $null (the value
// of an empty subexpression) to 0 under arithmetic sign operators. A sign
// operator over an operand already known to be a Num folds to that number
// (negated for '-'), so `-1` becomes Num(-1).
type CastNull struct{ rule.Base }

func (CastNull) Name() string { return "CastNull" }

func (CastNull) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "unary_expression" || n.ChildCount() != 1 {
		return
	}
	if n.Text != "-" && n.Text != "+" {
		return
	}
	if operand, ok := v.Get(n.Child(0)); ok && operand.Kind == value.KindNum {
		folded := value.Add(value.Num(0), operand)
		if n.Text == "-" {
			folded = value.Sub(value.Num(0), operand)
		}
		if folded.Ok {
			v.Set(n, folded.Value.AsRaw())
		}
		return
	}
	sub := n.Child(0)
	if sub.Kind != "subexpression" || sub.ChildCount() != 0 {
		return
	}
	v.Set(n, value.Num(0).AsRaw())
}
