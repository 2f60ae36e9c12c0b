package psrules

import (
	"strings"

	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// joinable converts an already-inferred Array of Str/Num elements to their
// joined string form, declining if any element is some other kind.
func joinable(arr value.Value, sep string) (string, bool) {
	if arr.Kind != value.KindArray {
		return "", false
	}
	parts := make([]string, 0, len(arr.Elems()))
	for _, e := range arr.Elems() {
		if e.Kind != value.KindStr && e.Kind != value.KindNum {
			return "", false
		}
		parts = append(parts, e.String())
	}
	return strings.Join(parts, sep), true
}

// JoinComparison folds the infix `array -join sep` operator, grounded on
// ps/join.rs's JoinComparison (named for the compOp precedence tier it
// shares with the comparison operators in cst's grammar).
type JoinComparison struct{ rule.Base }

func (JoinComparison) Name() string { return "JoinComparison" }

func (JoinComparison) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "binary_expression" || n.Text != "-join" || n.ChildCount() != 2 {
		return
	}
	arr, ok1 := v.Get(n.Child(0))
	sep, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 || sep.Kind != value.KindStr {
		return
	}
	joined, ok := joinable(arr, sep.String())
	if !ok {
		return
	}
	v.Set(n, value.Str(joined).AsRaw())
}

// JoinStringMethod folds [string]::Join(sep, array), grounded on
// ps/join.rs's JoinStringMethod.
type JoinStringMethod struct{ rule.Base }

func (JoinStringMethod) Name() string { return "JoinStringMethod" }

func (JoinStringMethod) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "invocation_expression" || !strings.EqualFold(n.Text, "Join") {
		return
	}
	if n.ChildCount() != 3 {
		return
	}
	typeLit := n.Child(0)
	if typeLit.Kind != "type_literal" || !strings.EqualFold(typeLit.Text, "string") {
		return
	}
	sep, ok1 := v.Get(n.Child(1))
	arr, ok2 := v.Get(n.Child(2))
	if !ok1 || !ok2 || sep.Kind != value.KindStr {
		return
	}
	joined, ok := joinable(arr, sep.String())
	if !ok {
		return
	}
	v.Set(n, value.Str(joined).AsRaw())
}

// JoinOperator folds the unary prefix `-join array` (empty separator),
// grounded on ps/join.rs's JoinOperator.
type JoinOperator struct{ rule.Base }

func (JoinOperator) Name() string { return "JoinOperator" }

func (JoinOperator) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "unary_expression" || n.Text != "-join" || n.ChildCount() != 1 {
		return
	}
	arr, ok := v.Get(n.Child(0))
	if !ok {
		return
	}
	joined, ok := joinable(arr, "")
	if !ok {
		return
	}
	v.Set(n, value.Str(joined).AsRaw())
}
