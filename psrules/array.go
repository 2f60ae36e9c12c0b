package psrules

import (
	"strings"

	"github.com/minusone-go/minusone/engine"
	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// ParseArrayLiteral folds a comma-joined literal list (cst's array_literal
// node) to Raw(Array(...)) once every element is itself inferred,
// grounded on ps/array.rs.
type ParseArrayLiteral struct{ rule.Base }

func (ParseArrayLiteral) Name() string { return "ParseArrayLiteral" }

func (ParseArrayLiteral) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "array_literal" {
		return
	}
	elems := make([]value.Value, 0, n.ChildCount())
	for _, c := range n.Children {
		ann, ok := v.Get(c)
		if !ok {
			return
		}
		elems = append(elems, ann)
	}
	v.Set(n, value.Array(elems).AsRaw())
}

// ParseRange folds `a..b` to the inclusive integer sequence it denotes,
// direction following the sign of b-a, capped at engine.MaxArrayPrealloc
// elements (Open Question decision #3 in DESIGN.md).
type ParseRange struct{ rule.Base }

func (ParseRange) Name() string { return "ParseRange" }

func (ParseRange) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "range_expression" || n.ChildCount() != 2 {
		return
	}
	a, ok1 := v.Get(n.Child(0))
	b, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 || a.Kind != value.KindNum || b.Kind != value.KindNum {
		return
	}
	lo, hi := a.Int(), b.Int()
	step := int64(1)
	if hi < lo {
		step = -1
	}
	count := (hi - lo) / step
	if count < 0 {
		count = -count
	}
	count++
	if count > engine.MaxArrayPrealloc {
		return
	}
	elems := make([]value.Value, 0, count)
	for cur := lo; ; cur += step {
		elems = append(elems, value.Num(cur))
		if cur == hi {
			break
		}
	}
	v.Set(n, value.Array(elems).AsRaw())
}

// ComputeArrayExpr folds `@( ... )` once every element it wraps is itself
// inferred.
type ComputeArrayExpr struct{ rule.Base }

func (ComputeArrayExpr) Name() string { return "ComputeArrayExpr" }

func (ComputeArrayExpr) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "array_expression" {
		return
	}
	elems := make([]value.Value, 0, n.ChildCount())
	for _, c := range n.Children {
		ann, ok := v.Get(c)
		if !ok {
			return
		}
		elems = append(elems, ann)
	}
	v.Set(n, value.Array(elems).AsRaw())
}

// AddArray restates AddInt's Array+Array / Array+element branch as its own
// rule, matching the original's dedicated array.rs rule (see SPEC_FULL.md
// §4); AddInt's fold already covers this, so this is a documented no-op
// once AddInt has set an equal annotation.
type AddArray struct{ rule.Base }

func (AddArray) Name() string { return "AddArray" }

func (AddArray) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "additive_expression" || n.Text != "+" || n.ChildCount() != 2 {
		return
	}
	left, ok1 := v.Get(n.Child(0))
	right, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 || left.Kind != value.KindArray {
		return
	}
	folded := value.Add(left, right)
	if !folded.Ok {
		return
	}
	v.Set(n, folded.Value.AsRaw())
}

// NewObjectArray folds `New-Object 'byte[]' n` (or 'System.Byte[]') to a
// zero-filled Array(Num) of length n, capped at engine.MaxArrayPrealloc.
// Grounded on ps/array.rs's NewObjectArray, invoked via cst's bare
// command_invocation shape.
type NewObjectArray struct{ rule.Base }

func (NewObjectArray) Name() string { return "NewObjectArray" }

func (NewObjectArray) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "command_invocation" || !strings.EqualFold(n.Text, "New-Object") {
		return
	}
	if n.ChildCount() != 2 {
		return
	}
	typeArg, ok1 := v.Get(n.Child(0))
	countArg, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 || typeArg.Kind != value.KindStr || countArg.Kind != value.KindNum {
		return
	}
	typeName := strings.ToLower(typeArg.String())
	if typeName != "byte[]" && typeName != "system.byte[]" {
		return
	}
	count := countArg.Int()
	if count < 0 || count > engine.MaxArrayPrealloc {
		return
	}
	elems := make([]value.Value, count)
	for i := range elems {
		elems[i] = value.Num(0)
	}
	v.Set(n, value.Array(elems).AsRaw())
}
