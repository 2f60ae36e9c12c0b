package psrules

import (
	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// accessIndices resolves an element_access index operand to the ordered
// list of 0-based indices it denotes against a collection of the given
// length: a single Num is one index, an Array(Num) (as ParseRange or
// ParseArrayLiteral would produce) is one index per element, in order.
// Returns ok=false if any index is out of bounds or not a Num.
func accessIndices(idx value.Value, length int64) ([]int64, bool) {
	switch idx.Kind {
	case value.KindNum:
		i, ok := value.NormalizeIndex(idx.Int(), length)
		if !ok {
			return nil, false
		}
		return []int64{i}, true
	case value.KindArray:
		out := make([]int64, 0, len(idx.Elems()))
		for _, e := range idx.Elems() {
			if e.Kind != value.KindNum {
				return nil, false
			}
			i, ok := value.NormalizeIndex(e.Int(), length)
			if !ok {
				return nil, false
			}
			out = append(out, i)
		}
		return out, true
	default:
		return nil, false
	}
}

// AccessString folds element_access over a Str base: "foo"[0] -> "f",
// "gnirtSteG"[-1..-9] -> the reversed string its range denotes. Grounded on
// ps/access.rs's AccessString.
type AccessString struct{ rule.Base }

func (AccessString) Name() string { return "AccessString" }

func (AccessString) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "element_access" || n.ChildCount() != 2 {
		return
	}
	base, ok1 := v.Get(n.Child(0))
	idxVal, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 || base.Kind != value.KindStr {
		return
	}
	runes := []rune(base.String())
	indices, ok := accessIndices(idxVal, int64(len(runes)))
	if !ok {
		return
	}
	if len(indices) == 1 {
		v.Set(n, value.Str(string(runes[indices[0]])).AsRaw())
		return
	}
	result := make([]rune, 0, len(indices))
	for _, i := range indices {
		result = append(result, runes[i])
	}
	v.Set(n, value.Str(string(result)).AsRaw())
}

// AccessArray folds element_access over an Array base, kept as its own
// rule to match the source's split between AccessString and AccessArray
// (ps/access.rs) rather than a single merged rule.
type AccessArray struct{ rule.Base }

func (AccessArray) Name() string { return "AccessArray" }

func (AccessArray) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "element_access" || n.ChildCount() != 2 {
		return
	}
	base, ok1 := v.Get(n.Child(0))
	idxVal, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 || base.Kind != value.KindArray {
		return
	}
	elems := base.Elems()
	indices, ok := accessIndices(idxVal, int64(len(elems)))
	if !ok {
		return
	}
	if len(indices) == 1 {
		v.Set(n, elems[indices[0]].AsRaw())
		return
	}
	out := make([]value.Value, 0, len(indices))
	for _, i := range indices {
		out = append(out, elems[i])
	}
	v.Set(n, value.Array(out).AsRaw())
}
