package psrules

import (
	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// ParseHash folds a hash_literal once every entry's key and value is
// inferred, grounded on ps/hash.rs.
type ParseHash struct{ rule.Base }

func (ParseHash) Name() string { return "ParseHash" }

func (ParseHash) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "hash_literal" {
		return
	}
	entries := make([]value.HashEntry, 0, n.ChildCount())
	for _, entry := range n.Children {
		if entry.Kind != "hash_entry" || entry.ChildCount() != 2 {
			return
		}
		key, ok1 := v.Get(entry.Child(0))
		val, ok2 := v.Get(entry.Child(1))
		if !ok1 || !ok2 {
			return
		}
		entries = append(entries, value.HashEntry{Key: key, Val: val})
	}
	v.Set(n, value.Hash(entries).AsRaw())
}
