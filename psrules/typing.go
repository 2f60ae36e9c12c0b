package psrules

import (
	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// ParseType folds a bracketed type literal, e.g. [System.Text.Encoding],
// to Raw(Type(...)) with its namespace normalized. Grounded on
// ps/typing.rs.
type ParseType struct{ rule.Base }

func (ParseType) Name() string { return "ParseType" }

func (ParseType) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "type_literal" {
		return
	}
	v.Set(n, value.TypeName(n.Text).AsRaw())
}
