package psrules

import (
	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
)

// transparentKinds is the set of grammar productions that wrap a single
// child without adding any semantics of their own: a parenthesized
// expression, a $() subexpression, or a pipeline of exactly one element
// is the same value as that element.
var transparentKinds = map[tree.Kind]bool{
	"unary_expression":    false, // never forwarded: see the early return in Leave
	"paren_expression":    true,
	"pipeline_expression": true,
	"subexpression":       true,
}

// Forward propagates a single child's annotation up through a transparent
// wrapper node, grounded on the original's Forward rule (ps/forward.rs),
// generalized here from its single unary_expression case to every
// transparent wrapper kind cst produces.
type Forward struct{ rule.Base }

func (Forward) Name() string { return "Forward" }

func (Forward) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind == "unary_expression" {
		// unary_expression only appears with an operator prefix in cst's
		// output (see convert.go), so it is never actually transparent; left
		// in the table as a documented non-forward to match the original's
		// shape without silently losing sign/negation information.
		return
	}
	if !transparentKinds[n.Kind] {
		return
	}
	if n.ChildCount() != 1 {
		return
	}
	child := n.Child(0)
	ann, ok := v.Get(child)
	if !ok {
		return
	}
	v.Set(n, ann.Forwarded())
}
