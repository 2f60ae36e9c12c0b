// Package rule defines the Rule abstraction and the ordered RuleSet the
// engine drives. Rather than the original's compile-time tuple-of-rules
// macro, idiomatic Go represents the same "closed, ordered list of
// annotation producers" as a plain slice of an interface value, per the
// Design Notes' own recommendation (a fixed array of rule function
// pointers).
package rule

import "github.com/minusone-go/minusone/tree"

// Rule observes traversal events and may set a node's annotation in
// response. Enter fires before a node's children are visited; Leave fires
// after. Most folding rules only need Leave (children must already be
// annotated); a rule that gates on branch flow before descending (Var)
// uses Enter too. A rule
// that has nothing to do on a given event simply returns without touching
// the view.
type Rule interface {
	// Name identifies the rule for diagnostics and tests.
	Name() string
	Enter(v *tree.View, n *tree.Node, flow tree.BranchFlow)
	Leave(v *tree.View, n *tree.Node, flow tree.BranchFlow)
}

// Base provides no-op Enter/Leave so rules that only need one of the two
// events don't have to stub out the other.
type Base struct{}

func (Base) Enter(*tree.View, *tree.Node, tree.BranchFlow) {}
func (Base) Leave(*tree.View, *tree.Node, tree.BranchFlow) {}

// Set is the ordered, fixed list of rules fired on every traversal event,
// in declared order. Order matters: several psrules rules are only
// reachable because an earlier rule already annotated a sibling or child
// (e.g. ParseInt before AddInt).
type Set struct {
	rules []Rule
}

// NewSet builds a Set from rules in the given, fixed firing order.
func NewSet(rules ...Rule) *Set {
	return &Set{rules: rules}
}

// Visit implements tree.Visitor, fanning a traversal event out to every
// rule in firing order.
func (s *Set) Visit(v *tree.View, ev tree.Event) {
	switch ev.Kind {
	case tree.Enter:
		for _, r := range s.rules {
			r.Enter(v, ev.Node, ev.Flow)
		}
	case tree.Leave:
		for _, r := range s.rules {
			r.Leave(v, ev.Node, ev.Flow)
		}
	}
}

// Names returns the firing-order rule names, used by tests and
// diagnostics to assert on rule ordering.
func (s *Set) Names() []string {
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.Name()
	}
	return out
}
