// Package engine drives the fixed-point traversal loop that applies a
// rule.Set to a tree.View until no rule reports further change or a pass
// budget is exhausted.
package engine

import (
	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
)

// MaxArrayPrealloc bounds how large a ParseRange/NewObjectArray fold may
// preallocate before declining instead of risking unbounded memory use on
// an adversarial range literal like `1..99999999999`.
const MaxArrayPrealloc = 1 << 20

// DefaultMaxPasses is the pass bound used when Options.MaxPasses is zero.
const DefaultMaxPasses = 25

// Options configures a Run. The zero value is valid and uses
// DefaultMaxPasses.
type Options struct {
	MaxPasses int
}

func (o Options) maxPasses() int {
	if o.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return o.MaxPasses
}

// Result reports how a Run terminated.
type Result struct {
	Passes         int
	BudgetExceeded bool
}

// Run repeatedly walks root with strategy and rules until a full pass
// leaves the view unchanged, or Options.MaxPasses passes have run.
// Reaching the pass budget is reported via Result.BudgetExceeded and
// Error(BudgetExceeded, ...), but the view is left with whatever it
// accumulated: callers should still render it rather than discard the
// work, matching the "best-effort output plus diagnostic" contract.
func Run(root *tree.Node, v *tree.View, strategy tree.Strategy, rules *rule.Set, opts Options) (Result, *Error) {
	if root == nil {
		return Result{}, newErr(InvariantError, "nil root node")
	}
	max := opts.maxPasses()
	passes := 0
	for passes < max {
		v.ResetDirty()
		tree.Walk(root, v, strategy, rules)
		passes++
		if !v.Dirty() {
			return Result{Passes: passes}, nil
		}
	}
	return Result{Passes: passes, BudgetExceeded: true},
		newErr(BudgetExceeded, "reached maximum pass count without converging")
}
