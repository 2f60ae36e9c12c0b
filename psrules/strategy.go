// Package psrules is the PowerShell-specific rule set: the branch-flow
// classifier and the folding/simplification rules the engine drives to a
// fixed point. Grounded on the original's ps/strategy.rs and ps/mod.rs.
package psrules

import (
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// PowershellStrategy classifies a node's contribution to branch-flow
// predictability. Once a subtree has inherited Unpredictable it stays
// Unpredictable for every descendant (the original's control() has no
// inherited-flow parameter and always falls through to Predictable by
// default; read literally that default would let a fold inside a loop body
// get treated as unconditionally safe one level down, which contradicts the
// engine's whole reason for tracking BranchFlow, so the sticky-inheritance
// rule here is a deliberate repair rather than a literal port — see
// DESIGN.md Open Question "branch-flow inheritance").
type PowershellStrategy struct{}

func (PowershellStrategy) Control(v *tree.View, n *tree.Node, inherited tree.BranchFlow) tree.ControlFlow {
	if inherited == tree.Unpredictable {
		return tree.Continue(tree.Unpredictable)
	}
	switch n.Kind {
	case "while_statement", "foreach_statement":
		return tree.Continue(tree.Unpredictable)
	case "function_definition":
		return tree.Continue(tree.Predictable)
	case "script_block":
		if n.Parent != nil && n.Parent.Kind == "if_statement" {
			return ifBodyFlow(v, n)
		}
		return tree.Continue(tree.Predictable)
	default:
		return tree.Continue(tree.Predictable)
	}
}

// ifBodyFlow classifies a single if/elseif/else body by inspecting the
// Raw(Bool(...)) annotation, if any, on its owning condition(s). A
// condition that has not folded to a constant makes its own body (and any
// later elseif/else body, since whether they run depends on this one too)
// Unpredictable. A condition that folded to false makes its body
// unreachable (Stop, no need to walk it at all); one that folded to true
// makes every later sibling body unreachable in turn.
func ifBodyFlow(v *tree.View, body *tree.Node) tree.ControlFlow {
	ifNode := body.Parent
	conds, bodies, elseBody := splitIfStatement(ifNode)

	if body == elseBody {
		for _, c := range conds {
			resolved, isTrue := resolvedBool(v, c)
			if !resolved {
				return tree.Continue(tree.Unpredictable)
			}
			if isTrue {
				return tree.Stop()
			}
		}
		return tree.Continue(tree.Predictable)
	}

	for j, b := range bodies {
		if b != body {
			continue
		}
		for k := 0; k < j; k++ {
			resolved, isTrue := resolvedBool(v, conds[k])
			if !resolved {
				return tree.Continue(tree.Unpredictable)
			}
			if isTrue {
				return tree.Stop()
			}
		}
		resolved, isTrue := resolvedBool(v, conds[j])
		if !resolved {
			return tree.Continue(tree.Unpredictable)
		}
		if isTrue {
			return tree.Continue(tree.Predictable)
		}
		return tree.Stop()
	}
	return tree.Continue(tree.Predictable)
}

// splitIfStatement recovers the (condition, body) pairs and optional
// trailing else body from an if_statement's flat child list, as produced by
// cst's converter: [cond0, body0, (condN, bodyN)*, elseBody?].
func splitIfStatement(ifNode *tree.Node) (conds, bodies []*tree.Node, elseBody *tree.Node) {
	ch := ifNode.Children
	conds = append(conds, ch[0])
	bodies = append(bodies, ch[1])
	rest := ch[2:]
	if len(rest)%2 == 1 {
		elseBody = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	for i := 0; i < len(rest); i += 2 {
		conds = append(conds, rest[i])
		bodies = append(bodies, rest[i+1])
	}
	return conds, bodies, elseBody
}

func resolvedBool(v *tree.View, cond *tree.Node) (resolved bool, isTrue bool) {
	ann, ok := v.Get(cond)
	if !ok || !ann.IsRawKind(value.KindBool) {
		return false, false
	}
	return true, ann.BoolVal()
}
