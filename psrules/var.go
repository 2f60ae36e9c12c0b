package psrules

import (
	"strings"

	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// staticVars is the table of PowerShell automatic variables whose value is
// known without running the script, grounded on ps/var.rs's StaticVar.
var staticVars = map[string]value.Value{
	"pshome":    value.Str(`C:\Windows\System32\WindowsPowerShell\v1.0`),
	"shellid":   value.Str("Microsoft.PowerShell"),
	"null":      value.Null(),
	"psculture": value.Str("en-US"),
}

// StaticVar folds a reference to a known automatic variable to its static
// value, grounded on ps/var.rs's StaticVar.
type StaticVar struct{ rule.Base }

func (StaticVar) Name() string { return "StaticVar" }

func (StaticVar) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "variable" {
		return
	}
	if val, ok := staticVars[strings.ToLower(n.Text)]; ok {
		v.Set(n, val.AsRaw())
	}
}

// Var implements the engine's one stateful rule: it records (name -> value)
// for assignments whose right-hand side is Raw and whose flow is
// Predictable, then substitutes that value into later references of the
// same name. Assignments under Unpredictable flow invalidate any existing
// binding rather than recording a new one, since whether (and with what
// value) they execute can't be determined statically — grounded on
// ps/var.rs's Var and the engine design's §4.6 contract.
//
// Two independent guards enforce this, mirroring ps/var.rs's Var:
//   - Leave declines to substitute a binding into a "variable" read unless
//     the read itself sits under Predictable flow (spec.md §9's "do not
//     consult bindings established under Unpredictable flow" safe policy).
//   - Enter proactively forgets, before descending, any variable assigned
//     anywhere within a subtree about to become Unpredictable (a
//     while/foreach loop's condition and body, or an if/elseif/else body
//     whose governing condition didn't resolve), ported from ps/var.rs's
//     "while_statement"/"statement_block" enter arms. This matters because
//     a loop's condition is itself part of the Unpredictable subtree and is
//     visited before the loop body's assignment is ever reached: without
//     forgetting up front, a binding made before the loop would otherwise
//     still look valid at the moment the condition is (correctly) declined,
//     were the Leave guard ever loosened or ordered differently.
type Var struct{ rule.Base }

func (Var) Name() string { return "Var" }

func (Var) Enter(v *tree.View, n *tree.Node, flow tree.BranchFlow) {
	switch n.Kind {
	case "while_statement":
		forgetAssignedVars(v, n)
	case "foreach_statement":
		forgetAssignedVars(v, n)
		v.UnbindVar(n.Text)
	case "script_block":
		if flow == tree.Unpredictable {
			forgetAssignedVars(v, n)
		}
	}
}

func (Var) Leave(v *tree.View, n *tree.Node, flow tree.BranchFlow) {
	switch n.Kind {
	case "assignment_expression":
		name := n.Text
		if flow != tree.Predictable {
			v.UnbindVar(name)
			return
		}
		if n.ChildCount() != 1 {
			v.UnbindVar(name)
			return
		}
		ann, ok := v.Get(n.Child(0))
		if !ok || !ann.IsRaw {
			v.UnbindVar(name)
			return
		}
		v.BindVar(name, ann)
	case "variable":
		if flow != tree.Predictable {
			return
		}
		if val, ok := v.LookupVar(n.Text); ok {
			v.Set(n, val)
		}
	}
}

// forgetAssignedVars unbinds every variable assigned anywhere within n's
// subtree (n included), grounded on ps/var.rs's forget_assigned_var.
func forgetAssignedVars(v *tree.View, n *tree.Node) {
	n.Walk(func(c *tree.Node) {
		if c.Kind == "assignment_expression" {
			v.UnbindVar(c.Text)
		}
	})
}
