package psrules

import (
	"strings"

	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// psItemCharMarker tags a script_block node recognized by PSItemInferrator
// as the `{ [char] $_ }` shape. spec.md's closed lattice has no variant for
// "a recognized scriptblock pattern" (the original's Powershell::PSItem is
// a distinct enum arm from Raw/Array); reusing a Type value as an internal,
// never-rendered marker avoids widening the lattice for one rule pair. Only
// ForEach ever reads it.
const psItemCharMarker = "$minusone$psitem$char"

// PSItemInferrator recognizes a `% { [char] $_ }`-shaped scriptblock body
// and marks it for ForEach to apply, grounded on ps/foreach.rs.
type PSItemInferrator struct{ rule.Base }

func (PSItemInferrator) Name() string { return "PSItemInferrator" }

func (PSItemInferrator) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "script_block" || n.ChildCount() != 1 {
		return
	}
	body := n.Child(0)
	if body.Kind != "cast_expression" || !strings.EqualFold(body.Text, "char") || body.ChildCount() != 1 {
		return
	}
	arg := body.Child(0)
	if arg.Kind != "variable" || arg.Text != "_" {
		return
	}
	v.Set(n, value.TypeName(psItemCharMarker))
}

// ForEach lifts PSItemInferrator's marker across a pipeline: an Array(Num)
// piped into a `%`/`ForEach-Object` command whose sole scriptblock argument
// carries the marker folds to Array(Str) of the per-element char casts.
// Grounded on ps/foreach.rs's ForEach.
type ForEach struct{ rule.Base }

func (ForEach) Name() string { return "ForEach" }

func (ForEach) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "pipeline_expression" || n.ChildCount() != 2 {
		return
	}
	source, ok := v.Get(n.Child(0))
	if !ok || source.Kind != value.KindArray {
		return
	}
	cmd := n.Child(1)
	if cmd.Kind != "command_invocation" || !isForEachCommandName(cmd.Text) || cmd.ChildCount() != 1 {
		return
	}
	block := cmd.Child(0)
	if block.Kind != "script_block" {
		return
	}
	marker, ok := v.Get(block)
	if !ok || marker.Kind != value.KindType || marker.TypeString() != psItemCharMarker {
		return
	}
	out := make([]value.Value, 0, len(source.Elems()))
	for _, e := range source.Elems() {
		folded := value.CastToChar(e)
		if !folded.Ok {
			return
		}
		out = append(out, folded.Value)
	}
	v.Set(n, value.Array(out).AsRaw())
}

func isForEachCommandName(name string) bool {
	return strings.EqualFold(name, "%") || strings.EqualFold(name, "ForEach-Object") || strings.EqualFold(name, "foreach")
}
