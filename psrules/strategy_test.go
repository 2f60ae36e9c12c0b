package psrules

import (
	"testing"

	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

func node(id int, kind tree.Kind, children ...*tree.Node) *tree.Node {
	n := &tree.Node{ID: id, Kind: kind, Children: children}
	for _, c := range children {
		c.Parent = n
	}
	return n
}

func TestIfBodyFlowTrueCondition(t *testing.T) {
	cond := node(1, "literal")
	body := node(2, "script_block")
	ifStmt := node(3, "if_statement", cond, body)
	_ = ifStmt

	v := tree.NewView(ifStmt)
	v.Set(cond, value.Bool(true).AsRaw())

	ctl := PowershellStrategy{}.Control(v, body, tree.Predictable)
	if ctl.Break || ctl.Flow != tree.Predictable {
		t.Fatalf("expected Continue(Predictable), got %+v", ctl)
	}
}

func TestIfBodyFlowFalseConditionSkipsBody(t *testing.T) {
	cond := node(1, "literal")
	body := node(2, "script_block")
	node(3, "if_statement", cond, body)

	v := tree.NewView(nil)
	v.Set(cond, value.Bool(false).AsRaw())

	ctl := PowershellStrategy{}.Control(v, body, tree.Predictable)
	if !ctl.Break {
		t.Fatalf("expected Stop(), got %+v", ctl)
	}
}

func TestIfBodyFlowUnknownConditionIsUnpredictable(t *testing.T) {
	cond := node(1, "variable")
	body := node(2, "script_block")
	node(3, "if_statement", cond, body)

	v := tree.NewView(nil)

	ctl := PowershellStrategy{}.Control(v, body, tree.Predictable)
	if ctl.Break || ctl.Flow != tree.Unpredictable {
		t.Fatalf("expected Continue(Unpredictable), got %+v", ctl)
	}
}

func TestElseBodyUnreachableWhenIfResolvedTrue(t *testing.T) {
	cond := node(1, "literal")
	ifBody := node(2, "script_block")
	elseBody := node(3, "script_block")
	node(4, "if_statement", cond, ifBody, elseBody)

	v := tree.NewView(nil)
	v.Set(cond, value.Bool(true).AsRaw())

	ctl := PowershellStrategy{}.Control(v, elseBody, tree.Predictable)
	if !ctl.Break {
		t.Fatalf("expected Stop() for unreachable else body, got %+v", ctl)
	}
}

func TestElseBodyPredictableWhenIfResolvedFalse(t *testing.T) {
	cond := node(1, "literal")
	ifBody := node(2, "script_block")
	elseBody := node(3, "script_block")
	node(4, "if_statement", cond, ifBody, elseBody)

	v := tree.NewView(nil)
	v.Set(cond, value.Bool(false).AsRaw())

	ctl := PowershellStrategy{}.Control(v, elseBody, tree.Predictable)
	if ctl.Break || ctl.Flow != tree.Predictable {
		t.Fatalf("expected Continue(Predictable), got %+v", ctl)
	}
}

func TestWhileBodyAlwaysUnpredictable(t *testing.T) {
	cond := node(1, "literal")
	body := node(2, "script_block")
	whileStmt := node(3, "while_statement", cond, body)

	v := tree.NewView(nil)
	stmtCtl := PowershellStrategy{}.Control(v, whileStmt, tree.Predictable)
	if stmtCtl.Flow != tree.Unpredictable {
		t.Fatalf("expected while_statement itself to classify Unpredictable, got %+v", stmtCtl)
	}
	bodyCtl := PowershellStrategy{}.Control(v, body, stmtCtl.Flow)
	if bodyCtl.Flow != tree.Unpredictable {
		t.Fatalf("expected body to inherit Unpredictable, got %+v", bodyCtl)
	}
}

func TestInheritedUnpredictableIsSticky(t *testing.T) {
	body := node(1, "script_block")
	v := tree.NewView(nil)
	ctl := PowershellStrategy{}.Control(v, body, tree.Unpredictable)
	if ctl.Flow != tree.Unpredictable {
		t.Fatalf("expected sticky Unpredictable, got %+v", ctl)
	}
}
