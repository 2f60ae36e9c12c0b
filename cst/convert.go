package cst

import (
	"strings"

	"github.com/minusone-go/minusone/tree"
)

// converter assigns stable, increasing IDs to every node it creates, so
// the annotation side table in package tree can key off node identity.
type converter struct {
	nextID int
}

func newConverter() *converter { return &converter{} }

func (c *converter) id() int {
	c.nextID++
	return c.nextID
}

func (c *converter) node(kind tree.Kind, text string, children ...*tree.Node) *tree.Node {
	n := &tree.Node{ID: c.id(), Kind: kind, Text: text, Children: children}
	for _, ch := range children {
		if ch != nil {
			ch.Parent = n
		}
	}
	return n
}

func normalizeType(t string) string {
	t = strings.TrimPrefix(t, "[")
	t = strings.TrimSuffix(t, "]")
	return t
}

func normalizeVar(v string) string {
	v = strings.TrimPrefix(v, "$")
	v = strings.TrimPrefix(v, "{")
	v = strings.TrimSuffix(v, "}")
	return v
}

func (c *converter) program(p *program) *tree.Node {
	children := make([]*tree.Node, 0, len(p.Stmts))
	for _, s := range p.Stmts {
		if n := c.statement(s); n != nil {
			children = append(children, n)
		}
	}
	return c.node("program", "", children...)
}

func (c *converter) statement(s *statement) *tree.Node {
	switch {
	case s.If != nil:
		return c.ifStmt(s.If)
	case s.While != nil:
		return c.whileStmt(s.While)
	case s.Foreach != nil:
		return c.foreachStmt(s.Foreach)
	case s.Function != nil:
		return c.funcDef(s.Function)
	case s.Return != nil:
		return c.returnStmt(s.Return)
	case s.Assign != nil:
		return c.assignStmt(s.Assign)
	case s.Expr != nil:
		return c.pipeline(s.Expr)
	default:
		return nil
	}
}

func (c *converter) ifStmt(s *ifStmt) *tree.Node {
	children := []*tree.Node{c.pipeline(s.Cond), c.scriptBlock(s.Body)}
	for _, ei := range s.ElseIfs {
		children = append(children, c.pipeline(ei.Cond), c.scriptBlock(ei.Body))
	}
	if s.Else != nil {
		children = append(children, c.scriptBlock(s.Else))
	}
	return c.node("if_statement", "", children...)
}

func (c *converter) whileStmt(s *whileStmt) *tree.Node {
	return c.node("while_statement", "", c.pipeline(s.Cond), c.scriptBlock(s.Body))
}

func (c *converter) foreachStmt(s *foreachStmt) *tree.Node {
	return c.node("foreach_statement", normalizeVar(s.Var), c.pipeline(s.Iter), c.scriptBlock(s.Body))
}

func (c *converter) funcDef(s *funcDef) *tree.Node {
	return c.node("function_definition", s.Name, c.scriptBlock(s.Body))
}

func (c *converter) returnStmt(s *returnStmt) *tree.Node {
	if s.Value == nil {
		return c.node("return_statement", "")
	}
	return c.node("return_statement", "", c.pipeline(s.Value))
}

func (c *converter) assignStmt(s *assignStmt) *tree.Node {
	return c.node("assignment_expression", normalizeVar(s.Name), c.pipeline(s.Value))
}

func (c *converter) scriptBlock(s *scriptBlockExpr) *tree.Node {
	if s == nil {
		return c.node("script_block", "")
	}
	return c.node("script_block", "", c.program(s.Body).Children...)
}

// pipeline produces "pipeline_expression" only for genuine '|' chains; a
// single stage passes through to exprList without a wrapper.
func (c *converter) pipeline(p *pipelineExpr) *tree.Node {
	if len(p.Rest) == 0 {
		return c.exprList(p.First)
	}
	children := make([]*tree.Node, 0, len(p.Rest)+1)
	children = append(children, c.exprList(p.First))
	for _, e := range p.Rest {
		children = append(children, c.exprList(e))
	}
	return c.node("pipeline_expression", "", children...)
}

// exprList produces "array_literal" only for genuinely comma-joined lists;
// a single element passes through without a wrapper, leaving the Forward
// rule nothing to do here (there is no syntactic ambiguity to resolve).
func (c *converter) exprList(e *exprList) *tree.Node {
	if len(e.Rest) == 0 {
		return c.or(e.First)
	}
	children := make([]*tree.Node, 0, len(e.Rest)+1)
	children = append(children, c.or(e.First))
	for _, o := range e.Rest {
		children = append(children, c.or(o))
	}
	return c.node("array_literal", "", children...)
}

func (c *converter) or(o *orExpr) *tree.Node {
	acc := c.and(o.Left)
	for _, r := range o.Rest {
		acc = c.node("logical_expression", strings.ToLower(r.Op), acc, c.and(r.Right))
	}
	return acc
}

func (c *converter) and(a *andExpr) *tree.Node {
	acc := c.comparison(a.Left)
	for _, r := range a.Rest {
		acc = c.node("logical_expression", strings.ToLower(r.Op), acc, c.comparison(r.Right))
	}
	return acc
}

func (c *converter) comparison(cm *comparisonExpr) *tree.Node {
	acc := c.format(cm.Left)
	for _, r := range cm.Rest {
		acc = c.node("binary_expression", strings.ToLower(r.Op), acc, c.format(r.Right))
	}
	return acc
}

func (c *converter) format(f *formatExpr) *tree.Node {
	acc := c.additive(f.Left)
	for _, r := range f.Rest {
		acc = c.node("binary_expression", strings.ToLower(r.Op), acc, c.additive(r.Right))
	}
	return acc
}

func (c *converter) additive(a *additiveExpr) *tree.Node {
	acc := c.multiplicative(a.Left)
	for _, r := range a.Rest {
		acc = c.node("additive_expression", r.Op, acc, c.multiplicative(r.Right))
	}
	return acc
}

func (c *converter) multiplicative(m *multiplicativeExpr) *tree.Node {
	acc := c.rangeExpr(m.Left)
	for _, r := range m.Rest {
		acc = c.node("multiplicative_expression", r.Op, acc, c.rangeExpr(r.Right))
	}
	return acc
}

func (c *converter) rangeExpr(r *rangeExpr) *tree.Node {
	left := c.unary(r.Left)
	if r.Right == nil {
		return left
	}
	return c.node("range_expression", "", left, c.unary(r.Right))
}

func (c *converter) unary(u *unaryExpr) *tree.Node {
	inner := c.cast(u.Expr)
	switch {
	case u.Neg:
		return c.node("unary_expression", "-", inner)
	case u.Pos:
		return c.node("unary_expression", "+", inner)
	case u.Not:
		return c.node("unary_expression", "!", inner)
	case u.NotOp:
		return c.node("unary_expression", "-not", inner)
	case u.Join:
		return c.node("unary_expression", "-join", inner)
	case u.Split:
		return c.node("unary_expression", "-split", inner)
	default:
		return inner
	}
}

func (c *converter) cast(ce *castExpr) *tree.Node {
	if ce.Cast != nil {
		return c.node("cast_expression", normalizeType(ce.Cast.Type), c.cast(ce.Cast.Operand))
	}
	return c.postfix(ce.Post)
}

func (c *converter) postfix(p *postfixExpr) *tree.Node {
	acc := c.primary(p.Base)
	for _, op := range p.Ops {
		switch {
		case op.Index != nil:
			acc = c.node("element_access", "", acc, c.pipeline(op.Index))
		case op.Member != nil:
			if op.Member.Args != nil {
				children := append([]*tree.Node{acc}, c.argList(op.Member.Args)...)
				acc = c.node("invocation_expression", op.Member.Name, children...)
			} else {
				acc = c.node("member_access", op.Member.Name, acc)
			}
		}
	}
	return acc
}

func (c *converter) argList(a *argList) []*tree.Node {
	if a == nil {
		return nil
	}
	out := make([]*tree.Node, 0, len(a.Rest)+1)
	out = append(out, c.or(a.First))
	for _, o := range a.Rest {
		out = append(out, c.or(o))
	}
	return out
}

func (c *converter) primary(p *primary) *tree.Node {
	switch {
	case p.StaticMember != nil:
		return c.staticMember(p.StaticMember)
	case p.SubExpr != nil:
		return c.node("subexpression", "", c.program(p.SubExpr.Body).Children...)
	case p.Paren != nil:
		return c.node("paren_expression", "", c.pipeline(p.Paren))
	case p.ArraySub != nil:
		if p.ArraySub.Body == nil {
			return c.node("array_expression", "")
		}
		inner := c.pipeline(p.ArraySub.Body)
		if inner.Kind == "array_literal" {
			return c.node("array_expression", "", inner.Children...)
		}
		return c.node("array_expression", "", inner)
	case p.HashLit != nil:
		return c.hashLit(p.HashLit)
	case p.ScriptBlock != nil:
		return c.scriptBlock(p.ScriptBlock)
	case p.Float != nil:
		return c.node("float_literal", *p.Float)
	case p.Int != nil:
		return c.node("decimal_integer_literal", *p.Int)
	case p.Str != nil:
		return c.node("string_literal", *p.Str)
	case p.Var != nil:
		return c.node("variable", normalizeVar(*p.Var))
	case p.Command != nil:
		return c.command(p.Command)
	default:
		return c.node("null_literal", "")
	}
}

func (c *converter) staticMember(s *staticMemberExpr) *tree.Node {
	typeNode := c.node("type_literal", normalizeType(s.Type))
	if s.Args == nil {
		return c.node("static_member_access", s.Member, typeNode)
	}
	children := append([]*tree.Node{typeNode}, c.argList(s.Args)...)
	return c.node("invocation_expression", s.Member, children...)
}

func (c *converter) hashLit(h *hashLitExpr) *tree.Node {
	children := make([]*tree.Node, 0, len(h.Entries))
	for _, e := range h.Entries {
		key := c.node("string_literal", "'"+strings.Trim(e.Key, `'"`)+"'")
		children = append(children, c.node("hash_entry", "", key, c.pipeline(e.Value)))
	}
	return c.node("hash_literal", "", children...)
}

func (c *converter) command(cmd *commandExpr) *tree.Node {
	children := make([]*tree.Node, 0, len(cmd.Args))
	for _, a := range cmd.Args {
		children = append(children, c.primary(a))
	}
	return c.node("command_invocation", cmd.Name, children...)
}
