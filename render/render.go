// Package render walks an annotated tree and produces deobfuscated source
// text, grounded on the original's ps/litter.rs printer and ps/linter.rs
// lint-and-clean rules. Unlike litter.rs's text-range splicing (which reads
// back slices of the original source by node span), package cst's Node
// carries no reliable source span once converted from the participle parse
// tree, so this renderer synthesizes text structurally from Kind/Text/
// Children instead -- the same node-kind dispatch litter.rs uses, just
// printing rather than slicing.
package render

import (
	"strconv"
	"strings"

	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// TokenKind is the small alphabet the HTML-tagged renderer exposes per
// emission, per spec.md's "external collaborator" contract.
type TokenKind string

const (
	Keyword  TokenKind = "keyword"
	Number   TokenKind = "number"
	String   TokenKind = "string"
	Variable TokenKind = "variable"
	Type     TokenKind = "type"
	Operator TokenKind = "operator"
	Comment  TokenKind = "comment"
)

// Options configures a render.
type Options struct {
	// Tab is the indent unit used for each nested script_block. Defaults to
	// a single space, matching litter.rs's Litter::new.
	Tab string

	// RemoveDeadAssignments drops assignment statements whose variable is
	// never read anywhere in the tree, grounded on ps/linter.rs's
	// RemoveUnusedVar (there driven by a separate UnusedVar collector rule;
	// here computed directly from the tree since our assignment_expression
	// already excludes its own LHS from read-counting by construction --
	// the left-hand side is carried as Text, not a sibling "variable" node).
	RemoveDeadAssignments bool
}

func (o Options) tab() string {
	if o.Tab == "" {
		return " "
	}
	return o.Tab
}

// Render produces plain deobfuscated source text for root.
func Render(root *tree.Node, v *tree.View, opts Options) string {
	var sb strings.Builder
	r := newRenderer(root, v, opts, func(_ TokenKind, text string) {
		sb.WriteString(text)
	})
	r.print(root)
	return sb.String()
}

// RenderTagged produces HTML output with each non-structural token wrapped
// in a <span class="tok-KIND"> per spec.md's "external collaborator" HTML
// variant.
func RenderTagged(root *tree.Node, v *tree.View, opts Options) string {
	var sb strings.Builder
	r := newRenderer(root, v, opts, func(kind TokenKind, text string) {
		if kind == "" {
			sb.WriteString(text)
			return
		}
		sb.WriteString(`<span class="tok-`)
		sb.WriteString(string(kind))
		sb.WriteString(`">`)
		sb.WriteString(htmlEscape(text))
		sb.WriteString(`</span>`)
	})
	r.print(root)
	return sb.String()
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}

// DeadAssignments returns the lowercase variable names assigned somewhere in
// root but never read by a "variable" node, matching ps/linter.rs's
// RemoveUnusedVar semantics.
func DeadAssignments(root *tree.Node) map[string]bool {
	read := make(map[string]bool)
	assigned := make(map[string]bool)
	root.Walk(func(n *tree.Node) {
		switch n.Kind {
		case "variable":
			read[strings.ToLower(n.Text)] = true
		case "assignment_expression":
			assigned[strings.ToLower(n.Text)] = true
		}
	})
	dead := make(map[string]bool)
	for name := range assigned {
		if !read[name] {
			dead[name] = true
		}
	}
	return dead
}

// StripComments removes PowerShell line and block comments from source
// text, grounded on ps/linter.rs's RemoveComment. That rule operates on the
// tree-sitter tree's comment nodes and their byte ranges; package cst's
// lexer elides comments before they ever reach the parser (see
// cst.newLexer), so no comment node survives into the tree for a tree-level
// pass to remove -- this does the equivalent work at the source-text stage
// instead, before parsing.
func StripComments(source string) string {
	var sb strings.Builder
	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '#' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			if i < len(runes) {
				sb.WriteRune(runes[i])
			}
			continue
		}
		if runes[i] == '<' && i+1 < len(runes) && runes[i+1] == '#' {
			i += 2
			for i+1 < len(runes) && !(runes[i] == '#' && runes[i+1] == '>') {
				i++
			}
			i++ // land on '>'
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

type renderer struct {
	v     *tree.View
	emit  func(TokenKind, string)
	tab   string
	depth int
	dead  map[string]bool
}

func newRenderer(root *tree.Node, v *tree.View, opts Options, emit func(TokenKind, string)) *renderer {
	r := &renderer{v: v, emit: emit, tab: opts.tab()}
	if opts.RemoveDeadAssignments {
		r.dead = DeadAssignments(root)
	} else {
		r.dead = map[string]bool{}
	}
	return r
}

func (r *renderer) indent() string {
	return strings.Repeat(r.tab, r.depth)
}

func (r *renderer) keyword(text string) { r.emit(Keyword, text) }
func (r *renderer) op(text string)      { r.emit(Operator, text) }
func (r *renderer) raw(text string)     { r.emit("", text) }

// print is litter.rs's Print::print: check the inferred-value annotation
// first, substitute the pretty-printed literal when one exists, otherwise
// dispatch structurally on node kind.
func (r *renderer) print(n *tree.Node) {
	if n == nil {
		return
	}
	if ann, ok := r.v.Get(n); ok && ann.IsRaw {
		r.printValue(ann)
		return
	}
	switch n.Kind {
	case "program":
		r.statementList(n.Children)
	case "script_block":
		r.scriptBlock(n)
	case "if_statement":
		r.ifStatement(n)
	case "while_statement":
		r.keyword("while")
		r.raw(" (")
		r.print(n.Child(0))
		r.raw(")\n" + r.indent())
		r.print(n.Child(1))
	case "foreach_statement":
		r.keyword("foreach")
		r.raw(" (")
		r.emit(Variable, "$"+strings.ToLower(n.Text))
		r.raw(" ")
		r.keyword("in")
		r.raw(" ")
		r.print(n.Child(0))
		r.raw(")\n" + r.indent())
		r.print(n.Child(1))
	case "function_definition":
		r.keyword("function")
		r.raw(" " + n.Text + "\n" + r.indent())
		r.print(n.Child(0))
	case "return_statement":
		r.keyword("return")
		if n.ChildCount() == 1 {
			r.raw(" ")
			r.print(n.Child(0))
		}
	case "assignment_expression":
		r.emit(Variable, "$"+strings.ToLower(n.Text))
		r.op(" = ")
		r.print(n.Child(0))
	case "pipeline_expression":
		r.joinChildren(n.Children, " | ")
	case "array_literal":
		r.joinChildren(n.Children, ", ")
	case "array_expression":
		r.raw("@(")
		r.joinChildren(n.Children, ", ")
		r.raw(")")
	case "command_invocation":
		r.raw(strings.ToLower(n.Text))
		for _, c := range n.Children {
			r.raw(" ")
			r.print(c)
		}
	case "invocation_expression":
		r.print(n.Child(0))
		r.op(".")
		r.raw(n.Text)
		r.raw("(")
		for i, a := range n.Children[1:] {
			if i > 0 {
				r.op(", ")
			}
			r.print(a)
		}
		r.raw(")")
	case "static_member_access":
		r.print(n.Child(0))
		r.op("::")
		r.raw(n.Text)
	case "member_access":
		r.print(n.Child(0))
		r.op(".")
		r.raw(n.Text)
	case "element_access":
		r.print(n.Child(0))
		r.raw("[")
		r.print(n.Child(1))
		r.raw("]")
	case "range_expression":
		r.print(n.Child(0))
		r.op("..")
		r.print(n.Child(1))
	case "additive_expression", "multiplicative_expression", "binary_expression", "logical_expression":
		r.print(n.Child(0))
		r.op(" " + n.Text + " ")
		r.print(n.Child(1))
	case "cast_expression":
		r.emit(Type, "["+n.Text+"]")
		r.raw(" ")
		r.print(n.Child(0))
	case "unary_expression":
		r.op(n.Text)
		if isWordOp(n.Text) {
			r.raw(" ")
		}
		r.print(n.Child(0))
	case "paren_expression":
		r.raw("(")
		r.print(n.Child(0))
		r.raw(")")
	case "subexpression":
		r.raw("$(")
		r.statementList(n.Children)
		r.raw(")")
	case "hash_literal":
		r.raw("@{")
		for i, c := range n.Children {
			if i > 0 {
				r.raw("; ")
			}
			r.print(c)
		}
		r.raw("}")
	case "hash_entry":
		r.print(n.Child(0))
		r.op(" = ")
		r.print(n.Child(1))
	case "variable":
		r.emit(Variable, "$"+strings.ToLower(n.Text))
	case "type_literal":
		r.emit(Type, "["+n.Text+"]")
	case "decimal_integer_literal", "float_literal":
		r.emit(Number, n.Text)
	case "string_literal":
		r.emit(String, n.Text)
	case "null_literal":
		r.keyword("$null")
	default:
		r.raw(n.Text)
	}
}

func (r *renderer) joinChildren(children []*tree.Node, sep string) {
	for i, c := range children {
		if i > 0 {
			r.op(sep)
		}
		r.print(c)
	}
}

// statementList prints each statement on its own indented line, dropping
// dead assignments in place (RemoveDeadAssignments), mirroring
// ps/linter.rs's RemoveUnusedVar skip-at-print-time behavior.
func (r *renderer) statementList(children []*tree.Node) {
	first := true
	for _, c := range children {
		if c.Kind == "assignment_expression" && r.dead[strings.ToLower(c.Text)] {
			continue
		}
		if !first {
			r.raw("\n" + r.indent())
		}
		first = false
		r.print(c)
	}
}

func (r *renderer) scriptBlock(n *tree.Node) {
	r.raw("{\n")
	r.depth++
	r.raw(r.indent())
	r.statementList(n.Children)
	r.depth--
	r.raw("\n" + r.indent() + "}")
}

// ifStatement prints the flat if_statement child layout
// [cond0, body0, (condN, bodyN)*, elseBody?], mirroring
// psrules.splitIfStatement's layout assumption (len(rest)%2==1 marks a
// trailing else body).
func (r *renderer) ifStatement(n *tree.Node) {
	r.keyword("if")
	r.raw(" (")
	r.print(n.Children[0])
	r.raw(")\n" + r.indent())
	r.print(n.Children[1])

	i := 2
	for len(n.Children)-i >= 2 {
		r.raw("\n" + r.indent())
		r.keyword("elseif")
		r.raw(" (")
		r.print(n.Children[i])
		r.raw(")\n" + r.indent())
		r.print(n.Children[i+1])
		i += 2
	}
	if i < len(n.Children) {
		r.raw("\n" + r.indent())
		r.keyword("else")
		r.raw("\n" + r.indent())
		r.print(n.Children[i])
	}
}

func isWordOp(op string) bool {
	switch op {
	case "-", "+", "!":
		return false
	default:
		return true
	}
}

// printValue pretty-prints a folded value per spec.md §4.7: Num decimal,
// Str double-quoted with PowerShell backtick escapes, Bool $true/$false,
// Array @(e1, e2, ...), Hash @{k = v; ...}, Null $null, Type [Name].
func (r *renderer) printValue(v value.Value) {
	switch v.Kind {
	case value.KindNum:
		r.emit(Number, strconv.FormatInt(v.Int(), 10))
	case value.KindStr:
		r.emit(String, `"`+escapePSString(v.String())+`"`)
	case value.KindBool:
		if v.BoolVal() {
			r.keyword("$true")
		} else {
			r.keyword("$false")
		}
	case value.KindArray:
		r.raw("@(")
		for i, e := range v.Elems() {
			if i > 0 {
				r.op(", ")
			}
			r.printValue(e)
		}
		r.raw(")")
	case value.KindHash:
		r.raw("@{")
		for i, e := range v.Entries() {
			if i > 0 {
				r.raw("; ")
			}
			r.printValue(e.Key)
			r.op(" = ")
			r.printValue(e.Val)
		}
		r.raw("}")
	case value.KindNull:
		r.keyword("$null")
	case value.KindType:
		r.emit(Type, "["+v.TypeString()+"]")
	default:
		r.raw(v.String())
	}
}

// escapePSString backtick-escapes embedded double quotes, grounded on
// ps/linter.rs's escape_string: a '"' is escaped unless the preceding rune
// was already a backtick (avoids double-escaping a literal `" sequence).
func escapePSString(s string) string {
	var sb strings.Builder
	prevBacktick := false
	for _, c := range s {
		if c == '"' && !prevBacktick {
			sb.WriteByte('`')
		}
		sb.WriteRune(c)
		prevBacktick = c == '`'
	}
	return sb.String()
}
