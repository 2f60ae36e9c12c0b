package psrules

import (
	"strings"

	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// ParseString resolves a string literal node's raw source text (quotes and
// PowerShell escapes included) to a Raw Str, grounded on ps/string.rs's
// ParseString. Single-quoted strings only escape a doubled quote.
// Double-quoted strings unescape `", `n, `t and `r; other backtick escapes
// and `$` interpolation are kept as written. Here-strings yield the text
// between their delimiter lines, with no escape processing.
type ParseString struct{ rule.Base }

func (ParseString) Name() string { return "ParseString" }

func (ParseString) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "string_literal" {
		return
	}
	text := n.Text
	if len(text) < 2 {
		return
	}
	switch text[0] {
	case '\'':
		inner := text[1 : len(text)-1]
		v.Set(n, value.Str(strings.ReplaceAll(inner, "''", "'")).AsRaw())
	case '"':
		inner := text[1 : len(text)-1]
		inner = strings.ReplaceAll(inner, "`\"", "\"")
		inner = strings.ReplaceAll(inner, "`n", "\n")
		inner = strings.ReplaceAll(inner, "`t", "\t")
		inner = strings.ReplaceAll(inner, "`r", "\r")
		v.Set(n, value.Str(inner).AsRaw())
	case '@':
		if len(text) < 4 {
			return
		}
		inner := text[2 : len(text)-2]
		inner = strings.TrimPrefix(strings.TrimPrefix(inner, "\r"), "\n")
		inner = strings.TrimSuffix(strings.TrimSuffix(inner, "\n"), "\r")
		v.Set(n, value.Str(inner).AsRaw())
	}
}

// ConcatString restates AddInt's Str+Str branch as its own rule, matching
// the original rule set's split (ps/mod.rs lists both; AddInt's fold
// already covers this case, so this rule is a documented no-op when AddInt
// has already annotated the node with an equal value).
type ConcatString struct{ rule.Base }

func (ConcatString) Name() string { return "ConcatString" }

func (ConcatString) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "additive_expression" || n.Text != "+" || n.ChildCount() != 2 {
		return
	}
	left, ok1 := v.Get(n.Child(0))
	right, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 || left.Kind != value.KindStr || right.Kind != value.KindStr {
		return
	}
	folded := value.Add(left, right)
	if !folded.Ok {
		return
	}
	v.Set(n, folded.Value.AsRaw())
}

// FormatString folds the -f format operator: "{1}-{0}" -f "Debug", "Write".
// Supports positional placeholders only; any other specifier (width,
// alignment, named argument) makes the rule decline.
type FormatString struct{ rule.Base }

func (FormatString) Name() string { return "FormatString" }

func (FormatString) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "binary_expression" || n.Text != "-f" || n.ChildCount() != 2 {
		return
	}
	fmtVal, ok := v.Get(n.Child(0))
	if !ok || fmtVal.Kind != value.KindStr {
		return
	}
	args := flattenArgs(v, n.Child(1))
	if args == nil {
		return
	}
	out, ok := formatPositional(fmtVal.String(), args)
	if !ok {
		return
	}
	v.Set(n, value.Str(out).AsRaw())
}

// flattenArgs reads a node that is either a single already-inferred value
// or an array_literal of them, returning nil if any element is unresolved.
func flattenArgs(v *tree.View, n *tree.Node) []value.Value {
	if n.Kind == "array_literal" {
		out := make([]value.Value, 0, n.ChildCount())
		for _, c := range n.Children {
			ann, ok := v.Get(c)
			if !ok {
				return nil
			}
			out = append(out, ann)
		}
		return out
	}
	ann, ok := v.Get(n)
	if !ok {
		return nil
	}
	return []value.Value{ann}
}

// formatPositional implements .NET's {N} placeholder substitution; any
// other brace content (a width/alignment spec, a named argument, an
// unmatched brace) is unsupported and causes ok=false.
func formatPositional(format string, args []value.Value) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch c {
		case '{':
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return "", false
			}
			spec := format[i+1 : i+end]
			if spec == "" {
				return "", false
			}
			idx := 0
			for _, d := range spec {
				if d < '0' || d > '9' {
					return "", false
				}
				idx = idx*10 + int(d-'0')
			}
			if idx < 0 || idx >= len(args) {
				return "", false
			}
			b.WriteString(args[idx].String())
			i += end
		case '}':
			return "", false
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), true
}

// StringReplaceMethod folds the .Replace(a,b) method call over a known
// string receiver, case-sensitive per .NET's String.Replace. A non-Str
// argument is coerced via its ToString-equivalent representation first,
// matching String.Replace(object,object) and AddInt's Str+Num branch.
type StringReplaceMethod struct{ rule.Base }

func (StringReplaceMethod) Name() string { return "StringReplaceMethod" }

func (StringReplaceMethod) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "invocation_expression" || !strings.EqualFold(n.Text, "Replace") {
		return
	}
	if n.ChildCount() != 3 {
		return
	}
	recv, ok1 := v.Get(n.Child(0))
	from, ok2 := v.Get(n.Child(1))
	to, ok3 := v.Get(n.Child(2))
	if !ok1 || !ok2 || !ok3 || recv.Kind != value.KindStr {
		return
	}
	v.Set(n, value.Str(strings.ReplaceAll(recv.String(), from.String(), to.String())).AsRaw())
}

// replaceMetacharacters is the conservative decline set for StringReplaceOp
// (Open Question decision #1 in DESIGN.md): any of these in the pattern
// argument means it's a real regex, not a literal, and the rule declines.
const replaceMetacharacters = `.$^{}[]()|*+?\`

// StringReplaceOp folds the -replace/-creplace/-ireplace operator when its
// pattern argument contains no regex metacharacters, treating it as a
// literal substring replace (case-insensitive unless the -c variant is
// used, matching String.Replace vs a manual case-insensitive pass).
type StringReplaceOp struct{ rule.Base }

func (StringReplaceOp) Name() string { return "StringReplaceOp" }

func (StringReplaceOp) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "binary_expression" || n.ChildCount() != 2 {
		return
	}
	op := strings.ToLower(n.Text)
	if op != "-replace" && op != "-creplace" && op != "-ireplace" {
		return
	}
	recv, ok := v.Get(n.Child(0))
	if !ok || recv.Kind != value.KindStr {
		return
	}
	pair := flattenArgs(v, n.Child(1))
	if len(pair) != 2 || pair[0].Kind != value.KindStr || pair[1].Kind != value.KindStr {
		return
	}
	pattern, repl := pair[0].String(), pair[1].String()
	if strings.ContainsAny(pattern, replaceMetacharacters) {
		return
	}
	result := recv.String()
	if op == "-creplace" {
		result = strings.ReplaceAll(result, pattern, repl)
	} else {
		result = replaceFold(result, pattern, repl)
	}
	v.Set(n, value.Str(result).AsRaw())
}

// replaceFold is a case-insensitive strings.ReplaceAll.
func replaceFold(s, pattern, repl string) string {
	if pattern == "" {
		return s
	}
	lowerS, lowerP := strings.ToLower(s), strings.ToLower(pattern)
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(lowerS[i:], lowerP)
		if idx < 0 {
			b.WriteString(s[i:])
			break
		}
		b.WriteString(s[i : i+idx])
		b.WriteString(repl)
		i += idx + len(pattern)
	}
	return b.String()
}

// StringSplitMethod folds .Split(sep) over a known string receiver and a
// single known Str separator into an Array(Str), present in the original's
// rule list (ps/string.rs) though only implied by spec.md's JoinOperator
// section (see SPEC_FULL.md §4).
type StringSplitMethod struct{ rule.Base }

func (StringSplitMethod) Name() string { return "StringSplitMethod" }

func (StringSplitMethod) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "invocation_expression" || !strings.EqualFold(n.Text, "Split") {
		return
	}
	if n.ChildCount() != 2 {
		return
	}
	recv, ok1 := v.Get(n.Child(0))
	sep, ok2 := v.Get(n.Child(1))
	if !ok1 || !ok2 || recv.Kind != value.KindStr || sep.Kind != value.KindStr {
		return
	}
	parts := strings.Split(recv.String(), sep.String())
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.Str(p)
	}
	v.Set(n, value.Array(elems).AsRaw())
}
