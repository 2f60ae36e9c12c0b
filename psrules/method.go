package psrules

import (
	"encoding/base64"
	"strings"
	"unicode/utf16"

	"github.com/minusone-go/minusone/rule"
	"github.com/minusone-go/minusone/tree"
	"github.com/minusone-go/minusone/value"
)

// DecodeBase64 folds [Convert]::FromBase64String(s) over a known Str
// argument to the decoded byte array, grounded on ps/b64.rs / ps/method.rs.
type DecodeBase64 struct{ rule.Base }

func (DecodeBase64) Name() string { return "DecodeBase64" }

func (DecodeBase64) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "invocation_expression" || !strings.EqualFold(n.Text, "FromBase64String") {
		return
	}
	if n.ChildCount() != 2 {
		return
	}
	typeLit := n.Child(0)
	if typeLit.Kind != "type_literal" || !strings.EqualFold(typeLit.Text, "Convert") {
		return
	}
	arg, ok := v.Get(n.Child(1))
	if !ok || arg.Kind != value.KindStr {
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(arg.String()))
	if err != nil {
		return
	}
	elems := make([]value.Value, len(decoded))
	for i, b := range decoded {
		elems[i] = value.Num(int64(b))
	}
	v.Set(n, value.Array(elems).AsRaw())
}

var encodingNames = map[string]bool{"utf8": true, "utf7": true, "unicode": true, "ascii": true}

// FromUTF folds [System.Text.Encoding]::<Enc>.GetString(bytes), where <Enc>
// is UTF8, UTF7, Unicode (UTF-16LE) or ASCII, over a known Array(Num) of
// byte values, grounded on ps/fromutf.rs.
type FromUTF struct{ rule.Base }

func (FromUTF) Name() string { return "FromUTF" }

func (FromUTF) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "invocation_expression" || n.ChildCount() != 2 {
		return
	}
	// The Ident token admits '.', so `[T]::UTF8.GetString(x)` arrives as one
	// invocation named "UTF8.GetString" whose first child is the type itself.
	name := strings.ToLower(n.Text)
	encName, typeLit := strings.TrimSuffix(name, ".getstring"), n.Child(0)
	if name == "getstring" && typeLit.Kind == "static_member_access" {
		encName, typeLit = strings.ToLower(typeLit.Text), typeLit.Child(0)
	} else if encName == name {
		return
	}
	if !encodingNames[encName] || typeLit == nil || typeLit.Kind != "type_literal" || !strings.Contains(strings.ToLower(typeLit.Text), "encoding") {
		return
	}
	bytesVal, ok := v.Get(n.Child(1))
	if !ok || bytesVal.Kind != value.KindArray {
		return
	}
	raw := make([]byte, len(bytesVal.Elems()))
	for i, e := range bytesVal.Elems() {
		if e.Kind != value.KindNum || e.Int() < 0 || e.Int() > 255 {
			return
		}
		raw[i] = byte(e.Int())
	}
	var decoded string
	switch encName {
	case "ascii", "utf8", "utf7":
		decoded = string(raw)
	case "unicode":
		if len(raw)%2 != 0 {
			return
		}
		u16 := make([]uint16, len(raw)/2)
		for i := range u16 {
			u16[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
		}
		decoded = string(utf16.Decode(u16))
	default:
		return
	}
	v.Set(n, value.Str(decoded).AsRaw())
}

// Length folds `.length`/`.count` member access over a known Str/Array
// base to its element/rune count, grounded on ps/method.rs.
type Length struct{ rule.Base }

func (Length) Name() string { return "Length" }

func (Length) Leave(v *tree.View, n *tree.Node, _ tree.BranchFlow) {
	if n.Kind != "member_access" {
		return
	}
	name := strings.ToLower(n.Text)
	if name != "length" && name != "count" {
		return
	}
	if n.ChildCount() != 1 {
		return
	}
	base, ok := v.Get(n.Child(0))
	if !ok {
		return
	}
	switch base.Kind {
	case value.KindStr:
		v.Set(n, value.Num(int64(len([]rune(base.String())))).AsRaw())
	case value.KindArray:
		v.Set(n, value.Num(int64(len(base.Elems()))).AsRaw())
	}
}
