// Package value implements the inferred-value lattice the engine annotates
// parse tree nodes with: the typed, closed set of compile-time-foldable
// PowerShell values (numbers, strings, booleans, arrays, hashtables, types,
// null) plus the Raw/forwarded distinction described in the engine design.
package value

import (
	"fmt"
	"strings"
)

// Kind identifies which variant of the lattice a Value holds.
type Kind int

const (
	Invalid Kind = iota
	KindNum
	KindStr
	KindBool
	KindArray
	KindHashEntry
	KindHash
	KindType
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindNum:
		return "Num"
	case KindStr:
		return "Str"
	case KindBool:
		return "Bool"
	case KindArray:
		return "Array"
	case KindHashEntry:
		return "HashEntry"
	case KindHash:
		return "Hash"
	case KindType:
		return "Type"
	case KindNull:
		return "Null"
	default:
		return "Invalid"
	}
}

// HashEntry is a single key/value pair of a Hash value.
type HashEntry struct {
	Key   Value
	Val   Value
}

// Value is a single point in the inferred-value lattice. It is a closed
// tagged union: exactly one of the typed fields is meaningful, selected by
// Kind. IsRaw distinguishes a value a rule established directly at this
// node (a literal, "the authority to be substituted by the renderer") from
// a value merely forwarded up through a transparent grammar wrapper.
type Value struct {
	Kind  Kind
	IsRaw bool

	num  int64
	str  string
	b    bool
	arr  []Value
	hash []HashEntry
	typ  string
}

// Num constructs a (non-raw) integer value.
func Num(n int64) Value { return Value{Kind: KindNum, num: n} }

// Str constructs a (non-raw) string value.
func Str(s string) Value { return Value{Kind: KindStr, str: s} }

// Bool constructs a (non-raw) boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, b: b} }

// Array constructs a (non-raw) ordered array value. Elements are copied by
// reference to a fresh slice so callers may reuse their backing slice.
func Array(elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{Kind: KindArray, arr: cp}
}

// Hash constructs a (non-raw) ordered hashtable value.
func Hash(entries []HashEntry) Value {
	cp := make([]HashEntry, len(entries))
	copy(cp, entries)
	return Value{Kind: KindHash, hash: cp}
}

// HashEntryValue constructs a single hashtable entry as a Value.
func HashEntryValue(key, val Value) Value {
	return Value{Kind: KindHashEntry, hash: []HashEntry{{Key: key, Val: val}}}
}

// TypeName constructs a (non-raw) type-name value, e.g. "System.Text.Encoding".
func TypeName(name string) Value { return Value{Kind: KindType, typ: normalizeTypeName(name)} }

// Null constructs the (non-raw) null value.
func Null() Value { return Value{Kind: KindNull} }

// AsRaw returns a copy of v marked as a literal established at its own
// node, rather than forwarded from a child.
func (v Value) AsRaw() Value {
	v.IsRaw = true
	return v
}

// Forwarded returns a copy of v with the Raw tag stripped, the
// transformation the Forward rule applies when propagating a child's
// value through a transparent wrapper node.
func (v Value) Forwarded() Value {
	v.IsRaw = false
	return v
}

// IsRawKind reports whether v is a Raw value of the given kind.
func (v Value) IsRawKind(k Kind) bool { return v.IsRaw && v.Kind == k }

// Int returns the underlying integer for a Num value.
func (v Value) Int() int64 {
	if v.Kind != KindNum {
		panic("value: Int called on non-Num value")
	}
	return v.num
}

// String returns the string form of v: a Str's text, a Num in decimal,
// True/False for a Bool, and an Array's elements joined by spaces.
func (v Value) String() string {
	switch v.Kind {
	case KindNum:
		return fmt.Sprintf("%d", v.num)
	case KindStr:
		return v.str
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindType:
		return v.typ
	case KindNull:
		return ""
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// BoolVal returns the underlying boolean for a Bool value.
func (v Value) BoolVal() bool {
	if v.Kind != KindBool {
		panic("value: BoolVal called on non-Bool value")
	}
	return v.b
}

// Elems returns the underlying elements of an Array value.
func (v Value) Elems() []Value {
	if v.Kind != KindArray {
		panic("value: Elems called on non-Array value")
	}
	return v.arr
}

// Entries returns the underlying entries of a Hash value.
func (v Value) Entries() []HashEntry {
	if v.Kind != KindHash {
		panic("value: Entries called on non-Hash value")
	}
	return v.hash
}

// TypeString returns the normalized type name of a Type value.
func (v Value) TypeString() string {
	if v.Kind != KindType {
		panic("value: TypeString called on non-Type value")
	}
	return v.typ
}

// Equal reports whether two values are identical for the purposes of the
// engine's dirty-flag check: same kind, same raw tag, structurally equal
// payload. String comparisons are ordinal (case matters for equality of the
// annotation itself; PowerShell's case-insensitive -eq semantics live in
// the Comparison rule, not here).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind || a.IsRaw != b.IsRaw {
		return false
	}
	switch a.Kind {
	case KindNum:
		return a.num == b.num
	case KindStr, KindType:
		return a.str == b.str && a.typ == b.typ
	case KindBool:
		return a.b == b.b
	case KindNull:
		return true
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindHash, KindHashEntry:
		if len(a.hash) != len(b.hash) {
			return false
		}
		for i := range a.hash {
			if !Equal(a.hash[i].Key, b.hash[i].Key) || !Equal(a.hash[i].Val, b.hash[i].Val) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func normalizeTypeName(name string) string {
	name = strings.TrimPrefix(name, "[")
	name = strings.TrimSuffix(name, "]")
	return strings.TrimSpace(name)
}
