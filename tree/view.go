package tree

import "github.com/minusone-go/minusone/value"

// View is the annotation side table the engine reads and writes during a
// pass. Keyed by node identity (Node.ID) rather than embedded in Node
// itself, so the CST produced by package cst never needs a mutable
// annotation field of its own — a node may be shared or re-walked without
// caring which table currently describes it.
type View struct {
	Root        *Node
	annotations map[int]value.Value
	bindings    map[string]value.Value
	dirty       bool
}

// Dirty reports whether any Set call changed an annotation since the last
// ResetDirty. Changes to the variable binding table do not count.
func (v *View) Dirty() bool { return v.dirty }

// ResetDirty clears the dirty flag at the start of a new pass.
func (v *View) ResetDirty() { v.dirty = false }

// NewView creates an empty annotation table over root.
func NewView(root *Node) *View {
	return &View{
		Root:        root,
		annotations: make(map[int]value.Value),
		bindings:    make(map[string]value.Value),
	}
}

// Get returns the current annotation of n, if any.
func (v *View) Get(n *Node) (value.Value, bool) {
	val, ok := v.annotations[n.ID]
	return val, ok
}

// Set records ann as n's annotation. It reports whether this changed the
// annotation (per spec: reporting an annotation equal to the existing one
// does not count as dirty).
func (v *View) Set(n *Node, ann value.Value) (changed bool) {
	old, existed := v.annotations[n.ID]
	if existed && value.Equal(old, ann) {
		return false
	}
	v.annotations[n.ID] = ann
	v.dirty = true
	return true
}

// Clear drops n's annotation, if one exists. Neither the renderer nor the
// folding rules call it.
func (v *View) Clear(n *Node) {
	delete(v.annotations, n.ID)
}

// BindVar records name -> val in the variable binding table. Returns
// whether the binding changed an existing value.
func (v *View) BindVar(name string, val value.Value) bool {
	old, existed := v.bindings[name]
	if existed && value.Equal(old, val) {
		return false
	}
	v.bindings[name] = val
	return true
}

// LookupVar returns the current binding for name, if any.
func (v *View) LookupVar(name string) (value.Value, bool) {
	val, ok := v.bindings[name]
	return val, ok
}

// UnbindVar removes name's binding, used when a later assignment occurs
// under Unpredictable flow and the prior binding can no longer be trusted.
func (v *View) UnbindVar(name string) {
	if _, existed := v.bindings[name]; existed {
		delete(v.bindings, name)
	}
}
