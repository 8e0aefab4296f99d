// Package ast carries the identities the constant evaluator anchors its
// results to: declarations, expressions and types. The evaluator core never
// looks inside them; it only compares, hashes and prints them.
package ast

import "sync/atomic"

var lastID atomic.Uint64

func nextID() uint64 { return lastID.Add(1) }

// Node is any entity a folded constant can refer to. The ID is unique for
// the lifetime of the process and is the opaque handle used when a node
// identity becomes part of a map key or a hash.
type Node interface {
	ID() uint64
}

// Member is a selector target inside an lvalue path: a field or a base
// class.
type Member interface {
	Node
	memberNode()
}

// ValueDecl is a named declaration an lvalue can be anchored to (a
// variable, a function, a static member).
type ValueDecl struct {
	Name string
	id   uint64
}

func NewValueDecl(name string) *ValueDecl { return &ValueDecl{Name: name, id: nextID()} }

func (d *ValueDecl) ID() uint64 { return d.id }

// FieldDecl identifies one field of a record or union type.
type FieldDecl struct {
	Name  string
	Index int
	id    uint64
}

func NewFieldDecl(name string, index int) *FieldDecl {
	return &FieldDecl{Name: name, Index: index, id: nextID()}
}

func (d *FieldDecl) ID() uint64 { return d.id }
func (*FieldDecl) memberNode()  {}

// RecordDecl identifies a record (class/struct) type, used both as a base
// class selector in lvalue paths and as a step in member-pointer paths.
type RecordDecl struct {
	Name string
	id   uint64
}

func NewRecordDecl(name string) *RecordDecl { return &RecordDecl{Name: name, id: nextID()} }

func (d *RecordDecl) ID() uint64 { return d.id }
func (*RecordDecl) memberNode()  {}

// Expr is an expression identity. Text is whatever the frontend wants
// printed for it; the evaluator treats the node as opaque.
type Expr struct {
	Text string
	id   uint64
}

func NewExpr(text string) *Expr { return &Expr{Text: text, id: nextID()} }

func (e *Expr) ID() uint64 { return e.id }

// AddrLabelExpr is a &&label expression identity.
type AddrLabelExpr struct {
	Label string
	id    uint64
}

func NewAddrLabelExpr(label string) *AddrLabelExpr {
	return &AddrLabelExpr{Label: label, id: nextID()}
}

func (e *AddrLabelExpr) ID() uint64 { return e.id }

// Type is a type descriptor. Integer types carry a bit width and
// signedness so the evaluator can size integral conversions; everything
// else is opaque.
type Type struct {
	Name   string
	width  uint32
	signed bool
	id     uint64
}

func NewType(name string) *Type { return &Type{Name: name, id: nextID()} }

func NewIntType(name string, width uint32, signed bool) *Type {
	return &Type{Name: name, width: width, signed: signed, id: nextID()}
}

func (t *Type) ID() uint64      { return t.id }
func (t *Type) IsInteger() bool { return t.width != 0 }
func (t *Type) Width() uint32   { return t.width }
func (t *Type) Signed() bool    { return t.signed }
func (t *Type) String() string  { return t.Name }
