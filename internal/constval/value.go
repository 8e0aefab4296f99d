// Package constval represents the result of folding a compile-time
// constant expression. One tagged-union Value covers every shape the
// evaluator can produce: integers, floats, fixed-point numbers, complex
// pairs, vectors, arrays, structs, unions, member pointers, symbolic
// lvalues and address-label differences.
package constval

import (
	"fmt"

	"arclang/internal/apnum"
	"arclang/internal/ast"
)

// ValueKind discriminates the payload a Value carries.
type ValueKind int

const (
	Uninit ValueKind = iota
	Int
	Float
	FixedPoint
	ComplexInt
	ComplexFloat
	LValue
	Vector
	Array
	Struct
	Union
	MemberPointer
	AddrLabelDiff
)

var kindNames = [...]string{
	Uninit:        "uninit",
	Int:           "int",
	Float:         "float",
	FixedPoint:    "fixedpoint",
	ComplexInt:    "complexint",
	ComplexFloat:  "complexfloat",
	LValue:        "lvalue",
	Vector:        "vector",
	Array:         "array",
	Struct:        "struct",
	Union:         "union",
	MemberPointer: "memberpointer",
	AddrLabelDiff: "addrlabeldiff",
}

func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a discriminated union with exactly one live payload, selected
// by its kind. The zero Value is Uninit.
//
// A Value owns its payload exclusively: nested Values inside container
// payloads belong to the container and are released with it. Clone is a
// deep copy; Take empties the source; Assign is copy-and-swap. Plain
// struct assignment aliases the payload and is only safe for values about
// to be discarded.
//
// Accessors and mutators for a kind other than the live one panic: calling
// them is a programming error in the evaluator, not a recoverable
// condition.
type Value struct {
	kind ValueKind
	data any
}

type complexIntData struct {
	re, im apnum.Int
}

type complexFloatData struct {
	re, im apnum.Float
}

type vectorData struct {
	elts []Value
}

// arrayData holds the explicitly initialized prefix. When inits < size the
// slice carries one extra trailing slot: the shared filler standing in for
// every remaining element.
type arrayData struct {
	elts  []Value
	inits int
	size  int
}

func (a *arrayData) hasFiller() bool { return a.inits != a.size }

// structData stores bases first, then fields, in one backing slice; field
// indices are offset by the base count.
type structData struct {
	bases  int
	fields int
	elts   []Value
}

type unionData struct {
	field *ast.FieldDecl
	val   *Value
}

type memberPointerData struct {
	member  *ast.ValueDecl
	derived bool
	path    []*ast.RecordDecl
}

type addrLabelDiffData struct {
	lhs, rhs *ast.AddrLabelExpr
}

// lvalueData is defined in lvalue.go.

func NewInt(i apnum.Int) Value { return Value{kind: Int, data: &i} }

func NewFloat(f apnum.Float) Value { return Value{kind: Float, data: &f} }

func NewFixedPoint(fx apnum.FixedPoint) Value { return Value{kind: FixedPoint, data: &fx} }

func NewComplexInt(re, im apnum.Int) Value {
	v := Value{kind: ComplexInt, data: &complexIntData{}}
	v.SetComplexInt(re, im)
	return v
}

func NewComplexFloat(re, im apnum.Float) Value {
	v := Value{kind: ComplexFloat, data: &complexFloatData{}}
	v.SetComplexFloat(re, im)
	return v
}

// NewVector deep-copies elts; the argument is not retained.
func NewVector(elts []Value) Value {
	v := Value{kind: Vector, data: &vectorData{}}
	v.SetVector(elts)
	return v
}

// NewArray allocates an array of size elements of which inits are
// explicitly initialized, all starting Uninit. When inits < size one extra
// Uninit slot is allocated for the shared filler.
func NewArray(inits, size int) Value {
	if inits < 0 || inits > size {
		panic(fmt.Sprintf("constval: array with %d initialized of %d elements", inits, size))
	}
	n := inits
	if inits != size {
		n++
	}
	return Value{kind: Array, data: &arrayData{elts: make([]Value, n), inits: inits, size: size}}
}

// NewStruct allocates a struct with the given base and field counts, every
// slot starting Uninit.
func NewStruct(bases, fields int) Value {
	if bases < 0 || fields < 0 {
		panic("constval: negative struct slot count")
	}
	return Value{kind: Struct, data: &structData{
		bases:  bases,
		fields: fields,
		elts:   make([]Value, bases+fields),
	}}
}

// NewUnion deep-copies val; the argument is not retained.
func NewUnion(field *ast.FieldDecl, val Value) Value {
	v := Value{kind: Union, data: &unionData{val: new(Value)}}
	v.SetUnion(field, val)
	return v
}

func NewMemberPointer(member *ast.ValueDecl, derived bool, path []*ast.RecordDecl) Value {
	return Value{kind: MemberPointer, data: &memberPointerData{
		member:  member,
		derived: derived,
		path:    append([]*ast.RecordDecl(nil), path...),
	}}
}

func NewAddrLabelDiff(lhs, rhs *ast.AddrLabelExpr) Value {
	return Value{kind: AddrLabelDiff, data: &addrLabelDiffData{lhs: lhs, rhs: rhs}}
}

func (v *Value) Kind() ValueKind { return v.kind }

func (v *Value) IsUninit() bool        { return v.kind == Uninit }
func (v *Value) IsInt() bool           { return v.kind == Int }
func (v *Value) IsFloat() bool         { return v.kind == Float }
func (v *Value) IsFixedPoint() bool    { return v.kind == FixedPoint }
func (v *Value) IsComplexInt() bool    { return v.kind == ComplexInt }
func (v *Value) IsComplexFloat() bool  { return v.kind == ComplexFloat }
func (v *Value) IsLValue() bool        { return v.kind == LValue }
func (v *Value) IsVector() bool        { return v.kind == Vector }
func (v *Value) IsArray() bool         { return v.kind == Array }
func (v *Value) IsStruct() bool        { return v.kind == Struct }
func (v *Value) IsUnion() bool         { return v.kind == Union }
func (v *Value) IsMemberPointer() bool { return v.kind == MemberPointer }
func (v *Value) IsAddrLabelDiff() bool { return v.kind == AddrLabelDiff }

func (v *Value) require(k ValueKind) {
	if v.kind != k {
		panic(fmt.Sprintf("constval: %v accessor on %v value", k, v.kind))
	}
}

func (v *Value) Int() *apnum.Int {
	v.require(Int)
	return v.data.(*apnum.Int)
}

func (v *Value) SetInt(i apnum.Int) {
	v.require(Int)
	*v.data.(*apnum.Int) = i
}

func (v *Value) Float() *apnum.Float {
	v.require(Float)
	return v.data.(*apnum.Float)
}

func (v *Value) SetFloat(f apnum.Float) {
	v.require(Float)
	*v.data.(*apnum.Float) = f
}

func (v *Value) FixedPoint() *apnum.FixedPoint {
	v.require(FixedPoint)
	return v.data.(*apnum.FixedPoint)
}

func (v *Value) SetFixedPoint(fx apnum.FixedPoint) {
	v.require(FixedPoint)
	*v.data.(*apnum.FixedPoint) = fx
}

func (v *Value) ComplexIntReal() *apnum.Int {
	v.require(ComplexInt)
	return &v.data.(*complexIntData).re
}

func (v *Value) ComplexIntImag() *apnum.Int {
	v.require(ComplexInt)
	return &v.data.(*complexIntData).im
}

// SetComplexInt requires both halves to share one representation.
func (v *Value) SetComplexInt(re, im apnum.Int) {
	v.require(ComplexInt)
	if re.Width() != im.Width() || re.Unsigned() != im.Unsigned() {
		panic("constval: complex int halves differ in representation")
	}
	p := v.data.(*complexIntData)
	p.re, p.im = re, im
}

func (v *Value) ComplexFloatReal() *apnum.Float {
	v.require(ComplexFloat)
	return &v.data.(*complexFloatData).re
}

func (v *Value) ComplexFloatImag() *apnum.Float {
	v.require(ComplexFloat)
	return &v.data.(*complexFloatData).im
}

func (v *Value) SetComplexFloat(re, im apnum.Float) {
	v.require(ComplexFloat)
	p := v.data.(*complexFloatData)
	p.re, p.im = re, im
}

func (v *Value) VectorLen() int {
	v.require(Vector)
	return len(v.data.(*vectorData).elts)
}

func (v *Value) VectorElt(i int) *Value {
	v.require(Vector)
	p := v.data.(*vectorData)
	if i < 0 || i >= len(p.elts) {
		panic(fmt.Sprintf("constval: vector index %d out of range %d", i, len(p.elts)))
	}
	return &p.elts[i]
}

// SetVector deep-copies elts; the argument is not retained.
func (v *Value) SetVector(elts []Value) {
	v.require(Vector)
	v.data.(*vectorData).elts = cloneValues(elts)
}

func (v *Value) ArrayInitializedElts() int {
	v.require(Array)
	return v.data.(*arrayData).inits
}

func (v *Value) ArraySize() int {
	v.require(Array)
	return v.data.(*arrayData).size
}

func (v *Value) HasArrayFiller() bool {
	v.require(Array)
	return v.data.(*arrayData).hasFiller()
}

func (v *Value) ArrayInitializedElt(i int) *Value {
	v.require(Array)
	p := v.data.(*arrayData)
	if i < 0 || i >= p.inits {
		panic(fmt.Sprintf("constval: array index %d out of initialized range %d", i, p.inits))
	}
	return &p.elts[i]
}

// ArrayFiller is the shared value of every element past the initialized
// prefix.
func (v *Value) ArrayFiller() *Value {
	v.require(Array)
	p := v.data.(*arrayData)
	if !p.hasFiller() {
		panic("constval: array has no filler")
	}
	return &p.elts[p.inits]
}

func (v *Value) StructNumBases() int {
	v.require(Struct)
	return v.data.(*structData).bases
}

func (v *Value) StructNumFields() int {
	v.require(Struct)
	return v.data.(*structData).fields
}

func (v *Value) StructBase(i int) *Value {
	v.require(Struct)
	p := v.data.(*structData)
	if i < 0 || i >= p.bases {
		panic(fmt.Sprintf("constval: struct base %d out of range %d", i, p.bases))
	}
	return &p.elts[i]
}

func (v *Value) StructField(i int) *Value {
	v.require(Struct)
	p := v.data.(*structData)
	if i < 0 || i >= p.fields {
		panic(fmt.Sprintf("constval: struct field %d out of range %d", i, p.fields))
	}
	return &p.elts[p.bases+i]
}

func (v *Value) UnionField() *ast.FieldDecl {
	v.require(Union)
	return v.data.(*unionData).field
}

func (v *Value) UnionValue() *Value {
	v.require(Union)
	return v.data.(*unionData).val
}

// SetUnion replaces the active field and the nested value together. The
// value is deep-copied; the argument is not retained.
func (v *Value) SetUnion(field *ast.FieldDecl, val Value) {
	v.require(Union)
	p := v.data.(*unionData)
	p.field = field
	*p.val = val.Clone()
}

func (v *Value) MemberPointerDecl() *ast.ValueDecl {
	v.require(MemberPointer)
	return v.data.(*memberPointerData).member
}

func (v *Value) IsMemberPointerToDerivedMember() bool {
	v.require(MemberPointer)
	return v.data.(*memberPointerData).derived
}

// MemberPointerPath is the chain of classes crossed between the member's
// class and the pointer's class, in order. The returned slice is owned by
// the Value.
func (v *Value) MemberPointerPath() []*ast.RecordDecl {
	v.require(MemberPointer)
	return v.data.(*memberPointerData).path
}

func (v *Value) AddrLabelDiffLHS() *ast.AddrLabelExpr {
	v.require(AddrLabelDiff)
	return v.data.(*addrLabelDiffData).lhs
}

func (v *Value) AddrLabelDiffRHS() *ast.AddrLabelExpr {
	v.require(AddrLabelDiff)
	return v.data.(*addrLabelDiffData).rhs
}

func (v *Value) SetAddrLabelDiff(lhs, rhs *ast.AddrLabelExpr) {
	v.require(AddrLabelDiff)
	p := v.data.(*addrLabelDiffData)
	p.lhs, p.rhs = lhs, rhs
}

// Clone returns a fully independent deep copy: container payloads are
// recursively duplicated, numeric payloads copy their backing digits.
func (v *Value) Clone() Value {
	switch v.kind {
	case Uninit:
		return Value{}
	case Int:
		c := v.data.(*apnum.Int).Clone()
		return Value{kind: Int, data: &c}
	case Float:
		c := v.data.(*apnum.Float).Clone()
		return Value{kind: Float, data: &c}
	case FixedPoint:
		c := v.data.(*apnum.FixedPoint).Clone()
		return Value{kind: FixedPoint, data: &c}
	case ComplexInt:
		p := v.data.(*complexIntData)
		return Value{kind: ComplexInt, data: &complexIntData{re: p.re.Clone(), im: p.im.Clone()}}
	case ComplexFloat:
		p := v.data.(*complexFloatData)
		return Value{kind: ComplexFloat, data: &complexFloatData{re: p.re.Clone(), im: p.im.Clone()}}
	case LValue:
		p := v.data.(*lvalueData)
		c := &lvalueData{
			base:          p.base,
			offset:        p.offset,
			hasPath:       p.hasPath,
			onePastTheEnd: p.onePastTheEnd,
			nullPtr:       p.nullPtr,
		}
		if p.hasPath {
			c.path = append([]PathEntry(nil), p.path...)
		}
		return Value{kind: LValue, data: c}
	case Vector:
		p := v.data.(*vectorData)
		return Value{kind: Vector, data: &vectorData{elts: cloneValues(p.elts)}}
	case Array:
		p := v.data.(*arrayData)
		return Value{kind: Array, data: &arrayData{elts: cloneValues(p.elts), inits: p.inits, size: p.size}}
	case Struct:
		p := v.data.(*structData)
		return Value{kind: Struct, data: &structData{bases: p.bases, fields: p.fields, elts: cloneValues(p.elts)}}
	case Union:
		p := v.data.(*unionData)
		c := p.val.Clone()
		return Value{kind: Union, data: &unionData{field: p.field, val: &c}}
	case MemberPointer:
		p := v.data.(*memberPointerData)
		return Value{kind: MemberPointer, data: &memberPointerData{
			member:  p.member,
			derived: p.derived,
			path:    append([]*ast.RecordDecl(nil), p.path...),
		}}
	case AddrLabelDiff:
		p := v.data.(*addrLabelDiffData)
		return Value{kind: AddrLabelDiff, data: &addrLabelDiffData{lhs: p.lhs, rhs: p.rhs}}
	default:
		panic(fmt.Sprintf("constval: clone of %v value", v.kind))
	}
}

func cloneValues(src []Value) []Value {
	out := make([]Value, len(src))
	for i := range src {
		out[i] = src[i].Clone()
	}
	return out
}

// Swap exchanges the contents of v and o without copying payloads.
func (v *Value) Swap(o *Value) {
	*v, *o = *o, *v
}

// Take moves the contents out of v, leaving it Uninit.
func (v *Value) Take() Value {
	out := *v
	*v = Value{}
	return out
}

// Assign replaces v with a deep copy of rhs. The copy is fully constructed
// before it replaces the old payload, so v is untouched until the swap.
func (v *Value) Assign(rhs *Value) {
	tmp := rhs.Clone()
	v.Swap(&tmp)
}

// Clear resets v to Uninit, releasing the payload.
func (v *Value) Clear() {
	*v = Value{}
}

// NeedsCleanup reports whether discarding v drops owned storage beyond the
// Value itself: always for containers, complex pairs and member pointers,
// for references only when they carry a path, and for numeric kinds only
// when the number spilled past a machine word.
func (v *Value) NeedsCleanup() bool {
	switch v.kind {
	case Uninit, AddrLabelDiff:
		return false
	case Int:
		return v.Int().NeedsCleanup()
	case Float:
		return v.Float().NeedsCleanup()
	case FixedPoint:
		return v.FixedPoint().NeedsCleanup()
	case ComplexInt, ComplexFloat, Vector, Array, Struct, Union, MemberPointer:
		return true
	case LValue:
		return v.data.(*lvalueData).hasPath
	default:
		panic(fmt.Sprintf("constval: cleanup query on %v value", v.kind))
	}
}
