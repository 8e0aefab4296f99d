package constval

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"arclang/internal/apnum"
	"arclang/internal/ast"
)

// TypeInfoLValue is the symbolic result of typeid(T): a reference to the
// type_info object for T.
type TypeInfoLValue struct {
	ty *ast.Type
}

func MakeTypeInfo(t *ast.Type) TypeInfoLValue { return TypeInfoLValue{ty: t} }

func (t TypeInfoLValue) Type() *ast.Type { return t.ty }
func (t TypeInfoLValue) IsNull() bool    { return t.ty == nil }

// LValueBase is the symbolic root an lvalue is anchored to: a declaration,
// an expression, or a type_info object. Declaration and expression bases
// additionally carry a call index and a version distinguishing objects
// created by distinct evaluation frames of the same lexical entity;
// type_info bases carry the type of the type_info object instead.
//
// All fields are comparable, and == agrees with Eq, so an LValueBase can
// be used directly as a map key.
type LValueBase struct {
	ptr          any // *ast.ValueDecl, *ast.Expr or TypeInfoLValue
	callIndex    uint32
	version      uint32
	typeInfoType *ast.Type
}

// NewLValueBase builds a declaration or expression base. Forming a
// type_info base through it is a programming error: that needs
// TypeInfoBase, which attaches the type_info type.
func NewLValueBase(p any, callIndex, version uint32) LValueBase {
	switch p.(type) {
	case *ast.ValueDecl, *ast.Expr, nil:
	case TypeInfoLValue:
		panic("constval: use TypeInfoBase to form a type_info lvalue")
	default:
		panic(fmt.Sprintf("constval: invalid lvalue base %T", p))
	}
	return LValueBase{ptr: p, callIndex: callIndex, version: version}
}

func DeclBase(d *ast.ValueDecl, callIndex, version uint32) LValueBase {
	return LValueBase{ptr: d, callIndex: callIndex, version: version}
}

func ExprBase(e *ast.Expr, callIndex, version uint32) LValueBase {
	return LValueBase{ptr: e, callIndex: callIndex, version: version}
}

func TypeInfoBase(ti TypeInfoLValue, typeInfoType *ast.Type) LValueBase {
	return LValueBase{ptr: ti, typeInfoType: typeInfoType}
}

func (b LValueBase) IsNull() bool {
	switch p := b.ptr.(type) {
	case nil:
		return true
	case *ast.ValueDecl:
		return p == nil
	case *ast.Expr:
		return p == nil
	case TypeInfoLValue:
		return p.IsNull()
	default:
		return true
	}
}

func (b LValueBase) IsDecl() bool {
	_, ok := b.ptr.(*ast.ValueDecl)
	return ok
}

func (b LValueBase) IsExpr() bool {
	_, ok := b.ptr.(*ast.Expr)
	return ok
}

func (b LValueBase) IsTypeInfo() bool {
	_, ok := b.ptr.(TypeInfoLValue)
	return ok
}

func (b LValueBase) Decl() *ast.ValueDecl {
	d, ok := b.ptr.(*ast.ValueDecl)
	if !ok {
		panic("constval: lvalue base is not a declaration")
	}
	return d
}

func (b LValueBase) Expr() *ast.Expr {
	e, ok := b.ptr.(*ast.Expr)
	if !ok {
		panic("constval: lvalue base is not an expression")
	}
	return e
}

func (b LValueBase) TypeInfo() TypeInfoLValue {
	ti, ok := b.ptr.(TypeInfoLValue)
	if !ok {
		panic("constval: lvalue base is not a type_info")
	}
	return ti
}

func (b LValueBase) AsDecl() (*ast.ValueDecl, bool) {
	d, ok := b.ptr.(*ast.ValueDecl)
	return d, ok
}

func (b LValueBase) AsExpr() (*ast.Expr, bool) {
	e, ok := b.ptr.(*ast.Expr)
	return e, ok
}

func (b LValueBase) AsTypeInfo() (TypeInfoLValue, bool) {
	ti, ok := b.ptr.(TypeInfoLValue)
	return ti, ok
}

// Opaque is the raw identity handle of the referenced entity, 0 for a null
// base. It identifies the base without its call index and version.
func (b LValueBase) Opaque() uint64 {
	switch p := b.ptr.(type) {
	case *ast.ValueDecl:
		if p != nil {
			return p.ID()
		}
	case *ast.Expr:
		if p != nil {
			return p.ID()
		}
	case TypeInfoLValue:
		if !p.IsNull() {
			return p.Type().ID()
		}
	}
	return 0
}

// CallIndex is 0 for type_info bases, which never carry frame metadata.
func (b LValueBase) CallIndex() uint32 {
	if b.IsTypeInfo() {
		return 0
	}
	return b.callIndex
}

func (b LValueBase) Version() uint32 {
	if b.IsTypeInfo() {
		return 0
	}
	return b.version
}

// TypeInfoType is the type of the referenced type_info object.
func (b LValueBase) TypeInfoType() *ast.Type {
	if !b.IsTypeInfo() {
		panic("constval: type_info type of a non-type_info base")
	}
	return b.typeInfoType
}

// Eq is structural equality: same variant, same referenced identity, and
// for declaration and expression bases the same call index and version.
func (b LValueBase) Eq(o LValueBase) bool {
	if b.ptr != o.ptr {
		return false
	}
	if b.IsTypeInfo() {
		return true
	}
	return b.callIndex == o.callIndex && b.version == o.version
}

const (
	baseTagNull = iota
	baseTagDecl
	baseTagExpr
	baseTagTypeInfo
)

func (b LValueBase) variantTag() byte {
	switch {
	case b.ptr == nil:
		return baseTagNull
	case b.IsDecl():
		return baseTagDecl
	case b.IsExpr():
		return baseTagExpr
	default:
		return baseTagTypeInfo
	}
}

// Hash is consistent with Eq.
func (b LValueBase) Hash() uint64 {
	var buf [17]byte
	buf[0] = b.variantTag()
	binary.LittleEndian.PutUint64(buf[1:9], b.Opaque())
	binary.LittleEndian.PutUint32(buf[9:13], b.CallIndex())
	binary.LittleEndian.PutUint32(buf[13:17], b.Version())
	return xxhash.Sum64(buf[:])
}

// PathEntry is one step in the chain from an lvalue base to a sub-object:
// either a base-class or field selector with a virtual-base flag, or an
// array index. Which reading is valid is known from call-site context (is
// the step indexing an array or selecting into an aggregate); the entry
// stores no tag and the accessors perform no check.
type PathEntry struct {
	sel     ast.Member
	virtual bool
	index   uint64
}

func BaseOrMemberEntry(sel ast.Member, isVirtual bool) PathEntry {
	return PathEntry{sel: sel, virtual: isVirtual}
}

func ArrayIndexEntry(i uint64) PathEntry {
	return PathEntry{index: i}
}

// AsBaseOrMember reads the entry as a selector plus virtual-base flag.
func (e PathEntry) AsBaseOrMember() (ast.Member, bool) {
	return e.sel, e.virtual
}

// AsArrayIndex reads the entry as a 0-based array index.
func (e PathEntry) AsArrayIndex() uint64 {
	return e.index
}

// Hash is consistent with == on PathEntry.
func (e PathEntry) Hash() uint64 {
	var buf [17]byte
	if e.sel != nil {
		binary.LittleEndian.PutUint64(buf[0:8], e.sel.ID())
	}
	if e.virtual {
		buf[8] = 1
	}
	binary.LittleEndian.PutUint64(buf[9:17], e.index)
	return xxhash.Sum64(buf[:])
}

// lvalueData is the reference payload: a base, a byte offset from it, and
// optionally the path of base / field / index steps down to the
// sub-object. A path-less lvalue denotes the complete object and is never
// one-past-the-end.
type lvalueData struct {
	base          LValueBase
	offset        ast.CharUnits
	path          []PathEntry
	hasPath       bool
	onePastTheEnd bool
	nullPtr       bool
}

// NewLValue builds a reference without a path.
func NewLValue(base LValueBase, offset ast.CharUnits, isNullPtr bool) Value {
	v := Value{kind: LValue, data: &lvalueData{}}
	v.SetLValue(base, offset, isNullPtr)
	return v
}

// NewLValuePath builds a reference with an explicit sub-object path.
func NewLValuePath(base LValueBase, offset ast.CharUnits, path []PathEntry, onePastTheEnd, isNullPtr bool) Value {
	v := Value{kind: LValue, data: &lvalueData{}}
	v.SetLValuePath(base, offset, path, onePastTheEnd, isNullPtr)
	return v
}

func (v *Value) LValueBase() LValueBase {
	v.require(LValue)
	return v.data.(*lvalueData).base
}

func (v *Value) LValueOffset() *ast.CharUnits {
	v.require(LValue)
	return &v.data.(*lvalueData).offset
}

func (v *Value) IsLValueOnePastTheEnd() bool {
	v.require(LValue)
	return v.data.(*lvalueData).onePastTheEnd
}

// HasLValuePath distinguishes "no path" from an empty path.
func (v *Value) HasLValuePath() bool {
	v.require(LValue)
	return v.data.(*lvalueData).hasPath
}

// LValuePath is owned by the Value; callers must not grow it.
func (v *Value) LValuePath() []PathEntry {
	v.require(LValue)
	p := v.data.(*lvalueData)
	if !p.hasPath {
		panic("constval: lvalue has no path")
	}
	return p.path
}

func (v *Value) LValueCallIndex() uint32 {
	v.require(LValue)
	return v.data.(*lvalueData).base.CallIndex()
}

func (v *Value) LValueVersion() uint32 {
	v.require(LValue)
	return v.data.(*lvalueData).base.Version()
}

func (v *Value) IsNullPointer() bool {
	v.require(LValue)
	return v.data.(*lvalueData).nullPtr
}

// SetLValue makes the reference denote the complete object at base plus
// offset, with no sub-object path.
func (v *Value) SetLValue(base LValueBase, offset ast.CharUnits, isNullPtr bool) {
	v.require(LValue)
	p := v.data.(*lvalueData)
	*p = lvalueData{base: base, offset: offset, nullPtr: isNullPtr}
}

// SetLValuePath replaces the reference with one reached through the given
// steps. The path is deep-copied; the argument is not retained.
func (v *Value) SetLValuePath(base LValueBase, offset ast.CharUnits, path []PathEntry, onePastTheEnd, isNullPtr bool) {
	v.require(LValue)
	p := v.data.(*lvalueData)
	*p = lvalueData{
		base:          base,
		offset:        offset,
		path:          append([]PathEntry(nil), path...),
		hasPath:       true,
		onePastTheEnd: onePastTheEnd,
		nullPtr:       isNullPtr,
	}
}

// ToIntegralConstant converts v to an integer of srcTy's representation.
// It succeeds for integer values, null pointers, and references offset
// from a null base; any other shape reports false and leaves res
// untouched.
func (v *Value) ToIntegralConstant(res *apnum.Int, srcTy *ast.Type, ctx *ast.Context) bool {
	switch {
	case v.IsInt():
		*res = v.Int().Clone()
		return true
	case v.IsLValue() && v.IsNullPointer():
		out := apnum.MakeInt(ctx.TypeWidth(srcTy), !ctx.TypeSigned(srcTy))
		out.SetUint64(ctx.NullPointerValue(srcTy))
		*res = out
		return true
	case v.IsLValue() && v.LValueBase().IsNull():
		out := apnum.MakeInt(ctx.TypeWidth(srcTy), !ctx.TypeSigned(srcTy))
		out.SetInt64(v.LValueOffset().Quantity())
		*res = out
		return true
	}
	return false
}
