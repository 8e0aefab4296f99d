package constval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"arclang/internal/apnum"
	"arclang/internal/ast"
)

func int32Val(v int64) Value {
	return NewInt(apnum.IntFromInt64(v, 32, false))
}

func TestZeroValueIsUninit(t *testing.T) {
	var v Value
	require.Equal(t, Uninit, v.Kind())
	require.True(t, v.IsUninit())
	require.False(t, v.NeedsCleanup())
}

func TestScalarRoundTrip(t *testing.T) {
	v := int32Val(42)
	require.True(t, v.IsInt())
	require.Equal(t, int64(42), v.Int().Int64())

	v.SetInt(apnum.IntFromInt64(-7, 32, false))
	require.Equal(t, int64(-7), v.Int().Int64())

	f := NewFloat(apnum.MakeFloat(2.25))
	require.True(t, f.IsFloat())
	require.Equal(t, 2.25, f.Float().Float64())

	fx := NewFixedPoint(apnum.MakeFixedPoint(apnum.IntFromInt64(3, 32, false), 1, false))
	require.True(t, fx.IsFixedPoint())
	require.Equal(t, "1.5", fx.FixedPoint().String())
}

func TestWrongKindAccessorPanics(t *testing.T) {
	v := int32Val(1)
	require.Panics(t, func() { v.Float() })
	require.Panics(t, func() { v.ArraySize() })
	require.Panics(t, func() { v.LValueBase() })

	var u Value
	require.Panics(t, func() { u.Int() })
}

func TestComplexInt(t *testing.T) {
	v := NewComplexInt(apnum.IntFromInt64(1, 32, false), apnum.IntFromInt64(2, 32, false))
	require.True(t, v.IsComplexInt())
	require.Equal(t, int64(1), v.ComplexIntReal().Int64())
	require.Equal(t, int64(2), v.ComplexIntImag().Int64())
	require.True(t, v.NeedsCleanup())

	require.Panics(t, func() {
		NewComplexInt(apnum.IntFromInt64(1, 32, false), apnum.IntFromInt64(2, 64, false))
	})
}

func TestComplexFloat(t *testing.T) {
	v := NewComplexFloat(apnum.MakeFloat(1), apnum.MakeFloat(-1))
	require.True(t, v.IsComplexFloat())
	require.Equal(t, 1.0, v.ComplexFloatReal().Float64())
	require.Equal(t, -1.0, v.ComplexFloatImag().Float64())
}

func TestArrayFillerLaw(t *testing.T) {
	// Total size 5, two explicit elements, filler 0.
	v := NewArray(2, 5)
	*v.ArrayInitializedElt(0) = int32Val(10)
	*v.ArrayInitializedElt(1) = int32Val(20)
	*v.ArrayFiller() = int32Val(0)

	require.Equal(t, 2, v.ArrayInitializedElts())
	require.Equal(t, 5, v.ArraySize())
	require.True(t, v.HasArrayFiller())
	require.Equal(t, int64(10), v.ArrayInitializedElt(0).Int().Int64())
	require.Equal(t, int64(20), v.ArrayInitializedElt(1).Int().Int64())
	require.Equal(t, int64(0), v.ArrayFiller().Int().Int64())

	full := NewArray(3, 3)
	require.False(t, full.HasArrayFiller())
	require.Panics(t, func() { full.ArrayFiller() })

	require.Panics(t, func() { NewArray(4, 3) })
}

func TestStructBasesThenFields(t *testing.T) {
	v := NewStruct(1, 2)
	require.Equal(t, 1, v.StructNumBases())
	require.Equal(t, 2, v.StructNumFields())

	*v.StructBase(0) = int32Val(100)
	*v.StructField(0) = int32Val(1)
	*v.StructField(1) = int32Val(2)

	require.Equal(t, int64(100), v.StructBase(0).Int().Int64())
	require.Equal(t, int64(1), v.StructField(0).Int().Int64())
	require.Equal(t, int64(2), v.StructField(1).Int().Int64())
	require.Panics(t, func() { v.StructBase(1) })
	require.Panics(t, func() { v.StructField(2) })
}

func TestUnionSetReplacesFieldAndValue(t *testing.T) {
	fa := ast.NewFieldDecl("a", 0)
	fb := ast.NewFieldDecl("b", 1)

	v := NewUnion(fa, int32Val(1))
	require.Same(t, fa, v.UnionField())
	require.Equal(t, int64(1), v.UnionValue().Int().Int64())

	v.SetUnion(fb, NewFloat(apnum.MakeFloat(0.5)))
	require.Same(t, fb, v.UnionField())
	require.True(t, v.UnionValue().IsFloat())
}

func TestUnionDefaultsToUninitValue(t *testing.T) {
	v := NewUnion(nil, Value{})
	require.Nil(t, v.UnionField())
	require.True(t, v.UnionValue().IsUninit())
}

func TestVectorCopiesElements(t *testing.T) {
	elts := []Value{int32Val(1), int32Val(2), int32Val(3)}
	v := NewVector(elts)
	require.Equal(t, 3, v.VectorLen())

	// Mutating the source slice must not reach the vector.
	elts[0].SetInt(apnum.IntFromInt64(99, 32, false))
	require.Equal(t, int64(1), v.VectorElt(0).Int().Int64())
}

func TestDeepCloneIndependence(t *testing.T) {
	arr := NewArray(1, 2)
	*arr.ArrayInitializedElt(0) = int32Val(10)
	*arr.ArrayFiller() = int32Val(0)

	st := NewStruct(0, 1)
	*st.StructField(0) = arr.Clone()

	cp := st.Clone()
	cp.StructField(0).ArrayInitializedElt(0).SetInt(apnum.IntFromInt64(77, 32, false))

	require.Equal(t, int64(77), cp.StructField(0).ArrayInitializedElt(0).Int().Int64())
	require.Equal(t, int64(10), st.StructField(0).ArrayInitializedElt(0).Int().Int64())
}

func TestCloneUnionIsDeep(t *testing.T) {
	f := ast.NewFieldDecl("x", 0)
	v := NewUnion(f, int32Val(5))
	cp := v.Clone()
	cp.UnionValue().SetInt(apnum.IntFromInt64(6, 32, false))
	require.Equal(t, int64(5), v.UnionValue().Int().Int64())
}

func TestTakeLeavesUninit(t *testing.T) {
	v := NewArray(1, 1)
	*v.ArrayInitializedElt(0) = int32Val(10)

	moved := v.Take()
	require.True(t, v.IsUninit())
	require.False(t, v.NeedsCleanup())
	require.Equal(t, int64(10), moved.ArrayInitializedElt(0).Int().Int64())
}

func TestSwap(t *testing.T) {
	a := int32Val(1)
	b := NewFloat(apnum.MakeFloat(2))
	a.Swap(&b)
	require.True(t, a.IsFloat())
	require.True(t, b.IsInt())
	require.Equal(t, int64(1), b.Int().Int64())
}

func TestAssignReplacesPayload(t *testing.T) {
	v := int32Val(1)
	src := NewArray(1, 1)
	*src.ArrayInitializedElt(0) = int32Val(9)

	v.Assign(&src)
	require.True(t, v.IsArray())
	require.Equal(t, int64(9), v.ArrayInitializedElt(0).Int().Int64())

	// Assign is a deep copy: source stays usable and independent.
	src.ArrayInitializedElt(0).SetInt(apnum.IntFromInt64(8, 32, false))
	require.Equal(t, int64(9), v.ArrayInitializedElt(0).Int().Int64())

	// Reassign over a container payload several times.
	other := NewComplexFloat(apnum.MakeFloat(0), apnum.MakeFloat(1))
	v.Assign(&other)
	require.True(t, v.IsComplexFloat())
	uninit := Value{}
	v.Assign(&uninit)
	require.True(t, v.IsUninit())
}

func TestClear(t *testing.T) {
	v := NewStruct(0, 1)
	v.Clear()
	require.True(t, v.IsUninit())
}

func TestNeedsCleanup(t *testing.T) {
	d := ast.NewValueDecl("d")

	small := int32Val(1)
	require.False(t, small.NeedsCleanup())

	wide := NewInt(apnum.IntFromInt64(-1, 128, true))
	require.True(t, wide.NeedsCleanup())

	noPath := NewLValue(DeclBase(d, 0, 0), 0, false)
	require.False(t, noPath.NeedsCleanup())

	withPath := NewLValuePath(DeclBase(d, 0, 0), 0, []PathEntry{ArrayIndexEntry(0)}, false, false)
	require.True(t, withPath.NeedsCleanup())

	for _, v := range []Value{
		NewArray(0, 1),
		NewStruct(0, 0),
		NewUnion(nil, Value{}),
		NewVector(nil),
		NewComplexInt(apnum.IntFromInt64(0, 32, false), apnum.IntFromInt64(0, 32, false)),
		NewComplexFloat(apnum.MakeFloat(0), apnum.MakeFloat(0)),
		NewMemberPointer(d, false, nil),
	} {
		require.True(t, v.NeedsCleanup(), "kind %v", v.Kind())
	}

	diff := NewAddrLabelDiff(ast.NewAddrLabelExpr("a"), ast.NewAddrLabelExpr("b"))
	require.False(t, diff.NeedsCleanup())
}

func TestMemberPointer(t *testing.T) {
	m := ast.NewValueDecl("Class::f")
	path := []*ast.RecordDecl{ast.NewRecordDecl("Base"), ast.NewRecordDecl("Mid")}
	v := NewMemberPointer(m, true, path)

	require.True(t, v.IsMemberPointer())
	require.Same(t, m, v.MemberPointerDecl())
	require.True(t, v.IsMemberPointerToDerivedMember())
	require.Equal(t, path, v.MemberPointerPath())

	// The stored path is an independent copy of the argument slice.
	path[0] = ast.NewRecordDecl("Other")
	require.Equal(t, "Base", v.MemberPointerPath()[0].Name)

	cp := v.Clone()
	require.Equal(t, v.MemberPointerPath(), cp.MemberPointerPath())
}

func TestAddrLabelDiff(t *testing.T) {
	l := ast.NewAddrLabelExpr("l1")
	r := ast.NewAddrLabelExpr("l2")
	v := NewAddrLabelDiff(l, r)
	require.Same(t, l, v.AddrLabelDiffLHS())
	require.Same(t, r, v.AddrLabelDiffRHS())

	r2 := ast.NewAddrLabelExpr("l3")
	v.SetAddrLabelDiff(l, r2)
	require.Same(t, r2, v.AddrLabelDiffRHS())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "uninit", Uninit.String())
	require.Equal(t, "memberpointer", MemberPointer.String())
	require.Equal(t, "ValueKind(99)", ValueKind(99).String())
}
