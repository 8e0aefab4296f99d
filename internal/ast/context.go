package ast

import "strconv"

// CharUnits is a quantity of bytes, the unit lvalue offsets are measured
// in.
type CharUnits int64

func (c CharUnits) Quantity() int64 { return int64(c) }
func (c CharUnits) IsZero() bool    { return c == 0 }
func (c CharUnits) String() string  { return strconv.FormatInt(int64(c), 10) }

// Context answers the target-dependent questions the evaluator core needs:
// how wide a type is and what bit pattern a null pointer of it has. It
// doubles as the printing context for diagnostic rendering.
type Context struct {
	// PointerWidth is the width in bits of pointer types on the target.
	PointerWidth uint32
}

func NewContext() *Context { return &Context{PointerWidth: 64} }

// TypeWidth is the representation width in bits of t. Non-integer types
// are assumed pointer-sized.
func (c *Context) TypeWidth(t *Type) uint32 {
	if t != nil && t.IsInteger() {
		return t.Width()
	}
	return c.PointerWidth
}

func (c *Context) TypeSigned(t *Type) bool { return t != nil && t.Signed() }

// NullPointerValue is the integer representation of a null pointer of type
// t. All supported targets use an all-zero null.
func (c *Context) NullPointerValue(t *Type) uint64 { return 0 }
