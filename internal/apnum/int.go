// Package apnum provides the arbitrary-precision numbers constant folding
// produces: integers of a fixed width and signedness, decimal floats, and
// fixed-point values.
package apnum

import "github.com/cockroachdb/apd/v3"

// Int is an integer constrained to a bit width and a signedness. The
// stored value is always reduced into the representable range; operations
// that leave the range wrap two's-complement style, matching how the
// evaluator truncates const arithmetic.
type Int struct {
	width    uint32
	unsigned bool
	v        apd.BigInt
}

// MakeInt returns the zero integer of the given representation. A zero
// width is a programming error.
func MakeInt(width uint32, unsigned bool) Int {
	if width == 0 {
		panic("apnum: integer with zero bit width")
	}
	return Int{width: width, unsigned: unsigned}
}

func IntFromInt64(v int64, width uint32, unsigned bool) Int {
	i := MakeInt(width, unsigned)
	i.SetInt64(v)
	return i
}

func IntFromUint64(v uint64, width uint32, unsigned bool) Int {
	i := MakeInt(width, unsigned)
	i.SetUint64(v)
	return i
}

func (i Int) Width() uint32  { return i.width }
func (i Int) Unsigned() bool { return i.unsigned }

func (i *Int) SetInt64(v int64) {
	i.v.SetInt64(v)
	i.canon()
}

func (i *Int) SetUint64(v uint64) {
	i.v.SetUint64(v)
	i.canon()
}

// Int64 is the value as a signed 64-bit integer. Meaningful only when the
// value fits.
func (i Int) Int64() int64 { return i.v.Int64() }

// Uint64 is the raw low 64 bits of the two's-complement representation.
func (i Int) Uint64() uint64 {
	if i.v.Sign() >= 0 {
		return i.v.Uint64()
	}
	var t apd.BigInt
	t.Add(&i.v, modulus(i.width))
	return t.Uint64()
}

func (i Int) Sign() int    { return i.v.Sign() }
func (i Int) IsZero() bool { return i.v.Sign() == 0 }

// Cmp compares numeric values, ignoring representation.
func (i Int) Cmp(j Int) int { return i.v.Cmp(&j.v) }

// Eq reports whether i and j have the same representation and value.
func (i Int) Eq(j Int) bool {
	return i.width == j.width && i.unsigned == j.unsigned && i.v.Cmp(&j.v) == 0
}

// Clone returns an independent copy; the backing digits of an Int are
// shared by plain struct assignment.
func (i Int) Clone() Int {
	out := Int{width: i.width, unsigned: i.unsigned}
	out.v.Set(&i.v)
	return out
}

// Resize reinterprets the value in a new representation, wrapping into
// range.
func (i Int) Resize(width uint32, unsigned bool) Int {
	out := MakeInt(width, unsigned)
	out.v.Set(&i.v)
	out.canon()
	return out
}

// NeedsCleanup reports whether the magnitude has spilled past a single
// machine word.
func (i Int) NeedsCleanup() bool { return i.v.BitLen() > 64 }

func (i Int) String() string { return i.v.String() }

func modulus(width uint32) *apd.BigInt {
	var m apd.BigInt
	m.Lsh(apd.NewBigInt(1), uint(width))
	return &m
}

// canon reduces v into the representable range: [0, 2^w) when unsigned,
// [-2^(w-1), 2^(w-1)) when signed.
func (i *Int) canon() {
	m := modulus(i.width)
	i.v.Mod(&i.v, m)
	if !i.unsigned {
		var half apd.BigInt
		half.Lsh(apd.NewBigInt(1), uint(i.width-1))
		if i.v.Cmp(&half) >= 0 {
			i.v.Sub(&i.v, m)
		}
	}
}
