package apnum

import "github.com/cockroachdb/apd/v3"

// FixedPoint is a scaled integer: the represented value is Value / 2^Scale.
// Width and signedness live on the underlying Int.
type FixedPoint struct {
	val       Int
	scale     uint32
	saturated bool
}

func MakeFixedPoint(val Int, scale uint32, saturated bool) FixedPoint {
	return FixedPoint{val: val, scale: scale, saturated: saturated}
}

// Value is the raw scaled integer. It shares backing digits with the
// FixedPoint; Clone first when an independent copy is needed.
func (f FixedPoint) Value() Int         { return f.val }
func (f FixedPoint) Scale() uint32      { return f.scale }
func (f FixedPoint) IsSaturated() bool  { return f.saturated }

func (f FixedPoint) Eq(g FixedPoint) bool {
	return f.scale == g.scale && f.val.Eq(g.val)
}

func (f FixedPoint) Clone() FixedPoint {
	return FixedPoint{val: f.val.Clone(), scale: f.scale, saturated: f.saturated}
}

func (f FixedPoint) NeedsCleanup() bool { return f.val.NeedsCleanup() }

// String renders the represented value in decimal. Division by a power of
// two is exact in decimal, so the result is never rounded as long as the
// context precision covers the fractional digits.
func (f FixedPoint) String() string {
	var num apd.Decimal
	num.Coeff.Abs(&f.val.v)
	num.Negative = f.val.Sign() < 0

	var den apd.Decimal
	den.Coeff.Lsh(apd.NewBigInt(1), uint(f.scale))

	var out apd.Decimal
	ctx := apd.BaseContext.WithPrecision(f.scale + 32)
	if _, err := ctx.Quo(&out, &num, &den); err != nil {
		return num.String() + "/2^" + den.String()
	}
	return out.String()
}
