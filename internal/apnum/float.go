package apnum

import "github.com/cockroachdb/apd/v3"

// Float is an arbitrary-precision decimal floating point number.
type Float struct {
	d apd.Decimal
}

func MakeFloat(f float64) Float {
	var out Float
	if _, err := out.d.SetFloat64(f); err != nil {
		panic("apnum: " + err.Error())
	}
	return out
}

func FloatFromString(s string) (Float, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Float{}, err
	}
	var out Float
	out.d.Set(d)
	return out, nil
}

// Float64 is the nearest float64 to the stored value.
func (f Float) Float64() float64 {
	v, err := f.d.Float64()
	if err != nil {
		return 0
	}
	return v
}

func (f Float) IsZero() bool { return f.d.IsZero() }
func (f Float) Sign() int    { return f.d.Sign() }

func (f Float) Cmp(g Float) int { return f.d.Cmp(&g.d) }
func (f Float) Eq(g Float) bool { return f.d.Cmp(&g.d) == 0 }

// Clone returns an independent copy; the coefficient digits are shared by
// plain struct assignment.
func (f Float) Clone() Float {
	var out Float
	out.d.Set(&f.d)
	return out
}

// NeedsCleanup reports whether the coefficient has spilled past a single
// machine word.
func (f Float) NeedsCleanup() bool { return f.d.Coeff.BitLen() > 64 }

func (f Float) String() string { return f.d.String() }
