package constval

import (
	"fmt"
	"io"
	"strings"

	"arclang/internal/ast"
)

// PrintPretty renders v for diagnostics. ty is the type the value was
// folded for; it currently only affects pointer-ish renderings and may be
// nil.
func (v *Value) PrintPretty(w io.Writer, ctx *ast.Context, ty *ast.Type) {
	io.WriteString(w, v.pretty(ctx, ty))
}

// AsString is PrintPretty into a string.
func (v *Value) AsString(ctx *ast.Context, ty *ast.Type) string {
	return v.pretty(ctx, ty)
}

func (v *Value) pretty(ctx *ast.Context, ty *ast.Type) string {
	switch v.kind {
	case Uninit:
		return "<uninitialized>"
	case Int:
		return v.Int().String()
	case Float:
		return v.Float().String()
	case FixedPoint:
		return v.FixedPoint().String()
	case ComplexInt:
		return v.ComplexIntReal().String() + "+" + v.ComplexIntImag().String() + "i"
	case ComplexFloat:
		return v.ComplexFloatReal().String() + "+" + v.ComplexFloatImag().String() + "i"
	case LValue:
		return v.prettyLValue()
	case Vector:
		var sb strings.Builder
		sb.WriteByte('{')
		for i := 0; i < v.VectorLen(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(v.VectorElt(i).pretty(ctx, nil))
		}
		sb.WriteByte('}')
		return sb.String()
	case Array:
		var sb strings.Builder
		sb.WriteByte('{')
		for i := 0; i < v.ArrayInitializedElts(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(v.ArrayInitializedElt(i).pretty(ctx, nil))
		}
		if v.HasArrayFiller() {
			if v.ArrayInitializedElts() > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s...", v.ArrayFiller().pretty(ctx, nil))
		}
		sb.WriteByte('}')
		return sb.String()
	case Struct:
		var sb strings.Builder
		sb.WriteByte('{')
		first := true
		for i := 0; i < v.StructNumBases(); i++ {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(v.StructBase(i).pretty(ctx, nil))
		}
		for i := 0; i < v.StructNumFields(); i++ {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(v.StructField(i).pretty(ctx, nil))
		}
		sb.WriteByte('}')
		return sb.String()
	case Union:
		f := v.UnionField()
		if f == nil {
			return "{}"
		}
		return "{." + f.Name + " = " + v.UnionValue().pretty(ctx, nil) + "}"
	case MemberPointer:
		if d := v.MemberPointerDecl(); d != nil {
			return "&" + d.Name
		}
		return "0"
	case AddrLabelDiff:
		return "&&" + v.AddrLabelDiffLHS().Label + " - &&" + v.AddrLabelDiffRHS().Label
	default:
		return "<bad>"
	}
}

func (v *Value) prettyLValue() string {
	p := v.data.(*lvalueData)
	if p.nullPtr {
		return "nullptr"
	}

	var sb strings.Builder
	switch {
	case p.base.IsNull():
		fmt.Fprintf(&sb, "%d", p.offset.Quantity())
		return sb.String()
	case p.base.IsDecl():
		sb.WriteByte('&')
		sb.WriteString(p.base.Decl().Name)
	case p.base.IsExpr():
		sb.WriteByte('&')
		sb.WriteString(p.base.Expr().Text)
	default:
		ti := p.base.TypeInfo()
		sb.WriteString("&typeid(")
		if ti.Type() != nil {
			sb.WriteString(ti.Type().Name)
		}
		sb.WriteByte(')')
	}

	if p.hasPath {
		for _, e := range p.path {
			if sel, virtual := e.AsBaseOrMember(); sel != nil {
				switch s := sel.(type) {
				case *ast.FieldDecl:
					sb.WriteByte('.')
					sb.WriteString(s.Name)
				case *ast.RecordDecl:
					if virtual {
						sb.WriteString(".(virtual ")
					} else {
						sb.WriteString(".(")
					}
					sb.WriteString(s.Name)
					sb.WriteByte(')')
				}
				continue
			}
			fmt.Fprintf(&sb, "[%d]", e.AsArrayIndex())
		}
	}
	if p.onePastTheEnd {
		sb.WriteString(" + 1")
	}
	if !p.offset.IsZero() {
		fmt.Fprintf(&sb, " (offset %s)", p.offset)
	}
	return sb.String()
}

// Dump writes a raw structural rendering, kind first, for debugging.
func (v *Value) Dump(w io.Writer) {
	fmt.Fprintf(w, "%v", v.kind)
	switch v.kind {
	case Uninit:
	case Array:
		fmt.Fprintf(w, " %d/%d", v.ArrayInitializedElts(), v.ArraySize())
	case Struct:
		fmt.Fprintf(w, " %d+%d", v.StructNumBases(), v.StructNumFields())
	}
	if v.kind != Uninit {
		fmt.Fprintf(w, " %s", v.pretty(nil, nil))
	}
	io.WriteString(w, "\n")
}

func (v *Value) String() string {
	var sb strings.Builder
	v.Dump(&sb)
	return strings.TrimRight(sb.String(), "\n")
}
