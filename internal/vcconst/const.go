// Package vcconst implements the Constant model (spec §3, §4.B): literal
// values carrying their minimal type, used as operands inside IR opcodes.
// Constants never evaluate; they only type, compare and (de)serialize.
package vcconst

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/veritas-lang/veritas/internal/vctypes"
)

// Constant is implemented by every shape in the literal-value sum. Like
// vctypes.Type, this is a closed tagged variant: one struct per case, each
// required to implement isConstant so the set cannot grow outside this
// package without a compile error at every switch.
type Constant interface {
	TypeOf() vctypes.Type
	String() string
	isConstant()
}

// Null is the single inhabitant of the null type.
type Null struct{}

func (Null) isConstant()          {}
func (Null) TypeOf() vctypes.Type { return vctypes.Null }
func (Null) String() string       { return "null" }

// Bool is a boolean literal; the binary grammar distinguishes True and
// False with separate tags, but they share this one Go shape.
type Bool struct{ Value bool }

func (Bool) isConstant()          {}
func (Bool) TypeOf() vctypes.Type { return vctypes.Bool }
func (b Bool) String() string {
	if b.Value {
		return "true"
	}

	return "false"
}

// Byte is an 8-bit unsigned literal.
type Byte struct{ Value byte }

func (Byte) isConstant()          {}
func (Byte) TypeOf() vctypes.Type { return vctypes.Byte }
func (b Byte) String() string     { return strconv.Itoa(int(b.Value)) + "b" }

// Char is a single Unicode code point.
type Char struct{ Value rune }

func (Char) isConstant()          {}
func (Char) TypeOf() vctypes.Type { return vctypes.Char }
func (c Char) String() string     { return "'" + string(c.Value) + "'" }

// Int is an arbitrary-precision signed integer literal.
type Int struct{ Value *big.Int }

func (Int) isConstant()          {}
func (Int) TypeOf() vctypes.Type { return vctypes.Int }
func (i Int) String() string     { return i.Value.String() }

// IntFromInt64 is a convenience constructor for small literals.
func IntFromInt64(v int64) Int { return Int{Value: big.NewInt(v)} }

// Real is an exact rational literal, numerator over denominator.
type Real struct{ Num, Denom *big.Int }

func (Real) isConstant()          {}
func (Real) TypeOf() vctypes.Type { return vctypes.Rational }
func (r Real) String() string     { return r.Num.String() + "/" + r.Denom.String() }

// String is a sequence of Unicode code units.
type String struct{ Value string }

func (String) isConstant()          {}
func (String) TypeOf() vctypes.Type { return vctypes.String }
func (s String) String() string     { return strconv.Quote(s.Value) }

// List is an ordered sequence of constants. Its minimal type is
// list(lub(elem types)), or list(void) when empty.
type List struct{ Elems []Constant }

func (List) isConstant() {}

func (l List) TypeOf() vctypes.Type {
	return vctypes.List{Elem: elemLub(l.Elems)}
}

func (l List) String() string {
	return "[" + joinConstants(l.Elems) + "]"
}

// Set is an unordered collection of distinct constants. Equal is order and
// duplicate insensitive; TypeOf dedupes and then takes the element lub.
type Set struct{ Elems []Constant }

func (Set) isConstant() {}

func (s Set) TypeOf() vctypes.Type {
	return vctypes.Set{Elem: elemLub(s.Elems)}
}

func (s Set) String() string {
	sorted := sortedStrings(s.Elems)

	return "{" + strings.Join(sorted, ",") + "}"
}

// Tuple is a fixed-arity, heterogeneously-typed sequence.
type Tuple struct{ Elems []Constant }

func (Tuple) isConstant() {}

func (t Tuple) TypeOf() vctypes.Type {
	elems := make([]vctypes.Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.TypeOf()
	}

	return vctypes.Tuple{Elems: elems}
}

func (t Tuple) String() string {
	return "(" + joinConstants(t.Elems) + ")"
}

// Field is one name→value binding inside a Record constant.
type Field struct {
	Name  string
	Value Constant
}

// Record is a closed field→value mapping; its minimal type is the closed
// record type over each field's minimal type.
type Record struct{ Fields []Field }

func (Record) isConstant() {}

func (r Record) TypeOf() vctypes.Type {
	fields := make([]vctypes.Field, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = vctypes.Field{Name: f.Name, Type: f.Value.TypeOf()}
	}

	return vctypes.Record{Fields: fields, Open: false}
}

func (r Record) String() string {
	sorted := append([]Field(nil), r.Fields...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = f.Name + ":" + f.Value.String()
	}

	return "{" + strings.Join(parts, ",") + "}"
}

func elemLub(elems []Constant) vctypes.Type {
	if len(elems) == 0 {
		return vctypes.Void
	}

	types := make([]vctypes.Type, len(elems))
	for i, e := range elems {
		types[i] = e.TypeOf()
	}

	u, err := vctypes.NewUnion(types...)
	if err != nil {
		return vctypes.Void
	}

	return u
}

func joinConstants(elems []Constant) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}

	return strings.Join(parts, ",")
}

func sortedStrings(elems []Constant) []string {
	seen := map[string]bool{}

	var out []string

	for _, e := range elems {
		s := e.String()
		if seen[s] {
			continue
		}

		seen[s] = true

		out = append(out, s)
	}

	sort.Strings(out)

	return out
}

// Equal reports structural equality. List and Tuple are positional; Set is
// unordered and deduplicated; Record compares by field name regardless of
// declaration order.
func Equal(a, b Constant) bool {
	switch va := a.(type) {
	case Set:
		vb, ok := b.(Set)
		if !ok {
			return false
		}

		as, bs := sortedStrings(va.Elems), sortedStrings(vb.Elems)
		if len(as) != len(bs) {
			return false
		}

		for i := range as {
			if as[i] != bs[i] {
				return false
			}
		}

		return true
	default:
		return a.String() == b.String() && sameShape(a, b)
	}
}

func sameShape(a, b Constant) bool {
	switch a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Byte:
		_, ok := b.(Byte)
		return ok
	case Char:
		_, ok := b.(Char)
		return ok
	case Int:
		_, ok := b.(Int)
		return ok
	case Real:
		_, ok := b.(Real)
		return ok
	case String:
		_, ok := b.(String)
		return ok
	case List:
		_, ok := b.(List)
		return ok
	case Tuple:
		_, ok := b.(Tuple)
		return ok
	case Record:
		_, ok := b.(Record)
		return ok
	default:
		return false
	}
}

// Hash returns an FNV-1a hash of the constant's canonical string form,
// suitable for use as a map key alongside an Equal-based tie-break.
func Hash(c Constant) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)

	s := c.String()
	h := uint64(offset)

	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}

	return h
}
