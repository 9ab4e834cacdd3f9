// Package vctransform implements VcTransformer (spec §4.G): the per-opcode
// handler set plus scope lifecycle hooks a VcBranch engine drives. Arithmetic
// is the one concrete, non-solver-specific reference implementation,
// emitting the boolean/arithmetic/uninterpreted-function connectives spec.md
// §6 describes.
package vctransform

import (
	"strconv"

	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcengine"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcsolver"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

// Arithmetic lowers every straight-line opcode to a Builder expression over
// the branch's current environment, the way the teacher's codegen pipeline
// switches over a closed instruction sum (internal/codegen/pipeline.go) —
// generalized here from emitting machine code to emitting logical
// connectives. Composite operations (container construction, field/index
// access, calls) that have no native Builder operator become applications
// of a named uninterpreted function, one per distinct operation shape.
type Arithmetic struct {
	builder vcsolver.Builder
}

var _ vcengine.Transformer = (*Arithmetic)(nil)

// New constructs an Arithmetic transformer emitting terms through builder.
// Pairing it with a vcsolver.Solver that also implements Builder (as
// vcsolver.Z3Solver does) lets one concrete value serve as both.
func New(builder vcsolver.Builder) *Arithmetic {
	return &Arithmetic{builder: builder}
}

func (t *Arithmetic) Sort(ty vctypes.Type) vcsolver.Sort {
	switch ty.Kind() {
	case vctypes.KindBool:
		return vcsolver.SortBool
	case vctypes.KindRational:
		return vcsolver.SortReal
	default:
		// Int, Byte, Char, and every composite/reference/nominal shape this
		// reference transformer does not model natively: represented as
		// opaque integer-sorted terms, related to each other only via the
		// uninterpreted functions Step constructs for them.
		return vcsolver.SortInt
	}
}

func (t *Arithmetic) Step(b *vcengine.VcBranch, code vcir.Code) error {
	switch v := code.(type) {
	case vcir.Const:
		b.Write(v.Target, t.constExpr(v.Value))

	case vcir.Move:
		b.Write(v.Target, b.Read(v.Source))
	case vcir.Assign:
		b.Write(v.Target, b.Read(v.Source))
	case vcir.Convert:
		b.Write(v.Target, t.builder.App("convert", t.Sort(v.Type), b.Read(v.Source)))
	case vcir.Invert:
		b.Write(v.Target, t.builder.Not(b.Read(v.Source)))
	case vcir.Negate:
		b.Write(v.Target, t.builder.Sub(t.builder.Int(0), b.Read(v.Source)))
	case vcir.Dereference:
		b.Write(v.Target, t.builder.App("deref", t.Sort(v.Type), b.Read(v.Source)))
	case vcir.LengthOf:
		b.Write(v.Target, t.builder.App("length", vcsolver.SortInt, b.Read(v.Source)))
	case vcir.Debug:
		// No logical effect.

	case vcir.Arithmetic:
		if err := t.arithmetic(b, v); err != nil {
			return err
		}

	case vcir.IndexOf:
		b.Write(v.Target, t.builder.App("index", t.Sort(v.Type), b.Read(v.Source1), b.Read(v.Source2)))

	case vcir.ListConstruct:
		b.Write(v.Target, t.builder.App("list", t.Sort(v.Type), t.readAll(b, v.Sources)...))
	case vcir.SetConstruct:
		b.Write(v.Target, t.builder.App("set", t.Sort(v.Type), t.readAll(b, v.Sources)...))
	case vcir.MapConstruct:
		b.Write(v.Target, t.builder.App("map", t.Sort(v.Type), t.readAll(b, v.Sources)...))
	case vcir.TupleConstruct:
		b.Write(v.Target, t.builder.App("tuple", t.Sort(v.Type), t.readAll(b, v.Sources)...))
	case vcir.RecordConstruct:
		b.Write(v.Target, t.builder.App("record", t.Sort(v.Type), t.readAll(b, v.Sources)...))

	case vcir.FieldLoad:
		b.Write(v.Target, t.builder.App("field:"+v.Field, t.Sort(v.Type), t.readAll(b, v.Sources)...))
	case vcir.TupleLoad:
		b.Write(v.Target, t.builder.App("tuple:"+strconv.Itoa(v.Index), t.Sort(v.Type), t.readAll(b, v.Sources)...))

	case vcir.Update:
		name := "update:" + v.Field
		if v.Field == "" {
			name = "update:" + strconv.Itoa(v.Index)
		}

		b.Write(v.Target, t.builder.App(name, t.Sort(v.Type), t.readAll(b, v.Sources)...))

	case vcir.NewObject:
		b.Write(v.Target, t.builder.App("new", t.Sort(v.Type), t.readAll(b, v.Sources)...))

	case vcir.DirectInvoke:
		if v.Name.Name != "" {
			// TODO: assert the callee's precondition at the call site and
			// assume its postcondition on the result, once the global
			// generator exposes compiled function contracts to the
			// transformer.
			b.Write(v.Target, t.builder.App("call:"+v.Name.String(), t.Sort(v.Type), t.readAll(b, v.Sources)...))
		}
	case vcir.IndirectInvoke:
		b.Write(v.Target, t.builder.App("apply", t.Sort(v.Type), t.readAll(b, v.Sources)...))

	case vcir.Nop, vcir.LabelMarker:
		// No logical effect.

	case vcir.Return, vcir.Fail, vcir.Throw:
		// Branch-lifecycle transition; the engine kills/terminates the
		// branch itself after this call returns.

	default:
		return vcerrUnsupported(code)
	}

	return nil
}

func (t *Arithmetic) arithmetic(b *vcengine.VcBranch, v vcir.Arithmetic) error {
	x, y := b.Read(v.Source1), b.Read(v.Source2)

	if v.Op == vcir.ArithDiv || v.Op == vcir.ArithRem {
		if err := b.Emit(t.builder.Ne(y, t.builder.Int(0))); err != nil {
			return err
		}
	}

	var result vcsolver.Expr

	switch v.Op {
	case vcir.ArithAdd:
		result = t.builder.Add(x, y)
	case vcir.ArithSub:
		result = t.builder.Sub(x, y)
	case vcir.ArithMul:
		result = t.builder.Mul(x, y)
	case vcir.ArithDiv:
		result = t.builder.Div(x, y)
	case vcir.ArithRem:
		result = t.builder.Rem(x, y)
	case vcir.ArithLogicalAnd:
		result = t.builder.And(x, y)
	case vcir.ArithLogicalOr:
		result = t.builder.Or(x, y)
	default:
		// Bitwise operators have no native connective in this logic;
		// modeled as an uninterpreted function keyed by operator.
		result = t.builder.App("bitop:"+v.Op.String(), t.Sort(v.Type), x, y)
	}

	b.Write(v.Target, result)

	return nil
}

func (t *Arithmetic) readAll(b *vcengine.VcBranch, sources []vcir.Register) []vcsolver.Expr {
	out := make([]vcsolver.Expr, len(sources))
	for i, r := range sources {
		out[i] = b.Read(r)
	}

	return out
}

func (t *Arithmetic) constExpr(c vcconst.Constant) vcsolver.Expr {
	switch v := c.(type) {
	case vcconst.Bool:
		return t.builder.Bool(v.Value)
	case vcconst.Int:
		return t.builder.Int(v.Value.Int64())
	case vcconst.Byte:
		return t.builder.Int(int64(v.Value))
	case vcconst.Char:
		return t.builder.Int(int64(v.Value))
	case vcconst.Null:
		return t.builder.App("null", vcsolver.SortInt)
	default:
		// Real, String, List, Set, Tuple, Record literals: represented as
		// a distinct nullary uninterpreted term keyed by their printed
		// form, sufficient for equality reasoning but not literal algebra.
		return t.builder.App("lit:"+c.String(), vcsolver.SortInt)
	}
}

func (t *Arithmetic) Condition(b *vcengine.VcBranch, cmp vcir.Comparator, source1, source2 vcir.Register, taken bool) error {
	cond := t.compare(cmp, b.Read(source1), b.Read(source2))
	if !taken {
		cond = t.builder.Not(cond)
	}

	b.Assert(cond)

	return nil
}

func (t *Arithmetic) Case(b *vcengine.VcBranch, operand vcir.Register, value vcconst.Constant, taken bool) error {
	cond := t.builder.Eq(b.Read(operand), t.constExpr(value))
	if !taken {
		cond = t.builder.Not(cond)
	}

	b.Assert(cond)

	return nil
}

func (t *Arithmetic) compare(cmp vcir.Comparator, x, y vcsolver.Expr) vcsolver.Expr {
	switch cmp {
	case vcir.CmpEq:
		return t.builder.Eq(x, y)
	case vcir.CmpNe:
		return t.builder.Ne(x, y)
	case vcir.CmpLt:
		return t.builder.Lt(x, y)
	case vcir.CmpLe:
		return t.builder.Le(x, y)
	case vcir.CmpGt:
		return t.builder.Gt(x, y)
	default:
		return t.builder.Ge(x, y)
	}
}

func (t *Arithmetic) Enter(b *vcengine.VcBranch, s *vcengine.Scope) error {
	return nil
}

// Exit implements the scope-closing behavior spec §4.F assigns per kind:
// an assertion emits its accumulated constraints as an obligation, an
// assumption promotes them onto the now-exposed enclosing scope, and
// loop/forall/try scopes need no transformer-side action beyond what the
// engine already does structurally.
func (t *Arithmetic) Exit(b *vcengine.VcBranch, s *vcengine.Scope) error {
	if s.Kind != vcengine.ScopeAssertOrAssume {
		return nil
	}

	conj := t.builder.And(s.Constraints...)

	if s.IsAssert {
		return b.Emit(conj)
	}

	b.Assert(conj)

	return nil
}
