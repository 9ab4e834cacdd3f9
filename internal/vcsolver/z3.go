package vcsolver

import (
	"context"

	z3 "github.com/mitchellh/go-z3"
)

// z3Expr wraps a *z3.AST so it satisfies Expr without leaking the backend
// type into vctransform.
type z3Expr struct{ ast *z3.AST }

func (z3Expr) isExpr() {}

func unwrap(e Expr) *z3.AST {
	return e.(z3Expr).ast
}

func unwrapAll(es []Expr) []*z3.AST {
	out := make([]*z3.AST, len(es))
	for i, e := range es {
		out[i] = unwrap(e)
	}

	return out
}

// Z3Solver is a Builder+Solver backed by github.com/mitchellh/go-z3, grounded
// on the Context/Solver/AST usage shown in the go-z3 SMT-file runner example:
// one Config/Context per Z3Solver, one z3.Solver per Check-worthy obligation
// set, sorts resolved up front, AST construction via the Context's algebra
// methods.
type Z3Solver struct {
	cfg *z3.Config
	ctx *z3.Context

	boolSort *z3.Sort
	intSort  *z3.Sort
	realSort *z3.Sort

	funcs map[string]*z3.FuncDecl
}

// NewZ3Solver constructs a Z3Solver with a fresh Z3 context. Callers must
// call Close when done to release the underlying Z3 resources.
func NewZ3Solver() *Z3Solver {
	cfg := z3.NewConfig()
	ctx := z3.NewContext(cfg)

	return &Z3Solver{
		cfg:      cfg,
		ctx:      ctx,
		boolSort: ctx.BoolSort(),
		intSort:  ctx.IntSort(),
		realSort: ctx.RealSort(),
		funcs:    map[string]*z3.FuncDecl{},
	}
}

// Close releases the Z3 context and config.
func (s *Z3Solver) Close() {
	s.ctx.Close()
	s.cfg.Close()
}

func (s *Z3Solver) sort(sort Sort) *z3.Sort {
	switch sort {
	case SortBool:
		return s.boolSort
	case SortReal:
		return s.realSort
	default:
		return s.intSort
	}
}

func (s *Z3Solver) Bool(v bool) Expr {
	if v {
		return z3Expr{s.ctx.True()}
	}

	return z3Expr{s.ctx.False()}
}

func (s *Z3Solver) Int(v int64) Expr {
	return z3Expr{s.ctx.Int(int(v), s.intSort)}
}

func (s *Z3Solver) Var(name string, sort Sort) Expr {
	return z3Expr{s.ctx.Const(s.ctx.Symbol(name), s.sort(sort))}
}

func (s *Z3Solver) Not(x Expr) Expr     { return z3Expr{unwrap(x).Not()} }
func (s *Z3Solver) Eq(x, y Expr) Expr   { return z3Expr{unwrap(x).Eq(unwrap(y))} }
func (s *Z3Solver) Ne(x, y Expr) Expr   { return z3Expr{unwrap(x).Eq(unwrap(y)).Not()} }
func (s *Z3Solver) Lt(x, y Expr) Expr   { return z3Expr{unwrap(x).Lt(unwrap(y))} }
func (s *Z3Solver) Le(x, y Expr) Expr   { return z3Expr{unwrap(x).Le(unwrap(y))} }
func (s *Z3Solver) Gt(x, y Expr) Expr   { return z3Expr{unwrap(x).Gt(unwrap(y))} }
func (s *Z3Solver) Ge(x, y Expr) Expr   { return z3Expr{unwrap(x).Ge(unwrap(y))} }
func (s *Z3Solver) Add(x, y Expr) Expr  { return z3Expr{unwrap(x).Add(unwrap(y))} }
func (s *Z3Solver) Sub(x, y Expr) Expr  { return z3Expr{unwrap(x).Sub(unwrap(y))} }
func (s *Z3Solver) Mul(x, y Expr) Expr  { return z3Expr{unwrap(x).Mul(unwrap(y))} }
func (s *Z3Solver) Div(x, y Expr) Expr  { return z3Expr{unwrap(x).Div(unwrap(y))} }
func (s *Z3Solver) Rem(x, y Expr) Expr  { return z3Expr{unwrap(x).Rem(unwrap(y))} }
func (s *Z3Solver) Implies(x, y Expr) Expr { return z3Expr{unwrap(x).Implies(unwrap(y))} }

func (s *Z3Solver) And(xs ...Expr) Expr {
	args := unwrapAll(xs)
	if len(args) == 0 {
		return s.Bool(true)
	}

	acc := args[0]
	for _, a := range args[1:] {
		acc = acc.And(a)
	}

	return z3Expr{acc}
}

func (s *Z3Solver) Or(xs ...Expr) Expr {
	args := unwrapAll(xs)
	if len(args) == 0 {
		return s.Bool(false)
	}

	acc := args[0]
	for _, a := range args[1:] {
		acc = acc.Or(a)
	}

	return z3Expr{acc}
}

// App models an uninterpreted function as a Z3 FuncDecl, declared once per
// distinct name and cached for the lifetime of this Solver (one per
// qualified operator the transformer invents, e.g. a list's length or a
// record's field projection that has no native Z3 operator).
func (s *Z3Solver) App(name string, result Sort, args ...Expr) Expr {
	fn, ok := s.funcs[name]
	if !ok {
		domain := make([]*z3.Sort, len(args))
		for i := range args {
			domain[i] = s.intSort
		}

		fn = s.ctx.FuncDecl(s.ctx.Symbol(name), domain, s.sort(result))
		s.funcs[name] = fn
	}

	return z3Expr{fn.Apply(unwrapAll(args)...)}
}

// Check runs the Z3 solver against goal, asserting it on a fresh
// solver instance (one per call, mirroring the "one solver per query"
// discipline in the go-z3 SMT runner rather than reusing a long-lived
// incremental solver, since obligations here are independent per call).
func (s *Z3Solver) Check(ctx context.Context, goal Expr) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}

	solver := s.ctx.NewSolver()
	defer solver.Close()

	solver.Assert(unwrap(goal))

	switch solver.Check() {
	case z3.True:
		return Sat, nil
	case z3.False:
		return Unsat, nil
	default:
		return Unknown, nil
	}
}
