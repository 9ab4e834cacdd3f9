// Package vcsolver defines the expression/solver boundary the VC engine
// targets (spec.md §6 "Solver interface (consumed)"): a Builder that lowers
// the transformer's boolean/arithmetic/uninterpreted-function connectives
// into opaque Exprs, and a Solver that checks them for satisfiability.
package vcsolver

import "context"

// Expr is an opaque formula or term produced by a Builder. It carries no
// behavior of its own; every operation on it goes through the Builder or
// Solver that produced or consumes it.
type Expr interface {
	isExpr()
}

// Sort names the logical sort a Builder constructs terms over.
type Sort int

const (
	SortBool Sort = iota
	SortInt
	SortReal
)

// Builder constructs Exprs. A VcTransformer is written against this
// interface, never against a concrete backend, so it can be re-targeted to
// a different logic (spec.md §4.G "the transformer is language-agnostic").
type Builder interface {
	Bool(v bool) Expr
	Int(v int64) Expr
	Var(name string, sort Sort) Expr

	Not(x Expr) Expr
	And(xs ...Expr) Expr
	Or(xs ...Expr) Expr
	Implies(x, y Expr) Expr

	Eq(x, y Expr) Expr
	Ne(x, y Expr) Expr
	Lt(x, y Expr) Expr
	Le(x, y Expr) Expr
	Gt(x, y Expr) Expr
	Ge(x, y Expr) Expr

	Add(x, y Expr) Expr
	Sub(x, y Expr) Expr
	Mul(x, y Expr) Expr
	Div(x, y Expr) Expr
	Rem(x, y Expr) Expr

	// App constructs an application of an uninterpreted function named
	// name (one per distinct (name, sort) pair, e.g. a list's length or a
	// record's field projection when the domain has no native operator for
	// it) to args, returning a term of the given result sort.
	App(name string, result Sort, args ...Expr) Expr
}

// Result is the three-valued outcome of a Solver.Check call.
type Result int

const (
	Unknown Result = iota
	Sat
	Unsat
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Solver checks one Expr (conventionally a conjunction of the negation of a
// verification obligation, per spec.md §4.G) for satisfiability.
type Solver interface {
	Builder
	Check(ctx context.Context, goal Expr) (Result, error)
}
