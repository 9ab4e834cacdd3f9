// Package vcengine implements the VcBranch path-sensitive symbolic
// execution engine (spec §4.F): single-step semantics, fork/join/kill,
// scope stack bookkeeping, and SSA-style register invalidation, driven
// opcode-by-opcode through a VcTransformer.
package vcengine

import (
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcsolver"
)

// ScopeKind discriminates the kinds of scope a scoped opcode opens.
type ScopeKind int

const (
	ScopeEntry ScopeKind = iota
	ScopeLoop
	ScopeForAll
	ScopeTry
	ScopeAssertOrAssume
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeEntry:
		return "entry"
	case ScopeLoop:
		return "loop"
	case ScopeForAll:
		return "forall"
	case ScopeTry:
		return "try"
	case ScopeAssertOrAssume:
		return "assert-or-assume"
	default:
		return "unknown"
	}
}

// Scope is an activation of a scoped opcode on a branch (spec §3).
type Scope struct {
	Kind        ScopeKind
	End         int // bytecode index of the matching terminator
	Constraints []vcsolver.Expr

	// ForAll-only.
	IndexVar vcir.Register
	Source   vcir.Register

	// AssertOrAssume-only.
	IsAssert bool

	// Entry-only: the declaration this branch is verifying.
	DeclName string
}

// clone returns a shallow copy of s: the constraint slice header is copied
// (so appends on one side never touch the other) but the Expr elements
// themselves are never mutated in place, so sharing them is safe.
func (s Scope) clone() Scope {
	s.Constraints = append([]vcsolver.Expr(nil), s.Constraints...)

	return s
}
