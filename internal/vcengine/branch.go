package vcengine

import (
	"strconv"

	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcsolver"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

// BranchID is an arena index identifying a VcBranch within one Engine
// (spec.md §9 "Cyclic object graphs in branches": branches reference each
// other by small integer, never by pointer, so the branch tree is never
// itself a Go cyclic object graph).
type BranchID int

// VcBranch is one path-sensitive symbolic execution state (spec §3, §4.F):
// a program counter into the shared Block, a register environment, a
// per-register type refinement, and a stack of open Scopes.
type VcBranch struct {
	id    BranchID
	eng   *Engine
	block *vcir.Block

	pc int

	env   map[vcir.Register]vcsolver.Expr
	types map[vcir.Register]vctypes.Type

	scopes []Scope

	parent   BranchID
	hasParent bool
	// forkScopeIndex is the index into scopes at which this branch diverged
	// from its parent; join splices the recombined constraint list back at
	// this same index on both sides.
	forkScopeIndex int

	killed     bool
	terminated bool
}

// ID returns this branch's arena index.
func (b *VcBranch) ID() BranchID { return b.id }

// PC returns the branch's current bytecode index.
func (b *VcBranch) PC() int { return b.pc }

// Done reports whether this branch has stopped stepping, either by falling
// off the end of its block, by being killed, or by terminating.
func (b *VcBranch) Done() bool {
	return b.killed || b.terminated || b.pc >= b.block.Size()
}

// Read returns the current symbolic value of r.
func (b *VcBranch) Read(r vcir.Register) vcsolver.Expr { return b.env[r] }

// Write sets r's current symbolic value.
func (b *VcBranch) Write(r vcir.Register, e vcsolver.Expr) { b.env[r] = e }

// TypeOf returns r's current refined static type.
func (b *VcBranch) TypeOf(r vcir.Register) vctypes.Type { return b.types[r] }

// Retype narrows r's current static type without touching its value
// (used by if-is on both the taken and falsethrough sides).
func (b *VcBranch) Retype(r vcir.Register, t vctypes.Type) { b.types[r] = t }

// TopScope returns a pointer to the innermost open scope, or nil if none.
func (b *VcBranch) TopScope() *Scope {
	if len(b.scopes) == 0 {
		return nil
	}

	return &b.scopes[len(b.scopes)-1]
}

// Assert appends e as a constraint on the innermost open scope.
func (b *VcBranch) Assert(e vcsolver.Expr) {
	top := b.TopScope()
	if top == nil {
		return
	}

	top.Constraints = append(top.Constraints, e)
}

// pushScope opens a new scope; running the transformer's Enter hook is left
// to the caller.
func (b *VcBranch) pushScope(s Scope) { b.scopes = append(b.scopes, s) }

func (b *VcBranch) popScope() Scope {
	s := b.scopes[len(b.scopes)-1]
	b.scopes = b.scopes[:len(b.scopes)-1]

	return s
}

// Conjunction conjoins every open scope's constraint list, outer-to-inner
// (spec §4.G: "obligations are the conjunction of all constraints in all
// scopes at the moment of emission").
func (b *VcBranch) Conjunction() vcsolver.Expr {
	var all []vcsolver.Expr

	for _, s := range b.scopes {
		all = append(all, s.Constraints...)
	}

	return b.eng.solver.And(all...)
}

// Emit checks goal against the engine's solver and records the outcome as
// an Obligation (spec §4.G: "may... emit a verification obligation to the
// external solver").
func (b *VcBranch) Emit(goal vcsolver.Expr) error {
	return b.eng.emit(b, goal)
}

// Invalidate resets r to a fresh skolem variable named for this branch,
// register, and program counter, at r's declared sort (spec §4.F
// "Invalidation (SSA reset)"). The branch id is folded into the name so
// that two branches invalidating the same register at the same pc (e.g. a
// parent and a later sibling reusing the same loop header) never alias.
func (b *VcBranch) Invalidate(r vcir.Register) {
	t := b.types[r]
	sort := b.eng.transformer.Sort(t)
	name := "r" + strconv.Itoa(int(r)) + "_" + strconv.Itoa(b.pc) + "_" + strconv.Itoa(int(b.id))

	b.env[r] = b.eng.solver.Var(name, sort)
}

func (b *VcBranch) clone() *VcBranch {
	env := make(map[vcir.Register]vcsolver.Expr, len(b.env))
	for r, e := range b.env {
		env[r] = e
	}

	typesCopy := make(map[vcir.Register]vctypes.Type, len(b.types))
	for r, t := range b.types {
		typesCopy[r] = t
	}

	scopes := make([]Scope, len(b.scopes))
	for i, s := range b.scopes {
		scopes[i] = s.clone()
	}

	return &VcBranch{
		block:  b.block,
		pc:     b.pc,
		env:    env,
		types:  typesCopy,
		scopes: scopes,
	}
}
