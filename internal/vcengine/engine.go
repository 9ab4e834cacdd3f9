package vcengine

import (
	"context"
	"strconv"

	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcsolver"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

// Transformer is the per-opcode handler set a domain front end supplies
// (spec §4.G): pure functions over a VcBranch's environment/constraints,
// plus scope lifecycle hooks. It is deliberately narrow — straight-line
// opcodes are type-switched inside Step, the way the teacher's codegen
// pipeline type-switches its own instruction sum, rather than exploding
// into one Transformer method per opcode.
type Transformer interface {
	// Sort lowers a refined static type to the logical sort a fresh skolem
	// variable for it should have.
	Sort(t vctypes.Type) vcsolver.Sort

	// Step handles every straight-line opcode (arithmetic, loads, stores,
	// constructors, const, move/assign/convert/invert/negate, invoke,
	// update, new-object, dereference, nop, debug) plus return/fail/throw.
	Step(b *VcBranch, code vcir.Code) error

	// Condition is called once per side of an `if cmp` fork: taken=false on
	// the parent's falsethrough continuation, taken=true on the child that
	// jumps to the comparison's target.
	Condition(b *VcBranch, cmp vcir.Comparator, source1, source2 vcir.Register, taken bool) error

	// Case is called once per switch case: taken=true on the child branch
	// that jumps to that case's label, taken=false on the parent for every
	// case it did not take (so the parent's default path learns the
	// operand matched none of them).
	Case(b *VcBranch, operand vcir.Register, value vcconst.Constant, taken bool) error

	// Enter runs when a scoped opcode (loop, forall, try-catch, assert,
	// assume) opens s.
	Enter(b *VcBranch, s *Scope) error

	// Exit runs after a scope has been popped off b's scope stack (s is no
	// longer on it); implementations dispatch on s.Kind for the behavior
	// spec §4.F assigns to loop-end/end-for/try/assert/assume closing.
	Exit(b *VcBranch, s *Scope) error
}

// Verdict is the outcome of checking one Obligation.
type Verdict int

const (
	// VerdictUnknown means the solver could not decide.
	VerdictUnknown Verdict = iota
	// VerdictHolds means the obligation's negation is unsatisfiable: the
	// property holds on every model of the accumulated constraints.
	VerdictHolds
	// VerdictViolated means the solver found a model of the obligation's
	// negation: a counterexample to the property.
	VerdictViolated
)

func (v Verdict) String() string {
	switch v {
	case VerdictHolds:
		return "holds"
	case VerdictViolated:
		return "violated"
	default:
		return "unknown"
	}
}

// Obligation is one verification condition checked during a walk (spec
// §4.G): the conjunction of every enclosing scope's constraints at the
// moment an assert (or another checked property) fired, together with the
// solver's verdict.
type Obligation struct {
	Branch  BranchID
	PC      int
	Goal    vcsolver.Expr
	Verdict Verdict
}

// Engine drives exactly one function/method case's verification: one
// branch arena, one solver, one transformer (spec §5: "each with its own
// engine instance").
type Engine struct {
	block       *vcir.Block
	transformer Transformer
	solver      vcsolver.Solver

	arena   []*VcBranch
	pending []BranchID

	obligations []Obligation
}

// New constructs the master branch for block: pc=0, one fresh
// logical variable per entry in params, and an Entry scope spanning the
// whole block (spec §4.F "Master construction").
func New(block *vcir.Block, params []vctypes.Type, transformer Transformer, solver vcsolver.Solver) *Engine {
	eng := &Engine{
		block:       block,
		transformer: transformer,
		solver:      solver,
	}

	master := &VcBranch{
		eng:   eng,
		block: block,
		pc:    0,
		env:   map[vcir.Register]vcsolver.Expr{},
		types: map[vcir.Register]vctypes.Type{},
	}

	for i, t := range params {
		r := vcir.Register(i)
		master.types[r] = t
		master.env[r] = solver.Var("p"+strconv.Itoa(i), transformer.Sort(t))
	}

	master.pushScope(Scope{Kind: ScopeEntry, End: block.Size()})

	eng.arena = append(eng.arena, master)

	return eng
}

// Master returns the branch created by New.
func (e *Engine) Master() *VcBranch { return e.arena[0] }

// Branch returns the branch identified by id.
func (e *Engine) Branch(id BranchID) *VcBranch { return e.arena[id] }

// Obligations returns every obligation emitted so far.
func (e *Engine) Obligations() []Obligation { return append([]Obligation(nil), e.obligations...) }

// emit checks goal's negation, conjoined with the branch's accumulated path
// constraints, for satisfiability: unsat means goal holds under every model
// reachable along this branch; sat exhibits a counterexample.
func (e *Engine) emit(b *VcBranch, goal vcsolver.Expr) error {
	res, err := e.solver.Check(context.Background(), e.solver.And(b.Conjunction(), e.solver.Not(goal)))
	if err != nil {
		return err
	}

	verdict := VerdictUnknown

	switch res {
	case vcsolver.Unsat:
		verdict = VerdictHolds
	case vcsolver.Sat:
		verdict = VerdictViolated
	}

	e.obligations = append(e.obligations, Obligation{Branch: b.id, PC: b.pc, Goal: goal, Verdict: verdict})

	return nil
}
