package vcengine

import (
	"testing"

	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcsolver"
	"github.com/veritas-lang/veritas/internal/vctransform"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

func newTestEngine(t *testing.T, block *vcir.Block, params []vctypes.Type) (*Engine, *vcsolver.Z3Solver) {
	t.Helper()

	solver := vcsolver.NewZ3Solver()
	t.Cleanup(solver.Close)

	tr := vctransform.New(solver)

	return New(block, params, tr, solver), solver
}

func label(n string) vcir.Label { return vcir.Label(n) }

// A trivial assert block: two equal int constants compared for equality
// inside an assertion scope, with a jump-past-Fail shape so the surviving
// branch carries the asserted condition and the failing branch is killed.
//
//	0: r0 := 1
//	1: r1 := 1
//	2: assert { ... } end=6
//	3: if r0 == r1 goto ok
//	4: fail
//	5: ok:
//	6: end:
func assertBlock(cmp vcir.Comparator) *vcir.Block {
	b := vcir.NewBlock([]vcir.Entry{
		{Code: vcir.Const{Target: 0, Value: intLit(1)}},
		{Code: vcir.Const{Target: 1, Value: intLit(1)}},
		{Code: vcir.AssertOrAssume{IsAssert: true, End: label("end")}},
		{Code: vcir.IfCmp{Source1: 0, Source2: 1, Cmp: cmp, Target: label("ok")}},
		{Code: vcir.Fail{}},
		{Code: vcir.LabelMarker{Name: label("ok")}},
		{Code: vcir.LabelMarker{Name: label("end")}},
	})

	return &b
}

func TestRunAssertHolds(t *testing.T) {
	block := assertBlock(vcir.CmpEq)

	eng, _ := newTestEngine(t, block, nil)
	if err := eng.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	obls := eng.Obligations()
	if len(obls) != 1 {
		t.Fatalf("got %d obligations, want 1", len(obls))
	}

	if obls[0].Verdict != VerdictHolds {
		t.Fatalf("verdict = %v, want holds", obls[0].Verdict)
	}
}

func TestRunAssertViolated(t *testing.T) {
	// assertBlock loads 1 into both r0 and r1, so the surviving branch's
	// asserted condition r0 != r1 is false: the obligation is violated.
	block := assertBlock(vcir.CmpNe)

	eng, _ := newTestEngine(t, block, nil)
	if err := eng.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	obls := eng.Obligations()
	if len(obls) != 1 {
		t.Fatalf("got %d obligations, want 1", len(obls))
	}

	if obls[0].Verdict != VerdictViolated {
		t.Fatalf("verdict = %v, want violated", obls[0].Verdict)
	}
}

func TestKillInstallsFalseAndDropsConstraints(t *testing.T) {
	solver := vcsolver.NewZ3Solver()
	t.Cleanup(solver.Close)

	eng := &Engine{solver: solver}
	b := &VcBranch{eng: eng, scopes: []Scope{
		{Kind: ScopeEntry, Constraints: []vcsolver.Expr{solver.Bool(true)}},
		{Kind: ScopeAssertOrAssume, Constraints: []vcsolver.Expr{solver.Bool(true)}},
	}}

	eng.kill(b)

	if !b.killed {
		t.Fatal("kill did not set killed")
	}

	if b.scopes[0].Constraints != nil {
		t.Fatal("kill left a non-top scope's constraints intact")
	}

	if len(b.scopes[1].Constraints) != 1 {
		t.Fatalf("top scope has %d constraints, want 1", len(b.scopes[1].Constraints))
	}
}

func TestTerminateDoesNotTouchConstraints(t *testing.T) {
	solver := vcsolver.NewZ3Solver()
	t.Cleanup(solver.Close)

	eng := &Engine{solver: solver}
	want := []vcsolver.Expr{solver.Bool(true)}
	b := &VcBranch{eng: eng, scopes: []Scope{{Kind: ScopeTry, Constraints: want}}}

	eng.terminate(b)

	if !b.terminated {
		t.Fatal("terminate did not set terminated")
	}

	if len(b.scopes[0].Constraints) != len(want) {
		t.Fatal("terminate mutated scope constraints")
	}
}

func TestJoinSplicesCommonPrefix(t *testing.T) {
	solver := vcsolver.NewZ3Solver()
	t.Cleanup(solver.Close)

	a := solver.Var("a", vcsolver.SortBool)
	b := solver.Var("b", vcsolver.SortBool)
	c := solver.Var("c", vcsolver.SortBool)
	d := solver.Var("d", vcsolver.SortBool)
	e := solver.Var("e", vcsolver.SortBool)

	eng := &Engine{solver: solver}

	parent := &VcBranch{id: 0, eng: eng, scopes: []Scope{{Kind: ScopeEntry, Constraints: []vcsolver.Expr{a, b, c, d}}}}
	child := &VcBranch{id: 1, eng: eng, parent: 0, hasParent: true, forkScopeIndex: 0,
		scopes: []Scope{{Kind: ScopeEntry, Constraints: []vcsolver.Expr{a, b, c, e}}}}

	eng.arena = []*VcBranch{parent, child}

	eng.join(child)

	got := parent.scopes[0].Constraints
	if len(got) != 4 {
		t.Fatalf("got %d constraints after join, want 4 (3 common + 1 disjunction)", len(got))
	}

	if got[0] != a || got[1] != b || got[2] != c {
		t.Fatal("join did not preserve the common prefix")
	}
}

func TestNewMasterBranchHasOneVarPerParam(t *testing.T) {
	empty := vcir.NewBlock(nil)
	eng, _ := newTestEngine(t, &empty, []vctypes.Type{vctypes.Int, vctypes.Bool})

	master := eng.Master()

	if master.Read(0) == nil || master.Read(1) == nil {
		t.Fatal("New did not bind a variable for every parameter register")
	}

	if master.TopScope() == nil || master.TopScope().Kind != ScopeEntry {
		t.Fatal("New did not push an Entry scope")
	}
}

func intLit(v int64) vcconst.Constant { return vcconst.IntFromInt64(v) }
