package vctransform_test

import (
	"testing"

	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcengine"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcsolver"
	"github.com/veritas-lang/veritas/internal/vctransform"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

func newCase(t *testing.T, block *vcir.Block, params []vctypes.Type) *vcengine.Engine {
	t.Helper()

	solver := vcsolver.NewZ3Solver()
	t.Cleanup(solver.Close)

	return vcengine.New(block, params, vctransform.New(solver), solver)
}

func TestSortMapping(t *testing.T) {
	solver := vcsolver.NewZ3Solver()
	defer solver.Close()

	tr := vctransform.New(solver)

	cases := []struct {
		ty   vctypes.Type
		want vcsolver.Sort
	}{
		{vctypes.Bool, vcsolver.SortBool},
		{vctypes.Rational, vcsolver.SortReal},
		{vctypes.Int, vcsolver.SortInt},
		{vctypes.List{Elem: vctypes.Int}, vcsolver.SortInt},
	}

	for _, c := range cases {
		if got := tr.Sort(c.ty); got != c.want {
			t.Errorf("Sort(%v) = %v, want %v", c.ty, got, c.want)
		}
	}
}

// 0: r0 := 3
// 1: r1 := 4
// 2: r2 := r0 + r1
func TestStepArithmeticAdd(t *testing.T) {
	b := vcir.NewBlock([]vcir.Entry{
		{Code: vcir.Const{Target: 0, Value: vcconst.IntFromInt64(3)}},
		{Code: vcir.Const{Target: 1, Value: vcconst.IntFromInt64(4)}},
		{Code: vcir.Arithmetic{Target: 2, Source1: 0, Source2: 1, Op: vcir.ArithAdd, Type: vctypes.Int}},
	})

	eng := newCase(t, &b, nil)
	if err := eng.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	master := eng.Master()
	if master.Read(2) == nil {
		t.Fatal("Arithmetic did not write a value for its target register")
	}
}

// Division emits a "divisor != 0" obligation before computing the quotient.
//
// 0: r0 := 10
// 1: r1 := 2
// 2: r2 := r0 / r1
func TestStepDivisionEmitsNonZeroObligation(t *testing.T) {
	b := vcir.NewBlock([]vcir.Entry{
		{Code: vcir.Const{Target: 0, Value: vcconst.IntFromInt64(10)}},
		{Code: vcir.Const{Target: 1, Value: vcconst.IntFromInt64(2)}},
		{Code: vcir.Arithmetic{Target: 2, Source1: 0, Source2: 1, Op: vcir.ArithDiv, Type: vctypes.Int}},
	})

	eng := newCase(t, &b, nil)
	if err := eng.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	obls := eng.Obligations()
	if len(obls) != 1 {
		t.Fatalf("got %d obligations, want 1 (divisor != 0)", len(obls))
	}

	if obls[0].Verdict != vcengine.VerdictHolds {
		t.Fatalf("verdict = %v, want holds (2 != 0)", obls[0].Verdict)
	}
}

func TestStepDivisionByZeroViolatesObligation(t *testing.T) {
	b := vcir.NewBlock([]vcir.Entry{
		{Code: vcir.Const{Target: 0, Value: vcconst.IntFromInt64(10)}},
		{Code: vcir.Const{Target: 1, Value: vcconst.IntFromInt64(0)}},
		{Code: vcir.Arithmetic{Target: 2, Source1: 0, Source2: 1, Op: vcir.ArithDiv, Type: vctypes.Int}},
	})

	eng := newCase(t, &b, nil)
	if err := eng.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	obls := eng.Obligations()
	if len(obls) != 1 {
		t.Fatalf("got %d obligations, want 1", len(obls))
	}

	if obls[0].Verdict != vcengine.VerdictViolated {
		t.Fatalf("verdict = %v, want violated (0 == 0)", obls[0].Verdict)
	}
}

// An assumed fact is promoted onto the enclosing scope rather than checked,
// so the assume scope raises no obligation of its own.
//
// 0: r0 := 1
// 1: r1 := 1
// 2: assume { r0 == r1 is asserted directly via a nested IfCmp } end=6
// 3: if r0 == r1 goto ok
// 4: fail
// 5: ok:
// 6: end:
func TestExitAssumePromotesOntoEnclosingScope(t *testing.T) {
	end := vcir.Label("end")
	ok := vcir.Label("ok")

	b := vcir.NewBlock([]vcir.Entry{
		{Code: vcir.Const{Target: 0, Value: vcconst.IntFromInt64(1)}},
		{Code: vcir.Const{Target: 1, Value: vcconst.IntFromInt64(1)}},
		{Code: vcir.AssertOrAssume{IsAssert: false, End: end}},
		{Code: vcir.IfCmp{Source1: 0, Source2: 1, Cmp: vcir.CmpEq, Target: ok}},
		{Code: vcir.Fail{}},
		{Code: vcir.LabelMarker{Name: ok}},
		{Code: vcir.LabelMarker{Name: end}},
	})

	eng := newCase(t, &b, nil)
	if err := eng.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// An assumption never itself raises an obligation.
	if obls := eng.Obligations(); len(obls) != 0 {
		t.Fatalf("got %d obligations from an assume scope, want 0", len(obls))
	}
}
