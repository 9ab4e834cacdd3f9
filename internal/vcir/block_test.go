package vcir

import (
	"testing"

	"github.com/veritas-lang/veritas/internal/vctypes"
)

func sampleBlock() Block {
	// r0 := r1 + r1; if r0 == r1 goto L; r2 := r0; L: return r2
	return NewBlock([]Entry{
		{Code: Arithmetic{Target: 0, Source1: 1, Source2: 1, Op: ArithAdd, Type: vctypes.Int}},
		{Code: IfCmp{Source1: 0, Source2: 1, Cmp: CmpEq, Target: "L"}},
		{Code: Assign{Target: 2, Source: 0, Type: vctypes.Int}},
		{Code: LabelMarker{Name: "L"}},
		{Code: Return{Sources: []Register{2}}},
	})
}

func TestNumSlots(t *testing.T) {
	b := sampleBlock()
	if got := b.NumSlots(); got != 3 {
		t.Fatalf("expected 3 slots (0,1,2), got %d", got)
	}
}

func TestValidateAcceptsForwardBranch(t *testing.T) {
	if err := sampleBlock().Validate(); err != nil {
		t.Fatalf("expected a well-formed block to validate, got %v", err)
	}
}

func TestValidateRejectsBackwardBranch(t *testing.T) {
	b := NewBlock([]Entry{
		{Code: LabelMarker{Name: "L"}},
		{Code: Goto{Target: "L"}},
	})

	if err := b.Validate(); err == nil {
		t.Fatalf("expected a backward branch to fail validation")
	}
}

func TestValidateRejectsUndefinedLabel(t *testing.T) {
	b := NewBlock([]Entry{
		{Code: Goto{Target: "nowhere"}},
	})

	if err := b.Validate(); err == nil {
		t.Fatalf("expected a branch to an undefined label to fail validation")
	}
}

func TestValidateRejectsDuplicateLabel(t *testing.T) {
	b := NewBlock([]Entry{
		{Code: LabelMarker{Name: "L"}},
		{Code: LabelMarker{Name: "L"}},
	})

	if err := b.Validate(); err == nil {
		t.Fatalf("expected a duplicate label to fail validation")
	}
}

func TestShiftPreservesInputsAndBumpsTemporaries(t *testing.T) {
	b := sampleBlock()
	shifted := b.Shift(10, 2) // r0,r1 are inputs; r2 is a temporary

	arith := shifted.Get(0).Code.(Arithmetic)
	if arith.Target != 0 || arith.Source1 != 1 || arith.Source2 != 1 {
		t.Fatalf("expected input registers to be preserved, got %+v", arith)
	}

	assign := shifted.Get(2).Code.(Assign)
	if assign.Target != 12 {
		t.Fatalf("expected temporary register 2 to shift to 12, got %d", assign.Target)
	}

	ret := shifted.Get(4).Code.(Return)
	if ret.Sources[0] != 12 {
		t.Fatalf("expected shifted return source, got %d", ret.Sources[0])
	}
}

func TestRelabelFreshensWithoutBreakingJumps(t *testing.T) {
	b := sampleBlock()
	relabeled := b.Relabel()

	ifc := relabeled.Get(1).Code.(IfCmp)
	lm := relabeled.Get(3).Code.(LabelMarker)

	if ifc.Target != lm.Name {
		t.Fatalf("expected the jump and its label definition to still agree after relabel")
	}

	if ifc.Target == "L" {
		t.Fatalf("expected the label to have been freshened, still saw the original name")
	}

	if err := relabeled.Validate(); err != nil {
		t.Fatalf("expected relabeled block to still validate: %v", err)
	}
}

func TestRelabelTwiceProducesDisjointLabels(t *testing.T) {
	b := sampleBlock()
	r1 := b.Relabel()
	r2 := b.Relabel()

	l1 := r1.Get(3).Code.(LabelMarker).Name
	l2 := r2.Get(3).Code.(LabelMarker).Name

	if l1 == l2 {
		t.Fatalf("expected two independent relabelings of the same block to produce distinct labels")
	}
}
