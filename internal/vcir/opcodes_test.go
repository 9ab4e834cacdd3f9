package vcir

import (
	"testing"

	"github.com/veritas-lang/veritas/internal/vcconst"
)

func TestSwitchRemapAndRelabel(t *testing.T) {
	sw := Switch{
		Operand: 1,
		Cases: []SwitchCase{
			{Value: vcconst.IntFromInt64(1), Target: "caseA"},
			{Value: vcconst.IntFromInt64(2), Target: "caseB"},
		},
		Default: "def",
	}

	remapped := sw.Remap(map[Register]Register{1: 5}).(Switch)
	if remapped.Operand != 5 {
		t.Fatalf("expected operand to remap to 5, got %d", remapped.Operand)
	}

	relabeled := sw.Relabel(map[Label]Label{"caseA": "x1", "def": "x2"}).(Switch)
	if relabeled.Cases[0].Target != "x1" || relabeled.Cases[1].Target != "caseB" {
		t.Fatalf("expected only mapped labels to change, got %+v", relabeled.Cases)
	}

	if relabeled.Default != "x2" {
		t.Fatalf("expected default to relabel to x2, got %s", relabeled.Default)
	}
}

func TestForAllSlotsIncludesModifiedSet(t *testing.T) {
	f := ForAll{IndexVar: 0, Source: 1, Modified: []Register{2, 3}, End: "L"}

	slots := f.Slots()
	want := map[Register]bool{0: true, 1: true, 2: true, 3: true}

	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}

	for _, s := range slots {
		if !want[s] {
			t.Fatalf("unexpected slot %d", s)
		}
	}
}

func TestAssertOrAssumeRemapPreservesFlag(t *testing.T) {
	a := AssertOrAssume{IsAssert: true, Modified: []Register{4}, End: "L"}

	remapped := a.Remap(map[Register]Register{4: 9}).(AssertOrAssume)
	if !remapped.IsAssert {
		t.Fatalf("expected IsAssert to be preserved across remap")
	}

	if remapped.Modified[0] != 9 {
		t.Fatalf("expected modified register to remap to 9, got %d", remapped.Modified[0])
	}
}
