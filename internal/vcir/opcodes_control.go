package vcir

import (
	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

// Goto is an unconditional jump to Target.
type Goto struct{ Target Label }

func (Goto) isCode()                    {}
func (Goto) Slots() []Register          { return nil }
func (g Goto) Remap(map[Register]Register) Code { return g }
func (g Goto) Relabel(m map[Label]Label) Code {
	g.Target = relabelOne(g.Target, m)
	return g
}

// IfType is `if-is Operand, Type, Target`: jumps to Target when Operand's
// runtime type is consistent with Type.
type IfType struct {
	Operand Register
	Type    vctypes.Type
	Target  Label
}

func (IfType) isCode()             {}
func (it IfType) Slots() []Register { return []Register{it.Operand} }
func (it IfType) Remap(m map[Register]Register) Code {
	it.Operand = remapRegister(it.Operand, m)
	return it
}
func (it IfType) Relabel(m map[Label]Label) Code {
	it.Target = relabelOne(it.Target, m)
	return it
}

// SwitchCase pairs one constant to match against with its jump target.
type SwitchCase struct {
	Value  vcconst.Constant
	Target Label
}

// Switch jumps to the case whose constant equals Operand's runtime value,
// or to Default if none match.
type Switch struct {
	Operand Register
	Cases   []SwitchCase
	Default Label
}

func (Switch) isCode()              {}
func (s Switch) Slots() []Register  { return []Register{s.Operand} }
func (s Switch) Remap(m map[Register]Register) Code {
	s.Operand = remapRegister(s.Operand, m)
	return s
}
func (s Switch) Relabel(m map[Label]Label) Code {
	cases := make([]SwitchCase, len(s.Cases))
	for i, c := range s.Cases {
		cases[i] = SwitchCase{Value: c.Value, Target: relabelOne(c.Target, m)}
	}

	s.Cases = cases
	s.Default = relabelOne(s.Default, m)

	return s
}

// Return yields Sources (possibly empty, for a method with no outputs) and
// terminates the branch.
type Return struct{ Sources []Register }

func (Return) isCode()                 {}
func (r Return) Slots() []Register     { return append([]Register(nil), r.Sources...) }
func (r Return) Remap(m map[Register]Register) Code {
	r.Sources = remapAll(r.Sources, m)
	return r
}
func (r Return) Relabel(map[Label]Label) Code { return r }

// Throw propagates Source as an exception to the enclosing TryScope.
type Throw struct{ Source Register }

func (Throw) isCode()             {}
func (t Throw) Slots() []Register { return []Register{t.Source} }
func (t Throw) Remap(m map[Register]Register) Code {
	t.Source = remapRegister(t.Source, m)
	return t
}
func (t Throw) Relabel(map[Label]Label) Code { return t }

// Fail terminates the branch as an unreachable path (e.g. an exhaustiveness
// failure); the VC engine kills the branch here and emits no obligation.
type Fail struct{}

func (Fail) isCode()                           {}
func (Fail) Slots() []Register                 { return nil }
func (f Fail) Remap(map[Register]Register) Code { return f }
func (f Fail) Relabel(map[Label]Label) Code    { return f }

// Nop does nothing; a placeholder left by transformations upstream of this
// core.
type Nop struct{}

func (Nop) isCode()                            {}
func (Nop) Slots() []Register                  { return nil }
func (n Nop) Remap(map[Register]Register) Code { return n }
func (n Nop) Relabel(map[Label]Label) Code     { return n }

// LabelMarker defines Name as a jump target at this bytecode index.
type LabelMarker struct{ Name Label }

func (LabelMarker) isCode()                    {}
func (LabelMarker) Slots() []Register          { return nil }
func (l LabelMarker) Remap(map[Register]Register) Code { return l }
func (l LabelMarker) Relabel(m map[Label]Label) Code {
	l.Name = relabelOne(l.Name, m)
	return l
}
