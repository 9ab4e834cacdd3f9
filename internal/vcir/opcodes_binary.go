package vcir

import "github.com/veritas-lang/veritas/internal/vctypes"

// IfCmp is the binary-condition opcode: if source1 `Cmp` source2, jump to
// Target; otherwise fall through. Carries no target register.
type IfCmp struct {
	Source1, Source2 Register
	Cmp              Comparator
	Target           Label
}

func (IfCmp) isCode() {}
func (c IfCmp) Slots() []Register {
	return []Register{c.Source1, c.Source2}
}
func (c IfCmp) Remap(m map[Register]Register) Code {
	c.Source1, c.Source2 = remapRegister(c.Source1, m), remapRegister(c.Source2, m)
	return c
}
func (c IfCmp) Relabel(m map[Label]Label) Code {
	c.Target = relabelOne(c.Target, m)
	return c
}

// Arithmetic is the binary-assign opcode: target := source1 Op source2.
type Arithmetic struct {
	Target, Source1, Source2 Register
	Op                       ArithOp
	Type                     vctypes.Type
}

func (Arithmetic) isCode() {}
func (a Arithmetic) Slots() []Register {
	return []Register{a.Target, a.Source1, a.Source2}
}
func (a Arithmetic) Remap(m map[Register]Register) Code {
	a.Target = remapRegister(a.Target, m)
	a.Source1 = remapRegister(a.Source1, m)
	a.Source2 = remapRegister(a.Source2, m)

	return a
}
func (a Arithmetic) Relabel(map[Label]Label) Code { return a }

// IndexOf is target := source1[source2], for a list or map operand.
type IndexOf struct {
	Target, Source1, Source2 Register
	Type                     vctypes.Type
}

func (IndexOf) isCode() {}
func (i IndexOf) Slots() []Register {
	return []Register{i.Target, i.Source1, i.Source2}
}
func (i IndexOf) Remap(m map[Register]Register) Code {
	i.Target = remapRegister(i.Target, m)
	i.Source1 = remapRegister(i.Source1, m)
	i.Source2 = remapRegister(i.Source2, m)

	return i
}
func (i IndexOf) Relabel(map[Label]Label) Code { return i }
