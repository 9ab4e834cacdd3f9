package vcir

import "github.com/veritas-lang/veritas/internal/vctypes"

// Convert is target := convert(source, Type): a value-preserving coercion
// between structurally related types.
type Convert struct {
	Target, Source Register
	Type           vctypes.Type
}

func (Convert) isCode()                  {}
func (c Convert) Slots() []Register      { return []Register{c.Target, c.Source} }
func (c Convert) Remap(m map[Register]Register) Code {
	c.Target, c.Source = remapRegister(c.Target, m), remapRegister(c.Source, m)
	return c
}
func (c Convert) Relabel(map[Label]Label) Code { return c }

// Invert is target := !source (bitwise/logical complement).
type Invert struct {
	Target, Source Register
	Type           vctypes.Type
}

func (Invert) isCode()             {}
func (i Invert) Slots() []Register { return []Register{i.Target, i.Source} }
func (i Invert) Remap(m map[Register]Register) Code {
	i.Target, i.Source = remapRegister(i.Target, m), remapRegister(i.Source, m)
	return i
}
func (i Invert) Relabel(map[Label]Label) Code { return i }

// Negate is target := -source (arithmetic negation).
type Negate struct {
	Target, Source Register
	Type           vctypes.Type
}

func (Negate) isCode()             {}
func (n Negate) Slots() []Register { return []Register{n.Target, n.Source} }
func (n Negate) Remap(m map[Register]Register) Code {
	n.Target, n.Source = remapRegister(n.Target, m), remapRegister(n.Source, m)
	return n
}
func (n Negate) Relabel(map[Label]Label) Code { return n }

// Move is target := source, with source no longer considered live afterward
// (the IR does not enforce liveness itself; this is advisory for back ends).
type Move struct {
	Target, Source Register
	Type           vctypes.Type
}

func (Move) isCode()             {}
func (mv Move) Slots() []Register { return []Register{mv.Target, mv.Source} }
func (mv Move) Remap(m map[Register]Register) Code {
	mv.Target, mv.Source = remapRegister(mv.Target, m), remapRegister(mv.Source, m)
	return mv
}
func (mv Move) Relabel(map[Label]Label) Code { return mv }

// Assign is target := source, a plain copy.
type Assign struct {
	Target, Source Register
	Type           vctypes.Type
}

func (Assign) isCode()             {}
func (a Assign) Slots() []Register { return []Register{a.Target, a.Source} }
func (a Assign) Remap(m map[Register]Register) Code {
	a.Target, a.Source = remapRegister(a.Target, m), remapRegister(a.Source, m)
	return a
}
func (a Assign) Relabel(map[Label]Label) Code { return a }

// Dereference is target := *source, where Type is source's reference(T)
// type. This package does not check Type; the codec reader rejects a
// Dereference whose Type is not a reference as a corrupt file.
type Dereference struct {
	Target, Source Register
	Type           vctypes.Type
}

func (Dereference) isCode()             {}
func (d Dereference) Slots() []Register { return []Register{d.Target, d.Source} }
func (d Dereference) Remap(m map[Register]Register) Code {
	d.Target, d.Source = remapRegister(d.Target, m), remapRegister(d.Source, m)
	return d
}
func (d Dereference) Relabel(map[Label]Label) Code { return d }

// LengthOf is target := |source|, for a list, set, or map operand.
type LengthOf struct {
	Target, Source Register
	Type           vctypes.Type
}

func (LengthOf) isCode()             {}
func (l LengthOf) Slots() []Register { return []Register{l.Target, l.Source} }
func (l LengthOf) Remap(m map[Register]Register) Code {
	l.Target, l.Source = remapRegister(l.Target, m), remapRegister(l.Source, m)
	return l
}
func (l LengthOf) Relabel(map[Label]Label) Code { return l }

// Debug emits source's runtime value to the diagnostic channel; it has no
// target register and imposes no constraint, but source remains a read for
// shift/remap bookkeeping.
type Debug struct {
	Source Register
	Type   vctypes.Type
}

func (Debug) isCode()             {}
func (d Debug) Slots() []Register { return []Register{d.Source} }
func (d Debug) Remap(m map[Register]Register) Code {
	d.Source = remapRegister(d.Source, m)
	return d
}
func (d Debug) Relabel(map[Label]Label) Code { return d }
