package vcir

import (
	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

func naryAssignSlots(target Register, sources []Register) []Register {
	out := make([]Register, 0, len(sources)+1)
	out = append(out, target)
	out = append(out, sources...)

	return out
}

// ListConstruct is target := [sources...].
type ListConstruct struct {
	Target  Register
	Sources []Register
	Type    vctypes.Type
}

func (ListConstruct) isCode() {}
func (l ListConstruct) Slots() []Register {
	return naryAssignSlots(l.Target, l.Sources)
}
func (l ListConstruct) Remap(m map[Register]Register) Code {
	l.Target, l.Sources = remapRegister(l.Target, m), remapAll(l.Sources, m)
	return l
}
func (l ListConstruct) Relabel(map[Label]Label) Code { return l }

// SetConstruct is target := {sources...}.
type SetConstruct struct {
	Target  Register
	Sources []Register
	Type    vctypes.Type
}

func (SetConstruct) isCode() {}
func (s SetConstruct) Slots() []Register {
	return naryAssignSlots(s.Target, s.Sources)
}
func (s SetConstruct) Remap(m map[Register]Register) Code {
	s.Target, s.Sources = remapRegister(s.Target, m), remapAll(s.Sources, m)
	return s
}
func (s SetConstruct) Relabel(map[Label]Label) Code { return s }

// MapConstruct is target := {sources[2i]->sources[2i+1]...}, keys and values
// interleaved in Sources.
type MapConstruct struct {
	Target  Register
	Sources []Register
	Type    vctypes.Type
}

func (MapConstruct) isCode() {}
func (mc MapConstruct) Slots() []Register {
	return naryAssignSlots(mc.Target, mc.Sources)
}
func (mc MapConstruct) Remap(m map[Register]Register) Code {
	mc.Target, mc.Sources = remapRegister(mc.Target, m), remapAll(mc.Sources, m)
	return mc
}
func (mc MapConstruct) Relabel(map[Label]Label) Code { return mc }

// TupleConstruct is target := (sources...).
type TupleConstruct struct {
	Target  Register
	Sources []Register
	Type    vctypes.Type
}

func (TupleConstruct) isCode() {}
func (tc TupleConstruct) Slots() []Register {
	return naryAssignSlots(tc.Target, tc.Sources)
}
func (tc TupleConstruct) Remap(m map[Register]Register) Code {
	tc.Target, tc.Sources = remapRegister(tc.Target, m), remapAll(tc.Sources, m)
	return tc
}
func (tc TupleConstruct) Relabel(map[Label]Label) Code { return tc }

// RecordConstruct is target := {Fields[i]: sources[i]...}.
type RecordConstruct struct {
	Target  Register
	Sources []Register
	Fields  []string
	Type    vctypes.Type
}

func (RecordConstruct) isCode() {}
func (rc RecordConstruct) Slots() []Register {
	return naryAssignSlots(rc.Target, rc.Sources)
}
func (rc RecordConstruct) Remap(m map[Register]Register) Code {
	rc.Target, rc.Sources = remapRegister(rc.Target, m), remapAll(rc.Sources, m)
	return rc
}
func (rc RecordConstruct) Relabel(map[Label]Label) Code { return rc }

// FieldLoad is target := sources[0].Field.
type FieldLoad struct {
	Target  Register
	Sources []Register
	Field   string
	Type    vctypes.Type
}

func (FieldLoad) isCode() {}
func (f FieldLoad) Slots() []Register {
	return naryAssignSlots(f.Target, f.Sources)
}
func (f FieldLoad) Remap(m map[Register]Register) Code {
	f.Target, f.Sources = remapRegister(f.Target, m), remapAll(f.Sources, m)
	return f
}
func (f FieldLoad) Relabel(map[Label]Label) Code { return f }

// TupleLoad is target := sources[0].Index.
type TupleLoad struct {
	Target  Register
	Sources []Register
	Index   int
	Type    vctypes.Type
}

func (TupleLoad) isCode() {}
func (t TupleLoad) Slots() []Register {
	return naryAssignSlots(t.Target, t.Sources)
}
func (t TupleLoad) Remap(m map[Register]Register) Code {
	t.Target, t.Sources = remapRegister(t.Target, m), remapAll(t.Sources, m)
	return t
}
func (t TupleLoad) Relabel(map[Label]Label) Code { return t }

// Const is target := Value, a literal load.
type Const struct {
	Target Register
	Value  vcconst.Constant
	Type   vctypes.Type
}

func (Const) isCode() {}
func (c Const) Slots() []Register {
	return []Register{c.Target}
}
func (c Const) Remap(m map[Register]Register) Code {
	c.Target = remapRegister(c.Target, m)
	return c
}
func (c Const) Relabel(map[Label]Label) Code { return c }

// DirectInvoke is target := Name(sources...), a statically resolved call.
// Name is empty for void-returning calls made purely for effect, in which
// case Target is unused.
type DirectInvoke struct {
	Target  Register
	Sources []Register
	Name    vctypes.QualifiedName
	Type    vctypes.Type
}

func (DirectInvoke) isCode() {}
func (d DirectInvoke) Slots() []Register {
	return naryAssignSlots(d.Target, d.Sources)
}
func (d DirectInvoke) Remap(m map[Register]Register) Code {
	d.Target, d.Sources = remapRegister(d.Target, m), remapAll(d.Sources, m)
	return d
}
func (d DirectInvoke) Relabel(map[Label]Label) Code { return d }

// IndirectInvoke is target := Sources[0](Sources[1:]...): the callee is
// itself a register holding a first-class function/method value.
type IndirectInvoke struct {
	Target  Register
	Sources []Register
	Type    vctypes.Type
}

func (IndirectInvoke) isCode() {}
func (ii IndirectInvoke) Slots() []Register {
	return naryAssignSlots(ii.Target, ii.Sources)
}
func (ii IndirectInvoke) Remap(m map[Register]Register) Code {
	ii.Target, ii.Sources = remapRegister(ii.Target, m), remapAll(ii.Sources, m)
	return ii
}
func (ii IndirectInvoke) Relabel(map[Label]Label) Code { return ii }

// Update is target := Sources[0] with its Field (or, if Field is empty, its
// Index) replaced by Sources[1]. Used for both record field update and
// list/map element update.
type Update struct {
	Target  Register
	Sources []Register
	Field   string
	Index   int
	Type    vctypes.Type
}

func (Update) isCode() {}
func (u Update) Slots() []Register {
	return naryAssignSlots(u.Target, u.Sources)
}
func (u Update) Remap(m map[Register]Register) Code {
	u.Target, u.Sources = remapRegister(u.Target, m), remapAll(u.Sources, m)
	return u
}
func (u Update) Relabel(map[Label]Label) Code { return u }

// NewObject is target := new(sources[0]), allocating a fresh reference cell.
type NewObject struct {
	Target  Register
	Sources []Register
	Type    vctypes.Type
}

func (NewObject) isCode() {}
func (n NewObject) Slots() []Register {
	return naryAssignSlots(n.Target, n.Sources)
}
func (n NewObject) Remap(m map[Register]Register) Code {
	n.Target, n.Sources = remapRegister(n.Target, m), remapAll(n.Sources, m)
	return n
}
func (n NewObject) Relabel(map[Label]Label) Code { return n }
