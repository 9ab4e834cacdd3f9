package vcir

import (
	"reflect"
	"strconv"
	"sync/atomic"

	"github.com/veritas-lang/veritas/internal/vcattr"
	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcerr"
)

// Entry pairs one bytecode with the opaque attribute bag attached to it
// (spec §3): the core never interprets Attributes, only preserves them
// across shift, relabel and the binary round-trip.
type Entry struct {
	Code       Code
	Attributes []vcattr.Attribute
}

// Block is an ordered, immutable sequence of Entries (spec §3, §4.C).
type Block struct {
	entries []Entry
}

// NewBlock constructs a Block from entries, copying the slice so the caller
// cannot mutate it out from under the Block afterward.
func NewBlock(entries []Entry) Block {
	return Block{entries: append([]Entry(nil), entries...)}
}

// Size returns the number of entries.
func (b Block) Size() int { return len(b.entries) }

// Get returns the entry at index i.
func (b Block) Get(i int) Entry { return b.entries[i] }

// Entries returns a defensive copy of the block's entries.
func (b Block) Entries() []Entry { return append([]Entry(nil), b.entries...) }

// NumSlots returns the largest register referenced by any entry, plus one.
func (b Block) NumSlots() int {
	max := -1

	for _, e := range b.entries {
		for _, r := range e.Code.Slots() {
			if int(r) > max {
				max = int(r)
			}
		}
	}

	return max + 1
}

// Equal reports whether b and o have the same entries in the same order,
// field-for-field and attribute-for-attribute, up to label renaming: a
// block's labels are re-materialized with fresh, process-wide-unique names
// on every decode and every Relabel, so their concrete text carries no
// semantic content of its own, only the positions they identify.
func (b Block) Equal(o Block) bool {
	if len(b.entries) != len(o.entries) {
		return false
	}

	ca, cb := canonicalizeLabels(b), canonicalizeLabels(o)

	for i := range ca {
		// A Const's value is compared with vcconst.Equal: a decoded big-number
		// constant can differ from the original in internal representation
		// alone (a zero big.Int's digit slice is nil in one, empty in the other).
		if x, ok := ca[i].Code.(Const); ok {
			y, ok := cb[i].Code.(Const)
			if !ok || x.Target != y.Target || !reflect.DeepEqual(x.Type, y.Type) || !vcconst.Equal(x.Value, y.Value) {
				return false
			}
		} else if !reflect.DeepEqual(ca[i].Code, cb[i].Code) {
			return false
		}

		if !attributesEqual(ca[i].Attributes, cb[i].Attributes) {
			return false
		}
	}

	return true
}

// canonicalizeLabels renames every label in blk to "L<n>", numbered in the
// order each label is first mentioned (as a definition or a reference)
// while scanning entries front to back, so that two blocks built with
// different concrete label names but the same shape compare equal.
func canonicalizeLabels(blk Block) []Entry {
	next := 0
	canon := map[Label]Label{}

	out := make([]Entry, len(blk.entries))

	for i, e := range blk.entries {
		rename := map[Label]Label{}

		for _, l := range labelsOf(e.Code) {
			if _, ok := canon[l]; !ok {
				canon[l] = Label("L" + strconv.Itoa(next))
				next++
			}

			rename[l] = canon[l]
		}

		out[i] = Entry{Code: e.Code.Relabel(rename), Attributes: e.Attributes}
	}

	return out
}

func attributesEqual(a, b []vcattr.Attribute) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

var freshLabelCounter int64

// FreshLabel returns a new, process-wide-unique label of the form
// "blklab<N>" (spec §4.C).
func FreshLabel() Label {
	n := atomic.AddInt64(&freshLabelCounter, 1)

	return Label("blklab" + strconv.FormatInt(n, 10))
}

// Shift returns a new Block in which every register at or above inputSlots
// is renumbered r -> r+k; registers below inputSlots (the block's declared
// inputs) are preserved (spec §4.C). Labels are untouched.
func (b Block) Shift(k, inputSlots int) Block {
	numSlots := b.NumSlots()

	m := make(map[Register]Register, numSlots)
	for r := 0; r < numSlots; r++ {
		if r < inputSlots {
			m[Register(r)] = Register(r)
		} else {
			m[Register(r)] = Register(r + k)
		}
	}

	out := make([]Entry, len(b.entries))
	for i, e := range b.entries {
		out[i] = Entry{Code: e.Code.Remap(m), Attributes: e.Attributes}
	}

	return Block{entries: out}
}

// Relabel returns a new Block in which every internally-defined label has
// been replaced with a fresh, process-wide-unique label, preserving every
// jump (spec §3, §4.C). Two relabeled copies of the same block never
// collide, which is what lets the global generator splice the same
// predicate block into multiple call sites of a host block.
func (b Block) Relabel() Block {
	labels := map[Label]Label{}

	for _, e := range b.entries {
		for _, l := range labelsOf(e.Code) {
			if _, ok := labels[l]; !ok {
				labels[l] = FreshLabel()
			}
		}
	}

	out := make([]Entry, len(b.entries))
	for i, e := range b.entries {
		out[i] = Entry{Code: e.Code.Relabel(labels), Attributes: e.Attributes}
	}

	return Block{entries: out}
}

// labelsOf returns every label Code c mentions, whether as a branch target
// or as the label it itself defines.
func labelsOf(c Code) []Label {
	switch v := c.(type) {
	case Goto:
		return []Label{v.Target}
	case IfCmp:
		return []Label{v.Target}
	case IfType:
		return []Label{v.Target}
	case Switch:
		ls := make([]Label, 0, len(v.Cases)+1)
		for _, cs := range v.Cases {
			ls = append(ls, cs.Target)
		}

		return append(ls, v.Default)
	case Loop:
		return []Label{v.End}
	case ForAll:
		return []Label{v.End}
	case TryCatch:
		return []Label{v.Target, v.End}
	case AssertOrAssume:
		return []Label{v.End}
	case LabelMarker:
		return []Label{v.Name}
	default:
		return nil
	}
}

// AllLabelRefs returns every label c refers to, whether as a branch target
// or as a scope's end marker (excluding a LabelMarker's own definition). The
// binary codec uses this to resolve label references to forward branch
// offsets and back.
func AllLabelRefs(c Code) []Label {
	return append(branchTargets(c), scopeEnds(c)...)
}

// branchTargets returns every label c jumps to (excluding a LabelMarker's
// own definition), used by Validate to check forward-only control flow.
func branchTargets(c Code) []Label {
	switch v := c.(type) {
	case Goto:
		return []Label{v.Target}
	case IfCmp:
		return []Label{v.Target}
	case IfType:
		return []Label{v.Target}
	case Switch:
		ls := make([]Label, 0, len(v.Cases)+1)
		for _, cs := range v.Cases {
			ls = append(ls, cs.Target)
		}

		return append(ls, v.Default)
	case TryCatch:
		return []Label{v.Target}
	default:
		return nil
	}
}

// Validate checks the block's structural invariants (spec §3): every label
// defined by a LabelMarker is unique within the block, a LabelMarker carries
// no attributes of its own (a label is a pure position marker, re-
// materialized with a fresh name on every decode, so the binary format has
// nowhere stable to round-trip attributes attached to one), and every
// branching opcode targets a label defined at a strictly greater index than
// the branch (forward-only control flow). Scoped opcodes' End labels are
// held to the same rule: each must be defined at a strictly greater index
// than the scoped opcode.
func (b Block) Validate() error {
	defined := map[Label]int{}

	for i, e := range b.entries {
		lm, ok := e.Code.(LabelMarker)
		if !ok {
			continue
		}

		if _, dup := defined[lm.Name]; dup {
			return vcerr.Corrupt("duplicate label in block", map[string]any{"label": string(lm.Name)})
		}

		if len(e.Attributes) != 0 {
			return vcerr.Corrupt("label marker carries attributes", map[string]any{"label": string(lm.Name)})
		}

		defined[lm.Name] = i
	}

	for i, e := range b.entries {
		for _, t := range branchTargets(e.Code) {
			idx, ok := defined[t]
			if !ok {
				return vcerr.Corrupt("branch targets an undefined label", map[string]any{"label": string(t), "index": i})
			}

			if idx <= i {
				return vcerr.Corrupt("branch does not target a strictly later index", map[string]any{"label": string(t), "index": i, "target_index": idx})
			}
		}

		for _, end := range scopeEnds(e.Code) {
			idx, ok := defined[end]
			if !ok {
				return vcerr.Corrupt("scope end names an undefined label", map[string]any{"label": string(end), "index": i})
			}

			if idx <= i {
				return vcerr.Corrupt("scope end does not lie at a strictly later index", map[string]any{"label": string(end), "index": i, "target_index": idx})
			}
		}
	}

	return nil
}

func scopeEnds(c Code) []Label {
	switch v := c.(type) {
	case Loop:
		return []Label{v.End}
	case ForAll:
		return []Label{v.End}
	case TryCatch:
		return []Label{v.End}
	case AssertOrAssume:
		return []Label{v.End}
	default:
		return nil
	}
}

// IndexOfLabel returns the bytecode index at which Name is defined via a
// LabelMarker, or -1 if it is not present in this block.
func (b Block) IndexOfLabel(name Label) int {
	for i, e := range b.entries {
		if lm, ok := e.Code.(LabelMarker); ok && lm.Name == name {
			return i
		}
	}

	return -1
}
