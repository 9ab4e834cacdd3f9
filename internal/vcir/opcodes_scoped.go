package vcir

// Scoped opcodes open a Scope (spec §3) that a later entry in the same
// block closes; each carries the modified set (every register its body may
// write), which the VC engine uses to invalidate registers on scope entry.

// Loop opens a LoopScope. End names the loop-end terminator.
type Loop struct {
	Modified []Register
	End      Label
}

func (Loop) isCode()             {}
func (l Loop) Slots() []Register { return append([]Register(nil), l.Modified...) }
func (l Loop) Remap(m map[Register]Register) Code {
	l.Modified = remapAll(l.Modified, m)
	return l
}
func (l Loop) Relabel(m map[Label]Label) Code {
	l.End = relabelOne(l.End, m)
	return l
}

// ForAll opens a ForScope iterating IndexVar over Source. End names the
// loop-end terminator.
type ForAll struct {
	IndexVar Register
	Source   Register
	Modified []Register
	End      Label
}

func (ForAll) isCode() {}
func (f ForAll) Slots() []Register {
	return append([]Register{f.IndexVar, f.Source}, f.Modified...)
}
func (f ForAll) Remap(m map[Register]Register) Code {
	f.IndexVar = remapRegister(f.IndexVar, m)
	f.Source = remapRegister(f.Source, m)
	f.Modified = remapAll(f.Modified, m)

	return f
}
func (f ForAll) Relabel(m map[Label]Label) Code {
	f.End = relabelOne(f.End, m)
	return f
}

// LoopEnd closes the innermost Loop or ForAll scope.
type LoopEnd struct{}

func (LoopEnd) isCode()                            {}
func (LoopEnd) Slots() []Register                  { return nil }
func (l LoopEnd) Remap(map[Register]Register) Code { return l }
func (l LoopEnd) Relabel(map[Label]Label) Code     { return l }

// TryCatch opens a TryScope. Target is the catch entry label; End names the
// scope's terminator.
type TryCatch struct {
	Target   Label
	Modified []Register
	End      Label
}

func (TryCatch) isCode() {}
func (t TryCatch) Slots() []Register {
	return append([]Register(nil), t.Modified...)
}
func (t TryCatch) Remap(m map[Register]Register) Code {
	t.Modified = remapAll(t.Modified, m)
	return t
}
func (t TryCatch) Relabel(m map[Label]Label) Code {
	t.Target = relabelOne(t.Target, m)
	t.End = relabelOne(t.End, m)

	return t
}

// AssertOrAssume opens an AssertOrAssumeScope. IsAssert distinguishes an
// assertion (the accumulated constraints become a verification obligation
// on scope exit) from an assumption (they become facts on the enclosing
// scope). End names the scope's terminator.
type AssertOrAssume struct {
	IsAssert bool
	Modified []Register
	End      Label
}

func (AssertOrAssume) isCode() {}
func (a AssertOrAssume) Slots() []Register {
	return append([]Register(nil), a.Modified...)
}
func (a AssertOrAssume) Remap(m map[Register]Register) Code {
	a.Modified = remapAll(a.Modified, m)
	return a
}
func (a AssertOrAssume) Relabel(m map[Label]Label) Code {
	a.End = relabelOne(a.End, m)
	return a
}
