package vcengine

import (
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcsolver"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

// Run walks the master branch to completion, then each queued child branch
// in insertion order, joining it back into its parent once it finishes
// (spec §4.F "Transform driver"). Children forked while processing an
// already-queued child are appended to the same queue and processed in
// turn, so fork order is preserved across the whole tree, not just within
// one branch's own walk.
func (e *Engine) Run() error {
	if err := e.walk(0); err != nil {
		return err
	}

	for i := 0; i < len(e.pending); i++ {
		id := e.pending[i]

		if err := e.walk(id); err != nil {
			return err
		}

		e.join(e.arena[id])
	}

	return nil
}

// Result conjoins the master branch's remaining open scopes outer-to-inner
// (spec §4.F: "the final value yielded is the logical expression obtained
// by conjoining every Scope's constraint list").
func (e *Engine) Result() vcsolver.Expr {
	return e.Master().Conjunction()
}

func (e *Engine) walk(id BranchID) error {
	b := e.arena[id]

	for !b.Done() {
		if err := e.popExpired(b); err != nil {
			return err
		}

		if b.Done() {
			break
		}

		if err := e.dispatch(b); err != nil {
			return err
		}
	}

	return e.popExpired(b)
}

// popExpired closes every scope whose End lies strictly before the
// branch's current pc, innermost first (spec §4.F "pop every scope whose
// end < pc... in top-down order").
func (e *Engine) popExpired(b *VcBranch) error {
	for {
		top := b.TopScope()
		if top == nil || top.End >= b.pc {
			return nil
		}

		s := b.popScope()

		if err := e.transformer.Exit(b, &s); err != nil {
			return err
		}
	}
}

func (e *Engine) dispatch(b *VcBranch) error {
	entry := b.block.Get(b.pc)

	switch v := entry.Code.(type) {
	case vcir.Goto:
		b.pc = b.block.IndexOfLabel(v.Target)

	case vcir.IfCmp:
		if err := e.transformer.Condition(b, v.Cmp, v.Source1, v.Source2, false); err != nil {
			return err
		}

		child := e.fork(b)

		if err := e.transformer.Condition(child, v.Cmp, v.Source1, v.Source2, true); err != nil {
			return err
		}

		child.pc = b.block.IndexOfLabel(v.Target)
		e.enqueue(child)
		b.pc++

	case vcir.Switch:
		for _, c := range v.Cases {
			if err := e.transformer.Case(b, v.Operand, c.Value, false); err != nil {
				return err
			}

			child := e.fork(b)

			if err := e.transformer.Case(child, v.Operand, c.Value, true); err != nil {
				return err
			}

			child.pc = b.block.IndexOfLabel(c.Target)
			e.enqueue(child)
		}

		b.pc = b.block.IndexOfLabel(v.Default)

	case vcir.IfType:
		e.dispatchIfType(b, v)

	case vcir.Loop:
		for _, r := range v.Modified {
			b.Invalidate(r)
		}

		b.pushScope(Scope{Kind: ScopeLoop, End: b.block.IndexOfLabel(v.End)})

		if err := e.transformer.Enter(b, b.TopScope()); err != nil {
			return err
		}

		b.pc++

	case vcir.ForAll:
		for _, r := range v.Modified {
			b.Invalidate(r)
		}

		b.types[v.IndexVar] = elemTypeOf(b.TypeOf(v.Source))
		b.Invalidate(v.IndexVar)

		b.pushScope(Scope{
			Kind:     ScopeForAll,
			End:      b.block.IndexOfLabel(v.End),
			IndexVar: v.IndexVar,
			Source:   v.Source,
		})

		if err := e.transformer.Enter(b, b.TopScope()); err != nil {
			return err
		}

		b.pc++

	case vcir.LoopEnd:
		s := b.popScope()

		if err := e.transformer.Exit(b, &s); err != nil {
			return err
		}

		if s.Kind == ScopeForAll {
			b.pc++
		} else {
			e.terminate(b)
		}

	case vcir.TryCatch:
		b.pushScope(Scope{Kind: ScopeTry, End: b.block.IndexOfLabel(v.End)})

		if err := e.transformer.Enter(b, b.TopScope()); err != nil {
			return err
		}

		b.pc++

	case vcir.AssertOrAssume:
		b.pushScope(Scope{Kind: ScopeAssertOrAssume, End: b.block.IndexOfLabel(v.End), IsAssert: v.IsAssert})

		if err := e.transformer.Enter(b, b.TopScope()); err != nil {
			return err
		}

		b.pc++

	case vcir.Return:
		if err := e.transformer.Step(b, v); err != nil {
			return err
		}

		e.kill(b)

	case vcir.Fail:
		if err := e.transformer.Step(b, v); err != nil {
			return err
		}

		e.kill(b)

	case vcir.Throw:
		if err := e.transformer.Step(b, v); err != nil {
			return err
		}

		e.terminate(b)

	default:
		if err := e.transformer.Step(b, entry.Code); err != nil {
			return err
		}

		b.pc++
	}

	return nil
}

func (e *Engine) dispatchIfType(b *VcBranch, v vcir.IfType) {
	cur := b.TypeOf(v.Operand)
	trueType := vctypes.Intersect(cur, v.Type)
	falseType := vctypes.Intersect(cur, vctypes.Negate(v.Type))

	switch {
	case trueType.Kind() == vctypes.KindVoid:
		b.Retype(v.Operand, falseType)
		b.pc++
	case falseType.Kind() == vctypes.KindVoid:
		b.Retype(v.Operand, trueType)
		b.pc = b.block.IndexOfLabel(v.Target)
	default:
		child := e.fork(b)
		child.Retype(v.Operand, trueType)
		child.pc = b.block.IndexOfLabel(v.Target)
		e.enqueue(child)

		b.Retype(v.Operand, falseType)
		b.pc++
	}
}

func elemTypeOf(t vctypes.Type) vctypes.Type {
	switch v := t.(type) {
	case vctypes.List:
		return v.Elem
	case vctypes.Set:
		return v.Elem
	default:
		return vctypes.Any
	}
}

func (e *Engine) fork(parent *VcBranch) *VcBranch {
	child := parent.clone()
	child.id = BranchID(len(e.arena))
	child.eng = e
	child.parent = parent.id
	child.hasParent = true
	child.forkScopeIndex = len(parent.scopes) - 1

	e.arena = append(e.arena, child)

	return child
}

func (e *Engine) enqueue(b *VcBranch) { e.pending = append(e.pending, b.id) }

// kill drops every scope's constraints and installs false on the top scope
// (spec §4.F "Kill").
func (e *Engine) kill(b *VcBranch) {
	b.killed = true

	for i := range b.scopes {
		b.scopes[i].Constraints = nil
	}

	if top := b.TopScope(); top != nil {
		top.Constraints = []vcsolver.Expr{e.solver.Bool(false)}
	}
}

// terminate stops b from stepping further without discarding its
// constraints (spec §4.F: throw and a non-for loop-end terminate "without
// killing").
func (e *Engine) terminate(b *VcBranch) { b.terminated = true }

// join splits a completed child's fork-point scope against its parent's
// into a shared prefix and two remainders, replacing the parent's
// fork-point scope with common ++ [Or(And(left), And(right))] (spec §4.F
// "Join semantics"). If either side has already closed the fork-point scope
// by the time the child completes, the two branches' full remaining
// conjunctions are combined instead and folded into the parent's current
// innermost scope — a documented fallback for a meet that has already
// moved past the point where the precise splice would apply.
func (e *Engine) join(child *VcBranch) {
	if !child.hasParent {
		return
	}

	parent := e.arena[child.parent]
	idx := child.forkScopeIndex

	if idx < 0 || idx >= len(parent.scopes) || idx >= len(child.scopes) {
		parent.Assert(e.solver.Or(parent.Conjunction(), child.Conjunction()))

		return
	}

	pc := parent.scopes[idx].Constraints
	cc := child.scopes[idx].Constraints
	common := commonPrefix(pc, cc)

	left := append([]vcsolver.Expr(nil), pc[len(common):]...)
	right := append([]vcsolver.Expr(nil), cc[len(common):]...)

	combined := append(append([]vcsolver.Expr(nil), common...), e.solver.Or(e.solver.And(left...), e.solver.And(right...)))
	parent.scopes[idx].Constraints = combined
}

func commonPrefix(a, b []vcsolver.Expr) []vcsolver.Expr {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	return a[:i]
}
