package vcengine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/veritas-lang/veritas/internal/vcfile"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcsolver"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

// CaseObligation is one Obligation together with the declaration and
// overload it was raised against, the shape VerifyAll actually reports
// (spec §4.F supplemented: "the package-level entry point a consumer...
// actually calls").
type CaseObligation struct {
	Obligation

	DeclName  string
	CaseIndex int
}

// Session constructs the Transformer+Solver pair one function/method
// case's Engine runs against. VerifyAll calls it once per case so that
// concurrently verified cases never share solver or transformer state
// (spec §5: "each with its own engine instance").
type Session func() (Transformer, vcsolver.Solver)

// VerifyAll verifies every function/method case in file, fanning the work
// out across an errgroup.Group at function/method-case granularity (spec §5
// "parallelism... at the granularity of independent compilation units") and
// returns every obligation raised, in no particular cross-case order.
//
// Precondition blocks are run once before the body walk and their resulting
// conjunction is assumed on the body's entry scope; postcondition blocks
// are run once after the body walk completes and their conjunction is
// asserted as one additional obligation.
// TODO: assert the postcondition at every return site rather than once
// after the whole body walk, once return-site interception is needed.
func VerifyAll(ctx context.Context, file *vcfile.WyilFile, newSession Session) ([]CaseObligation, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		mu      sync.Mutex
		results []CaseObligation
	)

	for _, decl := range file.Declarations() {
		fn, ok := decl.(vcfile.FunctionOrMethodDecl)
		if !ok {
			continue
		}

		for caseIndex, fc := range fn.Cases {
			fn, fc, caseIndex := fn, fc, caseIndex

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				tr, sv := newSession()

				obls, err := verifyCase(fn, fc, tr, sv)
				if err != nil {
					return err
				}

				tagged := make([]CaseObligation, len(obls))
				for i, o := range obls {
					tagged[i] = CaseObligation{Obligation: o, DeclName: fn.Name.String(), CaseIndex: caseIndex}
				}

				mu.Lock()
				results = append(results, tagged...)
				mu.Unlock()

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func verifyCase(fn vcfile.FunctionOrMethodDecl, fc vcfile.FunctionCase, transformer Transformer, solver vcsolver.Solver) ([]Obligation, error) {
	params := paramTypes(fn.Type)

	eng := New(&fc.Body, params, transformer, solver)

	if fc.Precondition != nil {
		assumed, err := runAuxiliary(transformer, solver, fc.Precondition, params)
		if err != nil {
			return nil, err
		}

		eng.Master().Assert(assumed)
	}

	if err := eng.Run(); err != nil {
		return nil, err
	}

	if fc.Postcondition != nil {
		goal, err := runAuxiliary(transformer, solver, fc.Postcondition, params)
		if err != nil {
			return nil, err
		}

		if err := eng.Master().Emit(goal); err != nil {
			return nil, err
		}
	}

	return eng.Obligations(), nil
}

// runAuxiliary walks an auxiliary block (a precondition or postcondition)
// to completion on its own engine and returns the conjunction of its
// branch's surviving scopes.
func runAuxiliary(transformer Transformer, solver vcsolver.Solver, block *vcir.Block, params []vctypes.Type) (vcsolver.Expr, error) {
	aux := New(block, params, transformer, solver)
	if err := aux.Run(); err != nil {
		return nil, err
	}

	return aux.Result(), nil
}

func paramTypes(t vctypes.Type) []vctypes.Type {
	switch v := t.(type) {
	case vctypes.Function:
		return v.Params
	case vctypes.Method:
		return v.Params
	default:
		return nil
	}
}
