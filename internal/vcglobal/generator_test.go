package vcglobal

import (
	"testing"

	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcfile"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

func qn(s string) vctypes.QualifiedName { return vctypes.QualifiedName{Name: s} }

func natInvariant() vcir.Block {
	return vcir.NewBlock([]vcir.Entry{
		{Code: vcir.Const{Target: 1, Value: vcconst.IntFromInt64(0), Type: vctypes.Int}},
		{Code: vcir.AssertOrAssume{IsAssert: true, End: vcir.FreshLabel()}},
	})
}

func TestGenerateReturnsPrecompiledInvariant(t *testing.T) {
	body := natInvariant()

	loader := vcfile.NewMapLoader(mustFile(t, "f1", []vcfile.Decl{
		vcfile.TypeDecl{Name: qn("Nat"), Type: vctypes.Int, Invariant: &body},
	}))

	g := New(loader)

	got, err := g.Generate(qn("Nat"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got == nil || got.Size() != body.Size() {
		t.Fatalf("expected precompiled invariant to pass through unchanged, got %#v", got)
	}
}

func TestGeneratePrimitiveHasNoRefinement(t *testing.T) {
	loader := vcfile.NewMapLoader(mustFile(t, "f1", []vcfile.Decl{
		vcfile.TypeDecl{Name: qn("Anything"), Type: vctypes.Int},
	}))

	g := New(loader)

	got, err := g.Generate(qn("Anything"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got != nil {
		t.Fatalf("expected nil predicate for unrefined primitive, got %#v", got)
	}
}

func TestGenerateListElaboratesForall(t *testing.T) {
	body := natInvariant()

	loader := vcfile.NewMapLoader(mustFile(t, "f1", []vcfile.Decl{
		vcfile.TypeDecl{Name: qn("Nat"), Type: vctypes.Int, Invariant: &body},
		vcfile.TypeDecl{Name: qn("NatList"), Type: vctypes.List{Elem: vctypes.Nominal{Name: qn("Nat")}}},
	}))

	g := New(loader)

	got, err := g.Generate(qn("NatList"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got == nil {
		t.Fatalf("expected a non-nil predicate for a list of refined elements")
	}

	first, ok := got.Get(0).Code.(vcir.ForAll)
	if !ok {
		t.Fatalf("expected first entry to be ForAll, got %#v", got.Get(0).Code)
	}

	if first.IndexVar != 1 || first.Source != 0 {
		t.Fatalf("unexpected ForAll shape: %#v", first)
	}
}

func TestGenerateUnionWithRefinementIsUnsupported(t *testing.T) {
	body := natInvariant()

	loader := vcfile.NewMapLoader(mustFile(t, "f1", []vcfile.Decl{
		vcfile.TypeDecl{Name: qn("Nat"), Type: vctypes.Int, Invariant: &body},
		vcfile.TypeDecl{Name: qn("U"), Type: mustUnion(t, vctypes.Bool, vctypes.Nominal{Name: qn("Nat")})},
	}))

	g := New(loader)

	if _, err := g.Generate(qn("U")); err == nil {
		t.Fatalf("expected UnsupportedFeature for union-with-refinements")
	}
}

func TestGenerateRecursiveRefinementFailsCleanly(t *testing.T) {
	loader := vcfile.NewMapLoader(mustFile(t, "f1", []vcfile.Decl{
		vcfile.TypeDecl{Name: qn("Loopy"), Type: vctypes.Nominal{Name: qn("Loopy")}},
	}))

	g := New(loader)

	if _, err := g.Generate(qn("Loopy")); err == nil {
		t.Fatalf("expected a clean error for a self-referential nominal refinement")
	}
}

func mustFile(t *testing.T, id string, decls []vcfile.Decl) *vcfile.WyilFile {
	t.Helper()

	f, err := vcfile.New(id, id+".wyil", decls)
	if err != nil {
		t.Fatalf("vcfile.New: %v", err)
	}

	return f
}

func mustUnion(t *testing.T, opts ...vctypes.Type) vctypes.Type {
	t.Helper()

	u, err := vctypes.NewUnion(opts...)
	if err != nil {
		t.Fatalf("NewUnion: %v", err)
	}

	return u
}
