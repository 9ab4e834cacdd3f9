package vcfile

import (
	"testing"

	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

func name(s string) vctypes.QualifiedName { return vctypes.QualifiedName{Name: s} }

func TestNewRejectsDuplicateNames(t *testing.T) {
	decls := []Decl{
		ConstantDecl{Name: name("X"), Value: vcconst.IntFromInt64(1)},
		ConstantDecl{Name: name("X"), Value: vcconst.IntFromInt64(2)},
	}

	if _, err := New("f", "f.wyil", decls); err == nil {
		t.Fatalf("expected duplicate declaration names to fail construction")
	}
}

func TestLookupFindsDeclaration(t *testing.T) {
	decls := []Decl{
		ConstantDecl{Name: name("X"), Value: vcconst.IntFromInt64(1)},
	}

	f, err := New("f", "f.wyil", decls)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if f.Lookup(name("X")) == nil {
		t.Fatalf("expected to find X")
	}

	if f.Lookup(name("Y")) != nil {
		t.Fatalf("expected Y to be absent")
	}
}

func TestMapLoaderResolvesAcrossFiles(t *testing.T) {
	f1, _ := New("f1", "f1.wyil", []Decl{ConstantDecl{Name: name("A"), Value: vcconst.IntFromInt64(1)}})
	f2, _ := New("f2", "f2.wyil", []Decl{ConstantDecl{Name: name("B"), Value: vcconst.IntFromInt64(2)}})

	loader := NewMapLoader(f1, f2)

	if _, ok, _ := loader.Load(name("A")); !ok {
		t.Fatalf("expected A to resolve")
	}

	if _, ok, _ := loader.Load(name("C")); ok {
		t.Fatalf("expected C to be absent")
	}
}
