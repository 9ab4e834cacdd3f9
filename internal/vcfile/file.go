// Package vcfile models one compiled IR file: its declarations and the
// Loader interface the core uses to resolve names from a unit it did not
// itself compile (spec §6, an external collaborator boundary).
package vcfile

import (
	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

// ConstantDecl declares a named constant.
type ConstantDecl struct {
	Name  vctypes.QualifiedName
	Value vcconst.Constant
}

// TypeDecl declares a named (possibly refined) nominal type. Invariant, if
// non-nil, is the refinement predicate block over a single input slot 0
// holding the candidate value; a nil Invariant means the type carries no
// refinement.
type TypeDecl struct {
	Name      vctypes.QualifiedName
	Type      vctypes.Type
	Invariant *vcir.Block
}

// FunctionCase is one precondition/postcondition/body triple for a single
// overload of a function or method declaration.
type FunctionCase struct {
	Precondition  *vcir.Block
	Postcondition *vcir.Block
	Body          vcir.Block
}

// FunctionOrMethodDecl declares a function or method, which may have
// multiple overloaded Cases distinguished by parameter type.
type FunctionOrMethodDecl struct {
	Name   vctypes.QualifiedName
	Type   vctypes.Type // function(...) or method(...)
	Cases  []FunctionCase
	Method bool
}

// Decl is implemented by every declaration shape a WyilFile may contain.
type Decl interface {
	DeclName() vctypes.QualifiedName
	isDecl()
}

func (d ConstantDecl) DeclName() vctypes.QualifiedName         { return d.Name }
func (ConstantDecl) isDecl()                                   {}
func (d TypeDecl) DeclName() vctypes.QualifiedName             { return d.Name }
func (TypeDecl) isDecl()                                       {}
func (d FunctionOrMethodDecl) DeclName() vctypes.QualifiedName { return d.Name }
func (FunctionOrMethodDecl) isDecl()                           {}

// WyilFile is one compiled IR unit: an ordered, name-unique set of
// declarations. Construction validates uniqueness eagerly so that every
// live WyilFile value satisfies the invariant for its whole lifetime.
type WyilFile struct {
	ID          string
	Filename    string
	declarations []Decl
	byName      map[string]Decl
}

// New constructs a WyilFile, failing with DuplicateDeclaration if two
// declarations share a qualified name.
func New(id, filename string, decls []Decl) (*WyilFile, error) {
	byName := make(map[string]Decl, len(decls))

	for _, d := range decls {
		key := d.DeclName().String()
		if _, dup := byName[key]; dup {
			return nil, duplicateErr(d)
		}

		byName[key] = d
	}

	return &WyilFile{
		ID:           id,
		Filename:     filename,
		declarations: append([]Decl(nil), decls...),
		byName:       byName,
	}, nil
}

// Declarations returns a defensive copy of the file's declarations.
func (f *WyilFile) Declarations() []Decl { return append([]Decl(nil), f.declarations...) }

// Lookup returns the declaration named name, or nil if absent.
func (f *WyilFile) Lookup(name vctypes.QualifiedName) Decl {
	return f.byName[name.String()]
}

// Equal reports whether f and o declare the same compiled unit: the same
// ID and Filename, and the same declarations by name, each compared
// structurally (vctypes.Equal for types, vcconst.Equal for constant
// values, vcir.Block.Equal for bodies, which is itself label-renaming-
// insensitive since labels are re-materialized fresh on every decode).
func (f *WyilFile) Equal(o *WyilFile) bool {
	if f.ID != o.ID || f.Filename != o.Filename {
		return false
	}

	if len(f.declarations) != len(o.declarations) {
		return false
	}

	for name, d := range f.byName {
		od, ok := o.byName[name]
		if !ok || !declEqual(d, od) {
			return false
		}
	}

	return true
}

func declEqual(a, b Decl) bool {
	switch va := a.(type) {
	case ConstantDecl:
		vb, ok := b.(ConstantDecl)
		return ok && va.Name.Equal(vb.Name) && vcconst.Equal(va.Value, vb.Value)
	case TypeDecl:
		vb, ok := b.(TypeDecl)
		if !ok || !va.Name.Equal(vb.Name) || !vctypes.Equal(va.Type, vb.Type) {
			return false
		}

		return blockPtrEqual(va.Invariant, vb.Invariant)
	case FunctionOrMethodDecl:
		vb, ok := b.(FunctionOrMethodDecl)
		if !ok || !va.Name.Equal(vb.Name) || va.Method != vb.Method || !vctypes.Equal(va.Type, vb.Type) {
			return false
		}

		if len(va.Cases) != len(vb.Cases) {
			return false
		}

		for i := range va.Cases {
			if !caseEqual(va.Cases[i], vb.Cases[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func caseEqual(a, b FunctionCase) bool {
	return blockPtrEqual(a.Precondition, b.Precondition) &&
		blockPtrEqual(a.Postcondition, b.Postcondition) &&
		a.Body.Equal(b.Body)
}

func blockPtrEqual(a, b *vcir.Block) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(*b)
}

func duplicateErr(d Decl) *vcerr.Error {
	kind := "declaration"

	switch d.(type) {
	case ConstantDecl:
		kind = "constant"
	case TypeDecl:
		kind = "type"
	case FunctionOrMethodDecl:
		kind = "function/method"
	}

	return vcerr.Duplicate(kind, d.DeclName().String())
}
