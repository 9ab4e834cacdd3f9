package vcfile

import "github.com/veritas-lang/veritas/internal/vctypes"

// Loader resolves a qualified name to the WyilFile declaring it, for names
// imported from a unit this engine instance did not itself compile (spec
// §6: "the compilation-unit loader... supplies previously compiled IR for
// imported names" — an external collaborator, consumed here, never
// produced).
type Loader interface {
	Load(name vctypes.QualifiedName) (Decl, bool, error)
}

// MapLoader is an in-memory Loader backed by a fixed declaration set,
// useful for tests and for a single-file verification run with no
// cross-unit imports.
type MapLoader struct {
	decls map[string]Decl
}

// NewMapLoader builds a MapLoader from the given files' declarations.
func NewMapLoader(files ...*WyilFile) *MapLoader {
	decls := map[string]Decl{}

	for _, f := range files {
		for _, d := range f.declarations {
			decls[d.DeclName().String()] = d
		}
	}

	return &MapLoader{decls: decls}
}

// Load implements Loader.
func (l *MapLoader) Load(name vctypes.QualifiedName) (Decl, bool, error) {
	d, ok := l.decls[name.String()]

	return d, ok, nil
}
