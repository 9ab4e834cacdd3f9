package vccodec

import (
	"github.com/veritas-lang/veritas/internal/vcattr"
	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vctypes"
	"github.com/veritas-lang/veritas/internal/vcwire"
)

func zeroSpan() vcattr.Span { return vcattr.Span{} }

func writeString(w *vcwire.Writer, s string) {
	b := []byte(s)
	w.UV(uint64(len(b)))
	w.Raw(b)
}

func readString(r *vcwire.Reader) (string, error) {
	n, ok := r.UV()
	if !ok {
		return "", vcerr.Corrupt("truncated string length", map[string]any{"pos": r.Pos()})
	}

	b, ok := r.Raw(int(n))
	if !ok {
		return "", vcerr.Corrupt("truncated string bytes", map[string]any{"pos": r.Pos()})
	}

	return string(b), nil
}

func writeQualifiedName(w *vcwire.Writer, q vctypes.QualifiedName) {
	w.UV(uint64(len(q.Path)))

	for _, p := range q.Path {
		writeString(w, p)
	}

	writeString(w, q.Name)
}

func readQualifiedName(r *vcwire.Reader) (vctypes.QualifiedName, error) {
	n, ok := r.UV()
	if !ok {
		return vctypes.QualifiedName{}, vcerr.Corrupt("truncated qualified name path length", map[string]any{"pos": r.Pos()})
	}

	path := make([]string, n)

	for i := range path {
		s, err := readString(r)
		if err != nil {
			return vctypes.QualifiedName{}, err
		}

		path[i] = s
	}

	name, err := readString(r)
	if err != nil {
		return vctypes.QualifiedName{}, err
	}

	return vctypes.QualifiedName{Path: path, Name: name}, nil
}
