package vccodec

import (
	"strconv"

	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vctypes"
	"github.com/veritas-lang/veritas/internal/vcwire"
)

// pathEntry is one segment of the path trie (spec §4.D pathPool grammar):
// parent = 0 means this segment starts a fresh root path; otherwise it
// extends pathPool[parent-1] with one more component.
type pathEntry struct {
	Parent      int
	StringIndex int
}

// poolWriter accumulates the five pools (spec §4.D), deduplicating every
// entry so that a value referenced from many opcodes is written exactly
// once.
type poolWriter struct {
	strings    []string
	stringIdx  map[string]int
	paths      []pathEntry
	pathKeyIdx map[string]int
	names      []nameEntry
	nameIdx    map[string]int
	constants  []vcconst.Constant
	constIdx   map[string]int
	types      []vctypes.Type
	typeIdx    map[string]int
}

type nameEntry struct {
	PathIndex int
	NameIndex int
}

func newPoolWriter() *poolWriter {
	return &poolWriter{
		stringIdx:  map[string]int{},
		pathKeyIdx: map[string]int{},
		nameIdx:    map[string]int{},
		constIdx:   map[string]int{},
		typeIdx:    map[string]int{},
	}
}

func (pw *poolWriter) internString(s string) int {
	if idx, ok := pw.stringIdx[s]; ok {
		return idx
	}

	idx := len(pw.strings)
	pw.strings = append(pw.strings, s)
	pw.stringIdx[s] = idx

	return idx
}

// internPath returns the 1-based pathPool index of the final segment of
// path (0 if path is empty, meaning the root).
func (pw *poolWriter) internPath(path []string) int {
	parent := 0

	for _, seg := range path {
		strIdx := pw.internString(seg)
		key := strconv.Itoa(parent) + "/" + strconv.Itoa(strIdx)

		if idx, ok := pw.pathKeyIdx[key]; ok {
			parent = idx + 1
			continue
		}

		pw.paths = append(pw.paths, pathEntry{Parent: parent, StringIndex: strIdx})
		idx := len(pw.paths) - 1
		pw.pathKeyIdx[key] = idx
		parent = idx + 1
	}

	return parent
}

func (pw *poolWriter) internName(q vctypes.QualifiedName) int {
	key := q.String()
	if idx, ok := pw.nameIdx[key]; ok {
		return idx
	}

	pathIdx := pw.internPath(q.Path)
	nameIdx := pw.internString(q.Name)

	pw.names = append(pw.names, nameEntry{PathIndex: pathIdx, NameIndex: nameIdx})
	idx := len(pw.names) - 1
	pw.nameIdx[key] = idx

	return idx
}

func (pw *poolWriter) internConstant(c vcconst.Constant) int {
	key := c.String()
	if idx, ok := pw.constIdx[key]; ok {
		return idx
	}

	pw.constants = append(pw.constants, c)
	idx := len(pw.constants) - 1
	pw.constIdx[key] = idx

	return idx
}

func (pw *poolWriter) internType(t vctypes.Type) int {
	key := t.String()
	if idx, ok := pw.typeIdx[key]; ok {
		return idx
	}

	pw.types = append(pw.types, t)
	idx := len(pw.types) - 1
	pw.typeIdx[key] = idx

	return idx
}

// writeHeader serializes the sizes line and all five pools in spec §4.D
// order. The caller has already written magic and the version fields.
func (pw *poolWriter) writeHeader(w *vcwire.Writer) {
	w.UV(uint64(len(pw.strings)))
	w.UV(uint64(len(pw.paths)))
	w.UV(uint64(len(pw.names)))
	w.UV(uint64(len(pw.constants)))
	w.UV(uint64(len(pw.types)))

	for _, s := range pw.strings {
		writeString(w, s)
	}

	for _, p := range pw.paths {
		w.UV(uint64(p.Parent))
		w.UV(uint64(p.StringIndex))
	}

	for _, n := range pw.names {
		w.UV(uint64(n.PathIndex))
		w.UV(uint64(n.NameIndex))
	}

	for _, c := range pw.constants {
		vcconst.Encode(w, c)
	}

	for _, t := range pw.types {
		encodeType(w, t)
	}
}

// poolReader parses the pools read from a file's header into a form opcode
// decoding can resolve indices against.
type poolReader struct {
	strings   []string
	paths     []pathEntry
	names     []nameEntry
	constants []vcconst.Constant
	types     []vctypes.Type
}

func readPools(r *vcwire.Reader) (*poolReader, error) {
	sizes := make([]uint64, 5)

	for i := range sizes {
		n, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated pool size header", map[string]any{"pos": r.Pos()})
		}

		sizes[i] = n
	}

	pr := &poolReader{}

	pr.strings = make([]string, sizes[0])

	for i := range pr.strings {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}

		pr.strings[i] = s
	}

	pr.paths = make([]pathEntry, sizes[1])

	for i := range pr.paths {
		parent, ok1 := r.UV()
		strIdx, ok2 := r.UV()

		if !ok1 || !ok2 {
			return nil, vcerr.Corrupt("truncated path pool entry", map[string]any{"pos": r.Pos(), "index": i})
		}

		pr.paths[i] = pathEntry{Parent: int(parent), StringIndex: int(strIdx)}
	}

	pr.names = make([]nameEntry, sizes[2])

	for i := range pr.names {
		pathIdx, ok1 := r.UV()
		nameIdx, ok2 := r.UV()

		if !ok1 || !ok2 {
			return nil, vcerr.Corrupt("truncated name pool entry", map[string]any{"pos": r.Pos(), "index": i})
		}

		pr.names[i] = nameEntry{PathIndex: int(pathIdx), NameIndex: int(nameIdx)}
	}

	pr.constants = make([]vcconst.Constant, sizes[3])

	for i := range pr.constants {
		c, err := vcconst.Decode(r)
		if err != nil {
			return nil, err
		}

		pr.constants[i] = c
	}

	pr.types = make([]vctypes.Type, sizes[4])

	for i := range pr.types {
		t, err := decodeType(r)
		if err != nil {
			return nil, err
		}

		pr.types[i] = t
	}

	return pr, nil
}

func (pr *poolReader) resolvePath(pathIndex int) ([]string, error) {
	if pathIndex == 0 {
		return nil, nil
	}

	idx := pathIndex - 1

	var segs []string

	for idx >= 0 {
		if idx >= len(pr.paths) {
			return nil, vcerr.Corrupt("path pool index out of range", map[string]any{"index": idx})
		}

		entry := pr.paths[idx]
		if entry.StringIndex >= len(pr.strings) {
			return nil, vcerr.Corrupt("path pool string index out of range", map[string]any{"index": entry.StringIndex})
		}

		segs = append(segs, pr.strings[entry.StringIndex])

		if entry.Parent == 0 {
			break
		}

		idx = entry.Parent - 1
	}

	// segs was collected innermost-first; reverse to get root-first order.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}

	return segs, nil
}

func (pr *poolReader) resolveName(nameIndex int) (vctypes.QualifiedName, error) {
	if nameIndex < 0 || nameIndex >= len(pr.names) {
		return vctypes.QualifiedName{}, vcerr.Corrupt("name pool index out of range", map[string]any{"index": nameIndex})
	}

	entry := pr.names[nameIndex]

	path, err := pr.resolvePath(entry.PathIndex)
	if err != nil {
		return vctypes.QualifiedName{}, err
	}

	if entry.NameIndex < 0 || entry.NameIndex >= len(pr.strings) {
		return vctypes.QualifiedName{}, vcerr.Corrupt("name pool symbol index out of range", map[string]any{"index": entry.NameIndex})
	}

	return vctypes.QualifiedName{Path: path, Name: pr.strings[entry.NameIndex]}, nil
}

func (pr *poolReader) resolveString(i int) (string, error) {
	if i < 0 || i >= len(pr.strings) {
		return "", vcerr.Corrupt("string pool index out of range", map[string]any{"index": i})
	}

	return pr.strings[i], nil
}

func (pr *poolReader) resolveConstant(i int) (vcconst.Constant, error) {
	if i < 0 || i >= len(pr.constants) {
		return nil, vcerr.Corrupt("constant pool index out of range", map[string]any{"index": i})
	}

	return pr.constants[i], nil
}

func (pr *poolReader) resolveType(i int) (vctypes.Type, error) {
	if i < 0 || i >= len(pr.types) {
		return nil, vcerr.Corrupt("type pool index out of range", map[string]any{"index": i})
	}

	return pr.types[i], nil
}
