// Package vccodec implements the binary IR file format (spec §4.D): a
// magic-prefixed, semver-gated, pool-deduplicated encoding of a WyilFile's
// declarations, sharing the pooled-constant-table discipline the teacher's
// MIR binary writer uses for its own interning tables.
package vccodec

import (
	"bytes"
	"strconv"

	"github.com/Masterminds/semver/v3"

	"github.com/veritas-lang/veritas/internal/vcerr"
	"github.com/veritas-lang/veritas/internal/vcfile"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vcwire"
)

var magic = [8]byte{'W', 'Y', 'I', 'L', 'F', 'I', 'L', 'E'}

// FormatMajor and FormatMinor are the major.minor version this build writes and the
// version its AcceptVersions default constraint accepts.
const (
	FormatMajor = 1
	FormatMinor = 0
)

type declKind uint8

const (
	declKindConstant declKind = iota
	declKindType
	declKindFunction
	declKindMethod
)

// Codec encodes and decodes WyilFiles against a caller-chosen range of
// acceptable on-wire format versions, expressed as a semver constraint over
// "major.minor.0".
type Codec struct {
	accept *semver.Constraints
}

// NewCodec returns a Codec that accepts exactly the version this build
// writes. Call AcceptVersions to widen or narrow that range.
func NewCodec() *Codec {
	c, err := semver.NewConstraint(defaultConstraint())
	if err != nil {
		vcerr.InternalFailure("default format constraint failed to parse: "+err.Error(), zeroSpan())
	}

	return &Codec{accept: c}
}

func defaultConstraint() string {
	return "~1.0"
}

// AcceptVersions replaces the Codec's version constraint, e.g. ">=1.0, <2.0"
// to accept any minor revision of the major-1 wire format.
func (c *Codec) AcceptVersions(constraint string) error {
	parsed, err := semver.NewConstraint(constraint)
	if err != nil {
		return vcerr.Corrupt("invalid version constraint", map[string]any{"constraint": constraint, "error": err.Error()})
	}

	c.accept = parsed

	return nil
}

// Encode serializes file to the binary IR format at this build's format
// version.
func (c *Codec) Encode(file *vcfile.WyilFile) ([]byte, error) {
	decls := file.Declarations()

	pw := newPoolWriter()
	pw.internString(file.ID)
	pw.internString(file.Filename)

	for _, d := range decls {
		internDecl(pw, d)
	}

	body := vcwire.NewWriter()
	body.UV(uint64(len(decls)))

	for _, d := range decls {
		if err := encodeDecl(body, pw, d); err != nil {
			return nil, err
		}
	}

	w := vcwire.NewWriter()
	w.Raw(magic[:])
	w.UV(FormatMajor)
	w.UV(FormatMinor)
	w.UV(uint64(pw.internString(file.ID)))
	w.UV(uint64(pw.internString(file.Filename)))
	pw.writeHeader(w)
	w.Raw(body.Bytes())

	return w.Bytes(), nil
}

// Decode parses data as the binary IR format, rejecting it via CorruptFile
// if the magic is wrong, the version fails AcceptVersions, or any
// downstream field is malformed.
func (c *Codec) Decode(data []byte) (*vcfile.WyilFile, error) {
	r := vcwire.NewReader(data)

	got, ok := r.Raw(8)
	if !ok || !bytes.Equal(got, magic[:]) {
		return nil, vcerr.Corrupt("bad magic", map[string]any{"got": got})
	}

	major, ok1 := r.UV()
	minor, ok2 := r.UV()

	if !ok1 || !ok2 {
		return nil, vcerr.Corrupt("truncated version fields", map[string]any{"pos": r.Pos()})
	}

	v, err := semver.NewVersion(verString(major, minor))
	if err != nil {
		return nil, vcerr.Corrupt("unparseable format version", map[string]any{"major": major, "minor": minor})
	}

	if c.accept != nil && !c.accept.Check(v) {
		return nil, vcerr.Corrupt("unsupported format version", map[string]any{"version": v.String(), "constraint": c.accept.String()})
	}

	idIdx, ok1 := r.UV()
	nameIdx, ok2 := r.UV()

	if !ok1 || !ok2 {
		return nil, vcerr.Corrupt("truncated file identity fields", map[string]any{"pos": r.Pos()})
	}

	pr, err := readPools(r)
	if err != nil {
		return nil, err
	}

	id, err := pr.resolveString(int(idIdx))
	if err != nil {
		return nil, err
	}

	filename, err := pr.resolveString(int(nameIdx))
	if err != nil {
		return nil, err
	}

	numDecls, ok := r.UV()
	if !ok {
		return nil, vcerr.Corrupt("truncated declaration count", map[string]any{"pos": r.Pos()})
	}

	decls := make([]vcfile.Decl, numDecls)

	for i := range decls {
		d, err := decodeDecl(r, pr)
		if err != nil {
			return nil, err
		}

		decls[i] = d
	}

	return vcfile.New(id, filename, decls)
}

func verString(major, minor uint64) string {
	return strconv.FormatUint(major, 10) + "." + strconv.FormatUint(minor, 10) + ".0"
}

func internDecl(pw *poolWriter, d vcfile.Decl) {
	pw.internName(d.DeclName())

	switch v := d.(type) {
	case vcfile.ConstantDecl:
		pw.internConstant(v.Value)
	case vcfile.TypeDecl:
		pw.internType(v.Type)
		internBlockRefs(pw, v.Invariant)
	case vcfile.FunctionOrMethodDecl:
		pw.internType(v.Type)

		for _, cs := range v.Cases {
			internBlockRefs(pw, cs.Precondition)
			internBlockRefs(pw, cs.Postcondition)
			internBlockRefs(pw, &cs.Body)
		}
	}
}

func internBlockRefs(pw *poolWriter, b *vcir.Block) {
	if b == nil {
		return
	}

	for _, e := range b.Entries() {
		internOpcodeRefs(pw, e.Code)
	}
}

func internOpcodeRefs(pw *poolWriter, c vcir.Code) {
	switch v := c.(type) {
	case vcir.Convert:
		pw.internType(v.Type)
	case vcir.Invert:
		pw.internType(v.Type)
	case vcir.Negate:
		pw.internType(v.Type)
	case vcir.Move:
		pw.internType(v.Type)
	case vcir.Assign:
		pw.internType(v.Type)
	case vcir.Dereference:
		pw.internType(v.Type)
	case vcir.LengthOf:
		pw.internType(v.Type)
	case vcir.Debug:
		pw.internType(v.Type)
	case vcir.Arithmetic:
		pw.internType(v.Type)
	case vcir.IndexOf:
		pw.internType(v.Type)
	case vcir.ListConstruct:
		pw.internType(v.Type)
	case vcir.SetConstruct:
		pw.internType(v.Type)
	case vcir.MapConstruct:
		pw.internType(v.Type)
	case vcir.TupleConstruct:
		pw.internType(v.Type)
	case vcir.RecordConstruct:
		pw.internType(v.Type)

		for _, f := range v.Fields {
			pw.internString(f)
		}
	case vcir.FieldLoad:
		pw.internType(v.Type)
		pw.internString(v.Field)
	case vcir.TupleLoad:
		pw.internType(v.Type)
	case vcir.Const:
		pw.internType(v.Type)
		pw.internConstant(v.Value)
	case vcir.DirectInvoke:
		pw.internType(v.Type)
		pw.internName(v.Name)
	case vcir.IndirectInvoke:
		pw.internType(v.Type)
	case vcir.Update:
		pw.internType(v.Type)

		if v.Field != "" {
			pw.internString(v.Field)
		}
	case vcir.NewObject:
		pw.internType(v.Type)
	case vcir.IfType:
		pw.internType(v.Type)
	case vcir.Switch:
		for _, cs := range v.Cases {
			pw.internConstant(cs.Value)
		}
	}
}

func encodeDecl(w *vcwire.Writer, pw *poolWriter, d vcfile.Decl) error {
	w.UV(uint64(pw.internName(d.DeclName())))

	switch v := d.(type) {
	case vcfile.ConstantDecl:
		w.U1(uint8(declKindConstant))
		w.UV(uint64(pw.internType(v.Value.TypeOf())))
		w.UV(uint64(pw.internConstant(v.Value)))

		return nil
	case vcfile.TypeDecl:
		w.U1(uint8(declKindType))
		w.UV(uint64(pw.internType(v.Type)))

		return encodeOptionalBlock(w, pw, v.Invariant)
	case vcfile.FunctionOrMethodDecl:
		if v.Method {
			w.U1(uint8(declKindMethod))
		} else {
			w.U1(uint8(declKindFunction))
		}

		w.UV(uint64(pw.internType(v.Type)))
		w.UV(uint64(len(v.Cases)))

		for _, cs := range v.Cases {
			if err := encodeOptionalBlock(w, pw, cs.Precondition); err != nil {
				return err
			}

			if err := encodeOptionalBlock(w, pw, cs.Postcondition); err != nil {
				return err
			}

			if err := encodeCodeBlock(w, pw, cs.Body); err != nil {
				return err
			}
		}

		return nil
	default:
		return vcerr.Corrupt("unknown declaration shape", map[string]any{"name": d.DeclName().String()})
	}
}

func encodeOptionalBlock(w *vcwire.Writer, pw *poolWriter, b *vcir.Block) error {
	if b == nil {
		w.U1(0)
		return nil
	}

	w.U1(1)

	return encodeCodeBlock(w, pw, *b)
}

func decodeOptionalBlock(r *vcwire.Reader, pr *poolReader) (*vcir.Block, error) {
	has, ok := r.U1()
	if !ok {
		return nil, vcerr.Corrupt("truncated optional-block flag", map[string]any{"pos": r.Pos()})
	}

	if has == 0 {
		return nil, nil
	}

	b, err := decodeCodeBlock(r, pr)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func decodeDecl(r *vcwire.Reader, pr *poolReader) (vcfile.Decl, error) {
	nameIdx, ok := r.UV()
	if !ok {
		return nil, vcerr.Corrupt("truncated declaration name index", map[string]any{"pos": r.Pos()})
	}

	name, err := pr.resolveName(int(nameIdx))
	if err != nil {
		return nil, err
	}

	kind, ok := r.U1()
	if !ok {
		return nil, vcerr.Corrupt("truncated declaration kind", map[string]any{"pos": r.Pos()})
	}

	switch declKind(kind) {
	case declKindConstant:
		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated constant decl type", map[string]any{"pos": r.Pos()})
		}

		if _, err := pr.resolveType(int(typeIdx)); err != nil {
			return nil, err
		}

		constIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated constant decl value", map[string]any{"pos": r.Pos()})
		}

		value, err := pr.resolveConstant(int(constIdx))
		if err != nil {
			return nil, err
		}

		return vcfile.ConstantDecl{Name: name, Value: value}, nil
	case declKindType:
		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated type decl type", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		inv, err := decodeOptionalBlock(r, pr)
		if err != nil {
			return nil, err
		}

		return vcfile.TypeDecl{Name: name, Type: typ, Invariant: inv}, nil
	case declKindFunction, declKindMethod:
		typeIdx, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated function/method decl type", map[string]any{"pos": r.Pos()})
		}

		typ, err := pr.resolveType(int(typeIdx))
		if err != nil {
			return nil, err
		}

		numCases, ok := r.UV()
		if !ok {
			return nil, vcerr.Corrupt("truncated case count", map[string]any{"pos": r.Pos()})
		}

		cases := make([]vcfile.FunctionCase, numCases)

		for i := range cases {
			pre, err := decodeOptionalBlock(r, pr)
			if err != nil {
				return nil, err
			}

			post, err := decodeOptionalBlock(r, pr)
			if err != nil {
				return nil, err
			}

			body, err := decodeCodeBlock(r, pr)
			if err != nil {
				return nil, err
			}

			cases[i] = vcfile.FunctionCase{Precondition: pre, Postcondition: post, Body: body}
		}

		return vcfile.FunctionOrMethodDecl{Name: name, Type: typ, Cases: cases, Method: declKind(kind) == declKindMethod}, nil
	default:
		return nil, vcerr.Corrupt("unknown declaration kind byte", map[string]any{"kind": kind})
	}
}
