package vccodec

import (
	"testing"

	"github.com/veritas-lang/veritas/internal/vcattr"
	"github.com/veritas-lang/veritas/internal/vcconst"
	"github.com/veritas-lang/veritas/internal/vcfile"
	"github.com/veritas-lang/veritas/internal/vcir"
	"github.com/veritas-lang/veritas/internal/vctypes"
)

func name(s string) vctypes.QualifiedName {
	return vctypes.QualifiedName{Path: []string{"pkg"}, Name: s}
}

func sampleFile(t *testing.T) *vcfile.WyilFile {
	t.Helper()

	l1 := vcir.FreshLabel()

	body := vcir.NewBlock([]vcir.Entry{
		{Code: vcir.Arithmetic{Target: 2, Source1: 0, Source2: 1, Op: vcir.ArithAdd, Type: vctypes.Int}},
		{Code: vcir.IfCmp{Source1: 2, Source2: 0, Cmp: vcir.CmpGt, Target: l1}},
		{Code: vcir.Const{Target: 3, Value: vcconst.IntFromInt64(0), Type: vctypes.Int}},
		{Code: vcir.Return{Sources: []vcir.Register{3}}},
		{Code: vcir.LabelMarker{Name: l1}},
		{Code: vcir.Return{Sources: []vcir.Register{2}}},
	})

	fn := vcfile.FunctionOrMethodDecl{
		Name: name("add"),
		Type: vctypes.Void,
		Cases: []vcfile.FunctionCase{
			{Body: body},
		},
	}

	constDecl := vcfile.ConstantDecl{Name: name("MAX"), Value: vcconst.IntFromInt64(100)}

	typeDecl := vcfile.TypeDecl{Name: name("Nat"), Type: vctypes.Int}

	f, err := vcfile.New("unit-1", "sample.wyil", []vcfile.Decl{constDecl, typeDecl, fn})
	if err != nil {
		t.Fatalf("vcfile.New: %v", err)
	}

	return f
}

// sampleFileWithAttributes builds a file whose entries carry non-empty
// Attributes, so the round trip actually exercises the attribute codec
// rather than trivially passing on an all-nil sample.
func sampleFileWithAttributes(t *testing.T) *vcfile.WyilFile {
	t.Helper()

	l1 := vcir.FreshLabel()

	span := func(line int) vcattr.Attribute {
		return vcattr.EncodeSpan(vcattr.Span{
			Start: vcattr.Position{Filename: "sample.why", Line: line, Column: 1, Offset: 0},
			End:   vcattr.Position{Filename: "sample.why", Line: line, Column: 10, Offset: 9},
		})
	}

	body := vcir.NewBlock([]vcir.Entry{
		{Code: vcir.Arithmetic{Target: 2, Source1: 0, Source2: 1, Op: vcir.ArithAdd, Type: vctypes.Int}, Attributes: []vcattr.Attribute{span(1)}},
		{Code: vcir.IfCmp{Source1: 2, Source2: 0, Cmp: vcir.CmpGt, Target: l1}, Attributes: []vcattr.Attribute{span(2), {Tag: 7, Payload: []byte("custom")}}},
		{Code: vcir.Const{Target: 3, Value: vcconst.IntFromInt64(0), Type: vctypes.Int}},
		{Code: vcir.Return{Sources: []vcir.Register{3}}, Attributes: []vcattr.Attribute{span(3)}},
		{Code: vcir.LabelMarker{Name: l1}},
		{Code: vcir.Return{Sources: []vcir.Register{2}}},
	})

	fn := vcfile.FunctionOrMethodDecl{
		Name: name("add"),
		Type: vctypes.Void,
		Cases: []vcfile.FunctionCase{
			{Body: body},
		},
	}

	constDecl := vcfile.ConstantDecl{Name: name("MAX"), Value: vcconst.IntFromInt64(100)}
	typeDecl := vcfile.TypeDecl{Name: name("Nat"), Type: vctypes.Int}

	f, err := vcfile.New("unit-1", "sample.wyil", []vcfile.Decl{constDecl, typeDecl, fn})
	if err != nil {
		t.Fatalf("vcfile.New: %v", err)
	}

	return f
}

// TestEncodeDecodeRoundTripStructuralEquality covers the round-trip property
// in full: every declaration (constant, type, function/method) must decode
// structurally equal to what was encoded, including every Entry's
// attributes, not just identity fields and a body length.
func TestEncodeDecodeRoundTripStructuralEquality(t *testing.T) {
	f := sampleFileWithAttributes(t)

	c := NewCodec()

	data, err := c.Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !got.Equal(f) {
		t.Fatalf("decoded file is not structurally equal to the original:\noriginal declarations: %#v\ndecoded declarations:  %#v", f.Declarations(), got.Declarations())
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := sampleFile(t)

	c := NewCodec()

	data, err := c.Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.ID != f.ID || got.Filename != f.Filename {
		t.Fatalf("identity mismatch: got %q/%q want %q/%q", got.ID, got.Filename, f.ID, f.Filename)
	}

	if len(got.Declarations()) != len(f.Declarations()) {
		t.Fatalf("declaration count mismatch: got %d want %d", len(got.Declarations()), len(f.Declarations()))
	}

	fn, ok := got.Lookup(name("add")).(vcfile.FunctionOrMethodDecl)
	if !ok {
		t.Fatalf("expected function/method decl for add, got %#v", got.Lookup(name("add")))
	}

	if len(fn.Cases) != 1 || fn.Cases[0].Body.Size() != 6 {
		t.Fatalf("unexpected round-tripped body: %#v", fn.Cases)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	c := NewCodec()

	if _, err := c.Decode([]byte("not a wyil file at all")); err == nil {
		t.Fatalf("expected CorruptFile for bad magic")
	}
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	f := sampleFile(t)

	c := NewCodec()

	data, err := c.Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	strict := NewCodec()
	if err := strict.AcceptVersions(">=2.0, <3.0"); err != nil {
		t.Fatalf("AcceptVersions: %v", err)
	}

	if _, err := strict.Decode(data); err == nil {
		t.Fatalf("expected version rejection")
	}
}

func TestDecodeRejectsTruncatedBody(t *testing.T) {
	f := sampleFile(t)

	c := NewCodec()

	data, err := c.Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := c.Decode(data[:len(data)-1]); err == nil {
		t.Fatalf("expected truncated-input rejection")
	}
}
