package vcconst

import (
	"math/big"
	"testing"

	"github.com/veritas-lang/veritas/internal/vcwire"
)

func roundTrip(t *testing.T, c Constant) Constant {
	t.Helper()

	w := vcwire.NewWriter()
	Encode(w, c)

	r := vcwire.NewReader(w.Bytes())

	got, err := Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if r.Remaining() != 0 {
		t.Fatalf("expected no trailing bytes, got %d", r.Remaining())
	}

	return got
}

func TestCodecRoundTripPrimitives(t *testing.T) {
	cases := []Constant{
		Null{},
		Bool{Value: true},
		Bool{Value: false},
		Byte{Value: 255},
		Char{Value: '♦'},
		String{Value: "hello, 世界"},
	}

	for _, c := range cases {
		got := roundTrip(t, c)
		if !Equal(got, c) {
			t.Fatalf("round-trip mismatch: got %v, want %v", got, c)
		}
	}
}

func TestCodecRoundTripInt(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(127),
		big.NewInt(128),
		big.NewInt(-1),
		big.NewInt(-128),
		big.NewInt(-129),
		new(big.Int).Lsh(big.NewInt(1), 200),
		new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 200)),
	}

	for _, v := range values {
		c := Int{Value: v}

		got := roundTrip(t, c).(Int)
		if got.Value.Cmp(v) != 0 {
			t.Fatalf("round-trip mismatch for %s: got %s", v, got.Value)
		}
	}
}

func TestCodecRoundTripReal(t *testing.T) {
	c := Real{Num: big.NewInt(-7), Denom: big.NewInt(3)}

	got := roundTrip(t, c).(Real)
	if got.Num.Cmp(c.Num) != 0 || got.Denom.Cmp(c.Denom) != 0 {
		t.Fatalf("round-trip mismatch: got %s/%s", got.Num, got.Denom)
	}
}

func TestCodecRoundTripComposite(t *testing.T) {
	c := Record{Fields: []Field{
		{Name: "values", Value: List{Elems: []Constant{IntFromInt64(1), IntFromInt64(2), Null{}}}},
		{Name: "tag", Value: String{Value: "ok"}},
		{Name: "pair", Value: Tuple{Elems: []Constant{Bool{Value: true}, Byte{Value: 9}}}},
	}}

	got := roundTrip(t, c)

	gotRecord, ok := got.(Record)
	if !ok {
		t.Fatalf("expected Record, got %T", got)
	}

	if len(gotRecord.Fields) != len(c.Fields) {
		t.Fatalf("expected %d fields, got %d", len(c.Fields), len(gotRecord.Fields))
	}

	for i, f := range c.Fields {
		if !Equal(gotRecord.Fields[i].Value, f.Value) {
			t.Fatalf("field %s: round-trip mismatch: got %v, want %v", f.Name, gotRecord.Fields[i].Value, f.Value)
		}
	}
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	w := vcwire.NewWriter()
	w.U1(0xFF)

	r := vcwire.NewReader(w.Bytes())
	if _, err := Decode(r); err == nil {
		t.Fatalf("expected an error decoding an unknown tag")
	}
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	w := vcwire.NewWriter()
	w.U1(uint8(TagString))
	w.U2(5) // claims 5 code units, but nothing follows

	r := vcwire.NewReader(w.Bytes())
	if _, err := Decode(r); err == nil {
		t.Fatalf("expected an error decoding truncated input")
	}
}
