package vcattr

import "testing"

func TestSpanRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		span Span
	}{
		{
			name: "single line",
			span: Span{
				Start: Position{Filename: "foo.why", Line: 3, Column: 1, Offset: 10},
				End:   Position{Filename: "foo.why", Line: 3, Column: 8, Offset: 17},
			},
		},
		{
			name: "multi line",
			span: Span{
				Start: Position{Filename: "bar/baz.why", Line: 1, Column: 1, Offset: 0},
				End:   Position{Filename: "bar/baz.why", Line: 5, Column: 4, Offset: 120},
			},
		},
		{
			name: "empty filename",
			span: Span{
				Start: Position{Line: 1, Column: 1, Offset: 0},
				End:   Position{Line: 1, Column: 1, Offset: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := EncodeSpan(tt.span)
			if attr.Tag != SpanTag {
				t.Fatalf("expected SpanTag, got %v", attr.Tag)
			}

			got, ok := DecodeSpan(attr)
			if !ok {
				t.Fatalf("DecodeSpan failed to decode its own encoding")
			}

			if got != tt.span {
				t.Fatalf("round-trip mismatch: got %+v, want %+v", got, tt.span)
			}
		})
	}
}

func TestAttributeEqual(t *testing.T) {
	a := Attribute{Tag: SpanTag, Payload: []byte{1, 2, 3}}
	b := Attribute{Tag: SpanTag, Payload: []byte{1, 2, 3}}
	c := Attribute{Tag: SpanTag, Payload: []byte{1, 2, 4}}
	d := Attribute{Tag: 2, Payload: []byte{1, 2, 3}}

	if !a.Equal(b) {
		t.Fatalf("expected equal attributes to compare equal")
	}

	if a.Equal(c) {
		t.Fatalf("expected differing payloads to compare unequal")
	}

	if a.Equal(d) {
		t.Fatalf("expected differing tags to compare unequal")
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{
		Start: Position{Filename: "f.why", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "f.why", Line: 1, Column: 5, Offset: 4},
	}
	b := Span{
		Start: Position{Filename: "f.why", Line: 2, Column: 1, Offset: 10},
		End:   Position{Filename: "f.why", Line: 2, Column: 5, Offset: 14},
	}

	u := a.Union(b)
	if u.Start != a.Start || u.End != b.End {
		t.Fatalf("union mismatch: got %+v", u)
	}
}
