package vcconst

import (
	"math/big"
	"testing"

	"github.com/veritas-lang/veritas/internal/vctypes"
)

func TestTypeOfPrimitives(t *testing.T) {
	cases := []struct {
		c    Constant
		want vctypes.Type
	}{
		{Null{}, vctypes.Null},
		{Bool{Value: true}, vctypes.Bool},
		{Byte{Value: 7}, vctypes.Byte},
		{Char{Value: 'x'}, vctypes.Char},
		{IntFromInt64(42), vctypes.Int},
		{Real{Num: big.NewInt(1), Denom: big.NewInt(2)}, vctypes.Rational},
		{String{Value: "hi"}, vctypes.String},
	}

	for _, tc := range cases {
		if got := tc.c.TypeOf(); !vctypes.Equal(got, tc.want) {
			t.Fatalf("%v: TypeOf = %s, want %s", tc.c, got, tc.want)
		}
	}
}

func TestTypeOfEmptyListIsVoidElem(t *testing.T) {
	l := List{}

	lt, ok := l.TypeOf().(vctypes.List)
	if !ok {
		t.Fatalf("expected vctypes.List, got %T", l.TypeOf())
	}

	if lt.Elem.Kind() != vctypes.KindVoid {
		t.Fatalf("expected empty list element type void, got %s", lt.Elem)
	}
}

func TestTypeOfHeterogeneousListUnions(t *testing.T) {
	l := List{Elems: []Constant{IntFromInt64(1), Null{}}}

	lt := l.TypeOf().(vctypes.List)
	if !vctypes.Subtype(vctypes.Int, lt.Elem) || !vctypes.Subtype(vctypes.Null, lt.Elem) {
		t.Fatalf("expected element type to absorb both int and null, got %s", lt.Elem)
	}
}

func TestTypeOfRecordIsClosed(t *testing.T) {
	r := Record{Fields: []Field{{Name: "x", Value: IntFromInt64(1)}}}

	rt := r.TypeOf().(vctypes.Record)
	if rt.Open {
		t.Fatalf("expected a constant's record type to be closed")
	}
}

func TestEqualSetIsUnordered(t *testing.T) {
	a := Set{Elems: []Constant{IntFromInt64(1), IntFromInt64(2)}}
	b := Set{Elems: []Constant{IntFromInt64(2), IntFromInt64(1), IntFromInt64(1)}}

	if !Equal(a, b) {
		t.Fatalf("expected sets to be equal regardless of order and duplicates")
	}
}

func TestEqualListIsPositional(t *testing.T) {
	a := List{Elems: []Constant{IntFromInt64(1), IntFromInt64(2)}}
	b := List{Elems: []Constant{IntFromInt64(2), IntFromInt64(1)}}

	if Equal(a, b) {
		t.Fatalf("expected lists with different order not to be equal")
	}
}

func TestEqualDistinguishesShapes(t *testing.T) {
	if Equal(Null{}, Bool{Value: false}) {
		t.Fatalf("null and false must not be equal despite similar textual form")
	}
}

func TestHashAgreesWithEqual(t *testing.T) {
	a := Tuple{Elems: []Constant{IntFromInt64(1), String{Value: "a"}}}
	b := Tuple{Elems: []Constant{IntFromInt64(1), String{Value: "a"}}}

	if Hash(a) != Hash(b) {
		t.Fatalf("expected equal constants to hash identically")
	}
}
