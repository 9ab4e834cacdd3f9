package vctypes

import "testing"

func mustUnion(t *testing.T, opts ...Type) Type {
	t.Helper()

	u, err := NewUnion(opts...)
	if err != nil {
		t.Fatalf("NewUnion: %v", err)
	}

	return u
}

func TestSubtypeReflexiveTransitive(t *testing.T) {
	intOrNull := mustUnion(t, Int, Null)

	if !Subtype(Int, Int) {
		t.Fatalf("expected Int <: Int")
	}

	if !Subtype(Int, intOrNull) {
		t.Fatalf("expected Int <: int|null")
	}

	if !Subtype(intOrNull, Any) {
		t.Fatalf("expected int|null <: any")
	}

	if !Subtype(Int, Any) {
		t.Fatalf("transitivity: expected Int <: any")
	}
}

func TestSubtypeAntisymmetry(t *testing.T) {
	a := mustUnion(t, Int, Null)
	b := mustUnion(t, Null, Int)

	if !(Subtype(a, b) && Subtype(b, a)) {
		t.Fatalf("expected mutual subtyping for differently-ordered unions")
	}

	if !Equal(a, b) {
		t.Fatalf("expected Equal for differently-ordered unions")
	}
}

func TestIntersectNegationLaws(t *testing.T) {
	if got := Intersect(Int, Negate(Int)); got.Kind() != KindVoid {
		t.Fatalf("expected intersect(A, negate(A)) = void, got %s", got)
	}

	if got := Intersect(Int, Any); !Equal(got, Int) {
		t.Fatalf("expected intersect(A, any) = A, got %s", got)
	}
}

func TestDoubleNegation(t *testing.T) {
	got := Not(Not(Int))
	if !Equal(got, Int) {
		t.Fatalf("expected !!Int = Int, got %s", got)
	}
}

func TestNegateDeMorgan(t *testing.T) {
	u := mustUnion(t, Int, Null)

	neg := Negate(u)

	i, ok := neg.(Intersection)
	if !ok {
		t.Fatalf("expected negation of union to be an intersection, got %T", neg)
	}

	if len(i.Options) != 2 {
		t.Fatalf("expected two operands, got %d", len(i.Options))
	}
}

func TestUnionCanonicalization(t *testing.T) {
	u1 := mustUnion(t, Int, Null, Int)
	u2 := mustUnion(t, Null, Int)

	if u1.String() != u2.String() {
		t.Fatalf("expected canonical union strings to match: %s vs %s", u1, u2)
	}

	if got := mustUnion(t, Int, Any); got.Kind() != KindAny {
		t.Fatalf("expected union absorbing any to collapse to any, got %s", got)
	}
}

func TestEmptyUnionFails(t *testing.T) {
	if _, err := NewUnion(); err == nil {
		t.Fatalf("expected empty union to fail")
	}
}

func TestRecursiveListBisimulation(t *testing.T) {
	// recursive(X, null|tuple(int,X))  -- an int-list encoded as nested pairs.
	label := "X"
	self := Nominal{Name: QualifiedName{Name: label}}
	body := mustUnion(t, Null, Tuple{Elems: []Type{Int, self}})
	rec1 := Recursive{Label: label, Body: body}

	// A second, differently-labeled but bisimilar recursive type.
	label2 := "Y"
	self2 := Nominal{Name: QualifiedName{Name: label2}}
	body2 := mustUnion(t, Null, Tuple{Elems: []Type{Int, self2}})
	rec2 := Recursive{Label: label2, Body: body2}

	if !Equal(rec1, rec2) {
		t.Fatalf("expected bisimilar recursive types with different labels to be equal")
	}
}

func TestRecordSubtypingWidth(t *testing.T) {
	// An open record type requiring only field x admits any record that has
	// at least an x field, including ones with additional fields.
	openX := Record{Fields: []Field{{Name: "x", Type: Int}}, Open: true}
	closedXY := Record{Fields: []Field{{Name: "x", Type: Int}, {Name: "y", Type: Bool}}}

	if !Subtype(closedXY, openX) {
		t.Fatalf("expected a closed record with extra fields to be a subtype of an open record requiring a subset")
	}

	closedX := Record{Fields: []Field{{Name: "x", Type: Int}}}
	if Subtype(closedXY, closedX) {
		t.Fatalf("expected a closed record with extra fields NOT to be a subtype of a differently-shaped closed record")
	}
}
