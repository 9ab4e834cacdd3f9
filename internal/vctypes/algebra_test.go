package vctypes

import "testing"

func TestFlattenUnrollsOnce(t *testing.T) {
	label := "List"
	self := Nominal{Name: QualifiedName{Name: label}}
	body := mustUnion(t, Null, Tuple{Elems: []Type{Int, self}})
	rec := Recursive{Label: label, Body: body}

	flat := Flatten(rec)

	u, ok := flat.(Union)
	if !ok {
		t.Fatalf("expected flatten to produce the union body, got %T", flat)
	}

	for _, o := range u.Options {
		tup, ok := o.(Tuple)
		if !ok {
			continue
		}

		// substitute(body, label, rec) must replace the inner self
		// reference with the original recursive type, not leave it dangling
		// as a bare Nominal placeholder.
		got, isRecursive := tup.Elems[1].(Recursive)
		if !isRecursive {
			t.Fatalf("expected flatten to substitute the recursive binder back into its own body, got %T", tup.Elems[1])
		}

		if got.Label != label {
			t.Fatalf("expected substituted binder to keep label %q, got %q", label, got.Label)
		}
	}
}

func TestCanonicalNameDeterministic(t *testing.T) {
	label1, label2 := "A", "B"
	self1 := Nominal{Name: QualifiedName{Name: label1}}
	self2 := Nominal{Name: QualifiedName{Name: label2}}

	rec1 := Recursive{Label: label1, Body: mustUnion(t, Null, Tuple{Elems: []Type{Int, self1}})}
	rec2 := Recursive{Label: label2, Body: mustUnion(t, Null, Tuple{Elems: []Type{Int, self2}})}

	if CanonicalName(rec1) != CanonicalName(rec2) {
		t.Fatalf("expected bisimilar recursive types to hash to the same canonical name")
	}

	rec3 := Recursive{Label: label1, Body: mustUnion(t, Null, Tuple{Elems: []Type{Bool, self1}})}
	if CanonicalName(rec1) == CanonicalName(rec3) {
		t.Fatalf("expected structurally different recursive types to hash differently")
	}
}

func TestIntersectWithNegationOfDisjointType(t *testing.T) {
	// int & !null = int: null is excluded from int already, so negating it
	// removes nothing further.
	got := Intersect(Int, Not(Null))
	if !Equal(got, Int) {
		t.Fatalf("Intersect(int, !null) = %v, want int", got)
	}

	// Symmetric form.
	got = Intersect(Not(Null), Int)
	if !Equal(got, Int) {
		t.Fatalf("Intersect(!null, int) = %v, want int", got)
	}
}

func TestIntersectNarrowsUnionAgainstNegatedOption(t *testing.T) {
	// The fall-through side of an if-is null test against a register typed
	// int|null must narrow to int, not collapse to void.
	u := mustUnion(t, Int, Null)

	got := Intersect(u, Not(Null))
	if !Equal(got, Int) {
		t.Fatalf("Intersect(int|null, !null) = %v, want int", got)
	}
}

func TestSubstituteShadowing(t *testing.T) {
	inner := Recursive{Label: "X", Body: Nominal{Name: QualifiedName{Name: "X"}}}
	outer := Tuple{Elems: []Type{Nominal{Name: QualifiedName{Name: "X"}}, inner}}

	got := Substitute(outer, "X", Int)

	tup := got.(Tuple)
	if !Equal(tup.Elems[0], Int) {
		t.Fatalf("expected the free occurrence to be substituted")
	}

	if rec, ok := tup.Elems[1].(Recursive); !ok || rec.Label != "X" {
		t.Fatalf("expected the shadowed occurrence inside the nested binder to be untouched")
	}
}
