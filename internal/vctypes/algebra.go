package vctypes

// Substitute replaces every Nominal{label} occurring free in t (i.e. not
// shadowed by a nested Recursive binder reusing the same label) with repl.
func Substitute(t Type, label string, repl Type) Type {
	switch v := t.(type) {
	case Nominal:
		if len(v.Name.Path) == 0 && v.Name.Name == label {
			return repl
		}

		return v
	case List:
		return List{Elem: Substitute(v.Elem, label, repl)}
	case Set:
		return Set{Elem: Substitute(v.Elem, label, repl)}
	case Map:
		return Map{Key: Substitute(v.Key, label, repl), Value: Substitute(v.Value, label, repl)}
	case Tuple:
		return Tuple{Elems: substituteAll(v.Elems, label, repl)}
	case Record:
		fields := make([]Field, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = Field{Name: f.Name, Type: Substitute(f.Type, label, repl)}
		}

		return Record{Fields: fields, Open: v.Open}
	case Reference:
		return Reference{Elem: Substitute(v.Elem, label, repl)}
	case Function:
		return Function{
			Params: substituteAll(v.Params, label, repl),
			Return: Substitute(v.Return, label, repl),
			Throws: substituteAll(v.Throws, label, repl),
		}
	case Method:
		var recv Type
		if v.Receiver != nil {
			recv = Substitute(v.Receiver, label, repl)
		}

		return Method{
			Receiver: recv,
			Params:   substituteAll(v.Params, label, repl),
			Return:   Substitute(v.Return, label, repl),
			Throws:   substituteAll(v.Throws, label, repl),
		}
	case Union:
		u, err := NewUnion(substituteAll(v.Options, label, repl)...)
		if err != nil {
			return v
		}

		return u
	case Intersection:
		i, err := NewIntersection(substituteAll(v.Options, label, repl)...)
		if err != nil {
			return v
		}

		return i
	case Negation:
		return Not(Substitute(v.Elem, label, repl))
	case Recursive:
		if v.Label == label {
			// Shadowed: the inner binder captures this label, so it is not
			// free in the body and is left untouched.
			return v
		}

		return Recursive{Label: v.Label, Body: Substitute(v.Body, label, repl)}
	default:
		return t
	}
}

func substituteAll(ts []Type, label string, repl Type) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Substitute(t, label, repl)
	}

	return out
}

// Flatten unrolls the outermost recursive binder once: flatten(recursive(l,
// body)) = substitute(body, l, recursive(l, body)). Non-recursive types are
// returned unchanged.
func Flatten(t Type) Type {
	if r, ok := t.(Recursive); ok {
		return Substitute(r.Body, r.Label, r)
	}

	return t
}

// Negate computes the negation of t, pushing through unions and
// intersections via De Morgan's laws and applying the double-negation law,
// per spec §4.A's tie-break rules.
func Negate(t Type) Type {
	switch v := t.(type) {
	case Negation:
		return v.Elem
	case Union:
		opts := make([]Type, len(v.Options))
		for i, o := range v.Options {
			opts[i] = Negate(o)
		}

		i, err := NewIntersection(opts...)
		if err != nil {
			return Not(t)
		}

		return i
	case Intersection:
		opts := make([]Type, len(v.Options))
		for i, o := range v.Options {
			opts[i] = Negate(o)
		}

		u, err := NewUnion(opts...)
		if err != nil {
			return Not(t)
		}

		return u
	case Primitive:
		if v.K == KindAny {
			return Void
		}

		if v.K == KindVoid {
			return Any
		}

		return Not(t)
	default:
		return Not(t)
	}
}

// Intersect computes the normalized intersection of a and b (spec §4.A),
// returning Void when the two types are provably disjoint. This is the
// operation `if-is` uses to narrow a register on both branches of a type
// test, so it must preserve refinement semantics rather than just
// constructing the raw Intersection grammar node.
func Intersect(a, b Type) Type {
	if a.Kind() == KindAny {
		return b
	}

	if b.Kind() == KindAny {
		return a
	}

	if a.Kind() == KindVoid || b.Kind() == KindVoid {
		return Void
	}

	if Equal(a, b) {
		return a
	}

	// intersect(T, negation(T)) = void, and more generally a negated type
	// intersected with something it structurally excludes collapses.
	if n, ok := b.(Negation); ok && Equal(a, n.Elem) {
		return Void
	}

	if n, ok := a.(Negation); ok && Equal(b, n.Elem) {
		return Void
	}

	// a & !b = a whenever a and b are themselves disjoint (a excludes
	// everything !b excludes in addition to everything !b permits), and
	// symmetrically for b & !a. This is what lets if-is narrowing retain the
	// full type on the branch where the tested case is excluded instead of
	// collapsing to void.
	if n, ok := b.(Negation); ok && Intersect(a, n.Elem).Kind() == KindVoid {
		return a
	}

	if n, ok := a.(Negation); ok && Intersect(b, n.Elem).Kind() == KindVoid {
		return b
	}

	if ua, ok := a.(Union); ok {
		var opts []Type

		for _, o := range ua.Options {
			r := Intersect(o, b)
			if r.Kind() != KindVoid {
				opts = append(opts, r)
			}
		}

		if len(opts) == 0 {
			return Void
		}

		u, err := NewUnion(opts...)
		if err != nil {
			return Void
		}

		return u
	}

	if ub, ok := b.(Union); ok {
		return Intersect(ub, a)
	}

	// Two distinct, unrelated primitive or compound shapes with no
	// syntactic overlap are disjoint.
	if a.Kind() != b.Kind() {
		if !Subtype(a, b) && !Subtype(b, a) {
			return Void
		}

		if Subtype(a, b) {
			return a
		}

		return b
	}

	switch va := a.(type) {
	case List:
		vb := b.(List)
		e := Intersect(va.Elem, vb.Elem)

		if e.Kind() == KindVoid {
			return Void
		}

		return List{Elem: e}
	case Set:
		vb := b.(Set)
		e := Intersect(va.Elem, vb.Elem)

		if e.Kind() == KindVoid {
			return Void
		}

		return Set{Elem: e}
	case Tuple:
		vb := b.(Tuple)
		if len(va.Elems) != len(vb.Elems) {
			return Void
		}

		elems := make([]Type, len(va.Elems))

		for i := range va.Elems {
			elems[i] = Intersect(va.Elems[i], vb.Elems[i])
			if elems[i].Kind() == KindVoid {
				return Void
			}
		}

		return Tuple{Elems: elems}
	default:
		// Conservative fallback for shapes without a bespoke meet: if
		// neither direction subtypes, they are disjoint; otherwise the
		// narrower one wins.
		if Subtype(a, b) {
			return a
		}

		if Subtype(b, a) {
			return b
		}

		return Void
	}
}
