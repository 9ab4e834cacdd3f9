package vctypes

// subtypeEnv carries the two pieces of state the coinductive subtype check
// needs as it walks into recursive types: a map from label to the recursive
// type it names (to resolve Nominal self-references) and the set of
// (A,B) judgements currently assumed to hold, so a cycle discharges itself
// instead of looping forever.
type subtypeEnv struct {
	labels  map[string]Type
	assumed map[string]bool
}

// Subtype reports whether a is a subtype of b. It is reflexive, transitive
// and antisymmetric up to structural equality (spec §8 Testable property 4),
// and decides recursive types coinductively: a judgement re-encountered
// while still in progress is assumed to hold.
func Subtype(a, b Type) bool {
	return subtype(a, b, &subtypeEnv{labels: map[string]Type{}, assumed: map[string]bool{}})
}

func subtype(a, b Type, env *subtypeEnv) bool {
	key := a.String() + "<:" + b.String()
	if env.assumed[key] {
		return true
	}

	env.assumed[key] = true

	a = resolve(a, env)
	b = resolve(b, env)

	if b.Kind() == KindAny || a.Kind() == KindVoid {
		return true
	}

	if a.Kind() == KindAny || b.Kind() == KindVoid {
		return a.Kind() == b.Kind()
	}

	// Union distributes: A <= B1|B2 iff A <= B1 or A <= B2;
	// A1|A2 <= B iff both A1 <= B and A2 <= B.
	if ua, ok := a.(Union); ok {
		for _, o := range ua.Options {
			if !subtype(o, b, env) {
				return false
			}
		}

		return true
	}

	if ub, ok := b.(Union); ok {
		for _, o := range ub.Options {
			if subtype(a, o, env) {
				return true
			}
		}

		return false
	}

	// Intersection dually: A <= B1&B2 iff A <= B1 and A <= B2;
	// A1&A2 <= B iff either A1 <= B or A2 <= B.
	if ib, ok := b.(Intersection); ok {
		for _, o := range ib.Options {
			if !subtype(a, o, env) {
				return false
			}
		}

		return true
	}

	if ia, ok := a.(Intersection); ok {
		for _, o := range ia.Options {
			if subtype(o, b, env) {
				return true
			}
		}

		return false
	}

	if _, ok := a.(Negation); ok {
		if nb, ok := b.(Negation); ok {
			na := a.(Negation)

			return subtype(nb.Elem, na.Elem, env)
		}

		return false
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch va := a.(type) {
	case Primitive:
		return true // same Kind, both primitive
	case List:
		return subtype(va.Elem, b.(List).Elem, env)
	case Set:
		return subtype(va.Elem, b.(Set).Elem, env)
	case Map:
		vb := b.(Map)

		return subtype(va.Key, vb.Key, env) && subtype(va.Value, vb.Value, env)
	case Tuple:
		vb := b.(Tuple)
		if len(va.Elems) != len(vb.Elems) {
			return false
		}

		for i := range va.Elems {
			if !subtype(va.Elems[i], vb.Elems[i], env) {
				return false
			}
		}

		return true
	case Record:
		vb := b.(Record)
		if !vb.Open && len(va.Fields) != len(vb.Fields) {
			return false
		}

		for _, bf := range vb.Fields {
			at := va.FieldType(bf.Name)
			if at == nil || !subtype(at, bf.Type, env) {
				return false
			}
		}

		return true
	case Reference:
		// References are invariant in their element type.
		vb := b.(Reference)

		return subtype(va.Elem, vb.Elem, env) && subtype(vb.Elem, va.Elem, env)
	case Function:
		vb := b.(Function)
		if len(va.Params) != len(vb.Params) {
			return false
		}
		// Parameters are contravariant, return covariant.
		for i := range va.Params {
			if !subtype(vb.Params[i], va.Params[i], env) {
				return false
			}
		}

		return subtype(va.Return, vb.Return, env)
	case Method:
		vb := b.(Method)
		if len(va.Params) != len(vb.Params) {
			return false
		}

		for i := range va.Params {
			if !subtype(vb.Params[i], va.Params[i], env) {
				return false
			}
		}

		return subtype(va.Return, vb.Return, env)
	case Nominal:
		vb := b.(Nominal)

		return va.Name.Equal(vb.Name)
	default:
		return Equal(a, b)
	}
}

// resolve unrolls a Recursive binder once, recording its label in env so
// that Nominal self-references inside its body resolve back to it.
func resolve(t Type, env *subtypeEnv) Type {
	r, ok := t.(Recursive)
	if !ok {
		if nom, ok := t.(Nominal); ok {
			if body, found := env.labels[nom.Name.Name]; found {
				return body
			}
		}

		return t
	}

	env.labels[r.Label] = r

	return Flatten(r)
}

// Equal reports structural equality up to recursive bisimulation: two
// recursive types are equal iff they are bisimilar, which mutual subtyping
// decides.
func Equal(a, b Type) bool {
	if a.String() == b.String() {
		return true
	}

	return Subtype(a, b) && Subtype(b, a)
}
