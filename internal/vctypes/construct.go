package vctypes

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/veritas-lang/veritas/internal/vcerr"
)

// NewUnion builds a canonical union: nested unions are flattened, duplicate
// summands (by String) are removed, and the remainder is sorted
// deterministically. Per spec §4.A, a union absorbs Any. An empty union is
// structurally ill-formed and fails with TypeInconsistency.
func NewUnion(options ...Type) (Type, error) {
	flat := flattenUnion(options)
	if len(flat) == 0 {
		return nil, vcerr.New(vcerr.TypeInconsistency, "TYPE_INCONSISTENCY",
			"union requires at least one summand", nil)
	}

	for _, o := range flat {
		if o.Kind() == KindAny {
			return Any, nil
		}
	}

	if len(flat) == 1 {
		return flat[0], nil
	}

	return Union{Options: flat}, nil
}

func flattenUnion(options []Type) []Type {
	seen := map[string]bool{}

	var out []Type

	var walk func(Type)

	walk = func(t Type) {
		if u, ok := t.(Union); ok {
			for _, o := range u.Options {
				walk(o)
			}

			return
		}

		key := t.String()
		if seen[key] {
			return
		}

		seen[key] = true

		out = append(out, t)
	}

	for _, o := range options {
		walk(o)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

// NewIntersection builds a canonical structural intersection type, the raw
// grammar node (as opposed to the Intersect operation, which normalizes to
// a concrete type or void). An empty intersection fails with
// TypeInconsistency.
func NewIntersection(options ...Type) (Type, error) {
	flat := flattenIntersection(options)
	if len(flat) == 0 {
		return nil, vcerr.New(vcerr.TypeInconsistency, "TYPE_INCONSISTENCY",
			"intersection requires at least one operand", nil)
	}

	if len(flat) == 1 {
		return flat[0], nil
	}

	return Intersection{Options: flat}, nil
}

func flattenIntersection(options []Type) []Type {
	seen := map[string]bool{}

	var out []Type

	var walk func(Type)

	walk = func(t Type) {
		if i, ok := t.(Intersection); ok {
			for _, o := range i.Options {
				walk(o)
			}

			return
		}

		key := t.String()
		if seen[key] {
			return
		}

		seen[key] = true

		out = append(out, t)
	}

	for _, o := range options {
		walk(o)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

// Not builds a negation, applying the double-negation law: !!T = T.
func Not(t Type) Type {
	if n, ok := t.(Negation); ok {
		return n.Elem
	}

	return Negation{Elem: t}
}

// CanonicalName derives a deterministic label for an anonymous recursive
// type, replacing the original implementation's "X" placeholder (spec §9).
// The outermost binder's label is replaced by a fixed placeholder before
// hashing, so recursive types that differ only in that label share a name.
func CanonicalName(t Type) string {
	s := t.String()
	if r, ok := t.(Recursive); ok {
		self := Nominal{Name: QualifiedName{Name: "$"}}
		s = "recursive(" + Substitute(r.Body, r.Label, self).String() + ")"
	}

	sum := sha256.Sum256([]byte(s))

	return "rec$" + hex.EncodeToString(sum[:8])
}
