// Package vctypes implements the structural type model (spec §3, §4.A):
// primitives, the structural compounds, and named recursive types, together
// with the subtype/intersection/negation algebra used to narrow registers
// during symbolic execution.
package vctypes

import (
	"sort"
	"strings"
)

// Kind discriminates the sum of type shapes. Types are modeled as a tagged
// variant: one struct per Kind, each implementing the Type interface, so
// that adding a new shape is a compile error until every switch over Kind
// is extended.
type Kind int

const (
	KindVoid Kind = iota
	KindAny
	KindNull
	KindBool
	KindByte
	KindChar
	KindInt
	KindRational
	KindString
	KindList
	KindSet
	KindMap
	KindTuple
	KindRecord
	KindReference
	KindFunction
	KindMethod
	KindUnion
	KindIntersection
	KindNegation
	KindNominal
	KindRecursive
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindAny:
		return "any"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindRational:
		return "rational"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindTuple:
		return "tuple"
	case KindRecord:
		return "record"
	case KindReference:
		return "reference"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindNegation:
		return "negation"
	case KindNominal:
		return "nominal"
	case KindRecursive:
		return "recursive"
	default:
		return "unknown"
	}
}

// Type is implemented by every shape in the sum described by spec §3. Types
// are immutable value objects; every operation in this package returns a
// new Type rather than mutating one in place.
type Type interface {
	Kind() Kind
	String() string
	isType()
}

// Primitive is a base-case type: void, any, null, bool, byte, char, int,
// rational or string.
type Primitive struct{ K Kind }

func (Primitive) isType()       {}
func (p Primitive) Kind() Kind  { return p.K }
func (p Primitive) String() string { return p.K.String() }

// The nine primitive types, pre-built as the spec names them.
var (
	Void     = Primitive{KindVoid}
	Any      = Primitive{KindAny}
	Null     = Primitive{KindNull}
	Bool     = Primitive{KindBool}
	Byte     = Primitive{KindByte}
	Char     = Primitive{KindChar}
	Int      = Primitive{KindInt}
	Rational = Primitive{KindRational}
	String   = Primitive{KindString}
)

// List is list(elem).
type List struct{ Elem Type }

func (List) isType()      {}
func (List) Kind() Kind   { return KindList }
func (l List) String() string { return "list(" + l.Elem.String() + ")" }

// Set is set(elem).
type Set struct{ Elem Type }

func (Set) isType()      {}
func (Set) Kind() Kind   { return KindSet }
func (s Set) String() string { return "set(" + s.Elem.String() + ")" }

// Map is map(key,value).
type Map struct{ Key, Value Type }

func (Map) isType()    {}
func (Map) Kind() Kind { return KindMap }
func (m Map) String() string {
	return "map(" + m.Key.String() + "," + m.Value.String() + ")"
}

// Tuple is tuple(T1...Tn).
type Tuple struct{ Elems []Type }

func (Tuple) isType()    {}
func (Tuple) Kind() Kind { return KindTuple }
func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}

	return "tuple(" + strings.Join(parts, ",") + ")"
}

// Field is one field→T binding of a Record.
type Field struct {
	Name string
	Type Type
}

// Record is record(field→T, open?). Fields are kept sorted by name so that
// two structurally equal records always compare String-equal.
type Record struct {
	Fields []Field
	Open   bool
}

func (Record) isType()    {}
func (Record) Kind() Kind { return KindRecord }
func (r Record) String() string {
	fields := append([]Field(nil), r.Fields...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + ":" + f.Type.String()
	}

	open := ""
	if r.Open {
		open = ",..."
	}

	return "record(" + strings.Join(parts, ",") + open + ")"
}

// FieldType returns the type of the named field, or nil if absent.
func (r Record) FieldType(name string) Type {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type
		}
	}

	return nil
}

// Reference is reference(T).
type Reference struct{ Elem Type }

func (Reference) isType()    {}
func (Reference) Kind() Kind { return KindReference }
func (r Reference) String() string { return "reference(" + r.Elem.String() + ")" }

// Function is function(params→returns, throws).
type Function struct {
	Params  []Type
	Return  Type
	Throws  []Type
}

func (Function) isType()    {}
func (Function) Kind() Kind { return KindFunction }
func (f Function) String() string {
	return "function(" + joinTypes(f.Params) + "->" + f.Return.String() + throwsSuffix(f.Throws) + ")"
}

// Method is method(receiver?, params→returns, throws).
type Method struct {
	Receiver Type // nil if headless
	Params   []Type
	Return   Type
	Throws   []Type
}

func (Method) isType()    {}
func (Method) Kind() Kind { return KindMethod }
func (m Method) String() string {
	recv := ""
	if m.Receiver != nil {
		recv = m.Receiver.String() + "."
	}

	return "method(" + recv + joinTypes(m.Params) + "->" + m.Return.String() + throwsSuffix(m.Throws) + ")"
}

func joinTypes(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}

	return strings.Join(parts, ",")
}

func throwsSuffix(throws []Type) string {
	if len(throws) == 0 {
		return ""
	}

	return " throws " + joinTypes(throws)
}

// Union is union(T1...Tn), n>=2, always constructed in canonical form: no
// nested unions, no duplicate summands, deterministic order. Use NewUnion
// to build one; the zero value is not meaningful.
type Union struct{ Options []Type }

func (Union) isType()    {}
func (Union) Kind() Kind { return KindUnion }
func (u Union) String() string { return strings.Join(optionStrings(u.Options), "|") }

// Intersection is intersection(T1...Tn), the structural grammar node (as
// opposed to the Intersect operation, which normalizes). Use NewIntersection
// to build one in canonical form.
type Intersection struct{ Options []Type }

func (Intersection) isType()    {}
func (Intersection) Kind() Kind { return KindIntersection }
func (i Intersection) String() string { return strings.Join(optionStrings(i.Options), "&") }

func optionStrings(opts []Type) []string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = o.String()
	}

	return parts
}

// Negation is negation(T).
type Negation struct{ Elem Type }

func (Negation) isType()    {}
func (Negation) Kind() Kind { return KindNegation }
func (n Negation) String() string { return "!" + n.Elem.String() }

// QualifiedName is a canonicalized path+symbol identifier: the memoization
// key for the global generator (component E) and the name-pool entry shape
// of the binary codec (component D).
type QualifiedName struct {
	Path []string
	Name string
}

func (q QualifiedName) String() string {
	if len(q.Path) == 0 {
		return q.Name
	}

	return strings.Join(q.Path, "/") + "::" + q.Name
}

// Equal compares two qualified names component-wise.
func (q QualifiedName) Equal(o QualifiedName) bool {
	if q.Name != o.Name || len(q.Path) != len(o.Path) {
		return false
	}

	for i := range q.Path {
		if q.Path[i] != o.Path[i] {
			return false
		}
	}

	return true
}

// Nominal is nominal(QualifiedName): either a reference to a named type
// declared elsewhere (already expanded by the surface resolver, so never
// seen by this core) or, within a Recursive body, a self-reference to the
// enclosing binder's label (spec §9 "Nominal recursive types").
type Nominal struct{ Name QualifiedName }

func (Nominal) isType()    {}
func (Nominal) Kind() Kind { return KindNominal }
func (n Nominal) String() string { return "nominal(" + n.Name.String() + ")" }

// Recursive is recursive(label, body), where body may refer back to label
// via Nominal{QualifiedName{Name: label}}.
type Recursive struct {
	Label string
	Body  Type
}

func (Recursive) isType()    {}
func (Recursive) Kind() Kind { return KindRecursive }
func (r Recursive) String() string {
	return "recursive(" + r.Label + "," + r.Body.String() + ")"
}
