// Package vcerr provides the standardized error kinds raised by the
// verification core (spec §7): CorruptFile, DuplicateDeclaration,
// UnresolvedName, TypeInconsistency, UnsupportedOpcode, UnsupportedFeature,
// VerificationFailure and VerificationUnknown.
package vcerr

import (
	"fmt"
	"runtime"

	"github.com/veritas-lang/veritas/internal/vcattr"
)

// Kind categorizes a verification-core error.
type Kind string

const (
	// CorruptFile is raised by the binary codec: bad magic, out-of-range pool
	// index, unknown opcode, a mistyped operand, or truncated input.
	CorruptFile Kind = "CORRUPT_FILE"
	// DuplicateDeclaration is raised when a WyilFile would contain two
	// declarations with the same identifying name (and, for functions and
	// methods, the same signature).
	DuplicateDeclaration Kind = "DUPLICATE_DECLARATION"
	// UnresolvedName is raised when the global generator cannot locate a
	// nominal name via the loader or the current source set.
	UnresolvedName Kind = "UNRESOLVED_NAME"
	// TypeInconsistency is raised when an opcode's static type disagrees
	// with its operand's declared type, e.g. dereference of a non-reference.
	TypeInconsistency Kind = "TYPE_INCONSISTENCY"
	// UnsupportedOpcode is raised by the binary reader for an opcode tag it
	// does not (yet) implement; a toolchain bug, not a program error.
	UnsupportedOpcode Kind = "UNSUPPORTED_OPCODE"
	// UnsupportedFeature is raised where spec §9's open questions leave a
	// predicate elaboration rule unsound or unimplemented (union-with-
	// refinements, map/reference/intersection/negation refinements) rather
	// than silently producing no predicate.
	UnsupportedFeature Kind = "UNSUPPORTED_FEATURE"
	// VerificationFailure is raised when the solver shows an asserted
	// property is not valid.
	VerificationFailure Kind = "VERIFICATION_FAILURE"
	// VerificationUnknown is raised when the solver reports "unknown".
	VerificationUnknown Kind = "VERIFICATION_UNKNOWN"
)

// Error is the standard error shape raised across the core: a kind, a short
// machine-stable code, a human message, free-form context, the calling
// function, and — where available — the source location of the offending
// Entry carried through from its attribute bag.
type Error struct {
	Kind     Kind
	Code     string
	Message  string
	Context  map[string]any
	Caller   string
	Location *vcattr.Span
}

func (e *Error) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("[%s:%s] %s (at %s, caller: %s)", e.Kind, e.Code, e.Message, e.Location, e.Caller)
	}

	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Kind, e.Code, e.Message, e.Caller)
}

// New constructs an Error, capturing the immediate caller the way the
// teacher's StandardError does.
func New(kind Kind, code, message string, context map[string]any) *Error {
	pc, _, _, ok := runtime.Caller(1)

	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Context: context,
		Caller:  caller,
	}
}

// WithLocation attaches a source span decoded from an Entry's attribute bag
// and returns the same error for chaining.
func (e *Error) WithLocation(span vcattr.Span) *Error {
	e.Location = &span

	return e
}

// Corrupt reports a binary codec rejection.
func Corrupt(reason string, context map[string]any) *Error {
	return New(CorruptFile, "CORRUPT_FILE", reason, context)
}

// Duplicate reports a WyilFile construction invariant violation.
func Duplicate(kind, name string) *Error {
	return New(DuplicateDeclaration, "DUPLICATE_DECLARATION",
		fmt.Sprintf("multiple %s declarations named %q", kind, name),
		map[string]any{"kind": kind, "name": name})
}

// Unresolved reports a name the global generator could not locate.
func Unresolved(qualified string) *Error {
	return New(UnresolvedName, "UNRESOLVED_NAME",
		fmt.Sprintf("name not found: %s", qualified),
		map[string]any{"name": qualified})
}

// TypeMismatch reports an opcode whose operand type disagrees with its
// static requirement, e.g. dereferencing a non-reference.
func TypeMismatch(op string, want, got fmt.Stringer) *Error {
	return New(TypeInconsistency, "TYPE_INCONSISTENCY",
		fmt.Sprintf("%s expects %s, got %s", op, want, got),
		map[string]any{"op": op, "want": want.String(), "got": got.String()})
}

// Unsupported reports an opcode the reader recognizes as reserved but does
// not yet implement.
func Unsupported(op byte) *Error {
	return New(UnsupportedOpcode, "UNSUPPORTED_OPCODE",
		fmt.Sprintf("unsupported opcode tag %d", op),
		map[string]any{"opcode": op})
}

// UnsupportedFeatureErr reports a predicate elaboration rule spec §9 leaves
// open (union-with-refinements, map/reference/intersection/negation).
func UnsupportedFeatureErr(feature string) *Error {
	return New(UnsupportedFeature, "UNSUPPORTED_FEATURE",
		fmt.Sprintf("refinement elaboration not supported for %s", feature),
		map[string]any{"feature": feature})
}

// Failure reports a property the transformer asserted that the solver
// showed is not valid.
func Failure(obligation string) *Error {
	return New(VerificationFailure, "VERIFICATION_FAILURE",
		fmt.Sprintf("verification failed: %s", obligation),
		map[string]any{"obligation": obligation})
}

// Unknown reports a property the solver could not decide.
func Unknown(obligation string) *Error {
	return New(VerificationUnknown, "VERIFICATION_UNKNOWN",
		fmt.Sprintf("verification unknown: %s", obligation),
		map[string]any{"obligation": obligation})
}

// InternalFailure panics with a message naming the offending entry's
// location, mirroring the teacher's crash-with-location discipline for
// invariant violations (e.g. a scope stack that becomes empty).
func InternalFailure(message string, span vcattr.Span) {
	panic(fmt.Sprintf("internal failure at %s: %s", span, message))
}
