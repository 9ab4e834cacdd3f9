package vcerr

import (
	"strings"
	"testing"

	"github.com/veritas-lang/veritas/internal/vcattr"
)

func TestErrorMessage(t *testing.T) {
	e := Corrupt("magic mismatch", map[string]any{"offset": 0})
	if !strings.Contains(e.Error(), "CORRUPT_FILE") {
		t.Fatalf("expected kind in message, got %q", e.Error())
	}

	if e.Location != nil {
		t.Fatalf("expected no location by default")
	}
}

func TestErrorWithLocation(t *testing.T) {
	e := Unresolved("my.pkg::nat")
	span := vcattr.Span{
		Start: vcattr.Position{Filename: "a.why", Line: 1, Column: 1, Offset: 0},
		End:   vcattr.Position{Filename: "a.why", Line: 1, Column: 3, Offset: 2},
	}
	e = e.WithLocation(span)

	if e.Location == nil || *e.Location != span {
		t.Fatalf("expected location to be attached")
	}

	if !strings.Contains(e.Error(), "a.why") {
		t.Fatalf("expected filename in message, got %q", e.Error())
	}
}

func TestKindConstructors(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"duplicate", Duplicate("type", "nat"), DuplicateDeclaration},
		{"unsupported", Unsupported(200), UnsupportedOpcode},
		{"unsupported-feature", UnsupportedFeatureErr("map-refinement"), UnsupportedFeature},
		{"failure", Failure("x >= 0"), VerificationFailure},
		{"unknown", Unknown("forall x. p(x)"), VerificationUnknown},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Fatalf("expected kind %v, got %v", tt.kind, tt.err.Kind)
			}
		})
	}
}
