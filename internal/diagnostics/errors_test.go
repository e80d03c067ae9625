package diagnostics

import (
	"errors"
	"fmt"
	"testing"
)

func TestDiagnosticErrorFormat(t *testing.T) {
	err := Parsef("index", 12, "unknown identifier `%s`", "foo")
	want := "ParseError: unknown identifier `foo` (doc: index, line: 12)"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"parse", Parsef("d", 1, "x"), ParseError},
		{"not found", NotFoundf("d", 1, "x"), NotFound},
		{"forbidden", ForbiddenUsagef("d", 1, "x"), ForbiddenUsage},
		{"missing", MissingDataf("d", 1, "x"), MissingData},
		{"unknown", UnknownDataf("d", 1, "x"), UnknownData},
		{"access", InvalidAccessf("d", 1, "x"), InvalidAccess},
		{"kind", InvalidKindf("d", 1, "x"), InvalidKind},
		{"other", Otherf("d", 1, "x"), OtherError},
		{"wrapped", fmt.Errorf("compiling: %w", InvalidAccessf("d", 1, "x")), InvalidAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KindOf(tt.err)
			if !ok {
				t.Fatal("expected a diagnostic")
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			if !Is(tt.err, tt.want) {
				t.Errorf("Is(%s) = false", tt.want)
			}
		})
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("plain error must not be a diagnostic")
	}
}

func TestWithDocument(t *testing.T) {
	err := WithDocument(NewError(NotFound, "", 0, "missing"), "index", 4)
	var de *DiagnosticError
	if !errors.As(err, &de) {
		t.Fatal("expected diagnostic")
	}
	if de.DocID != "index" || de.Line != 4 {
		t.Errorf("got doc %q line %d", de.DocID, de.Line)
	}

	err = WithDocument(errors.New("boom"), "index", 7)
	if !Is(err, OtherError) {
		t.Errorf("plain error should become OtherError, got %v", err)
	}
}
