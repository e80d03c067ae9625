package diagnostics

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every error surfaced at the document boundary.
type ErrorKind int

const (
	// ParseError covers grammar and kind mismatches and unknown identifiers.
	ParseError ErrorKind = iota
	// NotFound is a miss in the symbol table or in a field map.
	NotFound
	// ForbiddenUsage covers ambiguous caption/body/header data, repeated
	// modifiers and mutability marker mismatches.
	ForbiddenUsage
	// MissingData is a required argument that no source supplied.
	MissingData
	// UnknownData is a caption or body passed to a component that cannot take it.
	UnknownData
	// InvalidAccess is a private argument supplied at an invocation.
	InvalidAccess
	// InvalidKind is a kind annotation without a base kind.
	InvalidKind
	// OtherError is an internal invariant violation.
	OtherError
)

var kindNames = map[ErrorKind]string{
	ParseError:     "ParseError",
	NotFound:       "NotFound",
	ForbiddenUsage: "ForbiddenUsage",
	MissingData:    "MissingData",
	UnknownData:    "UnknownData",
	InvalidAccess:  "InvalidAccess",
	InvalidKind:    "InvalidKind",
	OtherError:     "OtherError",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DiagnosticError is the only error type the analyzer and executor return.
type DiagnosticError struct {
	Kind    ErrorKind
	DocID   string
	Line    int
	Message string
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: %s (doc: %s, line: %d)", e.Kind, e.Message, e.DocID, e.Line)
}

// NewError creates a diagnostic of the given kind.
func NewError(kind ErrorKind, docID string, line int, message string) *DiagnosticError {
	return &DiagnosticError{Kind: kind, DocID: docID, Line: line, Message: message}
}

func Parsef(docID string, line int, format string, args ...any) error {
	return NewError(ParseError, docID, line, fmt.Sprintf(format, args...))
}

func NotFoundf(docID string, line int, format string, args ...any) error {
	return NewError(NotFound, docID, line, fmt.Sprintf(format, args...))
}

func ForbiddenUsagef(docID string, line int, format string, args ...any) error {
	return NewError(ForbiddenUsage, docID, line, fmt.Sprintf(format, args...))
}

func MissingDataf(docID string, line int, format string, args ...any) error {
	return NewError(MissingData, docID, line, fmt.Sprintf(format, args...))
}

func UnknownDataf(docID string, line int, format string, args ...any) error {
	return NewError(UnknownData, docID, line, fmt.Sprintf(format, args...))
}

func InvalidAccessf(docID string, line int, format string, args ...any) error {
	return NewError(InvalidAccess, docID, line, fmt.Sprintf(format, args...))
}

func InvalidKindf(docID string, line int, format string, args ...any) error {
	return NewError(InvalidKind, docID, line, fmt.Sprintf(format, args...))
}

func Otherf(docID string, line int, format string, args ...any) error {
	return NewError(OtherError, docID, line, fmt.Sprintf(format, args...))
}

// KindOf extracts the ErrorKind of a (possibly wrapped) diagnostic.
func KindOf(err error) (ErrorKind, bool) {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return OtherError, false
}

// Is reports whether err carries a diagnostic of the given kind.
func Is(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// WithDocument fills in the document id of a diagnostic that has none.
// Non-diagnostic errors are wrapped as OtherError.
func WithDocument(err error, docID string, line int) error {
	if err == nil {
		return nil
	}
	var de *DiagnosticError
	if errors.As(err, &de) {
		if de.DocID == "" {
			de.DocID = docID
		}
		if de.Line == 0 {
			de.Line = line
		}
		return err
	}
	return NewError(OtherError, docID, line, err.Error())
}
