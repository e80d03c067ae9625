package symbols

// State is the result of an operation that may need another definition
// analyzed first. A Continue state carries the qualified name of the
// missing definition; the driver makes it available and retries.
type State[T any] struct {
	Value   T
	Missing string
	blocked bool
}

// Done wraps a finished result.
func Done[T any](v T) State[T] {
	return State[T]{Value: v}
}

// Continue reports that missing must be resolved before retrying.
func Continue[T any](missing string) State[T] {
	return State[T]{Missing: missing, blocked: true}
}

func (s State[T]) IsContinue() bool { return s.blocked }

// Forward converts a Continue state to another result type.
func Forward[U, T any](s State[T]) State[U] {
	return State[U]{Missing: s.Missing, blocked: s.blocked}
}
