// Package validation provides an accumulating validation result.
//
// A Result holds either a value or a non-empty ordered list of error
// messages. Independent results are combined with Merge, which collects the
// messages of every failing result instead of stopping at the first one.
package validation

import "strings"

// Result is either a valid value of type T or a list of error messages.
type Result[T any] struct {
	value  T
	errors []string
}

// Valid wraps v in a successful result.
func Valid[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Invalid returns a failed result holding the given messages.
// Duplicate messages are kept once. Calling Invalid without any message
// returns a result carrying ErrNoMessage's text so that it never looks valid.
func Invalid[T any](messages ...string) Result[T] {
	msgs := appendDistinct(nil, messages...)
	if len(msgs) == 0 {
		msgs = []string{ErrNoMessage.Error()}
	}
	return Result[T]{errors: msgs}
}

// IsValid reports whether r holds a value.
func (r Result[T]) IsValid() bool {
	return len(r.errors) == 0
}

// Value returns the held value and whether r is valid.
// The zero value of T is returned for invalid results.
func (r Result[T]) Value() (T, bool) {
	if !r.IsValid() {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Errors returns a copy of the error messages, nil when r is valid.
func (r Result[T]) Errors() []string {
	if r.IsValid() {
		return nil
	}
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// Err returns a *Error carrying every message, or nil when r is valid.
func (r Result[T]) Err() error {
	if r.IsValid() {
		return nil
	}
	return &Error{Messages: r.Errors()}
}

// Map applies f to the value of a valid result.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.IsValid() {
		return Result[U]{errors: r.errors}
	}
	return Valid(f(r.value))
}

// Bind chains a dependent check: f only runs when r is valid.
func Bind[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if !r.IsValid() {
		return Result[U]{errors: r.errors}
	}
	return f(r.value)
}

// Checker is implemented by every Result and lets results of different
// types be merged together.
type Checker interface {
	Errors() []string
}

// Merge collects the messages of all given results, in argument order and
// without duplicates. It returns nil when every result is valid.
func Merge(results ...Checker) []string {
	var msgs []string
	for _, r := range results {
		msgs = appendDistinct(msgs, r.Errors()...)
	}
	return msgs
}

// Error is the aggregated failure of one or more checks.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

func appendDistinct(dst []string, msgs ...string) []string {
	for _, m := range msgs {
		seen := false
		for _, d := range dst {
			if d == m {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, m)
		}
	}
	return dst
}
