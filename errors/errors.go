// Package errors defines the error kinds shared by the operation and network services.
package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies an error so callers can decide how to recover from it.
type Kind uint8

const (
	Other Kind = iota
	Invalid
	NotFound
	Permission
	Conflict
	InvalidTransition
	TerminalState
	MissingReason
	Transport
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotFound:
		return "not found"
	case Permission:
		return "permission denied"
	case Conflict:
		return "conflict"
	case InvalidTransition:
		return "invalid transition"
	case TerminalState:
		return "terminal state violation"
	case MissingReason:
		return "missing reason"
	case Transport:
		return "transport failure"
	}
	return "other"
}

// matches reports whether an error of kind k satisfies a check for want.
// A terminal state violation is a particular invalid transition.
func (k Kind) matches(want Kind) bool {
	if k == want {
		return true
	}
	return k == TerminalState && want == InvalidTransition
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// E builds an *Error of the given kind. err may be nil.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches against a bare *Error carrying only a Kind, so that
// errors.Is(err, &Error{Kind: InvalidTransition}) works through wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Msg != "" || t.Err != nil {
		return false
	}
	return e.Kind.matches(t.Kind)
}

// Is reports whether any error in err's chain is of the given kind.
func Is(kind Kind, err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, &Error{Kind: kind})
}

// KindOf returns the kind of the outermost *Error in err's chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// ValidationErrors accumulates per-field validation messages.
type ValidationErrors struct {
	fields map[string][]string
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{fields: make(map[string][]string)}
}

// Add records msg against field.
func (v *ValidationErrors) Add(field, msg string) {
	v.fields[field] = append(v.fields[field], msg)
}

// Len returns the number of fields with at least one message.
func (v *ValidationErrors) Len() int { return len(v.fields) }

// Err returns nil when nothing was added.
func (v *ValidationErrors) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(v.fields[k], ", ")))
	}
	return strings.Join(parts, "; ")
}
