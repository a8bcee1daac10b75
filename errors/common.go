package errors

import "fmt"

func InvalidParamsErr(err error) error {
	return E(Invalid, "invalid params", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

func NotFoundErr(what, id string) error {
	return E(NotFound, fmt.Sprintf("%s %q", what, id), nil)
}

func ForbiddenErr(actor, action string) error {
	return E(Permission, fmt.Sprintf("%s may not %s", actor, action), nil)
}

// TransitionErr reports a transition attempted from a state that does not allow it.
func TransitionErr(id, from, to string) error {
	return E(InvalidTransition, fmt.Sprintf("operation %s: %s -> %s", id, from, to), nil)
}

// TerminalErr reports a transition attempted out of a terminal state.
func TerminalErr(id, from string) error {
	return E(TerminalState, fmt.Sprintf("operation %s is %s", id, from), nil)
}

func MissingReasonErr(field string) error {
	return E(MissingReason, field+" is required when rejecting", nil)
}

// InFlightErr is returned when another dispatch for the same operation has not settled yet.
func InFlightErr(id string) error {
	return E(Conflict, fmt.Sprintf("operation %s has a request in flight", id), nil)
}

func TransportErr(op string, err error) error {
	return E(Transport, op, err)
}

func InvalidBodyErr(err error) error {
	return E(Invalid, "invalid request body", err)
}
