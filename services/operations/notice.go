package operations

import (
	// Local Packages
	errors "network-ops/errors"
)

// Notice turns an error from the service into the message shown to the person
// who triggered the action. Fatal reports whether the caller should give up
// rather than let the user retry.
func Notice(err error) (msg string, fatal bool) {
	switch errors.KindOf(err) {
	case errors.MissingReason:
		return "A comment is required to reject this request.", false
	case errors.TerminalState:
		return "This request has already been closed.", false
	case errors.InvalidTransition:
		return "This request was already reviewed; showing its current state.", false
	case errors.Conflict:
		return "This request is already being processed. Please wait.", false
	case errors.Permission:
		return "You are not allowed to review requests.", false
	case errors.NotFound:
		return "The request no longer exists.", false
	case errors.Invalid:
		return "Invalid request: " + err.Error(), false
	case errors.Transport:
		return "The server could not be reached. Nothing was changed.", false
	}
	return "Unexpected error: " + err.Error(), true
}
