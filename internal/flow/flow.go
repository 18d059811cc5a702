// Package flow holds the view-state machines behind the two interactive
// views. Each flow owns at most one outstanding remote call at a time and
// converts its outcome into a terminal view state; remote errors never
// propagate past the flow boundary.
package flow

import (
	"errors"

	"github.com/resumatch/resumatch/internal/matcher"
)

// State identifies the currently rendered phase of a flow. Exactly one state
// is active per flow at any time.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"

	StateLoading      State = "loading"
	StateReady        State = "ready"
	StateUnauthorized State = "unauthorized"
)

// CredentialProvider supplies the bearer credential for privileged calls.
// Absence of a credential is a valid state, not an error.
type CredentialProvider interface {
	Credential() (string, bool)
}

// failureMessage picks the user-facing message for a failed remote call.
// Detail messages from the service are surfaced verbatim; everything else
// falls back to a generic message, with transport failures kept distinct so
// the user can tell "service said no" from "could not reach the service".
func failureMessage(err error) string {
	var verr *matcher.ValidationError
	if errors.As(err, &verr) && verr.Detail != "" {
		return verr.Detail
	}

	var serr *matcher.ServerError
	if errors.As(err, &serr) && serr.Detail != "" {
		return serr.Detail
	}

	var terr *matcher.TransportError
	if errors.As(err, &terr) {
		return "could not reach the scoring service"
	}

	return "the scoring service failed to process the request"
}
