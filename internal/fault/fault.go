// Package fault defines the error taxonomy shared by the portal core.
// Every core operation returns one of these sentinels, possibly wrapped
// with context; callers classify with errors.Is and decide how to react.
// Only ErrStorage is an operational fault worth alerting on.
package fault

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrAuthorization is returned when the actor's scope or capabilities deny
	// the operation. It deliberately covers "not allowed" and "does not exist
	// for you" alike, so a department admin cannot probe for complaints of
	// other departments.
	ErrAuthorization = errors.New("not authorized")

	// ErrNotFound is returned when the target entity does not exist.
	// Surfaced only to actors with unrestricted scope; scoped actors
	// receive ErrAuthorization instead.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when the requested status change has no
	// edge in the lifecycle table, including a transition to the current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict is returned when the caller's expected status is stale.
	// The caller must re-read the complaint and retry; nothing was written.
	ErrConflict = errors.New("stale complaint status")

	// ErrValidation is returned for malformed input, such as an unknown
	// capability name or an assignee outside the complaint's department.
	ErrValidation = errors.New("invalid input")

	// ErrStorage is returned when the backing store fails. The operation was
	// rolled back; the core never retries on its own.
	ErrStorage = errors.New("storage failure")
)

// Storage wraps a backing-store error into the taxonomy. The returned error
// matches ErrStorage under errors.Is and keeps the cause's message.
func Storage(err error, msg string) error {
	if err == nil {
		return nil
	}

	return pkgerrors.WithMessage(ErrStorage, msg+": "+err.Error())
}
