// internal/employee/errors.go
//
// Typed domain outcomes.  Expected failures (missing record, duplicate
// email) are sentinel errors so callers branch with errors.Is instead of
// string matching; anything else that escapes the service is an internal
// error and maps to a 500 at the boundary.
package employee

import "errors"

var (
	// ErrNotFound is returned when the referenced id or email does not
	// resolve to an active record.
	ErrNotFound = errors.New("employee not found")

	// ErrConflict is returned when a create or update would leave two
	// active records sharing one case-insensitive email.
	ErrConflict = errors.New("email already in use")

	// ErrInvalidInput is returned for values that are impossible rather
	// than merely unusual, such as non-positive ids.  Field-level checks
	// happen upstream in internal/sanitize.
	ErrInvalidInput = errors.New("invalid input")
)
