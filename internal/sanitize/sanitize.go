// internal/sanitize/sanitize.go
//
// Input normalization and payload validation.
//
// Context
// -------
// The record service assumes its inputs are already trimmed, case-normalized
// where it matters, and free of control characters.  This package is that
// upstream collaborator: the HTTP handlers run every create/update payload
// through Clean* and Validate before anything reaches the core.
//
// Normalization is deliberately conservative.  Names keep their case and
// any letter the user typed; emails are lowercased because uniqueness is
// case-insensitive; phones are reduced to digits and a small punctuation
// set.  Rejecting, as opposed to cleaning, is the validator's job.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/JMLOSP/UserManagementAPI/internal/employee"
)

var v = validator.New()

// Text trims s and collapses internal whitespace runs to single spaces,
// dropping control characters along the way.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsControl(r):
			// dropped
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Email lowercases and trims an address.  Format checking is left to the
// validator's email rule.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone keeps digits and the conventional punctuation set "+-() .".
func Phone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsDigit(r) || strings.ContainsRune("+-() .", r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanCreate normalizes every field of a create payload in place.
func CleanCreate(in *employee.CreateInput) {
	in.FirstName = Text(in.FirstName)
	in.LastName = Text(in.LastName)
	in.Email = Email(in.Email)
	in.Phone = Phone(in.Phone)
	in.Department = Text(in.Department)
	in.Position = Text(in.Position)
}

// CleanUpdate normalizes the supplied fields of a partial update, leaving
// nil fields nil.
func CleanUpdate(in *employee.UpdateInput) {
	if in.FirstName != nil {
		*in.FirstName = Text(*in.FirstName)
	}
	if in.LastName != nil {
		*in.LastName = Text(*in.LastName)
	}
	if in.Email != nil {
		*in.Email = Email(*in.Email)
	}
	if in.Phone != nil {
		*in.Phone = Phone(*in.Phone)
	}
	if in.Department != nil {
		*in.Department = Text(*in.Department)
	}
	if in.Position != nil {
		*in.Position = Text(*in.Position)
	}
}

// Validate runs the struct tags of a payload (CreateInput or UpdateInput).
// Returns the first validation error, or nil.
func Validate(payload any) error {
	return v.Struct(payload)
}
