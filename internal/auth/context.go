// internal/auth/context.go
//
// Request-context helpers for the authenticated subject.
//
// Usage
// -----
//     // Attach the subject after token verification.
//     ctx = auth.WithSubject(ctx, "admin")
//
//     // Downstream code retrieves it (audit logging, mostly).
//     who, ok := auth.Subject(ctx)   // "admin", true

package auth

import "context"

// subjectKey is unexported to avoid context-key collisions.
type subjectKey struct{}

// WithSubject returns a new context carrying the authenticated subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// Subject extracts the subject from ctx.  It returns ("", false) when no
// authenticated subject is set.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok && s != ""
}
