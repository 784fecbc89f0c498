// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// credential fingerprints, HTTP response writing, HTTP client
// initialization, JWT token generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// CallerCtxKey is the key used to store the authenticated caller (the "sub"
// claim of the bearer token) in the context.
//
//	ctx := context.WithValue(ctx, utils.CallerCtxKey, "ci-release")
var CallerCtxKey = contextKey("caller")

// GetCallerFromContext retrieves the authenticated caller from the context.
//
// ok is false when the value is missing, empty, or not a string.
func GetCallerFromContext(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(CallerCtxKey).(string)
	return caller, ok && caller != ""
}

// WithCaller returns a copy of ctx carrying caller under [CallerCtxKey].
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, CallerCtxKey, caller)
}
