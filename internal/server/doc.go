// Package server runs the build-keeper plan server.
//
// NewServer starts an HTTP listener, a gRPC listener, or both, depending on
// which addresses are configured. The retention worker runs next to them and
// is stopped on the same signal.
package server
