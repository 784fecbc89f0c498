package adapter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("requirements not met")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = errors.New("server unavailable")
	ErrNotSupported        = errors.New("operation is not supported by this transport")
)

// RemoteError is a failure reported by the server. It matches its status
// sentinel through errors.Is.
type RemoteError struct {
	Kind    error
	Message string
	Missing []string
	Unknown []string
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}

func (e *RemoteError) Is(target error) bool { return target == e.Kind }
