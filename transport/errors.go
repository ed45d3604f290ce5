package transport

import (
	"errors"
)

var (
	ErrNotSocket = errors.New("file exists and is not a socket")
	ErrNotBound  = errors.New("transport isn't bound")
)

// BindError is returned when the listening socket cannot be created at the path. It's
// always fatal for the server.
type BindError struct {
	Path string
	Err  error
}

func (b *BindError) Error() string {
	return "bind " + b.Path + ": " + b.Err.Error()
}

func (b *BindError) Unwrap() error {
	return b.Err
}
