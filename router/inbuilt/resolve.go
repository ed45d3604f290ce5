package inbuilt

import (
	"github.com/indigo-web/lazysock/http/method"
	"github.com/indigo-web/lazysock/http/status"
)

// MethodNotAllowedError is returned when the path is known, but not for this method.
type MethodNotAllowedError struct {
	// Allow lists the methods the path is registered with, in a form of the Allow header value.
	Allow string
}

func (m *MethodNotAllowedError) Error() string {
	return status.ErrMethodNotAllowed.Error() + " (allowed: " + m.Allow + ")"
}

func (m *MethodNotAllowedError) Unwrap() error {
	return status.ErrMethodNotAllowed
}

// Resolve looks the handler up by the exact path. Unknown paths result in status.ErrNotFound
// and known paths with another method in *MethodNotAllowedError, which also matches
// status.ErrMethodNotAllowed.
func (r *Router) Resolve(m method.Method, path string) (Handler, error) {
	ep, found := r.routes[path]
	if !found {
		return nil, status.ErrNotFound
	}

	if m <= method.Count {
		if handler := ep.methods[m]; handler != nil {
			return handler, nil
		}
	}

	return nil, &MethodNotAllowedError{Allow: ep.allow}
}
