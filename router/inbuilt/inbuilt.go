package inbuilt

import (
	"errors"
	"fmt"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/method"
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/router"
)

var _ router.Router = New()

var (
	ErrDuplicateRoute   = errors.New("route already registered")
	ErrBadPath          = errors.New("path must begin with a slash")
	ErrUnsupportedRoute = errors.New("cannot route the method")
)

// Router is a built-in implementation of router.Router interface. Routes are matched by the
// exact path, without any normalization. Routes must be registered before the server starts,
// after that the routing table becomes read-only, and therefore safe for concurrent use.
type Router struct {
	routes      map[string]*endpoint
	errHandlers errorHandlers
	middlewares []Middleware
	errs        []error
	frozen      bool
}

// New constructs a new instance of inbuilt router
func New() *Router {
	return &Router{
		routes:      make(map[string]*endpoint),
		errHandlers: newErrorHandlers(),
	}
}

// Route registers the handler for the method and path. Errors, such as a duplicate route, are
// reported by OnStart, so the server refuses to start. The first registration stays in effect.
// Registering routes after the server has started is a programming error and panics.
func (r *Router) Route(m method.Method, path string, handler Handler, middlewares ...Middleware) *Router {
	r.mustBeMutable()

	switch {
	case m == method.Unknown || m > method.Count:
		r.errs = append(r.errs, fmt.Errorf("%w: %s %s", ErrUnsupportedRoute, m, path))
		return r
	case len(path) == 0 || path[0] != '/':
		r.errs = append(r.errs, fmt.Errorf("%w: %s %q", ErrBadPath, m, path))
		return r
	}

	ep := r.routes[path]
	if ep == nil {
		ep = new(endpoint)
		r.routes[path] = ep
	}

	if ep.methods[m] != nil {
		r.errs = append(r.errs, fmt.Errorf("%w: %s %s", ErrDuplicateRoute, m, path))
		return r
	}

	ep.Add(m, compose(handler, middlewares))

	return r
}

// RouteError adds an error handler for the status codes. Use AllErrors (or no codes at all)
// to replace the fallback handler, which is used for codes having no dedicated handler.
func (r *Router) RouteError(handler ErrorHandler, codes ...status.Code) *Router {
	r.mustBeMutable()

	if len(codes) == 0 {
		codes = []status.Code{AllErrors}
	}

	for _, code := range codes {
		r.errHandlers[code] = handler
	}

	return r
}

// Use adds middlewares applied to every route, including those registered later. They wrap
// the route-specific middlewares.
func (r *Router) Use(middlewares ...Middleware) *Router {
	r.mustBeMutable()
	r.middlewares = append(r.middlewares, middlewares...)

	return r
}

// OnStart freezes the routing table and applies the middlewares. Returns all the errors
// occurred during registration.
func (r *Router) OnStart() error {
	if !r.frozen {
		r.frozen = true

		for _, ep := range r.routes {
			for m, handler := range ep.methods {
				if handler != nil {
					ep.methods[m] = compose(handler, r.middlewares)
				}
			}
		}
	}

	return errors.Join(r.errs...)
}

// OnRequest routes the request to its handler. Routing errors are handed to OnError.
func (r *Router) OnRequest(request *http.Request) http.Response {
	handler, err := r.Resolve(request.Method, request.Path)
	if err != nil {
		return r.OnError(request, err)
	}

	return handler(request)
}

// OnError responds with the handler registered for the status code of the error. Errors not
// carrying any are treated as 500 Internal Server Error.
func (r *Router) OnError(request *http.Request, err error) http.Response {
	code := status.InternalServerError
	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
	}

	handler, found := r.errHandlers[code]
	if !found {
		handler = r.errHandlers[AllErrors]
	}

	return handler(request, err)
}

func (r *Router) mustBeMutable() {
	if r.frozen {
		panic("inbuilt router: cannot modify routes after the server has started")
	}
}
