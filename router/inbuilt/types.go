package inbuilt

import (
	"strings"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/method"
	"github.com/indigo-web/lazysock/http/status"
)

type (
	Handler func(*http.Request) http.Response
	// ErrorHandler produces a response for the error, which is guaranteed to be non-nil.
	ErrorHandler func(*http.Request, error) http.Response
	// Middleware works like a chain of nested calls, next may be even directly
	// handler. But if we are not a closing middleware, we will call next
	// middleware that is simply a partial middleware with already provided next
	Middleware func(next Handler, request *http.Request) http.Response
)

// AllErrors is a pseudo-code matching any error having no dedicated handler.
const AllErrors status.Code = 0

type errorHandlers map[status.Code]ErrorHandler

type methodsMap [method.Count + 1]Handler

type endpoint struct {
	methods methodsMap
	allow   string
}

func (e *endpoint) Add(m method.Method, handler Handler) {
	e.methods[m] = handler
	e.allow = getAllowString(e.methods)
}

func getAllowString(methods methodsMap) string {
	allowed := make([]string, 0, len(methods))

	for _, m := range method.List {
		if methods[m] != nil {
			allowed = append(allowed, m.String())
		}
	}

	return strings.Join(allowed, ", ")
}

// compose makes a single handler out of a chain of middlewares. The first middleware is
// the outermost one.
func compose(handler Handler, middlewares []Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = wrap(handler, middlewares[i])
	}

	return handler
}

func wrap(next Handler, middleware Middleware) Handler {
	return func(request *http.Request) http.Response {
		return middleware(next, request)
	}
}
