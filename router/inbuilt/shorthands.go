package inbuilt

import (
	"github.com/indigo-web/lazysock/http/method"
)

// Get is a shortcut for Route(method.GET, ...)
func (r *Router) Get(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.GET, path, handler, middlewares...)
}

// Head is a shortcut for Route(method.HEAD, ...)
func (r *Router) Head(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.HEAD, path, handler, middlewares...)
}

// Post is a shortcut for Route(method.POST, ...)
func (r *Router) Post(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.POST, path, handler, middlewares...)
}

// Put is a shortcut for Route(method.PUT, ...)
func (r *Router) Put(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.PUT, path, handler, middlewares...)
}

// Delete is a shortcut for Route(method.DELETE, ...)
func (r *Router) Delete(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.DELETE, path, handler, middlewares...)
}

// Patch is a shortcut for Route(method.PATCH, ...)
func (r *Router) Patch(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.PATCH, path, handler, middlewares...)
}

// Options is a shortcut for Route(method.OPTIONS, ...)
func (r *Router) Options(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.OPTIONS, path, handler, middlewares...)
}
