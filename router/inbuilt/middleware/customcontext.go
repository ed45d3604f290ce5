package middleware

import (
	"context"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/router/inbuilt"
)

// CustomContext replaces the request's context with ctx.
func CustomContext(ctx context.Context) inbuilt.Middleware {
	return func(next inbuilt.Handler, request *http.Request) http.Response {
		request.Ctx = ctx

		return next(request)
	}
}
