package middleware

import (
	"strings"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/router/inbuilt"
)

const DefaultServerHeader = "lazysock"

// ServerHeader adds the Server header to every response. Multiple tokens are joined with
// spaces.
func ServerHeader(tokens ...string) inbuilt.Middleware {
	value := strings.Join(tokens, " ")
	if len(value) == 0 {
		value = DefaultServerHeader
	}

	return func(next inbuilt.Handler, request *http.Request) http.Response {
		return next(request).
			Header("Server", value)
	}
}
