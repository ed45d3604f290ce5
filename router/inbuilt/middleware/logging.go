package middleware

import (
	"time"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/logging"
	"github.com/indigo-web/lazysock/router/inbuilt"
)

// LogRequests logs a record per request at info level, carrying the connection id, method,
// path, response code and the time the handler took.
func LogRequests(log logging.Callback) inbuilt.Middleware {
	return func(next inbuilt.Handler, request *http.Request) http.Response {
		start := time.Now()
		response := next(request)

		log.Info("request",
			"conn", request.ID,
			"method", request.Method.String(),
			"path", request.Path,
			"code", int(response.Expose().Code),
			"took", time.Since(start).String(),
		)

		return response
	}
}
