package inbuilt

import (
	"errors"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/method"
	"github.com/indigo-web/lazysock/http/status"
)

func newErrorHandlers() errorHandlers {
	return errorHandlers{
		AllErrors:               genericErrorHandler,
		status.MethodNotAllowed: generic405Handler,
	}
}

func genericErrorHandler(_ *http.Request, err error) http.Response {
	return http.Error(err)
}

// generic405Handler announces the allowed methods. OPTIONS requests are answered with them
// instead of being rejected.
func generic405Handler(request *http.Request, err error) http.Response {
	resp := http.Error(err)
	if request.Method == method.OPTIONS {
		resp = http.NewResponse(status.NoContent)
	}

	var notAllowed *MethodNotAllowedError
	if errors.As(err, &notAllowed) {
		resp = resp.Header("Allow", notAllowed.Allow)
	}

	return resp
}
