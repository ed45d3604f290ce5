package router

import (
	"github.com/indigo-web/lazysock/http"
)

// Router turns requests into responses. OnStart is called once before the first connection is
// accepted, and an error returned from it aborts the startup. After that OnRequest and OnError
// are called concurrently from many connections.
type Router interface {
	OnStart() error
	OnRequest(request *http.Request) http.Response
	OnError(request *http.Request, err error) http.Response
}
