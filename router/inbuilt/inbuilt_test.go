package inbuilt

import (
	"errors"
	"testing"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/method"
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRequest(m method.Method, path string) *http.Request {
	request := http.NewRequest(kv.New(), kv.NewExact(), nil)
	request.Method, request.Path = m, path

	return request
}

func textHandler(text string) Handler {
	return func(*http.Request) http.Response {
		return http.Text(text)
	}
}

func body(resp http.Response) string {
	return string(resp.Expose().Body)
}

func TestRoute(t *testing.T) {
	t.Run("resolve", func(t *testing.T) {
		r := New().
			Get("/", textHandler("root")).
			Post("/echo", textHandler("echo")).
			Get("/echo", textHandler("echo via get"))
		require.NoError(t, r.OnStart())

		handler, err := r.Resolve(method.GET, "/")
		require.NoError(t, err)
		require.Equal(t, "root", body(handler(nil)))

		handler, err = r.Resolve(method.POST, "/echo")
		require.NoError(t, err)
		require.Equal(t, "echo", body(handler(nil)))
	})

	t.Run("not found", func(t *testing.T) {
		r := New().Get("/health", textHandler("ok"))
		require.NoError(t, r.OnStart())

		for _, path := range []string{"/", "/health/", "/HEALTH", "/healt"} {
			_, err := r.Resolve(method.GET, path)
			require.ErrorIs(t, err, status.ErrNotFound, path)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		r := New().
			Post("/echo", textHandler("echo")).
			Get("/echo", textHandler("echo"))
		require.NoError(t, r.OnStart())

		_, err := r.Resolve(method.DELETE, "/echo")
		require.ErrorIs(t, err, status.ErrMethodNotAllowed)
		var notAllowed *MethodNotAllowedError
		require.ErrorAs(t, err, &notAllowed)
		require.Equal(t, "GET, POST", notAllowed.Allow)

		_, err = r.Resolve(method.Unknown, "/echo")
		require.ErrorIs(t, err, status.ErrMethodNotAllowed)
	})

	t.Run("no implicit HEAD", func(t *testing.T) {
		r := New().Get("/", textHandler("root"))
		require.NoError(t, r.OnStart())
		_, err := r.Resolve(method.HEAD, "/")
		require.ErrorIs(t, err, status.ErrMethodNotAllowed)
	})

	t.Run("duplicate route", func(t *testing.T) {
		r := New().
			Get("/", textHandler("first")).
			Get("/", textHandler("second"))

		err := r.OnStart()
		require.ErrorIs(t, err, ErrDuplicateRoute)
		require.Contains(t, err.Error(), "GET /")

		handler, err := r.Resolve(method.GET, "/")
		require.NoError(t, err)
		require.Equal(t, "first", body(handler(nil)))
	})

	t.Run("same path different methods", func(t *testing.T) {
		r := New().
			Get("/", textHandler("get")).
			Post("/", textHandler("post"))
		require.NoError(t, r.OnStart())
	})

	t.Run("registration errors are joined", func(t *testing.T) {
		r := New().
			Get("relative", textHandler("")).
			Route(method.Unknown, "/", textHandler("")).
			Get("/", textHandler("")).
			Get("/", textHandler(""))

		err := r.OnStart()
		require.ErrorIs(t, err, ErrBadPath)
		require.ErrorIs(t, err, ErrUnsupportedRoute)
		require.ErrorIs(t, err, ErrDuplicateRoute)
	})

	t.Run("frozen after start", func(t *testing.T) {
		r := New()
		require.NoError(t, r.OnStart())
		require.Panics(t, func() {
			r.Get("/", textHandler(""))
		})
	})

	t.Run("shorthands", func(t *testing.T) {
		r := New().
			Get("/", textHandler("")).
			Head("/", textHandler("")).
			Post("/", textHandler("")).
			Put("/", textHandler("")).
			Delete("/", textHandler("")).
			Patch("/", textHandler("")).
			Options("/", textHandler(""))
		require.NoError(t, r.OnStart())

		for _, m := range []method.Method{
			method.GET, method.HEAD, method.POST, method.PUT, method.DELETE, method.PATCH, method.OPTIONS,
		} {
			_, err := r.Resolve(m, "/")
			require.NoError(t, err, m.String())
		}

		_, err := r.Resolve(method.TRACE, "/")
		var notAllowed *MethodNotAllowedError
		require.ErrorAs(t, err, &notAllowed)
		require.Equal(t, "GET, HEAD, POST, PUT, DELETE, OPTIONS, PATCH", notAllowed.Allow)
	})
}

func TestOnRequest(t *testing.T) {
	r := New().
		Get("/", textHandler("root")).
		Post("/echo", func(request *http.Request) http.Response {
			return http.Binary(request.Body)
		})
	require.NoError(t, r.OnStart())

	t.Run("found", func(t *testing.T) {
		request := getRequest(method.POST, "/echo")
		request.Body = []byte("hello")
		resp := r.OnRequest(request).Expose()
		require.Equal(t, status.OK, resp.Code)
		require.Equal(t, "hello", string(resp.Body))
	})

	t.Run("not found", func(t *testing.T) {
		resp := r.OnRequest(getRequest(method.GET, "/nope")).Expose()
		require.Equal(t, status.NotFound, resp.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp := r.OnRequest(getRequest(method.GET, "/echo")).Expose()
		require.Equal(t, status.MethodNotAllowed, resp.Code)
		require.Equal(t, []kv.Pair{{"Allow", "POST"}}, resp.Headers)
	})

	t.Run("options are answered", func(t *testing.T) {
		resp := r.OnRequest(getRequest(method.OPTIONS, "/echo")).Expose()
		require.Equal(t, status.NoContent, resp.Code)
		require.Equal(t, []kv.Pair{{"Allow", "POST"}}, resp.Headers)
	})
}

func TestOnError(t *testing.T) {
	t.Run("default handler", func(t *testing.T) {
		r := New()
		require.NoError(t, r.OnStart())

		resp := r.OnError(getRequest(method.GET, "/"), status.ErrMalformedRequest).Expose()
		require.Equal(t, status.BadRequest, resp.Code)
		require.Equal(t, "malformed request", string(resp.Body))

		resp = r.OnError(getRequest(method.GET, "/"), errors.New("oops")).Expose()
		require.Equal(t, status.InternalServerError, resp.Code)
	})

	t.Run("custom handlers", func(t *testing.T) {
		r := New().
			RouteError(func(_ *http.Request, err error) http.Response {
				return http.NewResponse(status.NotFound).JSON(`{"error":"not found"}`)
			}, status.NotFound).
			RouteError(func(_ *http.Request, err error) http.Response {
				return http.Error(err).Header("X-Fallback", "1")
			})
		require.NoError(t, r.OnStart())

		resp := r.OnRequest(getRequest(method.GET, "/missing")).Expose()
		require.Equal(t, status.NotFound, resp.Code)
		require.Equal(t, `{"error":"not found"}`, string(resp.Body))

		resp = r.OnError(getRequest(method.GET, "/"), status.ErrTooManyHeaders).Expose()
		require.Equal(t, status.RequestHeaderFieldsTooLarge, resp.Code)
		assert.Equal(t, []kv.Pair{{"X-Fallback", "1"}}, resp.Headers)
	})
}

func TestMiddlewares(t *testing.T) {
	var calls []string
	mw := func(name string) Middleware {
		return func(next Handler, request *http.Request) http.Response {
			calls = append(calls, name+" before")
			resp := next(request)
			calls = append(calls, name+" after")
			return resp
		}
	}

	r := New().
		Use(mw("global")).
		Get("/", func(*http.Request) http.Response {
			calls = append(calls, "handler")
			return http.Respond()
		}, mw("first"), mw("second"))
	require.NoError(t, r.OnStart())
	// repeated start must not wrap the handlers once more
	require.NoError(t, r.OnStart())

	r.OnRequest(getRequest(method.GET, "/"))
	require.Equal(t, []string{
		"global before", "first before", "second before",
		"handler",
		"second after", "first after", "global after",
	}, calls)
}
