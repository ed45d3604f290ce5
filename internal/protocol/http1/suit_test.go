package http1

import (
	"errors"
	"io"
	stdhttp "net/http"
	"os"
	"strings"
	"testing"

	"github.com/indigo-web/lazysock/config"
	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/logging"
	"github.com/indigo-web/lazysock/router"
	"github.com/indigo-web/lazysock/router/inbuilt"
	"github.com/indigo-web/lazysock/transport/dummy"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func getInbuiltRouter(t *testing.T) router.Router {
	r := inbuilt.New().
		Get("/", func(*http.Request) http.Response {
			return http.Text("Hello, world!")
		}).
		Head("/", func(*http.Request) http.Response {
			return http.Text("Hello, world!")
		}).
		Post("/echo", func(request *http.Request) http.Response {
			if len(request.Body) == 0 {
				return http.NewResponse(status.BadRequest).Text("Request body is empty")
			}

			return http.Binary(request.Body, "text/plain")
		}).
		Get("/panic", func(*http.Request) http.Response {
			panic("something went wrong")
		})

	require.NoError(t, r.OnStart())

	return r
}

func serve(t *testing.T, r router.Router, client *dummy.Client) (*stdhttp.Response, *logging.Journal) {
	journal := logging.NewJournal()
	Initialize(config.Default(), r, client, journal.Callback()).Serve()
	if client.Writes() == 0 {
		return nil, journal
	}

	require.Equal(t, 1, client.Writes())
	resp := readResponse(t, []byte(client.Written()), stdhttp.MethodGet)
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp, journal
}

func readBodyString(t *testing.T, resp *stdhttp.Response) string {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestSuit(t *testing.T) {
	r := getInbuiltRouter(t)

	t.Run("simple GET", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GET / HTTP/1.1\r\n\r\n"))
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		require.True(t, resp.Close)
		require.Equal(t, "Hello, world!", readBodyString(t, resp))
	})

	t.Run("echo", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("POST /echo HTTP/1.1\r\nContent-Length: 13\r\n\r\nHello, world!"))
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "Hello, world!", readBodyString(t, resp))
	})

	t.Run("echo fragmented", func(t *testing.T) {
		raw := "POST /echo HTTP/1.1\r\nContent-Length: 13\r\n\r\nHello, world!"

		for _, n := range []int{1, 5, 27} {
			client := dummy.NewMockClient(splitIntoParts([]byte(raw), n)...)
			resp, _ := serve(t, r, client)
			require.Equal(t, stdhttp.StatusOK, resp.StatusCode, n)
			require.Equal(t, "Hello, world!", readBodyString(t, resp), n)
		}
	})

	t.Run("bytes after the body are ignored", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("POST /echo HTTP/1.1\r\nContent-Length: 5\r\n\r\nHelloGET / HTTP/1.1\r\n\r\n"))
		resp, _ := serve(t, r, client)
		require.Equal(t, "Hello", readBodyString(t, resp))
	})

	t.Run("empty body", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("POST /echo HTTP/1.1\r\n\r\n"))
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Request body is empty", readBodyString(t, resp))
	})

	t.Run("incomplete body", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("POST /echo HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc"))
		resp, journal := serve(t, r, client)
		require.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
		require.Equal(t, status.ErrIncompleteBody.Error(), readBodyString(t, resp))

		record, found := journal.Find("cannot process request")
		require.True(t, found)
		require.Equal(t, zerolog.WarnLevel, record.Level)
	})

	t.Run("incomplete head", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GET / HTTP/1.1\r\nHost: "))
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	})

	t.Run("timeout", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GET / HT")).ReadError(os.ErrDeadlineExceeded)
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusRequestTimeout, resp.StatusCode)

		client = dummy.NewMockClient([]byte("POST /echo HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc")).
			ReadError(os.ErrDeadlineExceeded)
		resp, _ = serve(t, r, client)
		require.Equal(t, stdhttp.StatusRequestTimeout, resp.StatusCode)
	})

	t.Run("no request", func(t *testing.T) {
		client := dummy.NewMockClient()
		resp, journal := serve(t, r, client)
		require.Nil(t, resp)
		require.Empty(t, client.Written())

		record, found := journal.Find("connection closed without a request")
		require.True(t, found)
		require.Equal(t, zerolog.DebugLevel, record.Level)
	})

	t.Run("malformed request", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GARBAGE\r\n\r\n"))
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GET /missing HTTP/1.1\r\n\r\n"))
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
		require.Empty(t, resp.Header.Get("Allow"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GET /echo HTTP/1.1\r\n\r\n"))
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusMethodNotAllowed, resp.StatusCode)
		require.Equal(t, "POST", resp.Header.Get("Allow"))
	})

	t.Run("HEAD", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("HEAD / HTTP/1.1\r\n\r\n"))
		Initialize(config.Default(), r, client, nil).Serve()

		written := client.Written()
		require.True(t, strings.HasSuffix(written, "Content-Length: 13\r\n\r\n"), written)
	})

	t.Run("panic", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GET /panic HTTP/1.1\r\n\r\n"))
		resp, journal := serve(t, r, client)
		require.Equal(t, stdhttp.StatusInternalServerError, resp.StatusCode)

		record, found := journal.Find("handler panicked")
		require.True(t, found)
		require.Equal(t, zerolog.ErrorLevel, record.Level)
		require.Equal(t, "something went wrong", record.Fields["panic"])
		require.Equal(t, "/panic", record.Fields["path"])
		require.NotEmpty(t, record.Fields["stack"])
	})

	t.Run("panicking error handler", func(t *testing.T) {
		r := inbuilt.New().
			Get("/", func(*http.Request) http.Response {
				panic("handler")
			}).
			RouteError(func(*http.Request, error) http.Response {
				panic("error handler")
			})
		require.NoError(t, r.OnStart())

		client := dummy.NewMockClient([]byte("GET / HTTP/1.1\r\n\r\n"))
		resp, _ := serve(t, r, client)
		require.Equal(t, stdhttp.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("write error", func(t *testing.T) {
		client := dummy.NewMockClient([]byte("GET / HTTP/1.1\r\n\r\n")).
			WriteError(errors.New("broken pipe"))
		_, journal := serve(t, r, client)

		record, found := journal.Find("cannot write response")
		require.True(t, found)
		require.Equal(t, "broken pipe", record.Fields["error"])
	})
}
