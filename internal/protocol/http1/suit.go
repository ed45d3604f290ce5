package http1

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/indigo-web/lazysock/config"
	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/internal/construct"
	"github.com/indigo-web/lazysock/logging"
	"github.com/indigo-web/lazysock/router"
	"github.com/indigo-web/lazysock/transport"
)

// errNoRequest means the peer went away before sending a single byte. That's what
// liveness checks do, so it isn't worth a response.
var errNoRequest = errors.New("connection closed without a request")

// Suit serves exactly one request over the connection.
type Suit struct {
	*Parser
	*Serializer
	router  router.Router
	client  transport.Client
	request *http.Request
	log     logging.Callback
}

func New(
	cfg *config.Config,
	r router.Router,
	request *http.Request,
	client transport.Client,
	log logging.Callback,
) *Suit {
	requestLine, headers := construct.Buffers(cfg)
	respBuff := make([]byte, 0, cfg.NET.WriteBufferSize)

	return &Suit{
		Parser:     NewParser(cfg, request, requestLine, headers),
		Serializer: NewSerializer(respBuff, cfg.Headers.Default, client),
		router:     r,
		client:     client,
		request:    request,
		log:        log,
	}
}

// Initialize is the same constructor as just New, but consumes fewer arguments.
func Initialize(cfg *config.Config, r router.Router, client transport.Client, log logging.Callback) *Suit {
	return New(cfg, r, construct.Request(cfg, client), client, log)
}

// Serve reads the request, responds to it and returns. The connection isn't closed.
func (s *Suit) Serve() {
	request := s.request

	err := s.receive()
	switch {
	case err == nil:
		s.respond(s.recoverable(func() http.Response {
			return s.router.OnRequest(request)
		}))
	case errors.Is(err, errNoRequest):
		s.log.Debug("connection closed without a request", "conn", request.ID)
	default:
		s.log.Warn("cannot process request", "conn", request.ID, "error", err.Error())
		s.respond(s.recoverable(func() http.Response {
			return s.router.OnError(request, err)
		}))
	}
}

// receive reads the whole request, including the body.
func (s *Suit) receive() error {
	received := false

	for {
		data, err := s.client.Read()
		if len(data) > 0 {
			received = true

			done, extra, perr := s.Parse(data)
			if perr != nil {
				return perr
			}

			if done {
				s.client.Pushback(extra)
				s.request.Body, err = readBody(s.client, s.request.ContentLength)
				return err
			}
		}

		if err != nil {
			if !received {
				return errNoRequest
			}

			return readError(err, status.ErrMalformedRequest)
		}
	}
}

func (s *Suit) respond(resp http.Response) {
	if err := s.Write(s.request.Method, resp); err != nil {
		s.log.Warn("cannot write response", "conn", s.request.ID, "error", err.Error())
	}
}

// recoverable calls the handler, turning its panic into 500 Internal Server Error.
func (s *Suit) recoverable(handle func() http.Response) (resp http.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("handler panicked",
				"conn", s.request.ID,
				"method", s.request.Method.String(),
				"path", s.request.Path,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			resp = s.onPanic()
		}
	}()

	return handle()
}

// onPanic asks the router for the response to a failed handler. If the error handler panics
// as well, a plain 500 is used.
func (s *Suit) onPanic() (resp http.Response) {
	defer func() {
		if recover() != nil {
			resp = http.Error(status.ErrInternalServerError)
		}
	}()

	return s.router.OnError(s.request, status.ErrInternalServerError)
}
