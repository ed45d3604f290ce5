package config

import (
	"os"
	"path/filepath"
	"time"
)

type (
	HeadersNumber struct {
		Default, Maximal int
	}

	HeadersSpace struct {
		Default, Maximal int
	}

	URIRequestLineSize struct {
		Default, Maximal int
	}
)

type (
	Socket struct {
		// Path is the filesystem path the listening socket is bound to.
		Path string
		// CleanupOnExit removes the socket file once the server is stopped.
		CleanupOnExit bool
		// OverrideDelay is how long the default prompt waits before overriding an already
		// existing stale socket file. Cancelling the serving context during the wait aborts
		// the startup.
		OverrideDelay time.Duration `test:"nullable"`
		// Permissions are applied to the socket file right after it was bound. Zero leaves
		// the mode chosen by the process umask.
		Permissions os.FileMode `test:"nullable"`
	}

	URI struct {
		// RequestLineSize limits the memory occupied by the request line, including method,
		// path, query and protocol. Requests overflowing it are rejected with
		// status.ErrURITooLong.
		RequestLineSize URIRequestLineSize
	}

	Headers struct {
		// Number is responsible for headers storage size.
		// Default value is an initial size of allocated headers storage.
		// Maximal value is maximum number of headers allowed to be presented
		Number HeadersNumber
		// Space limits the amount of memory occupied by request headers.
		Space HeadersSpace
		// Default headers are headers to be included into every response implicitly, unless
		// explicitly overridden.
		Default map[string]string `test:"nullable"`
	}

	Body struct {
		// MaxSize describes the maximal size of a body, that can be processed. Requests
		// declaring a bigger Content-Length are rejected with status.ErrBodyTooLarge.
		MaxSize int64
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no data was
		// received in this period of time, it'll be closed.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
		// WriteTimeout limits how long writing a single response may take. A peer that
		// stopped reading would otherwise hold the graceful shutdown forever.
		WriteTimeout time.Duration
		// WriteBufferSize is the initial capacity of the buffer a response is rendered into.
		// Responses bigger than that just grow it.
		WriteBufferSize int
	}
)

// Config holds settings used across various parts of lazysock, mainly restrictions, limitations
// and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Socket  Socket
	URI     URI
	Headers Headers
	Body    Body
	NET     NET
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		Socket: Socket{
			Path:          filepath.Join(os.TempDir(), "lazysock.sock"),
			CleanupOnExit: true,
		},
		URI: URI{
			RequestLineSize: URIRequestLineSize{
				Default: 1024,
				// most web-entities limit it to 4-8kb, so 16kb is pretty tolerant.
				Maximal: 16 * 1024,
			},
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 50,
			},
			Space: HeadersSpace{
				Default: 1 * 1024,  // 1kb for headers must be fairly enough in most cases.
				Maximal: 16 * 1024, // However, there also might be extremely long cookies.
			},
			Default: make(map[string]string),
		},
		Body: Body{
			MaxSize: 64 * 1024 * 1024, // 64 megabytes
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
			WriteTimeout:              30 * time.Second,
			WriteBufferSize:           2 * 1024,
		},
	}
}
