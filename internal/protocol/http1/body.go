package http1

import (
	"errors"
	"os"

	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/transport"
)

// bodyPrealloc limits the memory allocated in advance, as the declared length alone can't
// be trusted.
const bodyPrealloc = 64 * 1024

// readBody reads exactly n bytes of the body. Whatever follows the body is pushed back
// into the client.
func readBody(client transport.Client, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	body := make([]byte, 0, min(n, bodyPrealloc))

	for len(body) < n {
		data, err := client.Read()
		if len(data) > 0 {
			take := min(len(data), n-len(body))
			body = append(body, data[:take]...)
			if take < len(data) {
				client.Pushback(data[take:])
			}
		}

		if err != nil {
			if len(body) == n {
				break
			}

			return nil, readError(err, status.ErrIncompleteBody)
		}
	}

	return body, nil
}

// readError translates a connection read error. Timeouts are reported as such, and the rest
// are replaced with the fallback.
func readError(err, fallback error) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return status.ErrRequestTimeout
	}

	return fallback
}
