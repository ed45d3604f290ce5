package httptest

import (
	"io"
	"net"
	"time"
)

// Timeout limits the whole exchange made by Do.
const Timeout = 5 * time.Second

// Do sends the raw request over a fresh connection to the Unix socket and returns the raw
// response. The write side is shut down right after the request, so the server observes
// EOF instead of waiting for more data.
func Do(socketPath, raw string) (string, error) {
	conn, err := net.DialTimeout("unix", socketPath, Timeout)
	if err != nil {
		return "", err
	}

	defer conn.Close()

	if err = conn.SetDeadline(time.Now().Add(Timeout)); err != nil {
		return "", err
	}

	if _, err = io.WriteString(conn, raw); err != nil {
		return "", err
	}

	if err = conn.(*net.UnixConn).CloseWrite(); err != nil {
		return "", err
	}

	response, err := io.ReadAll(conn)
	return string(response), err
}

// DoParse does the same as Do, but also parses the response.
func DoParse(socketPath, raw string) (Response, error) {
	response, err := Do(socketPath, raw)
	if err != nil {
		return Response{}, err
	}

	return Parse(response)
}
