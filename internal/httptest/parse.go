package httptest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/indigo-web/lazysock/kv"
)

// Response is a parsed response. The parsing is strict on purpose, as it's used to verify
// what the server writes.
type Response struct {
	Proto   string
	Code    int
	Status  string
	Headers *kv.Storage
	Body    string
}

func Parse(raw string) (response Response, err error) {
	var found bool
	response.Headers = kv.New()

	response.Proto, raw, found = strings.Cut(raw, " ")
	if !found || len(raw) == 0 {
		return response, fmt.Errorf("bad status line: lacking code and status")
	}

	var code string
	code, raw, found = strings.Cut(raw, " ")
	if !found || len(raw) == 0 {
		return response, fmt.Errorf("bad status line: lacking status text")
	}

	response.Code, err = strconv.Atoi(code)
	if err != nil {
		return response, err
	}

	response.Status, raw, found = strings.Cut(raw, "\r\n")
	if !found {
		return response, fmt.Errorf("bad response: only status line is presented")
	}

	for {
		var headerLine string
		headerLine, raw, found = strings.Cut(raw, "\r\n")
		if !found {
			return response, fmt.Errorf("bad header line %q: no breaking CRLF", headerLine)
		}

		if len(headerLine) == 0 {
			break
		}

		key, value, err := parseHeaderLine(headerLine)
		if err != nil {
			return response, err
		}

		response.Headers.Add(key, value)
	}

	response.Body, err = processBody(response, raw)

	return response, err
}

func parseHeaderLine(line string) (key, value string, err error) {
	var found bool
	key, value, found = strings.Cut(line, ": ")
	if !found {
		return "", "", fmt.Errorf("bad header %q: no value", line)
	}

	if len(key) == 0 {
		return "", "", fmt.Errorf("bad header %q: empty key", line)
	}

	return key, value, nil
}

func processBody(response Response, data string) (string, error) {
	contentLengths := response.Headers.Values("content-length")
	var lengths []string
	for value := range contentLengths {
		lengths = append(lengths, value)
	}

	switch len(lengths) {
	case 0:
		return "", fmt.Errorf("bad response: no Content-Length")
	case 1:
		length, err := strconv.Atoi(lengths[0])
		if err != nil {
			return "", err
		}

		if len(data) != length {
			return "", fmt.Errorf(
				"bad response: Content-Length is %d, but got %d bytes of body", length, len(data),
			)
		}

		return data, nil
	default:
		return "", fmt.Errorf(
			"bad response: too many content-lengths: %s", strings.Join(lengths, ", "),
		)
	}
}
