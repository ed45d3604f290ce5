package httptest

import (
	"strconv"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/proto"
)

// Dump renders the request back into its wire form. Content-Length is added automatically
// if the request has a body, but doesn't carry the header.
func Dump(request *http.Request) string {
	var buff []byte

	buff = append(buff, request.Method.String()...)
	buff = space(buff)
	buff = append(buff, request.Path...)

	if len(request.RawQuery) > 0 {
		buff = append(buff, '?')
		buff = append(buff, request.RawQuery...)
	}

	buff = space(buff)
	protocol := request.Protocol
	if protocol == proto.Unknown {
		protocol = proto.HTTP11
	}

	buff = append(buff, protocol.String()...)
	buff = crlf(buff)

	for key, value := range request.Headers.Pairs() {
		buff = header(buff, key, value)
	}

	if len(request.Body) > 0 && !request.Headers.Has("content-length") {
		buff = header(buff, "Content-Length", strconv.Itoa(len(request.Body)))
	}

	buff = crlf(buff)
	buff = append(buff, request.Body...)

	return string(buff)
}

func header(b []byte, key, value string) []byte {
	b = append(b, key...)
	b = append(b, ':', ' ')
	b = append(b, value...)
	return crlf(b)
}

func space(b []byte) []byte {
	return append(b, ' ')
}

func crlf(b []byte) []byte {
	return append(b, '\r', '\n')
}
