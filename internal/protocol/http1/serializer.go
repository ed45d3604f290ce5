package http1

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/method"
	"github.com/indigo-web/lazysock/internal/response"
	"github.com/indigo-web/utils/strcomp"
)

// Serializer renders responses into a reusable buffer and hands each one to the writer in
// a single Write call.
type Serializer struct {
	buff           []byte
	defaultHeaders defaultHeaders
	writer         io.Writer
}

func NewSerializer(buff []byte, defaultHeaders map[string]string, writer io.Writer) *Serializer {
	return &Serializer{
		buff:           buff[:0],
		defaultHeaders: preprocessDefaultHeaders(defaultHeaders),
		writer:         writer,
	}
}

// Write renders the response. The body is omitted for HEAD requests, however its length
// is still announced.
func (s *Serializer) Write(m method.Method, resp http.Response) error {
	defer s.cleanup()

	fields := resp.Expose()
	s.appendStatus(fields)
	hasConnection := s.appendHeaders(fields)
	s.appendKnownHeader("Content-Type: ", fields.MIME())
	if !hasConnection {
		s.appendKnownHeader("Connection: ", "close")
	}

	s.appendContentLength(len(fields.Body))
	s.crlf()

	if m != method.HEAD {
		s.buff = append(s.buff, fields.Body...)
	}

	_, err := s.writer.Write(s.buff)
	return err
}

func (s *Serializer) appendStatus(fields response.Fields) {
	s.buff = append(s.buff, "HTTP/1.1 "...)
	s.buff = strconv.AppendUint(s.buff, uint64(fields.Code), 10)
	s.sp()
	s.buff = append(s.buff, fields.Reason()...)
	s.crlf()
}

// appendHeaders writes explicit headers in their order, followed by the default headers
// which weren't overridden. Returns whether the Connection header was among them.
func (s *Serializer) appendHeaders(fields response.Fields) (hasConnection bool) {
	for _, header := range fields.Headers {
		s.defaultHeaders.Exclude(header.Key)
		hasConnection = hasConnection || strcomp.EqualFold(header.Key, "connection")

		s.buff = append(s.buff, header.Key...)
		s.colonsp()
		s.buff = append(s.buff, header.Value...)
		s.crlf()
	}

	for _, header := range s.defaultHeaders {
		if header.Excluded {
			continue
		}

		hasConnection = hasConnection || strcomp.EqualFold(header.Key, "connection")
		s.buff = append(s.buff, header.Full...)
	}

	return hasConnection
}

// appendKnownHeader differs from a regular header only by the fact that the key is known to
// already have a colon and a space included.
func (s *Serializer) appendKnownHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) appendContentLength(value int) {
	s.buff = append(s.buff, "Content-Length: "...)
	s.buff = strconv.AppendUint(s.buff, uint64(value), 10)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) colonsp() {
	s.buff = append(s.buff, ':', ' ')
}

const crlf = "\r\n"

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

func (s *Serializer) cleanup() {
	s.buff = s.buff[:0]
	s.defaultHeaders.Reset()
}

// preprocessDefaultHeaders renders the default headers ahead of time, sorted by their keys
// for the output to be deterministic. Content-Type and Content-Length are owned by the
// response itself, therefore skipped.
func preprocessDefaultHeaders(headers map[string]string) defaultHeaders {
	processed := make(defaultHeaders, 0, len(headers))

	for key, value := range headers {
		if strcomp.EqualFold(key, "content-type") || strcomp.EqualFold(key, "content-length") {
			continue
		}

		serialized := key + ": " + value + crlf
		processed = append(processed, defaultHeader{
			// we let the GC release all the values of the map, as here we're using only
			// the brand-new line without keeping the original string
			Key:  serialized[:len(key)],
			Full: serialized,
		})
	}

	slices.SortFunc(processed, func(a, b defaultHeader) int {
		return strings.Compare(a.Key, b.Key)
	})

	return processed
}

type defaultHeader struct {
	Excluded bool
	Key      string
	Full     string
}

type defaultHeaders []defaultHeader

func (d defaultHeaders) Exclude(key string) {
	for i, header := range d {
		if strcomp.EqualFold(header.Key, key) {
			d[i].Excluded = true
		}
	}
}

func (d defaultHeaders) Reset() {
	for i := range d {
		d[i].Excluded = false
	}
}
