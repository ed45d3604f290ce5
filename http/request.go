package http

import (
	"context"
	"net"
	"unicode/utf8"

	"github.com/indigo-web/lazysock/http/method"
	"github.com/indigo-web/lazysock/http/mime"
	"github.com/indigo-web/lazysock/http/proto"
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/kv"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

var zeroContext = context.Background()

type (
	Headers = *kv.Storage
	Header  = kv.Pair
	Params  = *kv.Storage
)

// Request represents a parsed request. It's owned by the connection it arrived on and must not
// be retained after the handler returns.
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// Path is the decoded path, always beginning with a slash.
	Path string
	// RawQuery is the query as it was received, without the leading question mark.
	RawQuery string
	// Params are decoded query pairs in their arrival order. Lookup is case-sensitive.
	Params Params
	// Protocol is the protocol version the request was made with.
	Protocol proto.Protocol
	// Headers holds non-normalized header pairs, even though lookup is case-insensitive.
	Headers Headers
	// ContentLength is the declared body length, 0 if absent.
	ContentLength int
	// ContentType is the raw Content-Type header value.
	ContentType string
	// Body holds exactly ContentLength bytes.
	Body []byte
	// Remote holds the remote address. Unix domain sockets peers are usually unnamed.
	Remote net.Addr
	// ID is a random identifier of the connection, useful to correlate log records.
	ID string
	// Ctx is user-managed context which lives as long as the connection does.
	Ctx context.Context
}

func NewRequest(headers, params *kv.Storage, remote net.Addr) *Request {
	return &Request{
		Method:   method.Unknown,
		Protocol: proto.HTTP11,
		Params:   params,
		Headers:  headers,
		Remote:   remote,
		Ctx:      zeroContext,
	}
}

// Header returns the first value of the header, or an empty string if there's none.
func (r *Request) Header(key string) string {
	return r.Headers.Value(key)
}

// Query returns the first value of the query parameter and whether it was presented at all.
func (r *Request) Query(key string) (value string, found bool) {
	return r.Params.Get(key)
}

// Text returns the body as a string, if it is a valid UTF-8 sequence. Otherwise
// status.ErrInvalidEncoding is returned. The string shares memory with the body.
func (r *Request) Text() (string, error) {
	if !utf8.Valid(r.Body) {
		return "", status.ErrInvalidEncoding
	}

	return uf.B2S(r.Body), nil
}

// JSON decodes the body into the model. Requests explicitly declaring a content type other than
// application/json are rejected with status.ErrUnsupportedMediaType.
func (r *Request) JSON(model any) error {
	if !mime.Complies(mime.JSON, r.ContentType) {
		return status.ErrUnsupportedMediaType
	}

	iterator := json.ConfigDefault.BorrowIterator(r.Body)
	iterator.ReadVal(model)
	err := iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

// Respond returns a new 200 OK response. Exists mostly for symmetry, as responses aren't
// bound to requests.
func (r *Request) Respond() Response {
	return NewResponse(status.OK)
}
