package http

import (
	"errors"
	"strings"

	"github.com/indigo-web/lazysock/http/mime"
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/internal/response"
	"github.com/indigo-web/lazysock/kv"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Response is an immutable description of what has to be sent back. Every method returns a
// modified copy, leaving the original untouched, so a single value can safely serve as a
// template for many responses.
type Response struct {
	fields response.Fields
}

// NewResponse returns a response with the status code and no body. Unless set otherwise, it is
// rendered with text/plain content type.
func NewResponse(code status.Code) Response {
	return Response{
		fields: response.Fields{Code: code},
	}
}

// Respond returns an empty 200 OK response.
func Respond() Response {
	return NewResponse(status.OK)
}

// Text is a predicate to NewResponse(status.OK).Text(...)
func Text(text string) Response {
	return Respond().Text(text)
}

// JSON is a predicate to NewResponse(status.OK).JSON(...)
func JSON(text string) Response {
	return Respond().JSON(text)
}

// HTML is a predicate to NewResponse(status.OK).HTML(...)
func HTML(text string) Response {
	return Respond().HTML(text)
}

// Binary is a predicate to NewResponse(status.OK).Binary(...)
func Binary(data []byte, contentType ...mime.MIME) Response {
	return Respond().Binary(data, contentType...)
}

// Error is a predicate to NewResponse(status.InternalServerError).Error(...)
func Error(err error) Response {
	return NewResponse(status.InternalServerError).Error(err)
}

// Code sets the status code. The status text is derived from it unless set explicitly via Status.
func (r Response) Code(code status.Code) Response {
	r.fields.Code = code
	return r
}

// Status sets a custom status text. This text does not matter at all, and usually
// totally ignored by client, so there is actually no reasons to use this except some
// rare cases when you need to represent a Response status text somewhere
func (r Response) Status(status status.Status) Response {
	if hasLineBreak(string(status)) {
		return r
	}

	r.fields.Status = status
	return r
}

// ContentType sets the Content-Type value. The optional charset is rendered as its parameter.
// Values containing CR or LF are ignored.
func (r Response) ContentType(value mime.MIME, charset ...mime.Charset) Response {
	if hasLineBreak(value) || (len(charset) > 0 && hasLineBreak(charset[0])) {
		return r
	}

	r.fields.ContentType = value
	r.fields.Charset = mime.Unset
	if len(charset) > 0 {
		r.fields.Charset = charset[0]
	}

	return r
}

// Header adds values to the key, keeping all the previously set ones. Content-Type is
// redirected to ContentType, and Content-Length is ignored, as it is always computed from
// the body. Keys and values containing CR or LF are dropped, as they would break the
// message framing.
func (r Response) Header(key string, values ...string) Response {
	switch {
	case len(values) == 0, len(key) == 0, hasLineBreak(key):
		return r
	case strcomp.EqualFold(key, "content-type"):
		return r.ContentType(values[0])
	case strcomp.EqualFold(key, "content-length"):
		return r
	}

	// never append in place, as the backing array might be shared with other copies
	headers := r.fields.Headers[:len(r.fields.Headers):len(r.fields.Headers)]
	for _, value := range values {
		if !hasLineBreak(value) {
			headers = append(headers, kv.Pair{Key: key, Value: value})
		}
	}

	r.fields.Headers = headers
	return r
}

// String sets the response's body to the passed string, keeping the content type.
func (r Response) String(body string) Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r Response) Bytes(body []byte) Response {
	r.fields.Body = body
	return r
}

// Text sets the body and text/plain content type in UTF-8.
func (r Response) Text(text string) Response {
	return r.String(text).ContentType(mime.Plain, mime.UTF8)
}

// JSON sets the body, which must be already encoded, and application/json content type.
func (r Response) JSON(text string) Response {
	return r.String(text).ContentType(mime.JSON)
}

// HTML sets the body and text/html content type in UTF-8.
func (r Response) HTML(text string) Response {
	return r.String(text).ContentType(mime.HTML, mime.UTF8)
}

// Binary sets the body WITHOUT COPYING. The content type defaults to application/octet-stream.
func (r Response) Binary(data []byte, contentType ...mime.MIME) Response {
	ct := mime.OctetStream
	if len(contentType) > 0 {
		ct = contentType[0]
	}

	return r.Bytes(data).ContentType(ct)
}

// Marshal encodes the model as a JSON body. In case of an error the response is returned
// unmodified.
func (r Response) Marshal(model any) (Response, error) {
	stream := json.ConfigDefault.BorrowStream(nil)
	stream.WriteVal(model)
	err := stream.Error
	body := append([]byte(nil), stream.Buffer()...)
	json.ConfigDefault.ReturnStream(stream)

	if err != nil {
		return r, err
	}

	return r.Bytes(body).ContentType(mime.JSON), nil
}

// Error returns a response describing the error. If passed err is nil, nothing will happen.
// If it is (or wraps) status.HTTPError, its code and message are used. Otherwise the response
// is 500 Internal Server Error with the error text as its body.
func (r Response) Error(err error) Response {
	if err == nil {
		return r
	}

	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		return r.Code(httpErr.Code).Text(httpErr.Message)
	}

	return r.
		Code(status.InternalServerError).
		Text(err.Error())
}

// Expose returns a copy of the values the response consists of. Used mostly in internal purposes
func (r Response) Expose() response.Fields {
	return r.fields
}

func hasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
