package response

import (
	"github.com/indigo-web/lazysock/http/mime"
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/kv"
)

// DefaultContentType is used when a response carries no content type at all.
const DefaultContentType = mime.Plain

// Fields is everything the serializer needs to render a response.
type Fields struct {
	Code status.Code
	// Status overrides the standard reason phrase if not empty.
	Status      status.Status
	ContentType mime.MIME
	Charset     mime.Charset
	// Headers are stored in the order they were set. They never contain Content-Type
	// nor Content-Length.
	Headers []kv.Pair
	Body    []byte
}

// MIME returns the full Content-Type value, including the charset parameter if set.
func (f Fields) MIME() string {
	contentType := f.ContentType
	if len(contentType) == 0 {
		contentType = DefaultContentType
	}

	if len(f.Charset) == 0 {
		return contentType
	}

	return contentType + "; charset=" + f.Charset
}

// Reason returns the custom status text if set, or the standard one otherwise.
func (f Fields) Reason() status.Status {
	if len(f.Status) > 0 {
		return f.Status
	}

	return status.Text(f.Code)
}
