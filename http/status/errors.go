package status

// HTTPError is an error carrying the status code it must be reported with. Errors
// of this type are compared by value, so errors.Is works against the sentinels below.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// Request parsing. All of them are recovered inside the connection they happened on.
var (
	ErrMalformedRequest     = NewError(BadRequest, "malformed request")
	ErrMalformedHeader      = NewError(BadRequest, "malformed header")
	ErrUnsupportedMethod    = NewError(BadRequest, "unsupported request method")
	ErrIncompleteBody       = NewError(BadRequest, "connection closed before the whole body was received")
	ErrInvalidEncoding      = NewError(BadRequest, "request body is not a valid UTF-8 text")
	ErrLengthRequired       = NewError(LengthRequired, "only Content-Length framed bodies are supported")
	ErrBodyTooLarge         = NewError(RequestEntityTooLarge, "request body is too large")
	ErrURITooLong           = NewError(RequestURITooLong, "request line is too long")
	ErrHeaderFieldsTooLarge = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrTooManyHeaders       = NewError(RequestHeaderFieldsTooLarge, "too many headers")
	ErrRequestTimeout       = NewError(RequestTimeout, "request timeout")
)

// Routing and handling.
var (
	ErrNotFound             = NewError(NotFound, "not found")
	ErrMethodNotAllowed     = NewError(MethodNotAllowed, "method not allowed")
	ErrUnsupportedMediaType = NewError(UnsupportedMediaType, "unsupported media type")
	ErrInternalServerError  = NewError(InternalServerError, "internal server error")
)
