package mime

import "strings"

type MIME = string

const (
	OctetStream    MIME = "application/octet-stream"
	Plain          MIME = "text/plain"
	HTML           MIME = "text/html"
	JSON           MIME = "application/json"
	XML            MIME = "text/xml"
	FormUrlencoded MIME = "application/x-www-form-urlencoded"
)

// Complies returns whether the header value is compatible with the MIME. Parameters
// of the value are ignored, and an empty value is considered compatible with anything.
func Complies(mime MIME, with string) bool {
	with, _, _ = strings.Cut(with, ";")
	with = strings.TrimSpace(with)

	return len(with) == 0 || strings.EqualFold(with, mime)
}
