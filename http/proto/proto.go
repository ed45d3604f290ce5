package proto

import "github.com/indigo-web/utils/uf"

// Protocol is the version token of a request line. Responses are always rendered as
// HTTP/1.1 regardless of it.
type Protocol uint8

const (
	Unknown Protocol = iota
	HTTP10
	HTTP11
)

func (p Protocol) String() string {
	switch p {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	default:
		return ""
	}
}

const (
	protoTokenLength   = len("HTTP/x.x")
	majorVersionOffset = len("HTTP/x") - 1
	minorVersionOffset = len("HTTP/x.x") - 1
	httpScheme         = "HTTP/"
)

// FromBytes parses a version token. Anything except HTTP/1.0 and HTTP/1.1 results
// in Unknown.
func FromBytes(raw []byte) Protocol {
	if len(raw) != protoTokenLength || uf.B2S(raw[:majorVersionOffset]) != httpScheme {
		return Unknown
	}

	if raw[majorVersionOffset] != '1' || raw[majorVersionOffset+1] != '.' {
		return Unknown
	}

	switch raw[minorVersionOffset] {
	case '0':
		return HTTP10
	case '1':
		return HTTP11
	default:
		return Unknown
	}
}
