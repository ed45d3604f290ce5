package urlencoded

import (
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/internal/hexconv"
	"github.com/indigo-web/utils/uf"
)

// Decode decodes percent-encoded sequences and + as spaces (form rules). If src contains
// nothing to decode, it's returned as is and dst stays untouched. Otherwise the decoded
// value is appended to dst. Malformed percent sequences result in
// status.ErrMalformedRequest.
func Decode(src, dst []byte) (decoded, buffer []byte, err error) {
	dsthead := len(dst)
	modified := false

loop:
	for i, c := range src {
		switch c {
		case '+':
			modified = true
			dst = append(dst, src[:i]...)
			dst = append(dst, ' ')
			src = src[i+1:]
			goto loop
		case '%':
			modified = true

			if len(src)-i < 3 {
				return nil, dst, status.ErrMalformedRequest
			}

			b, ok := hexconv.Byte(src[i+1], src[i+2])
			if !ok {
				return nil, dst, status.ErrMalformedRequest
			}

			dst = append(dst, src[:i]...)
			dst = append(dst, b)
			src = src[i+3:]
			goto loop
		}
	}

	if !modified {
		return src, dst, nil
	}

	dst = append(dst, src...)
	return dst[dsthead:], dst, nil
}

// Lenient decodes the string by the same rules, except that malformed percent sequences
// are kept literally, as form decoders do. The result aliases src unless anything was
// decoded.
func Lenient(src string) string {
	var (
		dst   []byte
		start int
	)

	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '+':
			dst = append(dst, src[start:i]...)
			dst = append(dst, ' ')
			start = i + 1
		case '%':
			if i+2 >= len(src) {
				continue
			}

			b, ok := hexconv.Byte(src[i+1], src[i+2])
			if !ok {
				continue
			}

			dst = append(dst, src[start:i]...)
			dst = append(dst, b)
			i += 2
			start = i + 1
		}
	}

	if dst == nil {
		return src
	}

	return uf.B2S(append(dst, src[start:]...))
}
