package http1

import (
	"bytes"
	"math"

	"github.com/indigo-web/lazysock/config"
	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/http/method"
	"github.com/indigo-web/lazysock/http/proto"
	"github.com/indigo-web/lazysock/http/status"
	"github.com/indigo-web/lazysock/internal/buffer"
	"github.com/indigo-web/lazysock/internal/query"
	"github.com/indigo-web/lazysock/internal/urlencoded"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

type parserState uint8

const (
	eRequestLine parserState = iota + 1
	eHeaderLine
)

// Parser is an incremental parser of the request head. Data may be fed in arbitrary pieces.
// Parsed strings reference the parser's buffers, so they stay valid until Reset.
type Parser struct {
	state         parserState
	headersNumber int
	contentLength int64
	hasLength     bool
	cfg           *config.Config
	request       *http.Request
	requestLine   *buffer.Buffer
	headers       *buffer.Buffer
}

func NewParser(cfg *config.Config, request *http.Request, requestLine, headers *buffer.Buffer) *Parser {
	return &Parser{
		cfg:         cfg,
		state:       eRequestLine,
		request:     request,
		requestLine: requestLine,
		headers:     headers,
	}
}

// Parse consumes the data until the head of the request is complete. In this case done is set
// and extra holds the bytes following the head, which belong to the body. An error is always
// final and is returned with done set.
func (p *Parser) Parse(data []byte) (done bool, extra []byte, err error) {
	for len(data) > 0 {
		buff, overflow := p.requestLine, status.ErrURITooLong
		if p.state == eHeaderLine {
			buff, overflow = p.headers, status.ErrHeaderFieldsTooLarge
		}

		lf := bytes.IndexByte(data, '\n')
		if lf == -1 {
			if !buff.Append(data) {
				return true, nil, overflow
			}

			return false, nil, nil
		}

		if !buff.Append(data[:lf]) {
			return true, nil, overflow
		}

		data = data[lf+1:]
		line := trimCR(buff.Finish())

		switch p.state {
		case eRequestLine:
			if err = p.parseRequestLine(line); err != nil {
				return true, nil, err
			}

			p.state = eHeaderLine
		case eHeaderLine:
			if len(line) == 0 {
				p.request.ContentLength = int(p.contentLength)
				p.state = eRequestLine

				return true, data, nil
			}

			if err = p.parseHeader(line); err != nil {
				return true, nil, err
			}
		default:
			panic("unreachable code")
		}
	}

	return false, nil, nil
}

func (p *Parser) parseRequestLine(line []byte) error {
	sp := bytes.IndexByte(line, ' ')
	if sp <= 0 {
		return status.ErrMalformedRequest
	}

	rawMethod, rest := line[:sp], line[sp+1:]
	sp = bytes.LastIndexByte(rest, ' ')
	if sp <= 0 {
		return status.ErrMalformedRequest
	}

	target, version := rest[:sp], rest[sp+1:]
	if bytes.IndexByte(target, ' ') != -1 {
		return status.ErrMalformedRequest
	}

	if p.request.Protocol = proto.FromBytes(version); p.request.Protocol == proto.Unknown {
		return status.ErrMalformedRequest
	}

	if p.request.Method = method.Parse(uf.B2S(rawMethod)); p.request.Method == method.Unknown {
		return status.ErrUnsupportedMethod
	}

	return p.parseTarget(target)
}

func (p *Parser) parseTarget(target []byte) error {
	if bytes.IndexByte(target, '#') != -1 {
		return status.ErrMalformedRequest
	}

	rawPath, rawQuery, _ := bytes.Cut(originForm(target), []byte("?"))
	path, _, err := urlencoded.Decode(rawPath, nil)
	if err != nil {
		return err
	}

	for _, c := range path {
		if c < 0x20 || c == 0x7f {
			return status.ErrMalformedRequest
		}
	}

	if len(path) == 0 || path[0] != '/' {
		path = append([]byte{'/'}, path...)
	}

	p.request.Path = uf.B2S(path)
	p.request.RawQuery = uf.B2S(rawQuery)

	query.Parse(p.request.RawQuery, p.request.Params)

	return nil
}

// originForm strips the scheme and authority of absolute-form targets, leaving the rest
// untouched.
func originForm(target []byte) []byte {
	if len(target) > 0 && target[0] == '/' {
		return target
	}

	scheme := bytes.Index(target, []byte("://"))
	if scheme <= 0 {
		return target
	}

	authority := target[scheme+len("://"):]
	end := bytes.IndexAny(authority, "/?")
	if end == -1 {
		return []byte{'/'}
	}

	return authority[end:]
}

func (p *Parser) parseHeader(line []byte) error {
	p.headersNumber++
	if p.headersNumber > p.cfg.Headers.Number.Maximal {
		return status.ErrTooManyHeaders
	}

	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return status.ErrMalformedHeader
	}

	// whitespaces in the key also reject the obsolete line folding
	if bytes.ContainsAny(line[:colon], " \t") {
		return status.ErrMalformedHeader
	}

	key := uf.B2S(line[:colon])
	value := uf.B2S(bytes.Trim(line[colon+1:], " \t"))

	switch {
	case strcomp.EqualFold(key, "content-length"):
		if err := p.setContentLength(value); err != nil {
			return err
		}
	case strcomp.EqualFold(key, "content-type"):
		if len(p.request.ContentType) == 0 {
			p.request.ContentType = value
		}
	case strcomp.EqualFold(key, "transfer-encoding"):
		if !strcomp.EqualFold(value, "identity") {
			return status.ErrLengthRequired
		}
	}

	p.request.Headers.Add(key, value)

	return nil
}

func (p *Parser) setContentLength(value string) error {
	if len(value) == 0 {
		return status.ErrMalformedHeader
	}

	var (
		length   int64
		maxSize  = p.cfg.Body.MaxSize
		tooLarge bool
	)

	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < '0' || c > '9' {
			return status.ErrMalformedHeader
		}

		if tooLarge {
			continue
		}

		if length > (math.MaxInt64-9)/10 {
			tooLarge = true
			continue
		}

		length = length*10 + int64(c-'0')
		tooLarge = length > maxSize
	}

	if p.hasLength && (tooLarge || length != p.contentLength) {
		return status.ErrMalformedHeader
	}

	if tooLarge {
		return status.ErrBodyTooLarge
	}

	p.contentLength = length
	p.hasLength = true

	return nil
}

func trimCR(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}

	return line
}
