package construct

import (
	"net"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/lazysock/config"
	"github.com/indigo-web/lazysock/http"
	"github.com/indigo-web/lazysock/internal/buffer"
	"github.com/indigo-web/lazysock/kv"
	"github.com/indigo-web/lazysock/transport"
)

// connIDLength is long enough to tell connections apart in logs, yet short to read.
const connIDLength = 8

func Request(cfg *config.Config, client transport.Client) *http.Request {
	headers := kv.NewPrealloc(cfg.Headers.Number.Default)
	params := kv.NewExact()
	request := http.NewRequest(headers, params, client.Remote())
	request.ID = uniuri.NewLen(connIDLength)

	return request
}

func Client(cfg config.NET, conn net.Conn) transport.Client {
	return transport.NewClient(conn, cfg)
}

func Buffers(cfg *config.Config) (requestLine, headers *buffer.Buffer) {
	return buffer.New(cfg.URI.RequestLineSize.Default, cfg.URI.RequestLineSize.Maximal),
		buffer.New(cfg.Headers.Space.Default, cfg.Headers.Space.Maximal)
}
