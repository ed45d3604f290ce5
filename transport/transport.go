package transport

import (
	"net"

	"github.com/indigo-web/lazysock/config"
)

type Transport interface {
	Bind(path string) error
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Stop()
	Close() error
	Wait()
}

var _ Transport = new(Unix)
