package transport

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"time"
)

type SocketState uint8

const (
	// Absent means there's nothing at the path.
	Absent SocketState = iota
	// Stale is a socket file nobody listens on, typically left by a crashed process.
	Stale
	// Live is a socket file something accepts connections on.
	Live
)

func (s SocketState) String() string {
	switch s {
	case Absent:
		return "absent"
	case Stale:
		return "stale"
	case Live:
		return "live"
	default:
		return "unknown"
	}
}

// dialTimeout limits the dial used to tell live sockets from stale ones. Refusals are
// reported immediately, so the timeout only matters for overloaded listeners.
const dialTimeout = time.Second

// Inspect tells what's located at the path. Files other than sockets result in ErrNotSocket,
// as they must never be removed.
func Inspect(path string) (SocketState, error) {
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Absent, nil
	case err != nil:
		return Absent, err
	case info.Mode().Type() != fs.ModeSocket:
		return Absent, ErrNotSocket
	}

	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return Stale, nil
	}

	_ = conn.Close()
	return Live, nil
}
