package transport

import (
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/indigo-web/lazysock/config"
	"github.com/indigo-web/lazysock/internal/timer"
	"github.com/indigo-web/lazysock/logging"
)

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// Unix is a transport listening on a filesystem Unix domain socket.
type Unix struct {
	l       listener
	log     logging.Callback
	wg      *sync.WaitGroup
	stop    *atomic.Bool
	stopped chan struct{}
	once    *sync.Once
	cleanup bool
}

// NewUnix returns a new transport. If cleanup is set, the socket file is removed on Close.
// Accept failures the loop survives are reported to log.
func NewUnix(cleanup bool, log logging.Callback) *Unix {
	return newUnix(nil, cleanup, log)
}

func newUnix(l listener, cleanup bool, log logging.Callback) *Unix {
	return &Unix{
		l:       l,
		log:     log,
		wg:      new(sync.WaitGroup),
		stop:    new(atomic.Bool),
		stopped: make(chan struct{}),
		once:    new(sync.Once),
		cleanup: cleanup,
	}
}

func (u *Unix) Bind(path string) error {
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return &BindError{Path: path, Err: err}
	}

	l, err := net.ListenUnix("unix", addr)
	if err != nil {
		return &BindError{Path: path, Err: err}
	}

	// the listener unlinks the file it created on close by default, which is only desired
	// if the cleanup was requested
	l.SetUnlinkOnClose(u.cleanup)
	u.l = l

	return nil
}

// Addr returns the address the transport is bound to, nil if unbound.
func (u *Unix) Addr() net.Addr {
	if u.l == nil {
		return nil
	}

	return u.l.Addr()
}

// Listen accepts connections until stopped, serving each one in its own goroutine. The
// connection is closed as soon as cb returns. Accept errors, like running out of file
// descriptors, are logged and retried after a growing delay. Only a closed listener makes
// Listen fail.
func (u *Unix) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	if u.l == nil {
		return ErrNotBound
	}

	var backoff time.Duration

	for {
		err := u.l.SetDeadline(timer.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		// Stop stores the flag before interrupting the Accept, so checking it after the
		// deadline is set never misses it
		if u.stop.Load() {
			return nil
		}

		conn, err := u.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			if u.stop.Load() {
				return nil
			}

			if errors.Is(err, net.ErrClosed) {
				return err
			}

			backoff = max(min(backoff*2, maxAcceptBackoff), minAcceptBackoff)
			u.log.Warn("cannot accept connection", "error", err.Error(), "retry in", backoff.String())
			u.pause(backoff)
			continue
		}

		backoff = 0

		u.wg.Add(1)
		go func(conn net.Conn) {
			defer u.wg.Done()
			cb(conn)
			_ = conn.Close()
		}(conn)
	}
}

// Stop makes Listen return without waiting for the current accept interruption period to
// elapse. In-flight connections aren't affected.
func (u *Unix) Stop() {
	u.stop.Store(true)
	u.once.Do(func() {
		close(u.stopped)
	})

	if u.l != nil {
		_ = u.l.SetDeadline(time.Now())
	}
}

// Close closes the listener, removing the socket file if cleanup was requested.
func (u *Unix) Close() error {
	if u.l == nil {
		return nil
	}

	return u.l.Close()
}

// Wait blocks until all the connections accepted so far are served.
func (u *Unix) Wait() {
	u.wg.Wait()
}

// pause sleeps for d unless stopped earlier.
func (u *Unix) pause(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-u.stopped:
	}
}
