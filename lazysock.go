package lazysock

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/indigo-web/lazysock/config"
	"github.com/indigo-web/lazysock/internal/construct"
	"github.com/indigo-web/lazysock/internal/protocol/http1"
	"github.com/indigo-web/lazysock/logging"
	"github.com/indigo-web/lazysock/prompt"
	"github.com/indigo-web/lazysock/router"
	"github.com/indigo-web/lazysock/router/inbuilt"
	"github.com/indigo-web/lazysock/transport"
)

// ErrAborted is returned by Serve when the existing socket file was decided to be kept.
var ErrAborted = errors.New("startup aborted: the socket file is kept")

// App is a server bound to a single Unix domain socket. An App serves at most once at a time.
type App struct {
	cfg           *config.Config
	log           logging.Callback
	prompt        prompt.Func
	hooks         hooks
	handleSignals bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// New returns a new App listening on the path once started.
func New(path string) *App {
	cfg := config.Default()
	cfg.Socket.Path = path

	return &App{
		cfg:           cfg,
		log:           logging.Default(),
		handleSignals: true,
	}
}

// Tune replaces the default configuration. The socket path passed to New is kept.
func (a *App) Tune(cfg *config.Config) *App {
	tuned := *cfg
	tuned.Socket.Path = a.cfg.Socket.Path
	a.cfg = &tuned

	return a
}

// CleanupOnExit controls whether the socket file is removed once the server stops.
// Enabled by default.
func (a *App) CleanupOnExit(flag bool) *App {
	a.cfg.Socket.CleanupOnExit = flag
	return a
}

// HandleSignals controls whether SIGINT and SIGTERM stop the server gracefully. Enabled
// by default.
func (a *App) HandleSignals(flag bool) *App {
	a.handleSignals = flag
	return a
}

// OnLog replaces the log collaborator. Passing nil silences the server.
func (a *App) OnLog(cb logging.Callback) *App {
	a.log = cb
	return a
}

// OnPrompt replaces the collaborator deciding over socket files already existing at the
// path. By default, stale sockets are overridden after config.Socket.OverrideDelay and live
// ones are kept. Pass prompt.Always(prompt.Proceed) to unlink any existing socket without
// asking, live ones included.
func (a *App) OnPrompt(fn prompt.Func) *App {
	a.prompt = fn
	return a
}

// NotifyOnStart calls the callback once the socket is bound. Connections made after that
// moment are accepted.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback once the server is down. By that moment all the
// connections are served and the socket is closed.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Path returns the path of the socket file.
func (a *App) Path() string {
	return a.cfg.Socket.Path
}

// Serve starts the server and blocks until it's stopped. If nil is passed instead of a
// router, an empty inbuilt one is used.
func (a *App) Serve(r router.Router) error {
	return a.ServeContext(context.Background(), r)
}

// ServeContext is the same as Serve, but the server is also stopped when ctx is done.
// Returns nil on a clean shutdown.
func (a *App) ServeContext(ctx context.Context, r router.Router) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.handleSignals {
		var stopSignals context.CancelFunc
		ctx, stopSignals = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stopSignals()
	}

	a.mu.Lock()
	a.cancel = cancel
	if a.stopped {
		cancel()
	}
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.cancel, a.stopped = nil, false
		a.mu.Unlock()
	}()

	if ctx.Err() != nil {
		a.log.Info("stopped before start", "path", a.Path())
		return nil
	}

	if r == nil {
		r = inbuilt.New()
	}

	if err := r.OnStart(); err != nil {
		return fmt.Errorf("router: %w", err)
	}

	if err := a.prepareSocket(ctx); err != nil {
		return err
	}

	tr := transport.NewUnix(a.cfg.Socket.CleanupOnExit, a.log)
	if err := a.bind(tr); err != nil {
		a.log.Error("cannot bind the socket", "path", a.Path(), "error", err.Error())
		return err
	}

	return a.run(ctx, tr, r)
}

// Stop stops the server gracefully: no connections are accepted anymore, but the
// in-flight ones are served till the end. The call isn't blocking. If the server isn't
// running yet, the next Serve returns right away.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	if a.cancel != nil {
		a.cancel()
	}
}

// prepareSocket makes sure nothing stands in the way of binding. Existing sockets are
// removed only if the prompt collaborator agrees, other files are never touched.
func (a *App) prepareSocket(ctx context.Context) error {
	path := a.Path()

	state, err := transport.Inspect(path)
	if err != nil {
		return &transport.BindError{Path: path, Err: err}
	}

	if state == transport.Absent {
		return nil
	}

	a.log.Warn("socket file already exists", "path", path, "state", state.String())

	decide := a.prompt
	if decide == nil {
		decide = prompt.Default(a.cfg.Socket.OverrideDelay, a.log)
	}

	decision := decide(ctx, prompt.StaleSocket{
		Path: path,
		Live: state == transport.Live,
	})
	if decision == prompt.Abort || ctx.Err() != nil {
		a.log.Info("startup aborted, keeping the socket file", "path", path)
		return ErrAborted
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &transport.BindError{Path: path, Err: err}
	}

	a.log.Info("stale socket removed", "path", path)

	return nil
}

func (a *App) bind(tr *transport.Unix) error {
	path := a.Path()
	if err := tr.Bind(path); err != nil {
		return err
	}

	if perm := a.cfg.Socket.Permissions; perm != 0 {
		if err := os.Chmod(path, perm); err != nil {
			_ = tr.Close()
			return &transport.BindError{Path: path, Err: err}
		}
	}

	return nil
}

func (a *App) run(ctx context.Context, tr *transport.Unix, r router.Router) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- tr.Listen(a.cfg.NET, a.newConnCallback(r))
	}()

	a.log.Info("listening", "path", a.Path())
	callIfNotNil(a.hooks.OnStart)

	var err error
	select {
	case <-ctx.Done():
		tr.Stop()
		err = <-errCh
	case err = <-errCh:
		a.log.Error("accept loop failed", "path", a.Path(), "error", err.Error())
	}

	a.log.Info("shutting down, waiting for connections to complete", "path", a.Path())
	tr.Wait()

	if cerr := tr.Close(); cerr != nil && err == nil {
		err = cerr
	}

	if a.cfg.Socket.CleanupOnExit {
		a.log.Info("socket file removed", "path", a.Path())
	}

	a.log.Info("server stopped", "path", a.Path())
	callIfNotNil(a.hooks.OnStop)

	return err
}

func (a *App) newConnCallback(r router.Router) func(net.Conn) {
	return func(conn net.Conn) {
		client := construct.Client(a.cfg.NET, conn)
		http1.Initialize(a.cfg, r, client, a.log).Serve()
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
