package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/indigo-web/lazysock/logging"
)

type Decision uint8

const (
	Proceed Decision = iota
	Abort
)

func (d Decision) String() string {
	if d == Proceed {
		return "proceed"
	}

	return "abort"
}

// StaleSocket describes the file found at the socket path on startup.
type StaleSocket struct {
	Path string
	// Live reports whether something still accepts connections on it.
	Live bool
}

// Func decides whether the existing socket file may be removed. Cancelling ctx must make it
// return as soon as possible, and the decision returned then is disregarded.
type Func func(ctx context.Context, socket StaleSocket) Decision

// Default proceeds after the delay, unless ctx is done earlier. Live sockets are never
// overridden, as that would silently take over another server.
func Default(delay time.Duration, log logging.Callback) Func {
	return func(ctx context.Context, socket StaleSocket) Decision {
		if socket.Live {
			log.Error("another server is listening on the socket", "path", socket.Path)
			return Abort
		}

		if delay <= 0 {
			return Proceed
		}

		log.Warn(fmt.Sprintf("will override in %s... (Ctrl+C to abort now)", delay), "path", socket.Path)

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			return Proceed
		case <-ctx.Done():
			return Abort
		}
	}
}

// Always returns the same decision no matter what.
func Always(decision Decision) Func {
	return func(context.Context, StaleSocket) Decision {
		return decision
	}
}

// Interactive asks the question on out and waits for the answer from in. Anything except
// y or yes aborts.
func Interactive(in io.Reader, out io.Writer) Func {
	var (
		warn   = color.New(color.FgYellow, color.Bold).SprintFunc()
		danger = color.New(color.FgRed).SprintFunc()
		path   = color.New(color.Underline).SprintFunc()
		reader = bufio.NewReader(in)
	)

	return func(ctx context.Context, socket StaleSocket) Decision {
		note := ""
		if socket.Live {
			note = danger(" and is in use by another server")
		}

		_, _ = fmt.Fprintf(out, "%s socket file %s already exists%s. Remove it? [y/N] ",
			warn("!"), path(socket.Path), note,
		)

		answer := make(chan string, 1)
		go func() {
			line, _ := reader.ReadString('\n')
			answer <- line
		}()

		select {
		case line := <-answer:
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "y", "yes":
				return Proceed
			default:
				return Abort
			}
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out)
			return Abort
		}
	}
}
