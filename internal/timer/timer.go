package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Resolution is the frequency at which the cached time is refreshed. Precise enough for
// I/O deadlines, which are the only consumers.
const Resolution = 500 * time.Millisecond

var (
	millis = new(atomic.Int64)
	start  sync.Once
)

func run() {
	// store the time right away, so the first callers don't observe the zero time even if
	// the goroutine isn't scheduled yet
	millis.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			millis.Store(time.Now().UnixMilli())
		}
	}()
}

// Now returns the cached current time. It may lag behind the real one by at most
// Resolution.
func Now() time.Time {
	start.Do(run)
	ms := millis.Load()
	return time.Unix(ms/1000, (ms%1000)*1e6)
}

// Deadline returns the moment d from now. Zero or negative d yields the zero time,
// which removes the deadline when passed to SetDeadline.
func Deadline(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}

	return Now().Add(d)
}
