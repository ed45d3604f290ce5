package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Record is a single log event.
type Record struct {
	Level   zerolog.Level
	Message string
	Fields  map[string]any
}

// Callback receives every log record the server produces. It may be called from many
// goroutines at once.
type Callback func(Record)

func (c Callback) Debug(msg string, fields ...any) {
	c.log(zerolog.DebugLevel, msg, fields)
}

func (c Callback) Info(msg string, fields ...any) {
	c.log(zerolog.InfoLevel, msg, fields)
}

func (c Callback) Warn(msg string, fields ...any) {
	c.log(zerolog.WarnLevel, msg, fields)
}

func (c Callback) Error(msg string, fields ...any) {
	c.log(zerolog.ErrorLevel, msg, fields)
}

func (c Callback) log(level zerolog.Level, msg string, fields []any) {
	if c == nil {
		return
	}

	c(Record{
		Level:   level,
		Message: msg,
		Fields:  toMap(fields),
	})
}

// toMap converts alternating keys and values into a map. A dangling value is stored under
// the !BADKEY key.
func toMap(fields []any) map[string]any {
	if len(fields) == 0 {
		return nil
	}

	m := make(map[string]any, (len(fields)+1)/2)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			m["!BADKEY"] = fields[i]
			break
		}

		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}

		m[key] = fields[i+1]
	}

	return m
}

// Default writes human-readable records at info level and above to stderr.
func Default() Callback {
	return Console(os.Stderr, zerolog.InfoLevel)
}

// Console writes human-readable records at the level and above to w.
func Console(w io.Writer, level zerolog.Level) Callback {
	console := zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(w),
		TimeFormat: time.TimeOnly,
	}

	return Zerolog(zerolog.New(console).Level(level).With().Timestamp().Logger())
}

// Zerolog adapts the logger. Records below the logger's level are discarded by the logger
// itself.
func Zerolog(l zerolog.Logger) Callback {
	return func(r Record) {
		l.WithLevel(r.Level).Fields(r.Fields).Msg(r.Message)
	}
}

// Nop discards everything.
func Nop() Callback {
	return func(Record) {}
}
