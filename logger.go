package endpoint

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger receives the endpoint's diagnostic output. keysAndValues alternate
// string keys and arbitrary values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type zerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger adapts a zerolog.Logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{l: l}
}

// NewSimpleLogger writes human-readable debug output to stderr.
func NewSimpleLogger() Logger {
	return NewConsoleLogger(os.Stderr, zerolog.DebugLevel)
}

// NewConsoleLogger writes human-readable output at level and above to w.
func NewConsoleLogger(w io.Writer, level zerolog.Level) Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return NewZerologLogger(zerolog.New(output).With().Timestamp().Logger().Level(level))
}

// NopLogger discards everything.
func NopLogger() Logger {
	return NewZerologLogger(zerolog.Nop())
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (z zerologLogger) Debug(msg string, keysAndValues ...any) {
	z.log(z.l.Debug(), msg, keysAndValues)
}

func (z zerologLogger) Info(msg string, keysAndValues ...any) {
	z.log(z.l.Info(), msg, keysAndValues)
}

func (z zerologLogger) Warn(msg string, keysAndValues ...any) {
	z.log(z.l.Warn(), msg, keysAndValues)
}

func (z zerologLogger) Error(msg string, keysAndValues ...any) {
	z.log(z.l.Error(), msg, keysAndValues)
}

func (z zerologLogger) log(ev *zerolog.Event, msg string, keysAndValues []any) {
	if ev == nil {
		return
	}
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		if i+1 >= len(keysAndValues) {
			ev = ev.Str(key, "(MISSING)")
			break
		}
		switch v := keysAndValues[i+1].(type) {
		case error:
			ev = ev.AnErr(key, v)
		case time.Duration:
			ev = ev.Dur(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}
