package services

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ZeroLogger adapts zerolog to the Logger interface
type ZeroLogger struct {
	zl zerolog.Logger
}

// NewZeroLogger writes to w; structured selects JSON over console output
func NewZeroLogger(w io.Writer, service string, level zerolog.Level, structured bool) *ZeroLogger {
	if !structured {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
	return &ZeroLogger{zl: zl}
}

func (z *ZeroLogger) Info(msg string, keysAndValues ...interface{}) {
	z.emit(z.zl.Info(), msg, keysAndValues)
}

func (z *ZeroLogger) Error(msg string, keysAndValues ...interface{}) {
	z.emit(z.zl.Error(), msg, keysAndValues)
}

func (z *ZeroLogger) Debug(msg string, keysAndValues ...interface{}) {
	z.emit(z.zl.Debug(), msg, keysAndValues)
}

func (z *ZeroLogger) Warn(msg string, keysAndValues ...interface{}) {
	z.emit(z.zl.Warn(), msg, keysAndValues)
}

func (z *ZeroLogger) emit(ev *zerolog.Event, msg string, keysAndValues []interface{}) {
	if ev == nil {
		return
	}
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr {
			ev = ev.AnErr(key, err)
			continue
		}
		ev = ev.Interface(key, keysAndValues[i+1])
	}
	ev.Msg(msg)
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// NewLogger picks the logger from ENV/GO_ENV and LOG_LEVEL
func NewLogger(service string) Logger {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = strings.ToLower(os.Getenv("GO_ENV"))
	}
	if env == "test" {
		return &NoOpLogger{}
	}

	level := zerolog.InfoLevel
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		level = zerolog.DebugLevel
	case "WARN":
		level = zerolog.WarnLevel
	case "ERROR":
		level = zerolog.ErrorLevel
	}

	// JSON in production, human-readable otherwise
	return NewZeroLogger(os.Stdout, service, level, env == "production")
}
