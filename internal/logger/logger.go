package logger

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

var defaultLogger atomic.Pointer[logrus.Logger]

func init() {
	Init("info", false)
}

// Init initializes the global logger
func Init(level string, json bool) {
	defaultLogger.Store(newLogger(level, json))
}

func newLogger(level string, json bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(parseLevel(level))

	if json {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}
	return l
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// SetOutput redirects the global logger, mostly for tests
func SetOutput(w io.Writer) {
	Get().SetOutput(w)
}

// Get returns the default logger
func Get() *logrus.Logger {
	return defaultLogger.Load()
}

// fields turns slog-style key/value pairs into logrus fields.
func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			f["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, isErr := args[i+1].(error); isErr {
			f[key] = err.Error()
			continue
		}
		f[key] = args[i+1]
	}
	return f
}

// Info logs at info level
func Info(msg string, args ...any) {
	Get().WithFields(fields(args)).Info(msg)
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	Get().WithFields(fields(args)).Debug(msg)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	Get().WithFields(fields(args)).Warn(msg)
}

// Error logs at error level
func Error(msg string, args ...any) {
	Get().WithFields(fields(args)).Error(msg)
}

// Fatal logs at error level and exits
func Fatal(msg string, args ...any) {
	Get().WithFields(fields(args)).Error(msg)
	os.Exit(1)
}

// With returns an entry carrying the given attributes
func With(args ...any) *logrus.Entry {
	return Get().WithFields(fields(args))
}
