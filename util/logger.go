// Package util provides low-level helpers shared by all other packages.
package util

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

// Logger writes levelled messages to stderr with optional timestamps
// and level prefixes.  Output goes through a logrus.Logger so callers
// that already configure logrus hooks see tcpsock messages too.
type Logger struct {
	backend *logrus.Logger
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (0 = quiet, 1 = normal, 2 = verbose, 3 = debug).
func NewLogger(verbosity int) *Logger {
	level := LogLevel(verbosity)
	if level < LogQuiet {
		level = LogQuiet
	}
	if level > LogDebug {
		level = LogDebug
	}

	backend := logrus.New()
	backend.SetOutput(os.Stderr)
	backend.SetFormatter(&tagFormatter{timestamps: level >= LogDebug})
	backend.SetLevel(backendLevel(level))

	return &Logger{backend: backend}
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) { l.backend.SetOutput(w) }

// Info prints when verbosity ≥ 1.  Prefixed with [INF].
func (l *Logger) Info(format string, args ...interface{}) {
	l.backend.Infof(format, args...)
}

// Warn prints when verbosity ≥ 1.  Prefixed with [WRN].
func (l *Logger) Warn(format string, args ...interface{}) {
	l.backend.Warnf(format, args...)
}

// Verbose prints when verbosity ≥ 2.  Prefixed with [VRB].
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.backend.Debugf(format, args...)
}

// Debug prints when verbosity ≥ 3.  Prefixed with [DBG].
func (l *Logger) Debug(format string, args ...interface{}) {
	l.backend.Tracef(format, args...)
}

// Error always prints regardless of verbosity.  Prefixed with [ERR].
func (l *Logger) Error(format string, args ...interface{}) {
	l.backend.Errorf(format, args...)
}

func backendLevel(level LogLevel) logrus.Level {
	switch level {
	case LogNormal:
		return logrus.InfoLevel
	case LogVerbose:
		return logrus.DebugLevel
	case LogDebug:
		return logrus.TraceLevel
	default:
		return logrus.ErrorLevel
	}
}

// ── formatter ────────────────────────────────────────────────────────

var levelTags = map[logrus.Level]string{
	logrus.PanicLevel: "ERR",
	logrus.FatalLevel: "ERR",
	logrus.ErrorLevel: "ERR",
	logrus.WarnLevel:  "WRN",
	logrus.InfoLevel:  "INF",
	logrus.DebugLevel: "VRB",
	logrus.TraceLevel: "DBG",
}

// tagFormatter renders "[INF] msg" lines, optionally preceded by a
// millisecond wall-clock timestamp.
type tagFormatter struct {
	timestamps bool
}

func (f *tagFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if f.timestamps {
		b.WriteString(entry.Time.Format("15:04:05.000"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s] %s\n", levelTags[entry.Level], entry.Message)
	return b.Bytes(), nil
}
