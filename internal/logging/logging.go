// Package logging builds the logrus loggers used by the command-line tools
// and supplies a silent default for library packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is used by both text and JSON formatters.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An empty level means info. A nil w means stderr.
func New(level string, json bool, w io.Writer) (*logrus.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}

		lvl = parsed
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)

	if json {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: TimestampFormat})
	} else {
		l.SetFormatter(&logrus.TextFormatter{TimestampFormat: TimestampFormat, FullTimestamp: true})
	}

	return l, nil
}

// FromEnv reads LOG_LEVEL and falls back to info for unknown values.
func FromEnv(json bool, w io.Writer) *logrus.Logger {
	l, err := New(os.Getenv("LOG_LEVEL"), json, w)
	if err != nil {
		l, _ = New("", json, w)
	}

	return l
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)

	return l
}
