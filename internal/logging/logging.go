// Package logging configures the logrus.Logger every component logs
// through: a text formatter for interactive CLI use, or JSON when
// -json-logs is passed.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a configured logger. json selects logrus.JSONFormatter over
// the default TextFormatter; level parses like "debug", "info", "warn".
func New(json bool, level string) *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr

	if json {
		l.Formatter = &logrus.JSONFormatter{}
	} else {
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return l
}
