// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Options controls logger behavior.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output string // stderr or stdout
}

// Init configures the standard logrus logger. Unknown values fall back to
// info level, text format, stderr output.
func Init(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	switch opts.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch opts.Output {
	case "stdout":
		logrus.SetOutput(os.Stdout)
	default:
		logrus.SetOutput(os.Stderr)
	}
}

// WithComponent returns an entry tagged with the originating component.
func WithComponent(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
