// Package logging configures the process-wide logrus logger once at startup.
package logging

import (
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	Level  string
	Format string
	Output io.Writer
}

func Setup(opts Options) error {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", opts.Level)
	}

	switch opts.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		})
	default:
		return errors.Errorf("unknown log format %q", opts.Format)
	}

	if opts.Output != nil {
		log.SetOutput(opts.Output)
	}
	log.SetLevel(level)
	return nil
}
