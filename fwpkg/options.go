package fwpkg

import (
	"io"

	"github.com/sirupsen/logrus"
)

type config struct {
	logger logrus.FieldLogger
}

func defaultConfig() config {
	return config{
		logger: &logrus.Logger{
			Out:       io.Discard,
			Formatter: new(logrus.TextFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.PanicLevel,
		},
	}
}

// Option configures Read.
type Option func(*config)

// WithLogger logs each archive entry at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
