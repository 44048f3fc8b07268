package ubootenv

import (
	"io"

	"github.com/sirupsen/logrus"
)

// config holds the environment settings.
type config struct {
	// logger receives debug output about parse and serialize decisions
	logger logrus.FieldLogger
}

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

// defaultConfig returns the default configuration.
func defaultConfig() config {
	return config{
		logger: discard,
	}
}

// Option is a functional option for configuring an Env.
type Option func(*config)

// WithLogger sets a logger for parse and serialize diagnostics.
// Only debug-level messages are emitted.
//
// Example:
//
//	log := logrus.New()
//	log.SetLevel(logrus.DebugLevel)
//	env, err := ubootenv.Parse(raw, ubootenv.WithLogger(log))
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
