package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger represents a logger instance
type Logger = *logrus.Logger

// Fields represents structured logging fields
type Fields = logrus.Fields

// Options configure NewLogger.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// ParseLevel maps a config string to a logrus level, defaulting to info.
func ParseLevel(raw string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// NewLogger creates a configured logger. JSON output unless Format is "text".
func NewLogger(opts Options) *logrus.Logger {
	logger := logrus.New()
	if strings.EqualFold(opts.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetLevel(ParseLevel(opts.Level))
	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// NewLoggerWithService creates a logger whose entries carry a service field.
func NewLoggerWithService(serviceName string, opts Options) *logrus.Logger {
	logger := NewLogger(opts)
	logger.AddHook(serviceHook{service: serviceName})
	return logger
}

// Discard returns a logger that drops every entry. Useful as a default for
// library types constructed without a logger.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}
