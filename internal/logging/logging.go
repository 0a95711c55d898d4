package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func SetupLogging() *logrus.Logger {
	return newLogger(os.Stdout)
}

func newLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	}
	logger.Out = out
	logger.Level = logrus.InfoLevel

	// Package-level logrus calls (main, scripts) share the same shape.
	logrus.SetFormatter(logger.Formatter)

	return logger
}

// ApplyLevel switches the logger to the named level, leaving it untouched when the name is empty.
func ApplyLevel(logger *logrus.Logger, level string) error {
	if level == "" {
		return nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(parsed)
	return nil
}
