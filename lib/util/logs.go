package util

import (
	"github.com/sirupsen/logrus"
)

// SetLogLevel sets the logger level from the LOG_LEVEL environment value.
// Unknown or empty values fall back to info.
func SetLogLevel(logger *logrus.Logger, level string) {
	switch level {
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}
