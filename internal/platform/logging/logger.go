// Package logging builds the logrus logger shared by the application.
package logging

import (
	"io"
	"strings"

	"currencyconv/internal/config"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to out. An unknown level falls back to info.
func New(cfg config.Logging, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if parsedLvl, err := logrus.ParseLevel(cfg.Level); err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(parsedLvl)
	}

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
