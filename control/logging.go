// File: control/logging.go
//
// Logrus setup shared by the CLI and embedding hosts.

package control

import (
	"github.com/sirupsen/logrus"
)

// NewLogger builds a configured logrus logger.
func NewLogger(cfg LoggingConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
