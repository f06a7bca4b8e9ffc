// Package log builds the logrus logger shared by the scan and the CLI.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to out.
//
// With debug enabled it logs at the level named by LOG_LEVEL, or debug when
// unset or invalid. Otherwise it only keeps errors, and discards them too when
// out is nil.
func New(debug bool, out io.Writer) *logrus.Entry {
	var log *logrus.Logger
	if debug {
		log = newDevelopmentLogger(out)
	} else {
		log = newProductionLogger(out)
	}

	return log.WithField("debug", debug)
}

func getLogLevel() logrus.Level {
	strLevel := os.Getenv("LOG_LEVEL")

	level, err := logrus.ParseLevel(strLevel)
	if err != nil {
		return logrus.DebugLevel
	}

	return level
}

func newDevelopmentLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(getLogLevel())
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	if out != nil {
		log.SetOutput(out)
	}

	return log
}

func newProductionLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if out == nil {
		out = io.Discard
	}

	log.SetOutput(out)

	return log
}
