package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/evilsocket/islazy/log"
	"github.com/sirupsen/logrus"
)

type logFlags struct {
	file  string
	debug bool
}

func registerLogFlags(fs *flag.FlagSet) *logFlags {
	lf := &logFlags{}
	fs.StringVar(&lf.file, "log-file", "", "If filled, fastmath will log to this file.")
	fs.BoolVar(&lf.debug, "debug", false, "Enable debug logs.")
	return lf
}

// setupLogging configures islazy/log for console messages and mirrors the
// level and destination onto logrus, which the bench runner logs through.
// teardown closes the log file and restores the previous settings.
func setupLogging(lf *logFlags) (teardown func(), err error) {
	prevOutput, prevLevel := log.Output, log.Level
	prevLogrusLevel := logrus.GetLevel()

	var logrusOut *os.File
	if lf.file != "" {
		f, err := os.OpenFile(lf.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logrusOut = f
		log.Output = lf.file
		logrus.SetOutput(f)
	}

	if lf.debug {
		log.Level = log.DEBUG
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := log.Open(); err != nil {
		if logrusOut != nil {
			logrusOut.Close()
		}
		log.Output, log.Level = prevOutput, prevLevel
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(prevLogrusLevel)
		return nil, fmt.Errorf("open log: %w", err)
	}

	return func() {
		log.Close()
		log.Output, log.Level = prevOutput, prevLevel
		logrus.SetLevel(prevLogrusLevel)
		if logrusOut != nil {
			logrus.SetOutput(os.Stderr)
			logrusOut.Close()
		}
	}, nil
}
