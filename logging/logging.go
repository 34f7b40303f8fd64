// Package logging wraps logrus with the structured CPrint call shape used
// throughout the rest of this module, so that call sites never import
// logrus directly and a single place controls formatting, rotation and
// output destinations.
package logging

import (
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// Level mirrors logrus' severity levels under names that don't leak the
// dependency into callers.
type Level uint32

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

// LogFormat is a set of structured fields attached to a single log line.
type LogFormat map[string]interface{}

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(os.Stdout)
	return l
}

// CPrint emits a structured log line at the given level. It is the sole
// logging entry point the rest of the module uses.
func CPrint(level Level, msg string, fields LogFormat) {
	entry := log.WithFields(logrus.Fields(fields))
	switch level {
	case PanicLevel:
		entry.Panic(msg)
	case FatalLevel:
		entry.Fatal(msg)
	case ErrorLevel:
		entry.Error(msg)
	case WarnLevel:
		entry.Warn(msg)
	case InfoLevel:
		entry.Info(msg)
	default:
		entry.Debug(msg)
	}
}

// SetLevel adjusts the minimum severity CPrint actually emits.
func SetLevel(level Level) {
	log.SetLevel(logrus.Level(level))
}

// UseRotatingFile additionally writes every log line to a daily-rotated file
// under dir, named by prefix, keeping maxAge worth of history; the existing
// stdout output stays in place. It is intended for the
// cmd/scriptcheck CLI and long-running embedders; library code never calls
// it on its own initiative.
func UseRotatingFile(dir, prefix string, maxAge time.Duration) error {
	pattern := filepath.Join(dir, prefix+".%Y%m%d.log")
	writer, err := rotatelogs.New(
		pattern,
		rotatelogs.WithLinkName(filepath.Join(dir, prefix+".log")),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return err
	}

	hook := lfshook.NewHook(lfshook.WriterMap{
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
		logrus.PanicLevel: writer,
	}, &logrus.TextFormatter{FullTimestamp: true})

	log.AddHook(hook)
	return nil
}
