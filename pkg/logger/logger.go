package logger

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	std     = newLogger(os.Stderr)
	logFile *os.File
)

func newLogger(out io.Writer) *log.Logger {
	l := log.New()
	l.SetOutput(out)
	l.SetLevel(log.WarnLevel)
	l.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	return l
}

// InitLogger sets the log level and, when filename is not empty, mirrors
// every entry to that file in addition to stderr.
func InitLogger(filename string, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stderr)
	if filename != "" {
		logFile, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		out = io.MultiWriter(os.Stderr, logFile)
	}

	std = newLogger(out)
	std.SetLevel(lvl)
	return nil
}

// ParseLevel accepts logrus level names; empty means warn.
func ParseLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		return log.WarnLevel, nil
	}
	return log.ParseLevel(level)
}

// SetOutput redirects log output, used by tests to capture entries.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// WithFields returns an entry carrying structured context, e.g. the file
// and table being loaded.
func WithFields(fields log.Fields) *log.Entry {
	return std.WithFields(fields)
}

func Debugf(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	std.Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	std.Errorf(format, v...)
}
