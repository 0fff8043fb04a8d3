// Package logging builds the logger that records glossary activity.
//
// Each glossary gets its own log file, <stem>.log, next to the glossary or in
// a configured directory. All entries of one process share a session id.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	sessionID     string
	sessionIDOnce sync.Once
)

// SessionID returns the id shared by every logger of this process.
func SessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// Options configures New.
type Options struct {
	// GlossaryPath names the glossary; its stem names the log file.
	GlossaryPath string
	// Dir overrides the directory of the log file.
	Dir string
	// Level is a logrus level name; empty means info.
	Level string
	// Fallback receives logs when the file cannot be opened. Defaults to stderr.
	Fallback io.Writer
}

// Logger is a logrus entry bound to a log file.
type Logger struct {
	*logrus.Entry
	file      *os.File
	path      string
	closeOnce sync.Once
}

// New creates the logger for a glossary.
//
// If the log file cannot be opened, New returns a logger writing to the
// fallback writer together with the error, so callers can warn and go on.
func New(opts Options) (*Logger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, errors.Wrap(err, "parse log level")
		}
		level = parsed
	}

	base := logrus.New()
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})

	path, err := FilePath(opts.GlossaryPath, opts.Dir)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o750)
	}
	var file *os.File
	if err == nil {
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	}

	if err != nil {
		fallback := opts.Fallback
		if fallback == nil {
			fallback = os.Stderr
		}
		base.SetOutput(fallback)
		l := &Logger{Entry: base.WithField("session", SessionID())}
		return l, errors.Wrap(err, "open log file")
	}

	base.SetOutput(file)
	return &Logger{
		Entry: base.WithField("session", SessionID()),
		file:  file,
		path:  path,
	}, nil
}

// FilePath returns where the log of glossaryPath is written.
func FilePath(glossaryPath, dir string) (string, error) {
	if glossaryPath == "" {
		return "", errors.New("no glossary path")
	}
	if dir == "" {
		dir = filepath.Dir(glossaryPath)
	}
	base := filepath.Base(glossaryPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, fmt.Sprintf("%s.log", stem)), nil
}

// Path returns the log file path, or "" in fallback mode.
func (l *Logger) Path() string {
	return l.path
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
