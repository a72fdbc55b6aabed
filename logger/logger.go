// Package logger sets up the global zerolog logger and the HTTP access log.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"boomiis-api/config"
)

const (
	infoLogFile  = "info.log"
	errorLogFile = "error.log"

	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 14
)

// LevelWriter splits output by level: warn and above go to ErrorWriter,
// everything else to InfoWriter.
type LevelWriter struct {
	InfoWriter  io.Writer
	ErrorWriter io.Writer
}

// Write sends level-less output to the info writer.
func (lw *LevelWriter) Write(p []byte) (int, error) {
	return lw.InfoWriter.Write(p) //nolint:wrapcheck
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l == zerolog.Disabled {
		return 0, nil
	}

	if l >= zerolog.WarnLevel && l != zerolog.NoLevel {
		return lw.ErrorWriter.Write(p) //nolint:wrapcheck
	}

	return lw.InfoWriter.Write(p) //nolint:wrapcheck
}

// Init replaces the global zerolog logger according to cfg.
func Init(cfg config.Log) error {
	l, err := New(cfg, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	log.Logger = l

	return nil
}

// New builds a logger writing info to stdout and warnings/errors to stderr,
// plus rolling files when cfg.FilePath is set.
func New(cfg config.Log, stdout, stderr io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.Level))
	}

	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{newConsoleWriter(cfg, stdout, stderr)}

	if cfg.FilePath != "" {
		fw, err := newRollingFile(cfg)
		if err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, fw)
	}

	mw := zerolog.MultiLevelWriter(writers...)

	return zerolog.New(mw).Hook(NewPrometheusHook()).With().Timestamp().Logger(), nil
}

func newConsoleWriter(cfg config.Log, stdout, stderr io.Writer) io.Writer {
	lw := &LevelWriter{InfoWriter: stdout, ErrorWriter: stderr}

	if cfg.Pretty {
		lw.InfoWriter = zerolog.ConsoleWriter{Out: stdout, TimeFormat: zerolog.TimeFieldFormat}
		lw.ErrorWriter = zerolog.ConsoleWriter{Out: stderr, TimeFormat: zerolog.TimeFieldFormat}
	}

	return lw
}

func newRollingFile(cfg config.Log) (io.Writer, error) {
	if err := os.MkdirAll(cfg.FilePath, 0o750); err != nil { //nolint:mnd
		return nil, errors.Wrapf(err, "can't create log directory %s", cfg.FilePath)
	}

	return &LevelWriter{
		InfoWriter: &lumberjack.Logger{
			Filename:   filepath.Join(cfg.FilePath, infoLogFile),
			MaxSize:    maxSizeMB,
			MaxAge:     maxAgeDays,
			MaxBackups: maxBackups,
		},
		ErrorWriter: &lumberjack.Logger{
			Filename:   filepath.Join(cfg.FilePath, errorLogFile),
			MaxSize:    maxSizeMB,
			MaxAge:     maxAgeDays,
			MaxBackups: maxBackups,
		},
	}, nil
}
