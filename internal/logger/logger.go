// Package logger sets up the global zerolog logger.
package logger

import (
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"tearoomcms/internal/config"
)

// ErrAppNameIsEmpty is returned if no application name was given.
var ErrAppNameIsEmpty = errors.New("logger app name can not be empty")

// LevelWriter splits output by level: warn and above go to ErrorWriter, everything else to InfoWriter.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	if l == zerolog.Disabled {
		return 0, nil
	}

	if l >= zerolog.WarnLevel && l != zerolog.NoLevel {
		return lw.ErrorWriter.Write(p) //nolint:wrapcheck
	}

	return lw.InfoWriter.Write(p) //nolint:wrapcheck
}

// Init configures the global zerolog logger. Console output is always on, a rolling
// file is added when cfg.FilePath is set. reg receives the log statement counter; pass nil to skip it.
func Init(cfg config.LogConfig, appName string, reg prometheus.Registerer) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrapf(err, "loglevel %s is not supported", cfg.Level)
	}

	if appName == "" {
		return ErrAppNameIsEmpty
	}

	if level == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{newConsoleWriter(cfg)}
	if cfg.FilePath != "" {
		fw, err := newRollingFile(cfg.FilePath, appName)
		if err != nil {
			return err
		}
		writers = append(writers, fw)
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Str("app", appName).Logger()

	if reg != nil {
		hook, err := NewPrometheusHook(reg)
		if err != nil {
			return err
		}
		l = l.Hook(hook)
	}

	log.Logger = l

	return nil
}

func newConsoleWriter(cfg config.LogConfig) io.Writer {
	lw := &LevelWriter{ErrorWriter: os.Stderr, InfoWriter: os.Stdout}

	if cfg.UseConsoleWriter {
		lw.ErrorWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat}
		lw.InfoWriter = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: zerolog.TimeFieldFormat}
	}

	return lw
}

func newRollingFile(dir, appName string) (io.Writer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd
		return nil, errors.Wrapf(err, "can't create log directory %s", dir)
	}

	return &LevelWriter{
		ErrorWriter: &lumberjack.Logger{
			Filename:   path.Join(dir, appName+"-error.log"),
			MaxSize:    50,
			MaxAge:     14,
			MaxBackups: 5,
		},
		InfoWriter: &lumberjack.Logger{
			Filename:   path.Join(dir, appName+".log"),
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 5,
		},
	}, nil
}
