// Package logging builds the zap loggers used by the CLI and the admin server.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is a zap level name; invalid or empty values fall back to warn.
	Level string
	// JSON selects the JSON encoder for the console core.
	JSON bool
	// File, when set, adds a rotating JSON log file.
	File string
	// Console receives the console core output. Defaults to os.Stderr.
	Console io.Writer
}

const defaultLevel = "warn"

// New builds a logger writing to the console and, optionally, to a rotating file.
func New(opts Options) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(opts.Level)))); err != nil || opts.Level == "" {
		_ = level.UnmarshalText([]byte(defaultLevel))
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var consoleEncoder zapcore.Encoder
	if opts.JSON {
		consoleEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
		consoleEncoder = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), level),
	}

	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    16,
			MaxBackups: 5,
			MaxAge:     30,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotating),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
