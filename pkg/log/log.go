// Copyright 2025 Network Systems Lab, OVGU Magdeburg
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides a logging facade backed by zap. Loggers carry
// structured context as alternating key/value pairs, in the same shape the
// serrors package uses for error context.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/netsys-lab/scion-addr/pkg/private/serrors"
)

// Level is the log level type of the underlying zap core.
type Level = zapcore.Level

// Available log levels.
const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	ErrorLevel = zapcore.ErrorLevel
)

// Logger describes the logging interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

// Config configures the process logger.
type Config struct {
	// Console is the configuration for the console logging backend.
	Console ConsoleConfig `yaml:"console,omitempty"`
}

// ConsoleConfig configures the console logging backend.
type ConsoleConfig struct {
	// Level of console logging (debug, info, error). Defaults to info.
	Level string `yaml:"level,omitempty"`
	// Format of the console log output (human, json). Defaults to human.
	Format string `yaml:"format,omitempty"`
	// DisableCaller stops annotating logs with the calling function's file
	// name and line number.
	DisableCaller bool `yaml:"disable_caller,omitempty"`
}

// InitDefaults populates unset fields with default values.
func (c *ConsoleConfig) InitDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "human"
	}
}

// Setup configures the process-wide logger. It must be called before the
// first call to Root or FromCtx observes log output.
func Setup(cfg Config) error {
	cfg.Console.InitDefaults()
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Console.Level)); err != nil {
		return serrors.Wrap("parsing log level", err, "level", cfg.Console.Level)
	}
	var encoding string
	var encoderCfg zapcore.EncoderConfig
	switch cfg.Console.Format {
	case "human":
		encoding = "console"
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		encoding = "json"
		encoderCfg = zap.NewProductionEncoderConfig()
	default:
		return serrors.New("unsupported log format", "format", cfg.Console.Format)
	}
	// All logging goes through one wrapper layer, either the package-level
	// functions or the logger methods, so skip that frame when annotating
	// the caller.
	logger, err := zap.Config{
		Level:             level,
		DisableCaller:     cfg.Console.DisableCaller,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}.Build(zap.AddCallerSkip(1))
	if err != nil {
		return serrors.Wrap("creating logger", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// Flush writes buffered log entries to their output.
func Flush() error {
	return zap.L().Sync()
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) {
	zap.L().Debug(msg, convertCtx(ctx)...)
}

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) {
	zap.L().Info(msg, convertCtx(ctx)...)
}

// Error logs at error level on the root logger.
func Error(msg string, ctx ...any) {
	zap.L().Error(msg, convertCtx(ctx)...)
}

// New creates a logger with the given context attached.
func New(ctx ...any) Logger {
	return Root().New(ctx...)
}

// Root returns the root logger. It never returns nil; before Setup is called
// it discards all output.
func Root() Logger {
	return &logger{logger: zap.L()}
}

type logger struct {
	logger *zap.Logger
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(lvl)
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields = append(fields, zap.Any(ctx[i].(string), ctx[i+1]))
	}
	return fields
}
