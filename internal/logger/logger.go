package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"restaurant-quiz/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Initialize builds the global logger: JSON in production, console
// otherwise. Every entry carries the configured service name.
func Initialize(loggerCfg config.LoggerConfig) error {
	l, err := newLogger(loggerCfg, os.Stdout)
	if err != nil {
		return err
	}
	log = l
	return nil
}

func newLogger(loggerCfg config.LoggerConfig, out io.Writer) (*zap.Logger, error) {
	logLevel := zapcore.InfoLevel
	if lvl := strings.TrimSpace(loggerCfg.Level); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", loggerCfg.Level, err)
		}
		logLevel = parsed
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if loggerCfg.Env == "production" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(out), logLevel)

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if loggerCfg.Service != "" {
		opts = append(opts, zap.Fields(zap.String("service", loggerCfg.Service)))
	}
	return zap.New(core, opts...), nil
}

// Get returns the global logger instance. Before Initialize it returns a
// no-op logger.
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
