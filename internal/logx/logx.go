// Package logx provides structured logging functionality
package logx

import (
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger to provide a consistent interface.
// A scoped logger (see GetScope) resolves the global logger on every call so
// that it follows Init reconfigurations.
type Logger struct {
	zap   *zap.Logger
	sugar *zap.SugaredLogger
	scope string
}

var globalLogger atomic.Pointer[Logger]

func init() {
	// 初始化默认全局 logger
	l, err := New("")
	if err != nil {
		panic(err)
	}
	globalLogger.Store(l)
}

// IsLocalDev checks if the environment is local development
func IsLocalDev(appEnv string) bool {
	return appEnv == "local" || appEnv == "dev" || appEnv == "development"
}

// New creates a standalone logger named after scope (may be empty).
func New(scope string) (*Logger, error) {
	config := getLoggerConfig()

	if IsLocalDev(os.Getenv("APP_ENV")) {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	if scope != "" {
		zapLogger = zapLogger.Named(scope)
	}
	return &Logger{zap: zapLogger, sugar: zapLogger.Sugar()}, nil
}

// GetScope returns a logger named after scope that always writes through the
// current global logger.
func GetScope(scope string) *Logger {
	return &Logger{scope: scope}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func getLoggerConfig() zap.Config {
	config := zap.NewProductionConfig()

	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	config.Development = false
	config.DisableCaller = false
	config.DisableStacktrace = false
	config.Sampling = nil

	config.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	config.Encoding = "console"

	return config
}

// Init configures the global logger. format is "json" or "console"/"text".
func Init(level, format string) {
	config := getLoggerConfig()

	// 根据格式设置编码
	switch strings.ToLower(format) {
	case "json":
		config.Encoding = "json"
		config.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	default:
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	old := globalLogger.Swap(&Logger{zap: zapLogger, sugar: zapLogger.Sugar()})
	if old != nil && old.zap != nil {
		_ = old.zap.Sync()
	}
}

// L returns the global sugar logger.
func L() *zap.SugaredLogger {
	return Global().sugar
}

// GetLogger returns the underlying global zap logger.
func GetLogger() *zap.Logger {
	return Global().zap
}

// Global returns the global logger instance
func Global() *Logger {
	return globalLogger.Load()
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) resolve() *zap.Logger {
	if l.scope == "" {
		return l.zap
	}
	g := Global()
	if g == nil || g.zap == nil {
		return nil
	}
	return g.zap.Named(l.scope)
}

// Close flushes any buffered log entries.
func (l *Logger) Close() error {
	if z := l.resolve(); z != nil {
		return z.Sync()
	}
	return nil
}

// Sugar returns the sugar logger for key-value style logging
func (l *Logger) Sugar() *zap.SugaredLogger {
	if z := l.resolve(); z != nil {
		return z.Sugar()
	}
	return zap.NewNop().Sugar()
}

// Zap returns the underlying zap logger
func (l *Logger) Zap() *zap.Logger {
	if z := l.resolve(); z != nil {
		return z
	}
	return zap.NewNop()
}

// With returns a standalone child logger carrying fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	z := l.Zap().With(fields...)
	return &Logger{zap: z, sugar: z.Sugar()}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if z := l.resolve(); z != nil {
		z.Debug(msg, fields...)
	}
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	if z := l.resolve(); z != nil {
		z.Info(msg, fields...)
	}
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if z := l.resolve(); z != nil {
		z.Warn(msg, fields...)
	}
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	if z := l.resolve(); z != nil {
		z.Error(msg, fields...)
	}
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	z := l.resolve()
	if z == nil {
		os.Exit(1)
	}
	z.Fatal(msg, fields...)
}
