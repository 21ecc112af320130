// Package logger provides the leveled, structured logger used across
// every command and package in this module. The call-site API (Info,
// Infof, SetLevel, GetLogger, ...) is deliberately small and stable;
// the backend underneath is zap.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger wraps a zap.SugaredLogger behind the printf-style API the
// rest of this module calls.
type Logger struct {
	mu     sync.Mutex
	level  *zap.AtomicLevel
	sugar  *zap.SugaredLogger
	plain  *zap.Logger
	colors bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Config controls how New builds a Logger.
type Config struct {
	Level      LogLevel
	Prefix     string
	Colorize   bool
	ShowCaller bool
	ShowTime   bool
}

func DefaultConfig() Config {
	return Config{
		Level:      INFO,
		Colorize:   true,
		ShowCaller: false,
		ShowTime:   true,
	}
}

// New builds a Logger writing to stdout in a console (human-readable,
// optionally colorized) encoding.
func New(cfg Config) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	if cfg.ShowTime {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		encCfg.TimeKey = ""
	}
	if cfg.Colorize {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	if cfg.Prefix != "" {
		encCfg.NameKey = "logger"
	}

	level := zap.NewAtomicLevelAt(cfg.Level.zapLevel())
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		level,
	)

	opts := []zap.Option{}
	if cfg.ShowCaller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(2))
	}
	base := zap.New(core, opts...)
	if cfg.Prefix != "" {
		base = base.Named(cfg.Prefix)
	}

	return &Logger{
		level:  &level,
		plain:  base,
		sugar:  base.Sugar(),
		colors: cfg.Colorize,
	}
}

// GetLogger returns the process-wide default Logger, built once and
// configured from the LOG_LEVEL environment variable if set.
func GetLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
			switch strings.ToUpper(envLevel) {
			case "DEBUG":
				cfg.Level = DEBUG
			case "INFO":
				cfg.Level = INFO
			case "WARN":
				cfg.Level = WARN
			case "FATAL":
				cfg.Level = FATAL
			}
		}
		defaultLogger = New(cfg)
	})
	return defaultLogger
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level.SetLevel(level.zapLevel())
}

// Sync flushes any buffered log entries. Callers should defer this
// once at process shutdown.
func (l *Logger) Sync() error {
	return l.plain.Sync()
}

func (l *Logger) Debug(msg string, args ...any) { l.Debugf(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.Infof(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.Warnf(msg, args...) }
func (l *Logger) Fatal(msg string, args ...any) { l.Fatalf(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.Errorf(msg, args...) }

func (l *Logger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *Logger) Fatalf(format string, args ...any) { l.sugar.Fatalf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Package-level convenience functions using the default logger.

func Debug(msg string, args ...any) { GetLogger().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetLogger().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetLogger().Warn(msg, args...) }
func Fatal(msg string, args ...any) { GetLogger().Fatal(msg, args...) }
func Error(msg string, args ...any) { GetLogger().Error(msg, args...) }

func Debugf(format string, args ...any) { GetLogger().Debugf(format, args...) }
func Infof(format string, args ...any)  { GetLogger().Infof(format, args...) }
func Warnf(format string, args ...any)  { GetLogger().Warnf(format, args...) }
func Fatalf(format string, args ...any) { GetLogger().Fatalf(format, args...) }
func Errorf(format string, args ...any) { GetLogger().Errorf(format, args...) }

// SetLevel sets the log level for the default logger.
func SetLevel(level LogLevel) { GetLogger().SetLevel(level) }
