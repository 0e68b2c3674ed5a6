// Package log provides module-scoped structured logging on top of zap.
//
// Every package creates its own logger with New("<module>"). Levels can be set
// per module or as a default with SetSpec("envelope=debug:warning"). All
// output goes to stderr by default so that stdout stays free for command
// output that other tools consume.
package log

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	timestampKey  = "time"
	levelKey      = "level"
	moduleKey     = "logger"
	callerKey     = "caller"
	messageKey    = "msg"
	stacktraceKey = "stacktrace"
)

// defaultEncoding is followed by every logger. It can be switched after those
// loggers exist.
var defaultEncoding atomic.Value //nolint:gochecknoglobals

// SetDefaultEncoding sets the encoding of every logger.
func SetDefaultEncoding(encoding Encoding) {
	defaultEncoding.Store(strings.ToLower(encoding))
}

// GetDefaultEncoding returns the current default encoding.
func GetDefaultEncoding() Encoding {
	if enc, ok := defaultEncoding.Load().(string); ok && enc != "" {
		return enc
	}
	return Console
}

// Level defines a log level for logging messages.
type Level int

// String returns string representation of given log level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARN"
	case ERROR:
		return "ERROR"
	case PANIC:
		return "PANIC"
	case FATAL:
		return "FATAL"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// ParseLevel returns the level from the given string.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARNING, nil
	case "error":
		return ERROR, nil
	case "panic":
		return PANIC, nil
	case "fatal":
		return FATAL, nil
	default:
		return ERROR, fmt.Errorf("logger: invalid log level %q", level)
	}
}

// Log levels.
const (
	DEBUG   = Level(zapcore.DebugLevel)
	INFO    = Level(zapcore.InfoLevel)
	WARNING = Level(zapcore.WarnLevel)
	ERROR   = Level(zapcore.ErrorLevel)
	PANIC   = Level(zapcore.PanicLevel)
	FATAL   = Level(zapcore.FatalLevel)

	minLogLevel  = DEBUG
	defaultLevel = WARNING
)

var levels = newModuleLevels() //nolint:gochecknoglobals

// Encoding defines the log encoding.
type Encoding = string

// Log encodings.
const (
	Console Encoding = "console"
	JSON    Encoding = "json"
)

const defaultModuleName = ""

type options struct {
	stdOut zapcore.WriteSyncer
	stdErr zapcore.WriteSyncer
	fields []zap.Field
}

// Option is a logger option.
type Option func(o *options)

// WithFields sets the fields that will be output with every log.
func WithFields(fields ...zap.Field) Option {
	return func(o *options) {
		o.fields = fields
	}
}

// Log uses the Zap Logger to log messages in a structured way.
type Log struct {
	*zap.Logger
	module string
}

// New creates a structured Logger for the given module name.
func New(module string, opts ...Option) *Log {
	options := getOptions(opts)

	return &Log{
		Logger: newZap(module, options.stdOut, options.stdErr).With(options.fields...),
		module: module,
	}
}

// IsEnabled returns true if given log level is enabled.
func (l *Log) IsEnabled(level Level) bool {
	return level >= GetLevel(l.module)
}

// GetLevel returns the log level for the given module.
func GetLevel(module string) Level {
	return levels.Get(module)
}

// SetSpec sets the log levels for individual modules as well as the default
// log level. The format is
//
//	module1=level1:module2=level2:defaultLevel
//
// Example:
//
//	envelope=debug:store=info:warning
func SetSpec(spec string) error {
	defaultLogLevel := minLogLevel - 1

	var pairs []moduleLevelPair

	for _, part := range strings.Split(spec, ":") {
		if module, lvl, ok := strings.Cut(part, "="); ok {
			logLevel, err := ParseLevel(lvl)
			if err != nil {
				return err
			}

			pairs = append(pairs, moduleLevelPair{module, logLevel})

			continue
		}

		if defaultLogLevel >= minLogLevel {
			return errors.New("multiple default values found")
		}

		level, err := ParseLevel(part)
		if err != nil {
			return err
		}

		defaultLogLevel = level
	}

	if defaultLogLevel >= minLogLevel {
		levels.SetDefault(defaultLogLevel)
	} else {
		levels.SetDefault(defaultLevel)
	}

	for _, p := range pairs {
		levels.Set(p.module, p.logLevel)
	}

	return nil
}

type moduleLevelPair struct {
	module   string
	logLevel Level
}

func newModuleLevels() *moduleLevels {
	return &moduleLevels{levels: make(map[string]Level)}
}

// moduleLevels maintains log levels based on modules.
type moduleLevels struct {
	levels  map[string]Level
	rwmutex sync.RWMutex
}

// Get returns the log level for given module.
func (l *moduleLevels) Get(module string) Level {
	l.rwmutex.RLock()
	defer l.rwmutex.RUnlock()

	level, exists := l.levels[module]
	if !exists {
		level, exists = l.levels[defaultModuleName]
		if !exists {
			return defaultLevel
		}
	}

	return level
}

func (l *moduleLevels) Set(module string, level Level) {
	l.rwmutex.Lock()
	l.levels[module] = level
	l.rwmutex.Unlock()
}

func (l *moduleLevels) SetDefault(level Level) {
	l.Set(defaultModuleName, level)
}

func (l *moduleLevels) isEnabled(module string, level Level) bool {
	return level >= l.Get(module)
}

// newZap tees one core pair per encoding; only the pair matching the current
// default encoding is enabled.
func newZap(module string, stdOut, stdErr zapcore.WriteSyncer) *zap.Logger {
	var cores []zapcore.Core

	for _, enc := range []Encoding{Console, JSON} {
		enc := enc // per-iteration copy; go.mod targets go 1.21 loop semantics
		active := func() bool { return GetDefaultEncoding() == enc }
		encoder := newZapEncoder(enc)

		cores = append(cores,
			zapcore.NewCore(encoder, zapcore.Lock(stdErr),
				zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
					return active() && lvl >= zapcore.ErrorLevel && levels.isEnabled(module, Level(lvl))
				}),
			),
			zapcore.NewCore(encoder, zapcore.Lock(stdOut),
				zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
					return active() && lvl < zapcore.ErrorLevel && levels.isEnabled(module, Level(lvl))
				}),
			),
		)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(module)
}

func newZapEncoder(encoding Encoding) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        timestampKey,
		LevelKey:       levelKey,
		NameKey:        moduleKey,
		CallerKey:      callerKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     messageKey,
		StacktraceKey:  stacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if strings.ToLower(encoding) == JSON {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder

		return zapcore.NewJSONEncoder(cfg)
	}

	cfg.EncodeName = func(moduleName string, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(fmt.Sprintf("[%s]", moduleName))
	}

	return zapcore.NewConsoleEncoder(cfg)
}

func getOptions(opts []Option) *options {
	options := &options{
		stdOut: os.Stderr,
		stdErr: os.Stderr,
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}
