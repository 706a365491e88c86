package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the zap encoder used for log lines
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

var (
	level = zap.NewAtomicLevelAt(zap.InfoLevel)

	mu     sync.RWMutex
	output io.Writer = os.Stderr
	format           = FormatJSON
	sugar  *zap.SugaredLogger
)

func init() {
	rebuild()
}

// SetOutput redirects all subsequent log lines to w; nil restores stderr
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	output = w
	mu.Unlock()
	rebuild()
}

// SetFormat switches between JSON lines (CloudWatch) and console output (CLIs)
func SetFormat(f Format) {
	mu.Lock()
	if f == FormatConsole {
		format = FormatConsole
	} else {
		format = FormatJSON
	}
	mu.Unlock()
	rebuild()
}

// InitFromEnv applies LOG_LEVEL and LOG_FORMAT
func InitFromEnv() {
	SetLevelFromString(os.Getenv("LOG_LEVEL"))
	if f := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))); f != "" {
		SetFormat(Format(f))
	}
}

func SetLevelFromString(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		level.SetLevel(zap.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zap.WarnLevel)
	case "error":
		level.SetLevel(zap.ErrorLevel)
	default:
		level.SetLevel(zap.InfoLevel)
	}
}

func EnabledDebug() bool {
	return level.Enabled(zap.DebugLevel)
}

func Debugf(format string, args ...any) {
	current().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	current().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	current().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	current().Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	current().Fatalf(format, args...)
}

// Sync flushes buffered log entries; call it before the process exits
func Sync() {
	_ = current().Sync()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func rebuild() {
	mu.Lock()
	defer mu.Unlock()

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if format == FormatConsole {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), level)
	sugar = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}
