package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "DEALDIAL_LOG_LEVEL"

// LogFileEnvVar overrides where log output goes. The default is a file
// under the user's state dir; logs never go to stdout, which belongs to
// the TUI.
const LogFileEnvVar = "DEALDIAL_LOG_FILE"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks DEALDIAL_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	path := os.Getenv(LogFileEnvVar)
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".local", "state", "dealdial", "dealdial.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir log dir: %w", err)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the DEALDIAL_LOG_LEVEL
// environment variable. Silent mode by default keeps zap output from
// ever landing in the alternate screen.
func InitializeFromEnv() error {
	return Initialize("")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogOwnerChange records a keyboard ownership transfer between controls.
func LogOwnerChange(owner string) {
	if owner == "" {
		Debug("keyboard owner released")
		return
	}
	Debug("keyboard owner changed", zap.String("control", owner))
}

// LogDealField records one committed control change.
func LogDealField(field string, value float64, payment float64) {
	Debug("deal field changed",
		zap.String("field", field),
		zap.Float64("value", value),
		zap.Float64("payment", payment),
	)
}

// LogRateApplied records a lender quote landing on the working deal.
func LogRateApplied(lender string, apr float64, termMonths int) {
	Info("lender rate applied",
		zap.String("lender", lender),
		zap.Float64("apr", apr),
		zap.Int("term_months", termMonths),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
