// Package logger provides a configured Zap sugared logger instance for the
// application. It handles initialization based on environment variables
// (LOG_LEVEL, ENVIRONMENT) and masking of sensitive values in logs.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

// IsTest should be set to true when running in a test environment so the
// logger writes development output to stdout.
var IsTest bool

func initLoggerInternal() {
	var zapLogger *zap.Logger
	var err error

	levelStr := os.Getenv("LOG_LEVEL")
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		// Default to info level if parsing fails or LOG_LEVEL is not set.
		level = zapcore.InfoLevel
	}

	if IsTest {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stdout"}
		zapLogger, err = config.Build()
	} else if os.Getenv("ENVIRONMENT") == "production" {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err = cfg.Build()
	} else {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err = devCfg.Build()
	}

	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	logger = zapLogger.Sugar()
}

// InitLogger initializes the global logger instance using sync.Once to ensure
// it's done only once, making it safe for concurrent calls.
func InitLogger() {
	once.Do(initLoggerInternal)
}

// GetLogger returns the shared global zap.SugaredLogger instance.
// It ensures the logger is initialized before returning it.
func GetLogger() *zap.SugaredLogger {
	once.Do(initLoggerInternal)
	return logger
}

// Close syncs the global logger to flush any buffered log entries.
// It should be called before the application exits.
func Close() error {
	if logger != nil && !IsTest {
		err := logger.Sync()
		if err != nil {
			// Write directly to stderr to avoid a loop if Sync itself fails.
			fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
		}
		return err
	}
	return nil
}

// MaskSensitiveString masks the middle of a string, keeping only the first
// prefixLen and last suffixLen characters. Used when logging API keys for the
// commerce, payment and LLM collaborators.
func MaskSensitiveString(s string, prefixLen, suffixLen int) string {
	if s == "" {
		return ""
	}
	if len(s) <= prefixLen+suffixLen {
		return strings.Repeat("*", 8)
	}
	return s[:prefixLen] + strings.Repeat("*", 4) + s[len(s)-suffixLen:]
}
