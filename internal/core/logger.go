package core

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.SugaredLogger

// NewLogger builds the console logger used by the bot. Verbose switches to
// development mode: debug level, caller info and stack traces.
func NewLogger(verbose bool) (*zap.Logger, error) {
	var config zap.Config
	if verbose {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		config.Encoding = "console"
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	config.DisableStacktrace = !verbose

	return config.Build()
}

// InitLogger installs the bot logger as the zap global and captures the
// standard library logger, which girc's debug output goes through.
func InitLogger(verbose bool) error {
	l, err := NewLogger(verbose)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	zap.RedirectStdLog(l)
	logger = l.Sugar()
	return nil
}

// GetLogger returns the global sugared logger, or a no-op logger when
// InitLogger has not run (tests).
func GetLogger() *zap.SugaredLogger {
	if logger == nil {
		return zap.NewNop().Sugar()
	}
	return logger
}

// WithFields creates a logger with the given structured fields
func WithFields(fields ...any) *zap.SugaredLogger {
	return GetLogger().With(fields...)
}

// LogDuration logs how long an operation took at debug level.
// Usage: defer LogDuration(logger, "dispatch", time.Now())
func LogDuration(logger *zap.SugaredLogger, operation string, start time.Time) {
	logger.Debugw(operation+"_completed", "duration_us", time.Since(start).Microseconds())
}
