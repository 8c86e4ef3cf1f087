// internal/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap.Logger with swap-oriented helpers. Console output is
// human readable, the rotated file gets JSON.
type Logger struct {
	*zap.Logger
	config *Config
}

// Swap lifecycle states used in log fields.
const (
	SwapPending   = "pending"
	SwapSubmitted = "submitted"
	SwapFailed    = "failed"
	SwapCancelled = "cancelled"
)

// New creates a logger writing to stdout and a rotated log file.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logRotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)

	level := zapcore.InfoLevel
	if cfg.Development {
		level = zapcore.DebugLevel
		consoleEncoder = PrettyEncoder()
	}

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level),
		zapcore.NewCore(fileEncoder, zapcore.AddSync(logRotator), level),
	)

	return &Logger{
		Logger: zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		),
		config: cfg,
	}, nil
}

// WithOperation creates a logger for one operation with a correlation id so
// all its log lines can be grouped.
func (l *Logger) WithOperation(operation string) *Logger {
	return l.child(
		zap.String("operation", operation),
		zap.String("correlation_id", uuid.New().String()),
		zap.Time("start_time", time.Now().UTC()),
	)
}

// WithTransaction adds transaction context to subsequent log lines.
func (l *Logger) WithTransaction(signature string) *Logger {
	return l.child(
		zap.String("tx_signature", signature),
		zap.Time("tx_time", time.Now().UTC()),
	)
}

// WithWallet adds the acting wallet to subsequent log lines.
func (l *Logger) WithWallet(pubkey string) *Logger {
	return l.child(zap.String("wallet", pubkey))
}

// WithTask adds the task identity to subsequent log lines.
func (l *Logger) WithTask(taskName, walletName string) *Logger {
	return l.child(
		zap.String("task", taskName),
		zap.String("wallet_name", walletName),
	)
}

// child keeps the wrapper type so the helpers chain.
func (l *Logger) child(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.With(fields...), config: l.config}
}

// LogError logs an error with extra context fields.
func (l *Logger) LogError(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.Error(msg, fields...)
}

// Sync flushes buffered log entries, ignoring the errors stdout produces
// when it is not a regular file.
func (l *Logger) Sync() error {
	err := l.Logger.Sync()
	if err != nil && (err.Error() == "sync /dev/stdout: invalid argument" ||
		err.Error() == "sync /dev/stderr: inappropriate ioctl for device") {
		return nil
	}
	return err
}

// TrackPerformance measures the duration of an operation; call the returned
// func when the operation ends.
func (l *Logger) TrackPerformance(operation string) (end func()) {
	start := time.Now()
	opLogger := l.WithOperation(operation)

	opLogger.Debug("Starting operation")

	return func() {
		duration := time.Since(start)
		opLogger.Debug("Operation completed",
			zap.Duration("duration", duration))
	}
}
