package logging

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	ServiceName string
	Level       string
	LokiURL     string
}

// Logger is a zap logger with trace correlation. When a Loki URL is
// configured every entry is also pushed there.
type Logger struct {
	*otelzap.Logger
	loki *lokiPusher
}

func New(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel

	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)

		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}

		level = parsed
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	var (
		opts   []zap.Option
		pusher *lokiPusher
	)

	if cfg.LokiURL != "" {
		pusher = newLokiPusher(cfg.LokiURL, cfg.ServiceName)

		loki := newLokiCore(zapcore.NewJSONEncoder(config.EncoderConfig), config.Level, pusher)

		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, loki)
		}))
	}

	zapLogger, err := config.Build(opts...)

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	if cfg.ServiceName != "" {
		zapLogger = zapLogger.With(zap.String("service", cfg.ServiceName))
	}

	return &Logger{
		Logger: otelzap.New(zapLogger),
		loki:   pusher,
	}, nil
}

// Zap returns the plain zap logger for components that do not need trace
// correlation.
func (l *Logger) Zap() *zap.Logger {
	return l.Logger.Logger
}

// Sync flushes buffered entries and stops the Loki pusher.
func (l *Logger) Sync() error {
	err := l.Logger.Sync()

	if l.loki != nil {
		l.loki.close()
	}

	return err
}
