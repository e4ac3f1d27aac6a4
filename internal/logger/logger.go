package logger

import (
	"fmt"
	"strings"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// NewLogger builds the application logger. An explicit format wins; otherwise
// development logs to a coloured console and every other environment logs JSON.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	switch resolveFormat(cfg.Format, appCfg.Environment) {
	case FormatJSON:
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if outputs := outputPaths(cfg.Output); len(outputs) > 0 {
		zapCfg.OutputPaths = outputs
	}

	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func resolveFormat(format, environment string) string {
	switch strings.ToLower(format) {
	case FormatJSON:
		return FormatJSON
	case FormatConsole:
		return FormatConsole
	}
	if environment == "" || environment == "development" {
		return FormatConsole
	}
	return FormatJSON
}

// outputPaths splits a comma separated list of zap sinks (stdout, stderr or file paths)
func outputPaths(output string) []string {
	var paths []string
	for _, p := range strings.Split(output, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// WithRequest adds request context to logger
func WithRequest(logger *zap.Logger, method, path, requestID string) *zap.Logger {
	return logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// WithCustomer adds the record identity to logger
func WithCustomer(logger *zap.Logger, partitionKey, rowKey string) *zap.Logger {
	return logger.With(
		zap.String("partition_key", partitionKey),
		zap.String("row_key", rowKey),
	)
}

// WithStorage tags logger with the backend chosen for each collaborator
func WithStorage(logger *zap.Logger, s *config.StorageConfig) *zap.Logger {
	return logger.With(
		zap.String("records", s.Records),
		zap.String("photos", s.Photos),
		zap.String("queue", s.Queue),
		zap.String("archive", s.Archive),
	)
}
