package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig selects level, encoding and destination of the process logger.
type LoggerConfig struct {
	Level      string
	Format     string
	OutputFile string
}

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE; unset values become
// info, json and stdout.
func DefaultConfig() *LoggerConfig {
	cfg := &LoggerConfig{
		Level:      strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		Format:     strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
		OutputFile: strings.TrimSpace(os.Getenv("LOG_OUTPUT_FILE")),
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "stdout"
	}
	return cfg
}

// ToZapLevel maps Level to a zap level. Unknown names fall back to info.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	name := c.Level
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
