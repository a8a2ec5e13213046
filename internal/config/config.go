// Package config provides configuration for the checkmate engine and CLI.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lgbarn/checkmate-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=load and summary events, 2=running commentary

	// Evaluate enables evaluation scores in state snapshots.
	Evaluate bool

	// Workers is the number of goroutines used for batch processing.
	Workers int

	// Grouped settings
	Output *OutputConfig
	Tags   *TagConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer

	logMu   sync.Mutex
	logger  *zap.Logger
	logSink io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Evaluate:   true,
		Workers:    runtime.NumCPU(),
		Output:     NewOutputConfig(),
		Tags:       NewTagConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Verbosity < 0:
		return fmt.Errorf("verbosity %d: %w", c.Verbosity, errors.ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("workers %d: %w", c.Workers, errors.ErrInvalidConfig)
	case c.Output == nil || c.Tags == nil:
		return fmt.Errorf("missing output or tag settings: %w", errors.ErrInvalidConfig)
	case c.Output.MaxLineLength > 0 && c.Output.MaxLineLength < 10:
		return fmt.Errorf("line length %d too short: %w", c.Output.MaxLineLength, errors.ErrInvalidConfig)
	case c.Output.MovesPerLine < 0:
		return fmt.Errorf("moves per line %d: %w", c.Output.MovesPerLine, errors.ErrInvalidConfig)
	}
	return nil
}

// Logf writes a diagnostic line to LogFile when Verbosity is at least level.
// It is safe for concurrent use; LogFile must not be swapped while other
// goroutines are logging.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c == nil || c.LogFile == nil || c.Verbosity < level {
		return
	}
	c.logMu.Lock()
	defer c.logMu.Unlock()
	if c.logger == nil || c.logSink != c.LogFile {
		c.logger = newLogger(c.LogFile)
		c.logSink = c.LogFile
	}
	if level > 1 {
		c.logger.Debug(fmt.Sprintf(format, args...))
		return
	}
	c.logger.Info(fmt.Sprintf(format, args...))
}

// newLogger builds a message-only console logger over w. Verbosity gating
// happens in Logf, so the core accepts every level.
func newLogger(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
	return zap.New(core)
}
