package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the process logger from LogLevel.
// A silent level discards everything.
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stdout)
}

func (c *Config) newLogger(w io.Writer) *slog.Logger {
	level, ok := c.SlogLevel()
	if !ok {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
