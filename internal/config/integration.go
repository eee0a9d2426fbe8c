package config

import (
	"io"

	"github.com/dshills/strand/internal/engine"
	"github.com/dshills/strand/internal/logging"
)

// Logger builds a logger writing to out from the logging section.
func (c *Config) Logger(out io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: c.Logging.Format,
		Output: out,
	}), nil
}

// EngineOptions returns the engine options for the engine and view
// sections.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithMaxRevisions(c.Engine.MaxRevisions),
		engine.WithHeight(c.View.Height),
		engine.WithScrollOff(c.View.ScrollOff),
	}
}
