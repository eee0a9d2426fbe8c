package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/strand/internal/config/loader"
	"github.com/dshills/strand/internal/engine"
	"github.com/dshills/strand/internal/engine/revision"
	"github.com/dshills/strand/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "STRAND_"

// Config holds every strand setting.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Engine  EngineConfig  `toml:"engine"`
	View    ViewConfig    `toml:"view"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Engine:  EngineConfig{MaxRevisions: revision.DefaultMaxRevisions},
		View:    ViewConfig{Height: engine.DefaultHeight, ScrollOff: engine.DefaultScrollOff},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	envPrefix string
	useEnv    bool
}

// WithFS reads the config file from fsys instead of the OS file system.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnvPrefix changes the prefix of the environment variables read.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutEnv skips the environment variable layer.
func WithoutEnv() Option {
	return func(o *options) {
		o.useEnv = false
	}
}

// Load builds a Config from the defaults, the file at path and the
// environment. An empty path or a missing file only skips the file layer.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS(), envPrefix: EnvPrefix, useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	var layers []map[string]any
	if path != "" {
		l, err := fileLoader(o.fs, path)
		if err != nil {
			return nil, err
		}
		fileMap, err := l.Load()
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileMap)
	}
	if o.useEnv {
		envMap, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
		layers = append(layers, envMap)
	}

	cfg := Default()
	if err := cfg.apply(loader.Merge(layers...)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileLoader(fsys loader.FileSystem, path string) (loader.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loader.NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return loader.NewYAMLLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// apply overlays the settings in m onto c. Keys that name no setting are
// ignored.
func (c *Config) apply(m map[string]any) error {
	if len(m) == 0 {
		return nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return nil
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: logging.level: %w", ErrValidationFailed, err))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format must be text or json, got %q", ErrValidationFailed, c.Logging.Format))
	}
	if c.Engine.MaxRevisions < 1 {
		errs = append(errs, fmt.Errorf("%w: engine.maxRevisions must be positive, got %d", ErrValidationFailed, c.Engine.MaxRevisions))
	}
	if c.View.Height < 0 {
		errs = append(errs, fmt.Errorf("%w: view.height must not be negative, got %d", ErrValidationFailed, c.View.Height))
	}
	if c.View.ScrollOff < 0 {
		errs = append(errs, fmt.Errorf("%w: view.scrollOff must not be negative, got %d", ErrValidationFailed, c.View.ScrollOff))
	}
	return errors.Join(errs...)
}
