package config

import (
	"errors"

	"github.com/dshills/strand/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownFormat indicates the config file extension is not .toml,
	// .yaml or .yml.
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrInvalidValue indicates a setting has the wrong type.
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrValidationFailed indicates a setting is out of range.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError
