package config

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	// Level is the minimum level logged: trace, debug, info, warn or error.
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`
}

// EngineConfig holds the text engine settings.
type EngineConfig struct {
	// MaxRevisions bounds how many revisions are kept for delta
	// computation.
	MaxRevisions int `toml:"maxRevisions"`
}

// ViewConfig holds the viewport settings.
type ViewConfig struct {
	// Height is the number of visible lines.
	Height int `toml:"height"`

	// ScrollOff is the minimum number of lines to keep above/below cursor.
	ScrollOff int `toml:"scrollOff"`
}
