// Package config loads strand's settings.
//
// Settings come from three layers, each overriding the one before:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. Environment variables with the STRAND_ prefix
//
// The loader sub-package turns each source into a nested map. The maps are
// merged and decoded into a Config, which is then validated.
//
// Environment variables map onto settings by name, so
// STRAND_ENGINE_MAX_REVISIONS sets engine.maxRevisions. STRAND_LOG_LEVEL
// and STRAND_LOG_FORMAT set the logging section.
package config
