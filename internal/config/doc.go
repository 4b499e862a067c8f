// Package config loads, normalizes, and validates the reelsmith TOML
// configuration. Provider credentials may come from the config file or from
// the environment; they are resolved once at load time.
package config
