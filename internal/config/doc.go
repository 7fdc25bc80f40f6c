// Package config loads and validates the RoomAssistant TOML configuration.
package config
