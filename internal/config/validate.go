package config

import (
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.EndpointURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/roomassistant/config.toml"
		}
		return fmt.Errorf("api.endpoint_url is required. Set ROOMASSISTANT_ENDPOINT_URL env var or edit %s (create with 'roomassistant config init')", defaultPath)
	}
	parsed, err := url.Parse(c.API.EndpointURL)
	if err != nil {
		return fmt.Errorf("api.endpoint_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.endpoint_url must be an http or https URL, got %q", c.API.EndpointURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
}
