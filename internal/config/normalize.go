package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeAPI(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeAPI() error {
	c.API.EndpointURL = strings.TrimSpace(c.API.EndpointURL)
	if c.API.EndpointURL == "" {
		if value, ok := os.LookupEnv("ROOMASSISTANT_ENDPOINT_URL"); ok {
			c.API.EndpointURL = strings.TrimSpace(value)
		}
	}
	if c.API.RequestTimeout < 0 {
		return fmt.Errorf("api.request_timeout must not be negative")
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.SessionPath) == "" {
		c.Paths.SessionPath = filepath.Join(c.Paths.StateDir, defaultSessionFile)
	}
	if c.Paths.SessionPath, err = expandPath(c.Paths.SessionPath); err != nil {
		return fmt.Errorf("paths.session_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.HandoffPath) == "" {
		c.Paths.HandoffPath = filepath.Join(c.Paths.StateDir, defaultHandoffFile)
	}
	if c.Paths.HandoffPath, err = expandPath(c.Paths.HandoffPath); err != nil {
		return fmt.Errorf("paths.handoff_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = filepath.Join(c.Paths.StateDir, defaultHistoryFile)
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
