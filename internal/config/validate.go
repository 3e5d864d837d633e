package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMux(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Show.TMDBID < 0 {
		return errors.New("show.tmdb_id must be >= 0")
	}
	if c.Show.Season < 0 {
		return errors.New("show.season must be >= 0")
	}
	return nil
}

func (c *Config) validatePaths() error {
	required := map[string]string{
		"paths.premux_dir": c.Paths.PremuxDir,
		"paths.audio_dir":  c.Paths.AudioDir,
		"paths.sub_dir":    c.Paths.SubDir,
		"paths.work_dir":   c.Paths.WorkDir,
		"paths.log_dir":    c.Paths.LogDir,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}

func (c *Config) validateMux() error {
	if c.Mux.TimeoutSeconds <= 0 {
		return errors.New("mux.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
