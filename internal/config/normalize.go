package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeShow()
	c.normalizeNaming()
	c.normalizeTracks()
	c.normalizeMux()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"paths.premux_dir", &c.Paths.PremuxDir},
		{"paths.audio_dir", &c.Paths.AudioDir},
		{"paths.sub_dir", &c.Paths.SubDir},
		{"paths.fonts_dir", &c.Paths.FontsDir},
		{"paths.common_dir", &c.Paths.CommonDir},
		{"paths.work_dir", &c.Paths.WorkDir},
		{"paths.log_dir", &c.Paths.LogDir},
	}
	for _, field := range fields {
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeShow() {
	c.Show.Name = strings.TrimSpace(c.Show.Name)
}

func (c *Config) normalizeNaming() {
	c.Naming.OutName = strings.TrimSpace(c.Naming.OutName)
	if c.Naming.OutName == "" {
		c.Naming.OutName = defaultOutName
	}
	c.Naming.MKVTitle = strings.TrimSpace(c.Naming.MKVTitle)
	if c.Naming.MKVTitle == "" {
		c.Naming.MKVTitle = defaultMKVTitle
	}
}

func (c *Config) normalizeTracks() {
	c.Tracks.AudioLanguage = strings.ToLower(strings.TrimSpace(c.Tracks.AudioLanguage))
	if c.Tracks.AudioLanguage == "" {
		c.Tracks.AudioLanguage = defaultAudioLang
	}
	c.Tracks.AudioName = strings.TrimSpace(c.Tracks.AudioName)
	if c.Tracks.AudioName == "" {
		c.Tracks.AudioName = defaultAudioName
	}
	c.Tracks.SubtitleLanguage = strings.ToLower(strings.TrimSpace(c.Tracks.SubtitleLanguage))
	if c.Tracks.SubtitleLanguage == "" {
		c.Tracks.SubtitleLanguage = defaultSubLang
	}
}

func (c *Config) normalizeMux() {
	c.Mux.Binary = strings.TrimSpace(c.Mux.Binary)
	if c.Mux.Binary == "" {
		c.Mux.Binary = defaultMuxBinary
	}
	if c.Mux.TimeoutSeconds == 0 {
		c.Mux.TimeoutSeconds = defaultMuxTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
