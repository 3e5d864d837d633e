package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"animux/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prevDir) })

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if cfg.Paths.PremuxDir != filepath.Join(cwd, "premux") {
		t.Fatalf("unexpected premux dir: %q", cfg.Paths.PremuxDir)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "animux", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Mux.Binary != "mkvmerge" {
		t.Fatalf("unexpected mux binary: %q", cfg.Mux.Binary)
	}
	if cfg.Tracks.AudioLanguage != "ja" {
		t.Fatalf("unexpected audio language: %q", cfg.Tracks.AudioLanguage)
	}
	if !strings.Contains(cfg.Naming.OutName, "$crc32$") {
		t.Fatalf("expected crc32 placeholder in out_name, got %q", cfg.Naming.OutName)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "animux.toml")
	content := `
[show]
name = "  Sousou no Frieren  "
tmdb_id = 209867

[paths]
sub_dir = "~/frieren/subs"

[tracks]
audio_language = "JA"

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Show.Name != "Sousou no Frieren" {
		t.Fatalf("show name not trimmed: %q", cfg.Show.Name)
	}
	if cfg.Paths.SubDir != filepath.Join(tempHome, "frieren", "subs") {
		t.Fatalf("sub dir not expanded: %q", cfg.Paths.SubDir)
	}
	if cfg.Tracks.AudioLanguage != "ja" {
		t.Fatalf("audio language not lowered: %q", cfg.Tracks.AudioLanguage)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging format not lowered: %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"negative timeout": "[mux]\ntimeout_seconds = -5\n",
		"bad log format":   "[logging]\nformat = \"xml\"\n",
		"negative tmdb":    "[show]\ntmdb_id = -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "animux.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config did not load: exists=%v err=%v", exists, err)
	}
}
