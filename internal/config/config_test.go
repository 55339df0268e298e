// ABOUTME: Tests for pipeline configuration loading
// ABOUTME: Verifies defaults, environment overrides, and validation
package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TargetWordCount != 1200 {
		t.Errorf("TargetWordCount = %d, want 1200", cfg.TargetWordCount)
	}
	if cfg.OverlapWords != 100 {
		t.Errorf("OverlapWords = %d, want 100", cfg.OverlapWords)
	}
	if cfg.Language != "ro" {
		t.Errorf("Language = %q, want ro", cfg.Language)
	}
	if cfg.WhisperModel != "whisper-1" {
		t.Errorf("WhisperModel = %q, want whisper-1", cfg.WhisperModel)
	}
	if cfg.TempDir != "temp" {
		t.Errorf("TempDir = %q, want temp", cfg.TempDir)
	}
	if len(cfg.TitlePrefixes) != 2 {
		t.Errorf("TitlePrefixes = %v, want both show spellings", cfg.TitlePrefixes)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BANCIU_TARGET_WORDS", "800")
	t.Setenv("BANCIU_OVERLAP_WORDS", "50")
	t.Setenv("BANCIU_LANGUAGE", "en")
	t.Setenv("BANCIU_TRANSCRIBE_TIMEOUT", "3m")
	t.Setenv("BANCIU_MAX_VIDEOS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TargetWordCount != 800 {
		t.Errorf("TargetWordCount = %d, want 800", cfg.TargetWordCount)
	}
	if cfg.OverlapWords != 50 {
		t.Errorf("OverlapWords = %d, want 50", cfg.OverlapWords)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q, want en", cfg.Language)
	}
	if cfg.Timeout != 3*time.Minute {
		t.Errorf("Timeout = %v, want 3m", cfg.Timeout)
	}
	if cfg.MaxVideos != 5 {
		t.Errorf("MaxVideos = %d, want 5", cfg.MaxVideos)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("BANCIU_TARGET_WORDS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TargetWordCount != 1200 {
		t.Errorf("TargetWordCount = %d, want default 1200", cfg.TargetWordCount)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero target", func(c *Config) { c.TargetWordCount = 0 }, true},
		{"negative overlap", func(c *Config) { c.OverlapWords = -1 }, true},
		{"overlap equals target", func(c *Config) { c.OverlapWords = c.TargetWordCount }, true},
		{"negative max videos", func(c *Config) { c.MaxVideos = -1 }, true},
		{"zero search limit", func(c *Config) { c.SearchLimit = 0 }, true},
		{"excessive retries", func(c *Config) { c.MaxRetries = 11 }, true},
		{"empty language", func(c *Config) { c.Language = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
