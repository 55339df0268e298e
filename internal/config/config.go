// ABOUTME: Centralized configuration for the transcript pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/harper/banciu/internal/textutil"
)

// Config holds all configuration for the fetch and process commands.
// Command-line flags override individual fields after Load.
type Config struct {
	// Chunking settings
	TargetWordCount   int
	OverlapWords      int
	BoundaryUppercase string
	AnnotationPattern string

	// Transcript settings
	Language     string
	WhisperModel string
	OpenAIKey    string
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration

	// Finder settings
	TitlePrefixes []string
	SearchLimit   int

	// Run settings
	MaxVideos   int
	TempDir     string
	OutputDir   string
	CatalogPath string
}

// DefaultTitlePrefixes are the known title spellings of the show.
var DefaultTitlePrefixes = []string{"Prea Mult Banciu", "PreaMultBanciu"}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		TargetWordCount:   getEnvInt("BANCIU_TARGET_WORDS", textutil.DefaultTargetWords),
		OverlapWords:      getEnvInt("BANCIU_OVERLAP_WORDS", textutil.DefaultOverlapWords),
		BoundaryUppercase: getEnv("BANCIU_SENTENCE_UPPERCASE", textutil.DefaultBoundaryUppercase),
		AnnotationPattern: getEnv("BANCIU_ANNOTATION_PATTERN", textutil.DefaultAnnotationPattern),
		Language:          getEnv("BANCIU_LANGUAGE", "ro"),
		WhisperModel:      getEnv("BANCIU_WHISPER_MODEL", "whisper-1"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		Timeout:           getEnvDuration("BANCIU_TRANSCRIBE_TIMEOUT", 10*time.Minute),
		MaxRetries:        getEnvInt("BANCIU_MAX_RETRIES", 3),
		RetryDelay:        getEnvDuration("BANCIU_RETRY_DELAY", 2*time.Second),
		TitlePrefixes:     DefaultTitlePrefixes,
		SearchLimit:       getEnvInt("BANCIU_SEARCH_LIMIT", 3),
		MaxVideos:         getEnvInt("BANCIU_MAX_VIDEOS", 0),
		TempDir:           getEnv("BANCIU_TEMP_DIR", "temp"),
		OutputDir:         getEnv("BANCIU_OUTPUT_DIR", "episodes"),
		CatalogPath:       getEnv("BANCIU_CATALOG", ""),
	}

	return cfg, cfg.Validate()
}

// Validate rejects configuration that would make a run fail part-way.
// Chunking parameters are checked up front so bad values abort before any
// video is processed.
func (c *Config) Validate() error {
	if err := c.ChunkConfig().Validate(); err != nil {
		return err
	}
	if c.MaxVideos < 0 {
		return fmt.Errorf("BANCIU_MAX_VIDEOS must be non-negative, got %d", c.MaxVideos)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("BANCIU_SEARCH_LIMIT must be positive, got %d", c.SearchLimit)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("BANCIU_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Language == "" {
		return fmt.Errorf("BANCIU_LANGUAGE must not be empty")
	}
	return nil
}

// ChunkConfig bundles the chunking parameters for the Chunker.
func (c *Config) ChunkConfig() textutil.ChunkConfig {
	return textutil.ChunkConfig{
		TargetWords:       c.TargetWordCount,
		OverlapWords:      c.OverlapWords,
		BoundaryUppercase: c.BoundaryUppercase,
	}
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
