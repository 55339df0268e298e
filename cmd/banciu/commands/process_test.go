// ABOUTME: Tests for the process command definition
// ABOUTME: Verifies flags, required arguments, and chain assembly rules

package commands

import (
	"testing"

	"github.com/harper/banciu/internal/config"
)

func TestNewProcessCmd_Flags(t *testing.T) {
	cmd := NewProcessCmd()

	tests := []struct {
		flagName string
		defValue string
	}{
		{"input-file", ""},
		{"output-dir", ""},
		{"temp-dir", ""},
		{"max-videos", "0"},
		{"no-captions", "false"},
		{"whisper-model", ""},
		{"target-word-count", "1200"},
		{"overlap-words", "100"},
		{"force", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flagName)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestProcessCmd_RequiresInputAndOutput(t *testing.T) {
	cmd := NewProcessCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when --input-file and --output-dir are missing")
	}
}

func resetProcessFlags() {
	processOutputDir = ""
	processTempDir = ""
	processMaxVideos = 0
	processWhisper = ""
	processTarget = 0
	processOverlap = 0
}

func TestApplyProcessFlags_Overrides(t *testing.T) {
	defer resetProcessFlags()

	cmd := NewProcessCmd()
	for flag, value := range map[string]string{
		"output-dir":        "out",
		"temp-dir":          "scratch",
		"max-videos":        "3",
		"whisper-model":     "whisper-1",
		"target-word-count": "800",
		"overlap-words":     "50",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("setting --%s: %v", flag, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	applyProcessFlags(cmd, cfg)

	if cfg.OutputDir != "out" || cfg.TempDir != "scratch" {
		t.Errorf("paths = %q, %q", cfg.OutputDir, cfg.TempDir)
	}
	if cfg.MaxVideos != 3 {
		t.Errorf("MaxVideos = %d", cfg.MaxVideos)
	}
	if cfg.TargetWordCount != 800 || cfg.OverlapWords != 50 {
		t.Errorf("chunking = %d/%d", cfg.TargetWordCount, cfg.OverlapWords)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("overridden config should validate: %v", err)
	}
}

func TestApplyProcessFlags_UnsetFlagsKeepDefaults(t *testing.T) {
	defer resetProcessFlags()

	cmd := NewProcessCmd()
	if err := cmd.Flags().Set("output-dir", "out"); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	wantTarget := cfg.TargetWordCount
	wantOverlap := cfg.OverlapWords

	applyProcessFlags(cmd, cfg)

	if cfg.TargetWordCount != wantTarget || cfg.OverlapWords != wantOverlap {
		t.Errorf("unset flags should not override config: %d/%d", cfg.TargetWordCount, cfg.OverlapWords)
	}
}

func TestApplyProcessFlags_ExplicitZeroOverlap(t *testing.T) {
	defer resetProcessFlags()

	cmd := NewProcessCmd()
	for flag, value := range map[string]string{
		"output-dir":    "out",
		"overlap-words": "0",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("setting --%s: %v", flag, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	applyProcessFlags(cmd, cfg)

	if cfg.OverlapWords != 0 {
		t.Errorf("OverlapWords = %d, want explicit 0", cfg.OverlapWords)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero overlap is a valid configuration: %v", err)
	}
}

func TestBuildTranscriptChain_NoSources(t *testing.T) {
	defer func() { processNoCaptions = false }()
	processNoCaptions = true

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.OpenAIKey = ""

	if _, err := buildTranscriptChain(cfg); err == nil {
		t.Error("Expected error with captions disabled and no API key")
	}
}
