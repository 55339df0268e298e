// ABOUTME: CLI command to turn the video table into chunked episode JSON
// ABOUTME: Wires the transcript chain, cleaner, chunker, and catalog together
package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/banciu/internal/config"
	"github.com/harper/banciu/internal/pipeline"
	"github.com/harper/banciu/internal/store"
	"github.com/harper/banciu/internal/store/catalog"
	"github.com/harper/banciu/internal/textutil"
	"github.com/harper/banciu/internal/transcript"
	"github.com/harper/banciu/internal/youtube"
)

var (
	processInputFile  string
	processOutputDir  string
	processTempDir    string
	processMaxVideos  int
	processNoCaptions bool
	processWhisper    string
	processTarget     int
	processOverlap    int
	processForce      bool
)

// NewProcessCmd creates the process command
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process videos from the CSV table into transcript chunks",
		Long: `Process each video in the CSV table into a cleaned, chunked
transcript JSON file, one per episode.

Subtitles are tried first; videos without them fall back to
speech-to-text, which needs OPENAI_API_KEY to be set.

Examples:
  banciu process --input-file banciu_videos.csv --output-dir episodes
  banciu process --input-file banciu_videos.csv --output-dir episodes --max-videos 3
  banciu process --input-file banciu_videos.csv --output-dir episodes --force`,
		RunE: runProcess,
	}

	cmd.Flags().StringVar(&processInputFile, "input-file", "", "Path to the CSV table with url, title, date columns")
	cmd.Flags().StringVar(&processOutputDir, "output-dir", "", "Directory for episode JSON files")
	cmd.Flags().StringVar(&processTempDir, "temp-dir", "", "Working directory for downloads (default: temp)")
	cmd.Flags().IntVar(&processMaxVideos, "max-videos", 0, "Maximum number of videos to process (0 = all)")
	cmd.Flags().BoolVar(&processNoCaptions, "no-captions", false, "Skip subtitles and go straight to speech-to-text")
	cmd.Flags().StringVar(&processWhisper, "whisper-model", "", "Speech-to-text model (default: whisper-1)")
	cmd.Flags().IntVar(&processTarget, "target-word-count", textutil.DefaultTargetWords, "Target words per chunk")
	cmd.Flags().IntVar(&processOverlap, "overlap-words", textutil.DefaultOverlapWords, "Words shared between consecutive chunks")
	cmd.Flags().BoolVar(&processForce, "force", false, "Reprocess episodes already in the catalog")

	_ = cmd.MarkFlagRequired("input-file")
	_ = cmd.MarkFlagRequired("output-dir")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyProcessFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	records, skipped, err := store.ReadVideoTable(processInputFile)
	if err != nil {
		return fmt.Errorf("loading video table: %w", err)
	}
	if skipped > 0 {
		log.Printf("ignored %d malformed rows in %s", skipped, processInputFile)
	}
	if len(records) == 0 {
		return fmt.Errorf("no usable rows in %s", processInputFile)
	}

	cleaner, err := textutil.NewCleaner(cfg.AnnotationPattern)
	if err != nil {
		return fmt.Errorf("building cleaner: %w", err)
	}
	chunker, err := textutil.NewChunker(cfg.ChunkConfig())
	if err != nil {
		return fmt.Errorf("building chunker: %w", err)
	}

	fetcher, err := buildTranscriptChain(cfg)
	if err != nil {
		return err
	}

	db, err := catalog.Open(catalogPath(cfg))
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = db.Close() }()
	cat := catalog.New(db)

	processor, err := pipeline.NewProcessor(pipeline.ProcessorConfig{
		Fetcher:   fetcher,
		Catalog:   cat,
		Cleaner:   cleaner,
		Chunker:   chunker,
		OutputDir: cfg.OutputDir,
		MaxVideos: cfg.MaxVideos,
		Force:     processForce,
	})
	if err != nil {
		return err
	}

	runID, err := cat.BeginRun()
	if err != nil {
		return err
	}

	summary, runErr := processor.Process(cmd.Context(), records)
	if err := cat.EndRun(runID, summary.Succeeded, summary.Failed, summary.Skipped); err != nil {
		log.Printf("failed to close run %s: %v", runID, err)
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d videos: %d succeeded, %d failed, %d skipped\n",
		len(summary.Results), summary.Succeeded, summary.Failed, summary.Skipped)
	if run, err := cat.GetRun(runID); err == nil && run != nil && !run.FinishedAt.IsZero() {
		fmt.Fprintf(cmd.OutOrStdout(), "Run %s took %s\n",
			run.ID, run.FinishedAt.Sub(run.StartedAt).Round(time.Second))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Episodes written to: %s\n", cfg.OutputDir)
	return nil
}

// applyProcessFlags lets command-line flags override environment config.
// The chunking flags go by whether the flag was given rather than its
// value, so an explicit zero overlap is honored instead of falling back
// to the default.
func applyProcessFlags(cmd *cobra.Command, cfg *config.Config) {
	cfg.OutputDir = processOutputDir
	if processTempDir != "" {
		cfg.TempDir = processTempDir
	}
	if processMaxVideos > 0 {
		cfg.MaxVideos = processMaxVideos
	}
	if processWhisper != "" {
		cfg.WhisperModel = processWhisper
	}
	if cmd.Flags().Changed("target-word-count") {
		cfg.TargetWordCount = processTarget
	}
	if cmd.Flags().Changed("overlap-words") {
		cfg.OverlapWords = processOverlap
	}
}

// buildTranscriptChain assembles the transcript sources in fallback
// order: subtitles first, then speech-to-text when a key is configured.
func buildTranscriptChain(cfg *config.Config) (*transcript.Chain, error) {
	yt := youtube.NewClient()

	var sources []transcript.Source
	if !processNoCaptions {
		sources = append(sources, transcript.NewCaptionSource(yt, cfg.Language, cfg.TempDir))
	}
	if cfg.OpenAIKey != "" {
		whisper, err := transcript.NewWhisperSource(transcript.WhisperConfig{
			APIKey:     cfg.OpenAIKey,
			Model:      cfg.WhisperModel,
			Language:   cfg.Language,
			WorkDir:    cfg.TempDir,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		}, yt)
		if err != nil {
			return nil, err
		}
		sources = append(sources, whisper)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no transcript sources available: set OPENAI_API_KEY or drop --no-captions")
	}
	return transcript.NewChain(sources...), nil
}

func catalogPath(cfg *config.Config) string {
	if cfg.CatalogPath != "" {
		return cfg.CatalogPath
	}
	return catalog.DefaultPath(cfg.OutputDir)
}
