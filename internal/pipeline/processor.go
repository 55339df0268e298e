// ABOUTME: Per-video transcript processing pipeline
// ABOUTME: Fetches, cleans, chunks, and writes one episode JSON per video
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/harper/banciu/internal/models"
	"github.com/harper/banciu/internal/store"
	"github.com/harper/banciu/internal/store/catalog"
	"github.com/harper/banciu/internal/textutil"
	"github.com/harper/banciu/internal/youtube"
)

// TranscriptFetcher obtains the raw transcript for a video, returning
// the text and the name of the source that produced it.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, rec models.VideoRecord) (string, string, error)
}

// EpisodeCatalog is the bookkeeping the processor needs for resuming.
type EpisodeCatalog interface {
	Seen(episodeID string) (bool, error)
	RecordEpisode(e catalog.Entry) error
}

// VideoResult is the outcome of processing one video.
type VideoResult struct {
	Record    models.VideoRecord
	EpisodeID string
	Source    string
	NumChunks int
	Err       error
}

// Summary aggregates a processing run.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
	Results   []VideoResult
}

// Processor runs the transcript pipeline over a list of videos.
type Processor struct {
	fetcher   TranscriptFetcher
	catalog   EpisodeCatalog
	cleaner   *textutil.Cleaner
	chunker   *textutil.Chunker
	outputDir string
	maxVideos int
	force     bool
}

// ProcessorConfig collects the processor's collaborators and options.
type ProcessorConfig struct {
	Fetcher   TranscriptFetcher
	Catalog   EpisodeCatalog // optional; nil disables skip bookkeeping
	Cleaner   *textutil.Cleaner
	Chunker   *textutil.Chunker
	OutputDir string
	MaxVideos int // 0 means no limit
	Force     bool
}

// NewProcessor creates a Processor.
func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("transcript fetcher is required")
	}
	if cfg.Cleaner == nil || cfg.Chunker == nil {
		return nil, fmt.Errorf("cleaner and chunker are required")
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	return &Processor{
		fetcher:   cfg.Fetcher,
		catalog:   cfg.Catalog,
		cleaner:   cfg.Cleaner,
		chunker:   cfg.Chunker,
		outputDir: cfg.OutputDir,
		maxVideos: cfg.MaxVideos,
		force:     cfg.Force,
	}, nil
}

// Process runs the pipeline over records, one video at a time. A failed
// video is logged and counted; it never aborts the run. Cancellation of
// ctx stops the run after the current video.
func (p *Processor) Process(ctx context.Context, records []models.VideoRecord) (*Summary, error) {
	summary := &Summary{}
	processed := 0

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if p.maxVideos > 0 && processed >= p.maxVideos {
			log.Printf("reached limit of %d videos, stopping", p.maxVideos)
			break
		}

		result := p.processOne(ctx, rec)
		summary.Results = append(summary.Results, result)

		switch {
		case result.Err != nil:
			summary.Failed++
			log.Printf("failed %s: %v", rec.URL, result.Err)
		case result.Source == "":
			summary.Skipped++
			log.Printf("skipping %s: already processed as %s", rec.URL, result.EpisodeID)
			continue
		default:
			summary.Succeeded++
			log.Printf("processed %s via %s: %d chunks", result.EpisodeID, result.Source, result.NumChunks)
		}
		processed++
	}
	return summary, nil
}

// processOne handles a single video. A result with an empty Source and
// no error means the episode was skipped as already processed.
func (p *Processor) processOne(ctx context.Context, rec models.VideoRecord) VideoResult {
	result := VideoResult{Record: rec}

	videoID, err := youtube.ExtractVideoID(rec.URL)
	if err != nil {
		result.Err = fmt.Errorf("extracting video ID: %w", err)
		return result
	}
	result.EpisodeID = videoID

	if p.catalog != nil && !p.force {
		seen, err := p.catalog.Seen(videoID)
		if err != nil {
			result.Err = fmt.Errorf("checking catalog: %w", err)
			return result
		}
		if seen {
			return result
		}
	}

	text, source, err := p.fetcher.Fetch(ctx, rec)
	if err != nil {
		result.Err = fmt.Errorf("fetching transcript: %w", err)
		return result
	}
	result.Source = source

	cleaned := p.cleaner.Clean(text)
	if cleaned == "" {
		result.Err = fmt.Errorf("transcript is empty after cleaning")
		return result
	}

	chunks := p.chunker.Split(cleaned)
	episode := models.NewEpisodeOutput(rec, videoID, cleaned, chunks)
	result.NumChunks = episode.NumChunks

	path, err := store.WriteEpisode(p.outputDir, episode)
	if err != nil {
		result.Err = err
		return result
	}

	if p.catalog != nil {
		entry := catalog.Entry{
			EpisodeID:        episode.EpisodeID,
			URL:              rec.URL,
			Title:            rec.Title,
			EpisodeDate:      rec.DateISO(),
			TranscriptSource: source,
			NumChunks:        episode.NumChunks,
			OutputPath:       path,
		}
		if err := p.catalog.RecordEpisode(entry); err != nil {
			// The episode file is already on disk; bookkeeping failure
			// only costs a re-download on the next run.
			log.Printf("failed to record %s in catalog: %v", episode.EpisodeID, err)
		}
	}
	return result
}
