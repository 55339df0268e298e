// ABOUTME: Tests for the per-video processing pipeline
// ABOUTME: Uses fake fetchers and catalogs against real cleaning and chunking
package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/banciu/internal/models"
	"github.com/harper/banciu/internal/store"
	"github.com/harper/banciu/internal/store/catalog"
	"github.com/harper/banciu/internal/textutil"
)

type fakeFetcher struct {
	texts map[string]string // keyed by URL
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, rec models.VideoRecord) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	text, ok := f.texts[rec.URL]
	if !ok {
		return "", "", errors.New("no transcript")
	}
	return text, "captions", nil
}

type fakeCatalog struct {
	seen    map[string]bool
	entries []catalog.Entry
}

func (f *fakeCatalog) Seen(episodeID string) (bool, error) {
	return f.seen[episodeID], nil
}

func (f *fakeCatalog) RecordEpisode(e catalog.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func videoRecord(id string) models.VideoRecord {
	return models.VideoRecord{
		URL:   "https://www.youtube.com/watch?v=" + id,
		Title: "Prea Mult Banciu - 23 Septembrie",
		Date:  time.Date(2024, 9, 23, 0, 0, 0, 0, time.UTC),
	}
}

func testProcessor(t *testing.T, cfg ProcessorConfig) *Processor {
	t.Helper()
	if cfg.Cleaner == nil {
		cleaner, err := textutil.NewCleaner("")
		if err != nil {
			t.Fatal(err)
		}
		cfg.Cleaner = cleaner
	}
	if cfg.Chunker == nil {
		chunker, err := textutil.NewChunker(textutil.DefaultChunkConfig())
		if err != nil {
			t.Fatal(err)
		}
		cfg.Chunker = chunker
	}
	p, err := NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}
	return p
}

func TestProcess_WritesEpisodeAndRecordsCatalog(t *testing.T) {
	dir := t.TempDir()
	rec := videoRecord("aaaaaaaaaaa")
	fetcher := &fakeFetcher{texts: map[string]string{
		rec.URL: "Bună seara. [aplauze] Acesta este un episod de test.",
	}}
	cat := &fakeCatalog{seen: map[string]bool{}}
	p := testProcessor(t, ProcessorConfig{Fetcher: fetcher, Catalog: cat, OutputDir: dir})

	summary, err := p.Process(context.Background(), []models.VideoRecord{rec})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summary.Succeeded != 1 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Errorf("summary = %+v", summary)
	}

	ep, err := store.ReadEpisode(filepath.Join(dir, "aaaaaaaaaaa.json"))
	if err != nil {
		t.Fatalf("ReadEpisode() error = %v", err)
	}
	if ep.EpisodeID != "aaaaaaaaaaa" {
		t.Errorf("EpisodeID = %s", ep.EpisodeID)
	}
	if ep.NumChunks != 1 || len(ep.Chunks) != 1 {
		t.Errorf("NumChunks = %d", ep.NumChunks)
	}
	// The annotation must be gone from the stored chunk text.
	if got := ep.Chunks[0].Text; got != "Bună seara. Acesta este un episod de test." {
		t.Errorf("chunk text = %q", got)
	}

	if len(cat.entries) != 1 {
		t.Fatalf("catalog entries = %d, want 1", len(cat.entries))
	}
	e := cat.entries[0]
	if e.EpisodeID != "aaaaaaaaaaa" || e.TranscriptSource != "captions" || e.EpisodeDate != "2024-09-23" {
		t.Errorf("catalog entry = %+v", e)
	}
}

func TestProcess_FailureDoesNotAbortRun(t *testing.T) {
	dir := t.TempDir()
	good := videoRecord("aaaaaaaaaaa")
	bad := videoRecord("bbbbbbbbbbb")
	fetcher := &fakeFetcher{texts: map[string]string{
		good.URL: "Un episod bun cu text suficient.",
	}}
	p := testProcessor(t, ProcessorConfig{Fetcher: fetcher, OutputDir: dir})

	summary, err := p.Process(context.Background(), []models.VideoRecord{bad, good})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Results[0].Err == nil {
		t.Error("first result should carry the fetch error")
	}
	if _, err := store.ReadEpisode(filepath.Join(dir, "aaaaaaaaaaa.json")); err != nil {
		t.Errorf("good episode should still be written: %v", err)
	}
}

func TestProcess_SkipsSeenEpisodes(t *testing.T) {
	rec := videoRecord("aaaaaaaaaaa")
	fetcher := &fakeFetcher{texts: map[string]string{rec.URL: "Text."}}
	cat := &fakeCatalog{seen: map[string]bool{"aaaaaaaaaaa": true}}
	p := testProcessor(t, ProcessorConfig{Fetcher: fetcher, Catalog: cat, OutputDir: t.TempDir()})

	summary, err := p.Process(context.Background(), []models.VideoRecord{rec})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summary.Skipped != 1 || summary.Succeeded != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if fetcher.calls != 0 {
		t.Error("fetcher should not run for a seen episode")
	}
}

func TestProcess_ForceReprocessesSeenEpisodes(t *testing.T) {
	rec := videoRecord("aaaaaaaaaaa")
	fetcher := &fakeFetcher{texts: map[string]string{rec.URL: "Text nou."}}
	cat := &fakeCatalog{seen: map[string]bool{"aaaaaaaaaaa": true}}
	p := testProcessor(t, ProcessorConfig{
		Fetcher: fetcher, Catalog: cat, OutputDir: t.TempDir(), Force: true,
	})

	summary, err := p.Process(context.Background(), []models.VideoRecord{rec})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summary.Succeeded != 1 || summary.Skipped != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}
}

func TestProcess_MaxVideosLimit(t *testing.T) {
	records := []models.VideoRecord{
		videoRecord("aaaaaaaaaaa"),
		videoRecord("bbbbbbbbbbb"),
		videoRecord("ccccccccccc"),
	}
	texts := map[string]string{}
	for _, r := range records {
		texts[r.URL] = "Câteva cuvinte de test."
	}
	fetcher := &fakeFetcher{texts: texts}
	p := testProcessor(t, ProcessorConfig{Fetcher: fetcher, OutputDir: t.TempDir(), MaxVideos: 2})

	summary, err := p.Process(context.Background(), records)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summary.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", summary.Succeeded)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", fetcher.calls)
	}
}

func TestProcess_EmptyTranscriptFails(t *testing.T) {
	rec := videoRecord("aaaaaaaaaaa")
	fetcher := &fakeFetcher{texts: map[string]string{rec.URL: "[muzică]  [aplauze]"}}
	p := testProcessor(t, ProcessorConfig{Fetcher: fetcher, OutputDir: t.TempDir()})

	summary, err := p.Process(context.Background(), []models.VideoRecord{rec})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher := &fakeFetcher{}
	p := testProcessor(t, ProcessorConfig{Fetcher: fetcher, OutputDir: t.TempDir()})

	_, err := p.Process(ctx, []models.VideoRecord{videoRecord("aaaaaaaaaaa")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Process() error = %v, want context.Canceled", err)
	}
	if fetcher.calls != 0 {
		t.Error("no video should be processed after cancellation")
	}
}

func TestNewProcessor_Validation(t *testing.T) {
	cleaner, _ := textutil.NewCleaner("")
	chunker, _ := textutil.NewChunker(textutil.DefaultChunkConfig())
	fetcher := &fakeFetcher{}

	tests := []struct {
		name string
		cfg  ProcessorConfig
	}{
		{"missing fetcher", ProcessorConfig{Cleaner: cleaner, Chunker: chunker, OutputDir: "out"}},
		{"missing cleaner", ProcessorConfig{Fetcher: fetcher, Chunker: chunker, OutputDir: "out"}},
		{"missing output dir", ProcessorConfig{Fetcher: fetcher, Cleaner: cleaner, Chunker: chunker}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewProcessor(tt.cfg); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
