// ABOUTME: Caption-based transcript source
// ABOUTME: Downloads the video's caption track in the target language
package transcript

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/harper/banciu/internal/models"
	"github.com/harper/banciu/internal/youtube"
)

// CaptionSource obtains transcripts from YouTube caption tracks.
type CaptionSource struct {
	client  *youtube.Client
	lang    string
	workDir string
}

// NewCaptionSource creates a CaptionSource for the given language. When
// workDir is non-empty, the downloaded caption text is also saved there
// for later inspection.
func NewCaptionSource(client *youtube.Client, lang, workDir string) *CaptionSource {
	return &CaptionSource{client: client, lang: lang, workDir: workDir}
}

// Name implements Source.
func (s *CaptionSource) Name() string { return "captions" }

// Fetch implements Source.
func (s *CaptionSource) Fetch(ctx context.Context, rec models.VideoRecord) (string, error) {
	videoID, err := youtube.ExtractVideoID(rec.URL)
	if err != nil {
		return "", err
	}

	video, err := s.client.Metadata(ctx, videoID)
	if err != nil {
		return "", err
	}

	text, err := s.client.CaptionText(ctx, video, s.lang)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("video %s: caption track is empty", videoID)
	}

	s.saveArtifact(videoID, text)
	return text, nil
}

// saveArtifact keeps a copy of the raw caption text on disk. Failures
// here are logged and do not fail the fetch.
func (s *CaptionSource) saveArtifact(videoID, text string) {
	if s.workDir == "" {
		return
	}
	if err := os.MkdirAll(s.workDir, 0755); err != nil {
		log.Printf("saving captions for %s: %v", videoID, err)
		return
	}
	path := filepath.Join(s.workDir, videoID+"."+s.lang+".txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		log.Printf("saving captions for %s: %v", videoID, err)
	}
}
