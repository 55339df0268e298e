// ABOUTME: Whisper speech-to-text transcript source
// ABOUTME: Downloads the audio stream and transcribes it via the OpenAI API
package transcript

import (
	"context"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/banciu/internal/models"
	"github.com/harper/banciu/internal/util"
	"github.com/harper/banciu/internal/youtube"
)

// WhisperConfig holds configuration for the Whisper source.
type WhisperConfig struct {
	APIKey     string
	Model      string
	Language   string
	WorkDir    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// WhisperSource transcribes downloaded audio with the OpenAI audio API.
// It is the fallback when no captions exist in the target language.
type WhisperSource struct {
	client     *openai.Client
	yt         *youtube.Client
	model      string
	lang       string
	workDir    string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewWhisperSource creates a WhisperSource.
func NewWhisperSource(cfg WhisperConfig, yt *youtube.Client) (*WhisperSource, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for Whisper transcription")
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.Whisper1)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &WhisperSource{
		client:     openai.NewClient(cfg.APIKey),
		yt:         yt,
		model:      cfg.Model,
		lang:       cfg.Language,
		workDir:    cfg.WorkDir,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Name implements Source.
func (s *WhisperSource) Name() string { return "whisper" }

// Fetch implements Source. The downloaded audio file is retained in the
// work directory after transcription.
func (s *WhisperSource) Fetch(ctx context.Context, rec models.VideoRecord) (string, error) {
	videoID, err := youtube.ExtractVideoID(rec.URL)
	if err != nil {
		return "", err
	}

	video, err := s.yt.Metadata(ctx, videoID)
	if err != nil {
		return "", err
	}

	audioPath, err := s.yt.DownloadAudio(ctx, video, s.workDir)
	if err != nil {
		return "", err
	}
	log.Printf("downloaded audio for %s: %s", videoID, audioPath)

	return s.transcribe(ctx, audioPath)
}

// transcribe sends the audio file to the API, retrying transient failures
// with exponential backoff.
func (s *WhisperSource) transcribe(ctx context.Context, audioPath string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.Backoff(s.retryDelay, attempt)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := s.client.CreateTranscription(attemptCtx, openai.AudioRequest{
			Model:    s.model,
			FilePath: audioPath,
			Language: s.lang,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if resp.Text == "" {
			lastErr = fmt.Errorf("attempt %d: empty transcription", attempt+1)
			continue
		}
		return resp.Text, nil
	}

	return "", fmt.Errorf("transcription failed after %d attempts: %w", s.maxRetries+1, lastErr)
}
