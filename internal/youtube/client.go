// ABOUTME: Wrapper around the kkdai youtube client
// ABOUTME: Video metadata, caption track download, and audio download
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	ytdl "github.com/kkdai/youtube/v2"
)

// ErrNoCaptions is returned when a video has no caption track in the
// requested language.
var ErrNoCaptions = errors.New("no caption track in requested language")

// ErrNoAudioFormat is returned when a video exposes no usable audio-only
// stream.
var ErrNoAudioFormat = errors.New("no suitable audio format")

// Client fetches video metadata, captions, and audio from YouTube.
type Client struct {
	yt         *ytdl.Client
	httpClient *http.Client
}

// NewClient creates a Client.
func NewClient() *Client {
	return &Client{
		yt:         &ytdl.Client{},
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Metadata fetches video metadata (title, formats, caption tracks).
func (c *Client) Metadata(ctx context.Context, videoID string) (*ytdl.Video, error) {
	video, err := c.yt.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %s: %w", videoID, err)
	}
	return video, nil
}

// FindCaptionTrack returns the caption track for lang, preferring
// manually created tracks over auto-generated ("asr") ones. Language
// codes are matched by prefix so "ro" also matches "ro-RO".
func FindCaptionTrack(video *ytdl.Video, lang string) (*ytdl.CaptionTrack, bool) {
	var auto *ytdl.CaptionTrack
	for i := range video.CaptionTracks {
		track := &video.CaptionTracks[i]
		if !strings.HasPrefix(track.LanguageCode, lang) {
			continue
		}
		if track.Kind != "asr" {
			return track, true
		}
		if auto == nil {
			auto = track
		}
	}
	if auto != nil {
		return auto, true
	}
	return nil, false
}

// CaptionText downloads and decodes the caption track for lang.
func (c *Client) CaptionText(ctx context.Context, video *ytdl.Video, lang string) (string, error) {
	track, ok := FindCaptionTrack(video, lang)
	if !ok {
		return "", fmt.Errorf("video %s: %w", video.ID, ErrNoCaptions)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return "", fmt.Errorf("building caption request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading captions for %s: %w", video.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading captions for %s: status %d", video.ID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading caption body: %w", err)
	}

	return DecodeTimedtext(data)
}

// DownloadAudio saves the best audio-only stream of video into dir and
// returns the file path. Preference order: webm/opus, then any webm,
// then mp4 audio. The file is retained after processing for inspection.
func (c *Client) DownloadAudio(ctx context.Context, video *ytdl.Video, dir string) (string, error) {
	format := pickAudioFormat(video)
	if format == nil {
		return "", fmt.Errorf("video %s: %w", video.ID, ErrNoAudioFormat)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating audio dir: %w", err)
	}

	stream, _, err := c.yt.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("opening audio stream for %s: %w", video.ID, err)
	}
	defer stream.Close()

	path := filepath.Join(dir, video.ID+audioExtension(format.MimeType))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating audio file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, stream); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("downloading audio for %s: %w", video.ID, err)
	}
	return path, nil
}

func pickAudioFormat(video *ytdl.Video) *ytdl.Format {
	var chosen *ytdl.Format
	for i := range video.Formats {
		format := &video.Formats[i]
		switch {
		case strings.HasPrefix(format.MimeType, "audio/webm; codecs=\"opus\""):
			return format
		case strings.HasPrefix(format.MimeType, "audio/webm") && chosen == nil:
			chosen = format
		case strings.HasPrefix(format.MimeType, "audio/mp4") && chosen == nil:
			chosen = format
		}
	}
	return chosen
}

func audioExtension(mimeType string) string {
	if strings.HasPrefix(mimeType, "audio/webm") {
		return ".webm"
	}
	return ".m4a"
}
