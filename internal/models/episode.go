// ABOUTME: Episode data structures for the transcript ingestion pipeline
// ABOUTME: VideoRecord in, chunked EpisodeOutput JSON out
package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// VideoRecord is one row of the video table produced by fetch.
type VideoRecord struct {
	URL   string
	Title string
	Date  time.Time
}

// DateISO returns the record date as YYYY-MM-DD.
func (r VideoRecord) DateISO() string {
	return r.Date.Format("2006-01-02")
}

// Chunk is a sentence-aligned excerpt of a cleaned transcript.
type Chunk struct {
	ChunkIndex      int    `json:"chunk_index"`
	Text            string `json:"text"`
	ApproxWordCount int    `json:"approx_word_count"`
}

// EpisodeOutput is the per-video JSON document written by process.
// Written once per video; never mutated afterwards.
type EpisodeOutput struct {
	EpisodeID     string  `json:"episode_id"`
	YouTubeURL    string  `json:"youtube_url"`
	Title         string  `json:"title"`
	Date          string  `json:"date"`
	RawTextLength int     `json:"raw_text_length"`
	NumChunks     int     `json:"num_chunks"`
	Chunks        []Chunk `json:"chunks"`
}

// NewEpisodeOutput assembles an EpisodeOutput from a processed video.
// videoID may be empty, in which case the episode ID falls back to a
// slug of title and date.
func NewEpisodeOutput(rec VideoRecord, videoID, cleanedText string, chunks []Chunk) *EpisodeOutput {
	id := videoID
	if id == "" {
		id = Slugify(rec.Title + "_" + rec.DateISO())
	}
	if chunks == nil {
		chunks = []Chunk{}
	}
	return &EpisodeOutput{
		EpisodeID:     id,
		YouTubeURL:    rec.URL,
		Title:         rec.Title,
		Date:          rec.DateISO(),
		// Character count, not bytes: transcripts are full of multi-byte
		// diacritics.
		RawTextLength: utf8.RuneCountInString(cleanedText),
		NumChunks:     len(chunks),
		Chunks:        chunks,
	}
}

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify lowercases s and reduces it to letters, digits, and hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
