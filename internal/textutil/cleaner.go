// ABOUTME: Transcript text cleaner for subtitle and Whisper output
// ABOUTME: Strips bracketed annotations and normalizes whitespace
package textutil

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultAnnotationPattern matches the non-speech markers YouTube captions
// and Whisper insert, in both English and Romanian.
const DefaultAnnotationPattern = `(?i)\[\s*(music|applause|laughter|muzic[ăa]|aplauze|r[âa]sete)\s*\]`

var whitespaceRun = regexp.MustCompile(`\s+`)

// Cleaner normalizes raw transcript text. It has no state beyond the
// compiled annotation pattern and is safe for concurrent use.
type Cleaner struct {
	annotation *regexp.Regexp
}

// NewCleaner compiles the annotation-removal pattern. An empty pattern
// selects DefaultAnnotationPattern.
func NewCleaner(pattern string) (*Cleaner, error) {
	if pattern == "" {
		pattern = DefaultAnnotationPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid annotation pattern %q: %w", pattern, err)
	}
	return &Cleaner{annotation: re}, nil
}

// Clean removes annotations, collapses whitespace runs (including
// newlines) to single spaces, and trims. Cleaning already-clean text
// returns it unchanged.
func (c *Cleaner) Clean(text string) string {
	text = c.annotation.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
