// ABOUTME: TranscriptSource abstraction with fallback chaining
// ABOUTME: Captions are preferred; speech-to-text is the fallback
package transcript

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/harper/banciu/internal/models"
)

// ErrUnavailable is returned when every source in a chain failed for a
// video. Callers treat it as a per-video failure, not a batch failure.
var ErrUnavailable = errors.New("transcript unavailable from all sources")

// Source obtains a raw transcript for one video.
type Source interface {
	// Name identifies the source in logs and the episode catalog.
	Name() string
	// Fetch returns the raw transcript text for the video.
	Fetch(ctx context.Context, rec models.VideoRecord) (string, error)
}

// Chain tries sources in order and returns the first transcript obtained,
// along with the name of the source that produced it.
type Chain struct {
	sources []Source
}

// NewChain creates a Chain over the given sources.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Fetch walks the chain. Each source failure is logged and the next
// source is tried; when all fail the error wraps ErrUnavailable.
func (c *Chain) Fetch(ctx context.Context, rec models.VideoRecord) (string, string, error) {
	if len(c.sources) == 0 {
		return "", "", fmt.Errorf("%w: no sources configured", ErrUnavailable)
	}

	var attempts []string
	for _, src := range c.sources {
		text, err := src.Fetch(ctx, rec)
		if err == nil {
			return text, src.Name(), nil
		}
		log.Printf("source %s failed for %s: %v", src.Name(), rec.URL, err)
		attempts = append(attempts, fmt.Sprintf("%s: %v", src.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", "", fmt.Errorf("%w (%s)", ErrUnavailable, strings.Join(attempts, "; "))
}
