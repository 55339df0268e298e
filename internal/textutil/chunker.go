// ABOUTME: Sentence-aligned overlapping chunker for transcript text
// ABOUTME: Produces word-count-bounded chunks for the embedding pipeline
package textutil

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harper/banciu/internal/models"
)

const (
	// DefaultTargetWords is the soft upper bound on words per chunk.
	DefaultTargetWords = 1200
	// DefaultOverlapWords is the minimum word overlap between chunks.
	DefaultOverlapWords = 100
	// DefaultBoundaryUppercase is the upper-case letter class that may
	// start a sentence. Covers ASCII plus Romanian diacritics, including
	// the legacy cedilla forms found in older subtitle tracks.
	DefaultBoundaryUppercase = `A-ZĂÂÎȘȚŞŢ`
)

// ChunkConfig controls how transcripts are split.
type ChunkConfig struct {
	// TargetWords bounds the words per chunk; a chunk closes before a
	// sentence that would push it past this count.
	TargetWords int
	// OverlapWords is the minimum number of words repeated at the start
	// of each chunk from the end of the previous one.
	OverlapWords int
	// BoundaryUppercase is the character class of letters that may begin
	// a sentence after terminal punctuation. The sentence boundary rule
	// is heuristic and language-dependent, so it is configurable rather
	// than hard-coded.
	BoundaryUppercase string
}

// DefaultChunkConfig returns the production chunking parameters.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		TargetWords:       DefaultTargetWords,
		OverlapWords:      DefaultOverlapWords,
		BoundaryUppercase: DefaultBoundaryUppercase,
	}
}

// Validate rejects chunking parameters that cannot produce a valid split.
func (c ChunkConfig) Validate() error {
	if c.TargetWords <= 0 {
		return fmt.Errorf("target word count must be positive, got %d", c.TargetWords)
	}
	if c.OverlapWords < 0 {
		return fmt.Errorf("overlap words must be non-negative, got %d", c.OverlapWords)
	}
	if c.OverlapWords >= c.TargetWords {
		return fmt.Errorf("overlap words (%d) must be less than target word count (%d)",
			c.OverlapWords, c.TargetWords)
	}
	return nil
}

// Chunker splits cleaned text into overlapping, sentence-aligned chunks.
// It performs no I/O and is safe for concurrent use.
type Chunker struct {
	cfg      ChunkConfig
	boundary *regexp.Regexp
}

// NewChunker validates cfg and compiles the sentence boundary pattern.
func NewChunker(cfg ChunkConfig) (*Chunker, error) {
	if cfg.BoundaryUppercase == "" {
		cfg.BoundaryUppercase = DefaultBoundaryUppercase
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// A sentence ends at . ! or ? followed by whitespace and an
	// upper-case letter. Go's regexp has no lookaround, so the pattern
	// captures the terminal punctuation and the following letter and the
	// split points are taken from the submatch indexes.
	re, err := regexp.Compile(`([.!?])\s+([` + cfg.BoundaryUppercase + `])`)
	if err != nil {
		return nil, fmt.Errorf("invalid sentence boundary class %q: %w", cfg.BoundaryUppercase, err)
	}
	return &Chunker{cfg: cfg, boundary: re}, nil
}

// Config returns the configuration the chunker was built with.
func (ck *Chunker) Config() ChunkConfig {
	return ck.cfg
}

// Split divides text into chunks of at most TargetWords words each,
// never breaking a sentence across a chunk boundary; only a single
// sentence longer than the target can exceed it. Adjacent chunks share
// at least OverlapWords words of trailing sentences. Empty input yields
// no chunks.
func (ck *Chunker) Split(text string) []models.Chunk {
	sentences := ck.Sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	words := make([]int, len(sentences))
	for i, s := range sentences {
		words[i] = len(strings.Fields(s))
	}

	var chunks []models.Chunk
	var cur []int // sentence indexes in the open chunk
	curWords := 0

	emit := func() {
		parts := make([]string, len(cur))
		total := 0
		for i, idx := range cur {
			parts[i] = sentences[idx]
			total += words[idx]
		}
		chunks = append(chunks, models.Chunk{
			ChunkIndex:      len(chunks),
			Text:            strings.Join(parts, " "),
			ApproxWordCount: total,
		})
	}

	for next := 0; next < len(sentences); next++ {
		// A sentence that would push the open chunk past the target
		// closes it first and goes into the next chunk instead. A lone
		// sentence above the target still goes out whole, since
		// sentences are never split.
		if len(cur) > 0 && curWords+words[next] > ck.cfg.TargetWords {
			emit()

			// Seed the next chunk by walking backward whole sentences
			// until the overlap is covered or the chunk start is
			// reached. Chunk starts therefore always fall on sentence
			// boundaries.
			seedWords := 0
			j := len(cur)
			for j > 0 && seedWords < ck.cfg.OverlapWords {
				j--
				seedWords += words[cur[j]]
			}
			cur = append([]int(nil), cur[j:]...)
			curWords = seedWords
		}

		cur = append(cur, next)
		curWords += words[next]
	}

	if len(cur) > 0 {
		emit()
	}
	return chunks
}

// Sentences splits text on the boundary rule. The heuristic does not try
// to handle abbreviations; occasional imperfect splits are acceptable
// noise for chunking purposes.
func (ck *Chunker) Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, m := range ck.boundary.FindAllStringSubmatchIndex(text, -1) {
		// m[3] is the end of the terminal punctuation, m[4] the start of
		// the upper-case letter opening the next sentence.
		sentences = append(sentences, strings.TrimSpace(text[start:m[3]]))
		start = m[4]
	}
	sentences = append(sentences, strings.TrimSpace(text[start:]))
	return sentences
}
