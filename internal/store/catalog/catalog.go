// ABOUTME: Catalog operations for processed episodes and pipeline runs
// ABOUTME: Backs the skip-already-processed behavior of the process command
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry records one processed episode.
type Entry struct {
	EpisodeID        string
	URL              string
	Title            string
	EpisodeDate      string
	TranscriptSource string
	NumChunks        int
	OutputPath       string
	ProcessedAt      time.Time
}

// Run records one process invocation and its outcome counts.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  int
	Failed     int
	Skipped    int
}

// Catalog persists episode and run bookkeeping
type Catalog struct {
	db *DB
}

// New creates a Catalog backed by the given database
func New(db *DB) *Catalog {
	return &Catalog{db: db}
}

// RecordEpisode upserts an episode entry. Reprocessing an episode
// replaces the previous row.
func (c *Catalog) RecordEpisode(e Entry) error {
	processedAt := e.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now()
	}

	_, err := c.db.Exec(`
		INSERT INTO episodes (episode_id, url, title, episode_date, transcript_source, num_chunks, output_path, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(episode_id) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			episode_date = excluded.episode_date,
			transcript_source = excluded.transcript_source,
			num_chunks = excluded.num_chunks,
			output_path = excluded.output_path,
			processed_at = excluded.processed_at
	`, e.EpisodeID, e.URL, e.Title, e.EpisodeDate, e.TranscriptSource,
		e.NumChunks, e.OutputPath, processedAt)

	return err
}

// Seen reports whether an episode has already been processed
func (c *Catalog) Seen(episodeID string) (bool, error) {
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM episodes WHERE episode_id = ?`, episodeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetEpisode retrieves an entry by episode ID, or nil if absent
func (c *Catalog) GetEpisode(episodeID string) (*Entry, error) {
	var e Entry
	err := c.db.QueryRow(`
		SELECT episode_id, url, title, episode_date, transcript_source, num_chunks, output_path, processed_at
		FROM episodes
		WHERE episode_id = ?
	`, episodeID).Scan(&e.EpisodeID, &e.URL, &e.Title, &e.EpisodeDate,
		&e.TranscriptSource, &e.NumChunks, &e.OutputPath, &e.ProcessedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEpisodes returns all entries ordered by episode date
func (c *Catalog) ListEpisodes() ([]Entry, error) {
	rows, err := c.db.Query(`
		SELECT episode_id, url, title, episode_date, transcript_source, num_chunks, output_path, processed_at
		FROM episodes
		ORDER BY episode_date, episode_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.EpisodeID, &e.URL, &e.Title, &e.EpisodeDate,
			&e.TranscriptSource, &e.NumChunks, &e.OutputPath, &e.ProcessedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BeginRun inserts a new run row and returns its ID
func (c *Catalog) BeginRun() (string, error) {
	id := uuid.New().String()
	_, err := c.db.Exec(`INSERT INTO runs (id, started_at) VALUES (?, ?)`, id, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to begin run: %w", err)
	}
	return id, nil
}

// EndRun records the outcome counts for a run
func (c *Catalog) EndRun(runID string, succeeded, failed, skipped int) error {
	res, err := c.db.Exec(`
		UPDATE runs SET finished_at = ?, succeeded = ?, failed = ?, skipped = ?
		WHERE id = ?
	`, time.Now(), succeeded, failed, skipped, runID)
	if err != nil {
		return fmt.Errorf("failed to end run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unknown run %s", runID)
	}
	return nil
}

// GetRun retrieves a run by ID, or nil if absent
func (c *Catalog) GetRun(runID string) (*Run, error) {
	var (
		r        Run
		finished sql.NullTime
	)
	err := c.db.QueryRow(`
		SELECT id, started_at, finished_at, succeeded, failed, skipped
		FROM runs
		WHERE id = ?
	`, runID).Scan(&r.ID, &r.StartedAt, &finished, &r.Succeeded, &r.Failed, &r.Skipped)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		r.FinishedAt = finished.Time
	}
	return &r, nil
}
