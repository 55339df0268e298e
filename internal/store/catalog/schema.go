// ABOUTME: SQLite schema for the episode catalog
// ABOUTME: Tracks processed episodes and pipeline run summaries
package catalog

// Schema contains all SQL statements for catalog initialization
const Schema = `
-- Episodes that have been processed and written to disk
CREATE TABLE IF NOT EXISTS episodes (
    episode_id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    title TEXT,
    episode_date TEXT,
    transcript_source TEXT,
    num_chunks INTEGER DEFAULT 0,
    output_path TEXT,
    processed_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per process invocation
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    finished_at DATETIME,
    succeeded INTEGER DEFAULT 0,
    failed INTEGER DEFAULT 0,
    skipped INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_episodes_url ON episodes(url);
CREATE INDEX IF NOT EXISTS idx_episodes_date ON episodes(episode_date);
`
