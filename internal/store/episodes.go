// ABOUTME: Episode JSON persistence
// ABOUTME: One immutable file per episode, written atomically
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/banciu/internal/models"
)

// WriteEpisode writes the episode document to <dir>/<episode_id>.json and
// returns the path. The file is written to a temporary name and renamed
// so readers never observe a partial episode.
func WriteEpisode(dir string, ep *models.EpisodeOutput) (string, error) {
	if ep.EpisodeID == "" {
		return "", fmt.Errorf("episode has no ID")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	data, err := json.MarshalIndent(ep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding episode %s: %w", ep.EpisodeID, err)
	}

	path := filepath.Join(dir, ep.EpisodeID+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("writing episode %s: %w", ep.EpisodeID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalizing episode %s: %w", ep.EpisodeID, err)
	}
	return path, nil
}

// ReadEpisode loads an episode document from disk.
func ReadEpisode(path string) (*models.EpisodeOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading episode: %w", err)
	}
	var ep models.EpisodeOutput
	if err := json.Unmarshal(data, &ep); err != nil {
		return nil, fmt.Errorf("decoding episode %s: %w", path, err)
	}
	return &ep, nil
}
