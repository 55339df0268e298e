// ABOUTME: CLI command to list processed episodes from the catalog
// ABOUTME: Shows the catalog table or one episode's chunk breakdown
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/banciu/internal/config"
	"github.com/harper/banciu/internal/store"
	"github.com/harper/banciu/internal/store/catalog"
)

var (
	listEpisodeID string
	listCatalog   string
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processed episodes",
		Long: `List episodes recorded in the catalog, or show the chunk
breakdown of a single episode.

Examples:
  banciu list
  banciu list --episode dQw4w9WgXcQ
  banciu list --catalog episodes/catalog.db`,
		RunE: runList,
	}

	cmd.Flags().StringVar(&listEpisodeID, "episode", "", "Show details for one episode ID")
	cmd.Flags().StringVar(&listCatalog, "catalog", "", "Path to the catalog database")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if listCatalog != "" {
		cfg.CatalogPath = listCatalog
	}

	db, err := catalog.Open(catalogPath(cfg))
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = db.Close() }()
	cat := catalog.New(db)

	if listEpisodeID != "" {
		return showEpisode(cmd, cat, listEpisodeID)
	}

	entries, err := cat.ListEpisodes()
	if err != nil {
		return fmt.Errorf("listing episodes: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No processed episodes found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DATE\tEPISODE ID\tSOURCE\tCHUNKS\tOUTPUT\n")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.EpisodeDate, e.EpisodeID, e.TranscriptSource, e.NumChunks, e.OutputPath)
	}
	w.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d episode(s)\n", len(entries))
	return nil
}

// showEpisode prints one catalog entry plus the chunk sizes from its
// JSON file on disk.
func showEpisode(cmd *cobra.Command, cat *catalog.Catalog, episodeID string) error {
	entry, err := cat.GetEpisode(episodeID)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("episode %s is not in the catalog", episodeID)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Episode: %s\n", entry.EpisodeID)
	fmt.Fprintf(out, "Title:   %s\n", entry.Title)
	fmt.Fprintf(out, "Date:    %s\n", entry.EpisodeDate)
	fmt.Fprintf(out, "URL:     %s\n", entry.URL)
	fmt.Fprintf(out, "Source:  %s\n", entry.TranscriptSource)

	ep, err := store.ReadEpisode(entry.OutputPath)
	if err != nil {
		return fmt.Errorf("reading episode file: %w", err)
	}
	fmt.Fprintf(out, "Text:    %d characters in %d chunks\n", ep.RawTextLength, ep.NumChunks)
	for _, ch := range ep.Chunks {
		fmt.Fprintf(out, "  chunk %d: %d words\n", ch.ChunkIndex, ch.ApproxWordCount)
	}
	return nil
}
