// ABOUTME: CLI command to find episode videos by broadcast date
// ABOUTME: Searches per-date queries and writes the url,title,date CSV table
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/banciu/internal/config"
	"github.com/harper/banciu/internal/pipeline"
	"github.com/harper/banciu/internal/store"
	"github.com/harper/banciu/internal/youtube"
)

// defaultDates is the broadcast season the corpus was first built around.
var defaultDates = []string{
	"5 Decembrie",
	"27 Noiembrie",
	"25 Noiembrie",
	"17 Noiembrie",
	"11 Noiembrie",
	"3 Noiembrie",
	"31 Octombrie",
	"29 Octombrie",
	"22 Octombrie",
	"16 Octombrie",
	"14 Octombrie",
	"11 Octombrie",
	"9 Octombrie",
	"17 Septembrie",
}

var (
	fetchDates       []string
	fetchUseDefaults bool
	fetchYear        int
	fetchOutputFile  string
)

// NewFetchCmd creates the fetch command
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Find episode videos for Romanian broadcast dates",
		Long: `Find episode videos for a list of Romanian date strings and write
them to a CSV table with url, title, and date columns.

Examples:
  banciu fetch --dates "23 Septembrie" --dates "9 Octombrie"
  banciu fetch --use-default-dates --year 2024
  banciu fetch --dates "5 Decembrie" --output-file episodes.csv`,
		RunE: runFetch,
	}

	cmd.Flags().StringArrayVar(&fetchDates, "dates", nil, `Romanian date strings like "23 Septembrie" (repeatable)`)
	cmd.Flags().BoolVar(&fetchUseDefaults, "use-default-dates", false, "Use the built-in date list")
	cmd.Flags().IntVar(&fetchYear, "year", 2024, "Year the dates belong to")
	cmd.Flags().StringVar(&fetchOutputFile, "output-file", "banciu_videos.csv", "Path of the CSV table to write")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dates := fetchDates
	if fetchUseDefaults || len(dates) == 0 {
		dates = defaultDates
		fmt.Fprintln(cmd.OutOrStdout(), "Using default date list")
	}

	finder := pipeline.NewFinder(youtube.NewSearchClient(), cfg.TitlePrefixes, cfg.SearchLimit)
	records, err := finder.FindForDates(cmd.Context(), dates, fetchYear)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no videos found for any of the %d dates", len(dates))
	}

	if err := store.WriteVideoTable(fetchOutputFile, records); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Found %d videos for %d dates\n", len(records), len(dates))
	fmt.Fprintf(cmd.OutOrStdout(), "Output saved to: %s\n", fetchOutputFile)
	return nil
}
