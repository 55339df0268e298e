// ABOUTME: Episode discovery by Romanian broadcast date
// ABOUTME: Builds search queries per date and filters candidates by title
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/harper/banciu/internal/models"
	"github.com/harper/banciu/internal/rodate"
	"github.com/harper/banciu/internal/youtube"
)

// Searcher finds candidate videos for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]youtube.SearchResult, error)
}

// Finder resolves Romanian date strings to video records.
type Finder struct {
	searcher Searcher
	prefixes []string
	limit    int
}

// NewFinder creates a Finder using the given title prefixes for query
// building and candidate filtering.
func NewFinder(searcher Searcher, prefixes []string, limit int) *Finder {
	return &Finder{searcher: searcher, prefixes: prefixes, limit: limit}
}

// FindForDates resolves each date string for the given year. Dates that
// fail to parse or turn up no episode are logged and skipped; the
// returned records are deduplicated by URL across dates.
func (f *Finder) FindForDates(ctx context.Context, dates []string, year int) ([]models.VideoRecord, error) {
	var records []models.VideoRecord
	seen := make(map[string]bool)

	for _, dateStr := range dates {
		date, err := rodate.Parse(dateStr, year)
		if err != nil {
			log.Printf("skipping date %q: %v", dateStr, err)
			continue
		}

		recs, err := f.FindForDate(ctx, dateStr, date)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			log.Printf("no episode for %q: %v", dateStr, err)
			continue
		}
		for _, rec := range recs {
			if seen[rec.URL] {
				continue
			}
			seen[rec.URL] = true
			records = append(records, rec)
		}
	}
	return records, nil
}

// FindForDate searches for episodes broadcast on the given date. The raw
// date string is the one viewers see in titles, so it drives the queries.
func (f *Finder) FindForDate(ctx context.Context, dateStr string, date time.Time) ([]models.VideoRecord, error) {
	var records []models.VideoRecord
	seen := make(map[string]bool)

	for _, query := range f.queries(dateStr) {
		results, err := f.searcher.Search(ctx, query, f.limit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			log.Printf("search %q failed: %v", query, err)
			continue
		}
		for _, res := range results {
			if !f.titleMatches(res.Title, dateStr) {
				continue
			}
			url := res.URL()
			if seen[url] {
				continue
			}
			seen[url] = true
			records = append(records, models.VideoRecord{
				URL:   url,
				Title: res.Title,
				Date:  date,
			})
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no matching video for %q", dateStr)
	}
	return records, nil
}

// queries builds the search query variants for a date string, mirroring
// how episode titles are actually written on the channel.
func (f *Finder) queries(dateStr string) []string {
	var queries []string
	for _, prefix := range f.prefixes {
		queries = append(queries,
			prefix+" - "+dateStr,
			prefix+" "+dateStr,
		)
	}
	return queries
}

// titleMatches accepts a candidate whose title carries both a known
// show prefix and the date string, case-insensitively.
func (f *Finder) titleMatches(title, dateStr string) bool {
	lower := strings.ToLower(title)
	if !strings.Contains(lower, strings.ToLower(dateStr)) {
		return false
	}
	for _, prefix := range f.prefixes {
		if strings.Contains(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}
