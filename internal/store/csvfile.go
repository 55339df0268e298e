// ABOUTME: CSV video table reader and writer
// ABOUTME: The url,title,date table links the fetch and process commands
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/harper/banciu/internal/models"
)

var videoTableHeader = []string{"url", "title", "date"}

// dateLayouts are accepted on read. Records are always written in ISO
// form; the extra layouts tolerate hand-edited tables.
var dateLayouts = []string{"2006-01-02", "02.01.2006", "2.1.2006"}

// WriteVideoTable writes records as a CSV file with a header row.
func WriteVideoTable(path string, records []models.VideoRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating video table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(videoTableHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write([]string{rec.URL, rec.Title, rec.DateISO()}); err != nil {
			return fmt.Errorf("writing row for %s: %w", rec.URL, err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadVideoTable loads the video table. Rows with missing fields or an
// unparseable date are skipped with a log line; the returned count says
// how many were dropped. A missing or wrong header is an error.
func ReadVideoTable(path string) ([]models.VideoRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening video table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, 0, err
	}

	var records []models.VideoRecord
	skipped := 0
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading row %d: %w", line, err)
		}

		rec, err := parseRow(row)
		if err != nil {
			log.Printf("skipping row %d: %v", line, err)
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func checkHeader(header []string) error {
	if len(header) < len(videoTableHeader) {
		return fmt.Errorf("header %v: want columns %v", header, videoTableHeader)
	}
	for i, want := range videoTableHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("header column %d is %q, want %q", i, header[i], want)
		}
	}
	return nil
}

func parseRow(row []string) (models.VideoRecord, error) {
	if len(row) < 3 {
		return models.VideoRecord{}, fmt.Errorf("row has %d fields, want 3", len(row))
	}

	url := strings.TrimSpace(row[0])
	title := strings.TrimSpace(row[1])
	dateStr := strings.TrimSpace(row[2])
	if url == "" || title == "" || dateStr == "" {
		return models.VideoRecord{}, fmt.Errorf("row %v has empty fields", row)
	}

	var date time.Time
	var err error
	for _, layout := range dateLayouts {
		if date, err = time.Parse(layout, dateStr); err == nil {
			return models.VideoRecord{URL: url, Title: title, Date: date}, nil
		}
	}
	return models.VideoRecord{}, fmt.Errorf("unparseable date %q", dateStr)
}
