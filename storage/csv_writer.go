package storage

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/caawww/data-vis/models"
)

// CSVWriter writes a cleaned catalog back out in the export's column layout,
// so the file can be read again by CSVReader. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(catalogColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per game.
func (c *CSVWriter) Write(_ context.Context, games []*models.Game) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, g := range games {
		year := ""
		if g.ReleaseYear.Valid {
			year = strconv.FormatInt(g.ReleaseYear.Int64, 10)
		}
		row := []string{
			strconv.FormatInt(g.AppID, 10),
			g.Name,
			year,
			g.EstimatedOwners,
			formatNull(g.PeakCCU),
			formatNull(g.RequiredAge),
			formatNull(g.Price),
			formatNull(g.DLCCount),
			formatNull(g.Positive),
			formatNull(g.Negative),
			formatNull(g.Achievements),
			formatNull(g.AvgPlaytime),
			formatNull(g.MedianPlaytime),
			g.Categories,
			g.Genres,
			g.Tags,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row %d: %w", g.AppID, err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func formatNull(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}
