package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caawww/data-vis/models"
)

// CSVReader reads the raw Steam games export. Columns are matched by
// header name, so extra columns and any column order are accepted.
type CSVReader struct {
	path string
}

// NewCSVReader returns a reader for the file at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// ReadRaw reads every data row. The AppID column is required; other
// missing columns read as empty strings.
func (c *CSVReader) ReadRaw() ([]*models.RawGame, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()
	return readRaw(f)
}

func readRaw(src io.Reader) ([]*models.RawGame, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		index[h] = i
	}
	if _, ok := index[colAppID]; !ok {
		return nil, fmt.Errorf("csv: header has no %q column", colAppID)
	}

	var games []*models.RawGame
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		g := &models.RawGame{}
		for column, i := range index {
			if i >= len(rec) {
				continue
			}
			if field := rawField(g, column); field != nil {
				*field = rec[i]
			}
		}
		games = append(games, g)
	}
	return games, nil
}
