package targets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"frontpages-collector/internal/observability"
)

// Reader loads the ordered newspaper list from a CSV file with a header
// row. Over-long names are rejected individually, not fatally.
type Reader struct {
	nameColumn string
	maxNameLen int
	logger     *observability.Logger
}

func NewReader(nameColumn string, maxNameLen int, logger *observability.Logger) *Reader {
	return &Reader{
		nameColumn: nameColumn,
		maxNameLen: maxNameLen,
		logger:     logger,
	}
}

func (r *Reader) Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target list: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			r.logger.Warn("Failed to close target list", "error", closeErr.Error())
		}
	}()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read target list header: %w", err)
	}

	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), r.nameColumn) {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("column %q not found in %s", r.nameColumn, path)
	}

	var names []string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read target list: %w", err)
		}
		if col >= len(record) {
			continue
		}

		name := strings.TrimSpace(record[col])
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > r.maxNameLen {
			r.logger.Warn("Target name too long, skipping",
				"name", name,
				"max_len", r.maxNameLen,
			)
			continue
		}

		names = append(names, name)
	}

	return names, nil
}
