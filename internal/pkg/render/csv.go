package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSV writes headers followed by rows. Every row must have len(headers) cells.
func CSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("csv row %d has %d cells, want %d", i, len(row), len(headers))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
