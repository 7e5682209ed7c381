// Package reader extracts raw rows from source files. It never deletes
// or modifies the files it reads; retirement is the orchestrator's job.
package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/hhernandez/money-review/internal/ledger"
)

// ReadDelimited parses a header-described delimited file into raw
// records keyed by column name. Every column in required must appear in
// the header or the file is rejected with a MalformedFileError.
func ReadDelimited(path string, required []string) ([]ledger.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadDelimited: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("ReadDelimited: read header of %s: %w", path, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedFileError{Path: path, Missing: missing}
	}

	var records []ledger.RawRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadDelimited: read row of %s: %w", path, err)
		}
		rec := make(ledger.RawRecord, len(header))
		for name, i := range col {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
