// Package datasource loads tabular business data into dataset.Table values.
// Loaders live outside the profiler core: the profiler itself performs no
// I/O.
package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/onix-analytics/profiler-engine/pkg/apperrors"
	"github.com/onix-analytics/profiler-engine/pkg/dataset"
)

// ReadCSV parses CSV input into a table. The first record is the header and
// defines column names and order. Empty cells become missing values; all
// other cells stay strings, leaving type inference to the profiler. Ragged
// rows are an error.
func ReadCSV(r io.Reader) (*dataset.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cells := make([][]any, len(header))
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rows+1, err)
		}
		for i, field := range record {
			if field == "" {
				cells[i] = append(cells[i], nil)
			} else {
				cells[i] = append(cells[i], field)
			}
		}
		rows++
	}
	if rows == 0 {
		return nil, apperrors.ErrNoRows
	}

	columns := make([]dataset.Column, 0, len(header))
	for i, name := range header {
		columns = append(columns, dataset.Column{Name: name, Cells: cells[i]})
	}
	return dataset.New(columns...)
}

// ReadCSVFile opens and parses a CSV file.
func ReadCSVFile(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoHeader) || errors.Is(err, apperrors.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return table, nil
}
