package load

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kestrelworks/tsmod/internal/table"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	return hasSuffixFold(filename, ".csv") || hasSuffixFold(filename, ".tsv") || hasSuffixFold(filename, ".txt")
}

func (csvReader) Read(path string, opt Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table.New()
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, append([]string(nil), rec...))
	}
	return buildTable(header, rows)
}

// sniffDelimiter guesses from the extension only, so the file is read once.
func sniffDelimiter(path string) rune {
	if hasSuffixFold(path, ".tsv") {
		return '\t'
	}
	return ','
}

// WriteCSV serializes a table: header row first, integers without decimal
// points, missing cells empty, text cells verbatim.
func WriteCSV(path string, t *table.Table, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if delimiter != 0 {
		w.Comma = delimiter
	}
	if err := w.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		for j := range t.Columns {
			rec[j] = t.Columns[j].CellString(i)
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}
