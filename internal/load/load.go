// Package load is the file collaborator around the core: it materializes a
// table.Table from CSV/TSV or XLSX input and serializes a Table back to CSV.
// Readers register themselves by extension; the core never touches a file.
package load

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kestrelworks/tsmod/internal/table"
)

// Options controls reading behavior.
type Options struct {
	// Delimiter for CSV. If 0, sniffed from the extension (.tsv -> tab).
	Delimiter rune
	// SheetName selects an XLSX sheet by name; empty means by index.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet index; <=0 means the first sheet.
	SheetIndex int
}

// Reader reads one file format into a Table.
type Reader interface {
	CanRead(filename string) bool
	Read(path string, opt Options) (*table.Table, error)
}

var registry []Reader

// Register adds a reader implementation.
func Register(r Reader) { registry = append(registry, r) }

// Read picks a reader by filename and materializes the table.
func Read(path string, opt Options) (*table.Table, error) {
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, opt)
		}
	}
	return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

func hasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), suffix)
}
