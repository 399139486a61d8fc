package load

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/kestrelworks/tsmod/internal/table"
)

// xlsxReader parses .xlsx workbooks directly from the OOXML zip container:
// workbook.xml for the sheet list, the relationships part for sheet paths,
// sharedStrings.xml for interned text, and the worksheet part for cells.
type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return hasSuffixFold(filename, ".xlsx")
}

func (xlsxReader) Read(p string, opt Options) (*table.Table, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	target, err := resolveSheet(zr, opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, err
	}
	shared := parseSharedStrings(zipPart(zr, "xl/sharedStrings.xml"))
	rows := parseSheetRows(zipPart(zr, target), shared)
	if len(rows) == 0 {
		return table.New()
	}
	return buildTable(rows[0], rows[1:])
}

type sheetEntry struct {
	Name    string
	SheetID int
	RID     string
}

// resolveSheet maps a sheet name or 1-based index to the worksheet part
// path inside the archive.
func resolveSheet(zr *zip.Reader, name string, index int) (string, error) {
	sheets := parseWorkbook(zipPart(zr, "xl/workbook.xml"))
	rels := parseRelationships(zipPart(zr, "xl/_rels/workbook.xml.rels"))
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s.Name, name) {
				if rel, ok := rels[s.RID]; ok {
					return normalizeRelPath(rel), nil
				}
			}
		}
		avail := make([]string, len(sheets))
		for i, s := range sheets {
			avail[i] = s.Name
		}
		return "", fmt.Errorf("sheet %q not found; available: %s", name, strings.Join(avail, ", "))
	}
	if index <= 0 {
		index = 1
	}
	for _, s := range sheets {
		if s.SheetID == index {
			if rel, ok := rels[s.RID]; ok {
				return normalizeRelPath(rel), nil
			}
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", index), nil
}

func zipPart(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			defer rc.Close()
			b, _ := io.ReadAll(rc)
			return b
		}
	}
	return nil
}

func parseWorkbook(data []byte) []sheetEntry {
	var out []sheetEntry
	forEachStart(data, func(se xml.StartElement) {
		if se.Name.Local != "sheet" {
			return
		}
		var s sheetEntry
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID, _ = strconv.Atoi(a.Value)
			case "id":
				s.RID = a.Value
			}
		}
		out = append(out, s)
	})
	return out
}

func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	forEachStart(data, func(se xml.StartElement) {
		if se.Name.Local != "Relationship" {
			return
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	})
	return out
}

func forEachStart(data []byte, fn func(xml.StartElement)) {
	if len(data) == 0 {
		return
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		if se, ok := tok.(xml.StartElement); ok {
			fn(se)
		}
	}
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inText = false
			case "si":
				out = append(out, buf.String())
			}
		case xml.CharData:
			if inText {
				buf.Write(se)
			}
		}
	}
}

// parseSheetRows extracts every row as a dense []string, resolving shared
// strings and honoring sparse cell references like "C12".
func parseSheetRows(data []byte, shared []string) [][]string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var rows [][]string
	var cur []string
	maxCol := 0
	inRow := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return rows
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "row":
				inRow = true
				cur = nil
				maxCol = 0
			case "c":
				if !inRow {
					continue
				}
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				idx := columnIndex(ref)
				if idx < 0 {
					idx = len(cur)
				}
				if idx+1 > maxCol {
					maxCol = idx + 1
				}
				val := readCellValue(dec, typ, shared)
				for len(cur) <= idx {
					cur = append(cur, "")
				}
				cur[idx] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" && inRow {
				for len(cur) < maxCol {
					cur = append(cur, "")
				}
				rows = append(rows, cur)
				inRow = false
			}
		}
	}
}

// readCellValue consumes tokens until </c>, capturing the <v> (or inline
// <is><t>) payload and resolving shared-string indices.
func readCellValue(dec *xml.Decoder, typ string, shared []string) string {
	var val string
	capture := false
	var buf strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				capture = true
				buf.Reset()
			}
		case xml.CharData:
			if capture {
				buf.Write(se)
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "v", "t":
				capture = false
				val = buf.String()
			case "c":
				if typ == "s" {
					if i, err := strconv.Atoi(val); err == nil && i >= 0 && i < len(shared) {
						return shared[i]
					}
					return ""
				}
				return val
			}
		}
	}
}

// columnIndex converts the letter prefix of a cell reference to a 0-based
// column index; -1 when the reference has no letters.
func columnIndex(ref string) int {
	end := 0
	for end < len(ref) {
		c := ref[end]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			break
		}
		end++
	}
	if end == 0 {
		return -1
	}
	idx := 0
	for _, c := range strings.ToUpper(ref[:end]) {
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}

// normalizeRelPath turns a relationship target into a zip entry path;
// targets may carry a leading slash or be relative to xl/.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}
