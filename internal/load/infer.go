package load

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kestrelworks/tsmod/internal/table"
)

// buildTable turns raw string records into typed columns. A column whose
// parseable cells outnumber its unparseable non-empty cells becomes numeric
// (int when every parsed value is whole and no cell spells a fraction),
// otherwise text. In numeric columns, empty and unparseable cells become
// missing; coercion never fails the load.
func buildTable(header []string, rows [][]string) (*table.Table, error) {
	ncol := len(header)
	cols := make([]table.Column, 0, ncol)
	for j := 0; j < ncol; j++ {
		name := strings.TrimSpace(header[j])
		if name == "" {
			name = fmt.Sprintf("column%d", j+1)
		}
		cols = append(cols, inferColumn(name, j, rows))
	}
	return table.New(cols...)
}

func inferColumn(name string, j int, rows [][]string) table.Column {
	numCnt, txtCnt := 0, 0
	integral := true
	for _, row := range rows {
		v := cell(row, j)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			txtCnt++
			continue
		}
		numCnt++
		if f != math.Trunc(f) || strings.ContainsAny(v, ".eE") {
			integral = false
		}
	}
	if numCnt == 0 || txtCnt > numCnt {
		texts := make([]string, len(rows))
		for i, row := range rows {
			texts[i] = cell(row, j)
		}
		return table.NewText(name, texts)
	}
	col := table.Column{
		Name:   name,
		Type:   table.Float,
		Floats: make([]float64, len(rows)),
		Valid:  make([]bool, len(rows)),
	}
	if integral {
		col.Type = table.Int
	}
	for i, row := range rows {
		v := cell(row, j)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		col.Floats[i] = f
		col.Valid[i] = true
	}
	return col
}

func cell(row []string, j int) string {
	if j >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[j])
}
