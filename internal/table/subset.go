package table

// Series is one numeric column of a Subset: float values with a validity
// mask. Invalid entries are missing cells (blank input or failed coercion).
type Series struct {
	Name   string
	Values []float64
	Valid  []bool
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.Values) }

// Clone deep-copies the series.
func (s *Series) Clone() Series {
	return Series{
		Name:   s.Name,
		Values: append([]float64(nil), s.Values...),
		Valid:  append([]bool(nil), s.Valid...),
	}
}

// Subset is the numeric fragment handed to the modification engine: the
// selected columns over the selected row range, all coerced to floats.
// It never aliases the Table it was extracted from.
type Subset struct {
	Columns []Series
}

// NumRows returns the shared sample count.
func (s *Subset) NumRows() int {
	if len(s.Columns) == 0 {
		return 0
	}
	return s.Columns[0].Len()
}

// Column finds a series by name.
func (s *Subset) Column(name string) (*Series, bool) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i], true
		}
	}
	return nil, false
}

// Clone deep-copies the subset.
func (s *Subset) Clone() *Subset {
	out := &Subset{Columns: make([]Series, len(s.Columns))}
	for i := range s.Columns {
		out.Columns[i] = s.Columns[i].Clone()
	}
	return out
}
