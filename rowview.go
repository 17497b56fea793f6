package csvspan

// Row is the reusable, ordered collection of CellSpans for one record. The
// backing array is reused across Reader.Next calls; Count is the number of
// valid cells after the most recent successful read.
type Row struct {
	cells []CellSpan
	count int

	// Incomplete is set when this row was emitted early because EOF
	// arrived mid-quoted-field and Dialect.YieldIncompleteRow is true.
	Incomplete bool
}

// reset truncates the row for reuse without discarding the cells slice's
// backing array.
func (r *Row) reset() {
	r.cells = r.cells[:0]
	r.count = 0
	r.Incomplete = false
}

// grow appends a new, zero-value CellSpan slot and returns a pointer to it,
// growing the backing array geometrically when needed; there is no hard
// column cap.
func (r *Row) grow() *CellSpan {
	r.cells = append(r.cells, CellSpan{})
	r.count++
	return &r.cells[len(r.cells)-1]
}

// RowView is the borrowed, read-only façade over a Reader's reused Row
// plus the optional header-name index (built from the first record under
// HasHeader, or supplied to NewReaderWithNames). RowView's own methods do
// not check a generation: after the Reader advances, a RowView obtained
// earlier reads the newer record held in the same Row. CellViews taken
// from it before the advance panic on access (see CellView.checkLive).
type RowView struct {
	row     *Row
	gen     *cursorGeneration
	d       Dialect
	header  *headerMap
	scratch *[]byte
}

// Count returns the number of cells in the row.
func (v RowView) Count() int {
	return v.row.count
}

// ByIndex returns the CellView at position i, or ErrIndexOutOfRange.
func (v RowView) ByIndex(i int) (CellView, error) {
	if i < 0 || i >= v.row.count {
		return CellView{}, ErrIndexOutOfRange
	}
	return newCellView(v.row.cells[i], v.gen, v.d, v.scratch), nil
}

// ByName looks up a cell by header name. Returns ErrUnknownColumn if no
// header map was built for this Reader, or the name is absent from it.
func (v RowView) ByName(name string) (CellView, error) {
	if v.header == nil {
		return CellView{}, ErrUnknownColumn
	}
	idx, ok := v.header.index(name)
	if !ok {
		return CellView{}, ErrUnknownColumn
	}
	return v.ByIndex(idx)
}

// AsTuple materializes every cell's unescaped content into a freshly
// allocated []string. Provided for convenience at the API boundary; the
// zero-copy path is ByIndex/ByName + CellView accessors.
func (v RowView) AsTuple() []string {
	out := make([]string, v.row.count)
	for i := 0; i < v.row.count; i++ {
		cv := newCellView(v.row.cells[i], v.gen, v.d, v.scratch)
		out[i] = cv.String()
	}
	return out
}

// AsMapping materializes the row as a name->value map using the Reader's
// header map. Returns nil if no header map is present.
func (v RowView) AsMapping() map[string]string {
	if v.header == nil {
		return nil
	}
	out := make(map[string]string, len(v.header.names))
	for _, name := range v.header.names {
		idx, ok := v.header.index(name)
		if !ok || idx >= v.row.count {
			continue
		}
		cv := newCellView(v.row.cells[idx], v.gen, v.d, v.scratch)
		out[name] = cv.String()
	}
	return out
}

// headerMap is the ordered name->index mapping built once by consuming the
// first row (HasHeader) or supplied explicitly (ProvidedNames). First wins
// on duplicate names.
type headerMap struct {
	names []string
	idx   map[string]int
}

func newHeaderMap(names []string) *headerMap {
	h := &headerMap{
		names: append([]string(nil), names...),
		idx:   make(map[string]int, len(names)),
	}
	for i, n := range names {
		if _, exists := h.idx[n]; exists {
			continue // first wins
		}
		h.idx[n] = i
	}
	return h
}

func (h *headerMap) index(name string) (int, bool) {
	i, ok := h.idx[name]
	return i, ok
}
