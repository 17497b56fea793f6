package csvspan

// CellSpan is a lightweight descriptor bound to a StreamCursor's live
// buffer: the bytes of one field as they appeared in the source, plus
// whether they require unescaping before use. It never copies; Ptr is a
// sub-slice of the cursor's own backing array, so CellSpan is valid only
// until the next call that advances the cursor (see cursor.go's generation
// counter for how that rule is enforced at the interface level).
type CellSpan struct {
	// Ptr is the raw field bytes, not yet unescaped, as they appeared
	// between delimiters (with surrounding quotes already stripped if
	// quoted).
	Ptr []byte

	// Escaped is true when Ptr may contain doubled quotes or escape bytes
	// that Unescaped() must collapse before the content is usable as a
	// plain value.
	Escaped bool

	// generation is the Reader generation this span was produced under.
	// CellView checks it against the Reader's current generation before
	// honoring any access, per the zero-copy lifetime contract: a generation
	// counter checked on every access rather than a borrow checker.
	generation uint64

	// start and end are row-relative byte offsets used only while the Row
	// Parser is building this span; Ptr is sliced from them once the
	// row's window is known stable (see parser.go). Zero value outside of
	// that window.
	start, end int
}
