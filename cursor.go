package csvspan

import "io"

// sentinelTail is the number of always-readable, non-CSV-meaningful bytes
// every StreamCursor must expose past its valid data. It equals windowSize
// because BCS.Scan, which the Row Parser calls from any position inside
// the valid data, reads a full 16-byte window.
const sentinelTail = windowSize

// StreamCursor is the polymorphic source of contiguous byte windows that
// feeds the Row Parser. Every implementation guarantees that the buffer
// exposed at the current read position is readable for at least
// sentinelTail bytes beyond the last valid data byte.
type StreamCursor interface {
	// Peek returns the current unread window and the number of leading
	// bytes in it that are real data. window[:validLen] is genuine
	// unconsumed input; window[validLen:] is at least sentinelTail bytes
	// of non-CSV-meaningful padding (zero-filled), present only so
	// BCS.Scan can always read a full 16-byte block without a bounds
	// check against the true data length.
	Peek() (window []byte, validLen int, err error)

	// Advance moves the read position forward by n bytes. n must not
	// exceed the length of the valid portion most recently returned by
	// Peek. The cursor keeps no generation of its own: a Reader bumps its
	// cursorGeneration right after each Advance, which invalidates every
	// CellView bound to the buffer before the advance.
	Advance(n int)

	// Refill attempts to extend the valid window, returning false only
	// once EOF has been reached and no more bytes will ever arrive. A
	// non-nil error distinguishes an I/O failure from ordinary EOF; on
	// error, ok is always false.
	Refill() (ok bool, err error)

	// Close releases any resources (file descriptors, mappings) held by
	// the cursor. After Close, Peek/Advance/Refill must not be called.
	Close() error
}

// cursorGeneration is owned by a Reader (not by the StreamCursor itself,
// so any externally-implemented StreamCursor can be used without also
// implementing liveness tracking) and shared, by pointer, with every
// CellView/RowView it produces. It is the generation-counter strategy
// chosen to make the "views die on the next advance" contract observable
// to misuse without requiring a borrow checker Go doesn't have. Reader
// bumps it once per record it moves past (Reader.finishRow: a data record,
// a header record, a record that failed to parse, or a Resync skip), right
// after that record's one Advance onto the cursor.
type cursorGeneration struct {
	generation uint64
}

func (g *cursorGeneration) bump() {
	g.generation++
}

// validateWindow panics if a cursor implementation handed back a window
// shorter than the mandatory sentinel tail; this is a programming error in
// a custom StreamCursor, not a recoverable runtime condition, so it is
// caught as early and loudly as possible rather than silently truncating
// BCS reads.
func validateWindow(window []byte, validLen int) {
	if len(window) < validLen+sentinelTail {
		panic(errSentinelTailTooShort)
	}
}

// readFullInto reads from r into buf until buf is full or r is exhausted,
// returning the number of bytes read and io.EOF once r reports end of
// input (io.ReadFull's short-read io.ErrUnexpectedEOF is reported as
// io.EOF). The Buffered and Iterable cursors' Refill does not call it; it
// issues a single Read per call.
func readFullInto(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}
