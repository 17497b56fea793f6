package csvspan

import "bytes"

// CellView is the lazy accessor surface bound to a CellSpan. It never
// materializes bytes until a specific accessor is called, and never
// allocates for the common unescaped case.
type CellView struct {
	span CellSpan
	gen  *cursorGeneration
	d    Dialect
	// scratch is reused across Unescaped() calls on the same Reader; it is
	// owned by the Reader, not the view, so repeated access to different
	// cells in the same row does not allocate once warmed up.
	scratch *[]byte
}

// newCellView binds a span to the dialect and generation needed to
// validate liveness and to know how to unescape.
func newCellView(span CellSpan, gen *cursorGeneration, d Dialect, scratch *[]byte) CellView {
	return CellView{span: span, gen: gen, d: d, scratch: scratch}
}

// checkLive panics with a descriptive message if the view has outlived the
// Reader advance that invalidated its backing buffer. This mirrors the
// corpus convention of failing loudly on use-after-invalidate rather than
// silently returning stale or corrupted data.
func (v CellView) checkLive() {
	if v.gen != nil && v.span.generation != v.gen.generation {
		panic("csvspan: CellView used after its Reader advanced past it")
	}
}

// Raw returns the field's bytes exactly as they appeared in the source
// (quotes stripped, escapes not yet collapsed). O(1), never allocates.
func (v CellView) Raw() []byte {
	v.checkLive()
	return v.span.Ptr
}

// Escaped reports whether Unescaped() may differ from Raw().
func (v CellView) Escaped() bool {
	return v.span.Escaped
}

// Unescaped returns the decoded field content. If the field was not
// escaped, this aliases Raw() with no copy. Otherwise it collapses doubled
// quotes (when the dialect's Escape == Quote) or drops escape bytes
// (when they differ) into the Reader-owned scratch buffer, whose capacity
// is reused across calls so steady-state parsing of escaped fields does
// not grow the heap after warmup.
func (v CellView) Unescaped() []byte {
	v.checkLive()
	raw := v.span.Ptr
	if !v.span.Escaped {
		return raw
	}

	buf := (*v.scratch)[:0]
	if v.d.doubledQuoteEscape() {
		buf = unescapeDoubled(buf, raw, v.d.Quote)
	} else {
		buf = unescapeSingle(buf, raw, v.d.Escape)
	}
	*v.scratch = buf
	return buf
}

// unescapeDoubled collapses every "QQ" run into a single Q, per the
// doubled-quote convention.
func unescapeDoubled(dst, src []byte, quote byte) []byte {
	for i := 0; i < len(src); i++ {
		b := src[i]
		if b == quote && i+1 < len(src) && src[i+1] == quote {
			dst = append(dst, quote)
			i++
			continue
		}
		dst = append(dst, b)
	}
	return dst
}

// unescapeSingle drops every escape byte and copies the following byte
// verbatim, per the single-byte C-style escaping convention.
func unescapeSingle(dst, src []byte, escape byte) []byte {
	for i := 0; i < len(src); i++ {
		b := src[i]
		if b == escape && i+1 < len(src) {
			dst = append(dst, src[i+1])
			i++
			continue
		}
		dst = append(dst, b)
	}
	return dst
}

// AsDouble parses the unescaped content as a signed decimal number with an
// optional exponent. Leading and trailing ASCII whitespace is ignored. It
// never raises: on failure it returns NaN.
func (v CellView) AsDouble() float64 {
	return parseLenientFloat(v.Unescaped())
}

// Equals reports bytewise equality between the unescaped content and
// literal. When the field is not escaped this is a length-prefixed
// memcmp fast path (bytes.Equal on the raw span, no unescape call at all).
func (v CellView) Equals(literal []byte) bool {
	v.checkLive()
	if !v.span.Escaped {
		return bytes.Equal(v.span.Ptr, literal)
	}
	return bytes.Equal(v.Unescaped(), literal)
}

// String returns the unescaped content as a string. This allocates exactly
// once (the string copy Go's conversion requires); callers on a hot path
// that only need byte comparisons should prefer Equals or Unescaped.
func (v CellView) String() string {
	return string(v.Unescaped())
}
