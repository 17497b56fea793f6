package csvspan

import "io"

// =============================================================================
// Row Parser state machine
// =============================================================================
//
// parseRow drives one record through the states a byte stream can be in
// relative to a CSV cell: FIELD_START, IN_UNQUOTED, IN_QUOTED, AFTER_QUOTED,
// ROW_END. QUOTED_ESCAPE never needs its own case here: seeing an escape
// byte inside a quoted field is a single unconditional two-byte advance,
// folded directly into the IN_QUOTED branch below rather than given its own
// state, the same way the parser never needs to revisit it mid-advance.
//
// The loop never calls cur.Advance. It tracks everything as an int offset
// relative to the row's starting read position (consumed), re-deriving the
// current window from cur.Peek after every refill instead of holding a
// slice across one. Only once the whole row is known — no further refills
// possible — does it take one last Peek and slice every field's Ptr out of
// that single, now-stable window. That is what lets interior fields of a
// row stay addressable even when an early field in the same row forced a
// buffer compaction or growth further down the line.
// =============================================================================

type parserState uint8

const (
	stateFieldStart parserState = iota
	stateInUnquoted
	stateInQuoted
	stateAfterQuoted
)

// parseRow parses exactly one record from cur and returns the number of
// bytes it consumed (the argument the caller must pass to cur.Advance) plus
// row populated with that record's cells. It returns io.EOF, with consumed
// == 0, only when no record at all remains. A non-nil, non-EOF error is one
// of ErrUnterminatedQuotedField, ErrMalformedQuotedField, or an *IoError
// surfaced from the cursor; row's contents are undefined in that case.
func parseRow(cur StreamCursor, d Dialect, row *Row) (int, error) {
	row.reset()

	unquoted := d.unquotedClass()
	quoted := d.quotedClass()
	afterQuoted := d.afterQuotedClass()
	doubled := d.doubledQuoteEscape()

	consumed := 0
	state := stateFieldStart
	var cs *CellSpan

rowLoop:
	for {
		switch state {

		case stateFieldStart:
			b, ok, err := peekByte(cur, consumed)
			if err != nil {
				return consumed, err
			}
			if !ok {
				if row.count == 0 && consumed == 0 {
					return 0, io.EOF
				}
				// A row ending exactly on a delimiter (or otherwise
				// terminator-less) still owes one last, empty field.
				cs = row.grow()
				cs.start, cs.end, cs.Escaped = consumed, consumed, false
				break rowLoop
			}
			cs = row.grow()
			if b == d.Quote {
				consumed++
				cs.start = consumed
				state = stateInQuoted
			} else {
				cs.start = consumed
				state = stateInUnquoted
			}

		case stateInUnquoted:
			window, pos, found, err := scanFor(cur, consumed, unquoted)
			if err != nil {
				return consumed, err
			}
			if !found {
				cs.end = pos
				consumed = pos
				break rowLoop
			}
			switch window[pos] {
			case d.Delimiter:
				cs.end = pos
				consumed = pos + 1
				state = stateFieldStart
			case '\r', '\n':
				cs.end = pos
				consumed, err = consumeNewline(cur, pos, window[pos])
				if err != nil {
					return consumed, err
				}
				break rowLoop
			default:
				// A stray quote byte mid-field is data, never a mode
				// switch (DESIGN NOTES' resolved open question): step
				// past it and keep scanning the same field.
				consumed = pos + 1
			}

		case stateInQuoted:
			window, pos, found, err := scanFor(cur, consumed, quoted)
			if err != nil {
				return consumed, err
			}
			if !found {
				if d.YieldIncompleteRow {
					cs.end = pos
					cs.Escaped = true
					consumed = pos
					row.Incomplete = true
					break rowLoop
				}
				return consumed, ErrUnterminatedQuotedField
			}

			if !doubled && window[pos] == d.Escape {
				_, ok, err := peekByte(cur, pos+1)
				if err != nil {
					return consumed, err
				}
				if !ok {
					if d.YieldIncompleteRow {
						cs.end = pos
						cs.Escaped = true
						consumed = pos
						row.Incomplete = true
						break rowLoop
					}
					return consumed, ErrUnterminatedQuotedField
				}
				cs.Escaped = true
				consumed = pos + 2
				continue
			}

			// window[pos] == d.Quote. Under the doubled-quote convention a
			// second consecutive quote means an escaped literal, not the
			// field's close.
			if doubled {
				next, ok, err := peekByte(cur, pos+1)
				if err != nil {
					return consumed, err
				}
				if ok && next == d.Quote {
					cs.Escaped = true
					consumed = pos + 2
					continue
				}
			}
			cs.end = pos
			consumed = pos + 1
			state = stateAfterQuoted

		case stateAfterQuoted:
			// A byte other than delimiter/CR/LF right after a closing
			// quote is malformed regardless of what follows it, so a
			// match position past consumed is itself the error: scanning
			// ahead only ever needs to look at the very next byte.
			window, pos, found, err := scanFor(cur, consumed, afterQuoted)
			if err != nil {
				return consumed, err
			}
			if pos != consumed {
				// Strict mode: the reference choice for anything other
				// than a delimiter or newline following a closing quote.
				return consumed, ErrMalformedQuotedField
			}
			if !found {
				break rowLoop
			}
			switch window[pos] {
			case d.Delimiter:
				consumed = pos + 1
				state = stateFieldStart
			case '\r', '\n':
				consumed, err = consumeNewline(cur, pos, window[pos])
				if err != nil {
					return consumed, err
				}
				break rowLoop
			}
		}
	}

	window, validLen, err := cur.Peek()
	if err != nil {
		return consumed, err
	}
	validateWindow(window, validLen)
	for i := 0; i < row.count; i++ {
		c := &row.cells[i]
		c.Ptr = window[c.start:c.end]
	}
	return consumed, nil
}

// peekByte returns the byte at row-relative offset pos, refilling cur as
// needed. ok is false only once EOF has been reached with nothing left at
// or past pos.
func peekByte(cur StreamCursor, pos int) (byte, bool, error) {
	for {
		window, validLen, err := cur.Peek()
		if err != nil {
			return 0, false, err
		}
		validateWindow(window, validLen)
		if pos < validLen {
			return window[pos], true, nil
		}
		ok, err := cur.Refill()
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
	}
}

// scanFor runs BCS.Scan forward from row-relative offset from until it
// finds a byte in class among genuine data, refilling cur as needed. found
// is false only once EOF is reached with no match in the data that ever
// arrived, in which case pos is the final valid length (where the data
// ran out). window is always the slice the returned pos indexes into.
func scanFor(cur StreamCursor, from int, class ByteClass) (window []byte, pos int, found bool, err error) {
	for {
		w, validLen, perr := cur.Peek()
		if perr != nil {
			return nil, 0, false, perr
		}
		validateWindow(w, validLen)
		for from < validLen {
			k := Scan(w[from:], class)
			if k >= validLen-from {
				break // no match among the remaining valid bytes
			}
			if k < windowSize {
				return w, from + k, true, nil
			}
			from += windowSize // whole block held no match: scan the next one
		}
		ok, rerr := cur.Refill()
		if rerr != nil {
			return nil, 0, false, rerr
		}
		if !ok {
			return w, validLen, false, nil
		}
	}
}

// consumeNewline returns the row-relative offset just past the record
// terminator starting at pos, honoring the policy that LF, CR, CRLF, and
// LFCR are each exactly one boundary.
func consumeNewline(cur StreamCursor, pos int, first byte) (int, error) {
	second, ok, err := peekByte(cur, pos+1)
	if err != nil {
		return pos, err
	}
	if ok && ((first == '\r' && second == '\n') || (first == '\n' && second == '\r')) {
		return pos + 2, nil
	}
	return pos + 1, nil
}
