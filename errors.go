package csvspan

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Reader and the view accessors. ParseError
// wraps whichever of these applies for a given failing row; view-access
// errors (IndexOutOfRange, UnknownColumn) are returned directly since they
// carry no useful line/column location.
var (
	// ErrUnterminatedQuotedField is returned when EOF is reached while the
	// parser is still inside a quoted field and Dialect.YieldIncompleteRow
	// is false.
	ErrUnterminatedQuotedField = errors.New("csvspan: unterminated quoted field")

	// ErrMalformedQuotedField is returned in strict mode when a byte other
	// than delimiter or newline follows a quoted field's closing quote.
	ErrMalformedQuotedField = errors.New("csvspan: extraneous data after closing quote")

	// ErrInvalidDialect is returned by the first Reader.Next call when the configured
	// Dialect is self-contradictory (e.g. Delimiter == Quote).
	ErrInvalidDialect = errors.New("csvspan: invalid dialect")

	// ErrIndexOutOfRange is returned by RowView.ByIndex for i >= Count().
	ErrIndexOutOfRange = errors.New("csvspan: cell index out of range")

	// ErrUnknownColumn is returned by RowView.ByName when no header map is
	// present or the name is absent from it.
	ErrUnknownColumn = errors.New("csvspan: unknown column")

	// ErrFieldCount is returned when a row's field count does not match
	// the count fixed by the first record (see Reader.FieldsPerRecord).
	ErrFieldCount = errors.New("csvspan: wrong number of fields")

	// ErrRowTooLarge is returned, sticky, when a parsed record is longer
	// than Reader.MaxRowBytes.
	ErrRowTooLarge = errors.New("csvspan: row exceeds MaxRowBytes")

	// errSentinelTailTooShort is an internal invariant check: a
	// StreamCursor implementation violated the mandatory 16-byte sentinel
	// tail contract.
	errSentinelTailTooShort = errors.New("csvspan: stream cursor violated sentinel tail contract")
)

// ParseError reports a parse failure with enough location information for
// a caller to point a user at the offending byte.
type ParseError struct {
	// Line is the 1-based number of the record in which the error was
	// detected. Reader counts records, not physical lines, so newlines
	// inside quoted fields do not advance it.
	Line int
	// Column is the 1-based byte position (not rune position) within that
	// record, counted from the record's first byte.
	Column int
	// Offset is the absolute byte offset within the logical stream.
	Offset int64
	// Err is the underlying sentinel (one of the Err* values above).
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csvspan: parse error at line %d, column %d (offset %d): %v",
		e.Line, e.Column, e.Offset, e.Err)
}

// Unwrap allows errors.Is(err, ErrUnterminatedQuotedField) and friends to
// see through ParseError.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IoError wraps a failure from the underlying byte source (file read,
// mmap, or chunk supplier). It is sticky: once returned from Reader.Next,
// every subsequent call returns the same IoError for the rest of the
// Reader's life.
type IoError struct {
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("csvspan: i/o error: %v", e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}
