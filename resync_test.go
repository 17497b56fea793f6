package csvspan

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestResync_SkipsToNextRecord(t *testing.T) {
	input := "good,row\n\"broken\ngood,again\n"
	cur := OpenBuffered(strings.NewReader(input), 4096)
	r := NewReader(cur, DefaultDialect(), NoHeader)

	row, err := r.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if row.AsTuple()[0] != "good" {
		t.Fatalf("first row = %v", row.AsTuple())
	}

	_, err = r.Next()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("second Next() = %v, want *ParseError", err)
	}

	if err := r.Resync(); err != nil {
		t.Fatalf("Resync: %v", err)
	}

	row, err = r.Next()
	if err != nil {
		t.Fatalf("Next after Resync: %v", err)
	}
	if got := row.AsTuple(); len(got) != 2 || got[0] != "good" || got[1] != "again" {
		t.Errorf("row after Resync = %v, want [good again]", got)
	}
}

func TestResync_QuoteAwareNewlineSkip(t *testing.T) {
	// Resync must not treat a newline inside an (even unbalanced) quoted
	// region as a record boundary until quote parity returns to even.
	input := "x\"y\nz\"\nnext,row\n"
	cur := OpenBuffered(strings.NewReader(input), 4096)
	r := &Reader{cur: cur, d: DefaultDialect(), started: true, line: 1}

	if err := r.Resync(); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	row, err := r.Next()
	if err != nil {
		t.Fatalf("Next after Resync: %v", err)
	}
	if got := row.AsTuple(); len(got) != 2 || got[0] != "next" || got[1] != "row" {
		t.Errorf("row after Resync = %v, want [next row]", got)
	}
}

func TestResync_EOFBeforeNewline(t *testing.T) {
	cur := OpenBuffered(strings.NewReader("no newline here at all"), 4096)
	r := &Reader{cur: cur, d: DefaultDialect(), started: true, line: 1}

	if err := r.Resync(); err != io.EOF {
		t.Errorf("Resync() = %v, want io.EOF", err)
	}
}

func TestResync_StickyAfterIoError(t *testing.T) {
	sentinel := errors.New("boom")
	r := &Reader{sticky: &IoError{Err: sentinel}}
	if err := r.Resync(); err == nil {
		t.Error("Resync() should return the sticky error")
	}
}
