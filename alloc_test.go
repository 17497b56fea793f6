package csvspan

import (
	"strings"
	"testing"
)

// TestAllocs_SteadyStateNoEscaping exercises invariant 7: once the Row and
// scratch buffers are warmed up, reading records made entirely of
// unescaped fields must not allocate. This mirrors the AllocsPerRun style
// the corpus's own benchmark files use to pin down allocation counts.
func TestAllocs_SteadyStateNoEscaping(t *testing.T) {
	const rows = 256
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		sb.WriteString("alpha,bravo,charlie,100.5\n")
	}

	cur := OpenBuffered(strings.NewReader(sb.String()), 4096)
	r := NewReader(cur, DefaultDialect(), NoHeader)

	var sink []byte
	read := func() {
		row, err := r.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		for i := 0; i < row.Count(); i++ {
			cv, err := row.ByIndex(i)
			if err != nil {
				t.Fatalf("ByIndex: %v", err)
			}
			sink = cv.Unescaped()
		}
	}

	allocs := testing.AllocsPerRun(rows-1, read)
	_ = sink
	if allocs != 0 {
		t.Errorf("steady-state Next+Unescaped allocated %.2f allocs/op, want 0", allocs)
	}
}

// TestAllocs_SteadyStateWithEscaping exercises the Unescaped() path for
// escaped fields, which is allowed to use the Reader-owned scratch buffer
// but must not grow the heap once that buffer's capacity has stabilized.
func TestAllocs_SteadyStateWithEscaping(t *testing.T) {
	const rows = 256
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		sb.WriteString("\"al\"\"pha\",bravo\n")
	}

	cur := OpenBuffered(strings.NewReader(sb.String()), 4096)
	r := NewReader(cur, DefaultDialect(), NoHeader)

	// Warm up the scratch buffer's capacity before measuring: the first
	// unescape of a given size still needs to grow it.
	row, err := r.Next()
	if err != nil {
		t.Fatalf("Next (warmup): %v", err)
	}
	cv, err := row.ByIndex(0)
	if err != nil {
		t.Fatalf("ByIndex (warmup): %v", err)
	}
	_ = cv.Unescaped()

	var sink []byte
	read := func() {
		row, err := r.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		cv, err := row.ByIndex(0)
		if err != nil {
			t.Fatalf("ByIndex: %v", err)
		}
		sink = cv.Unescaped()
	}

	allocs := testing.AllocsPerRun(rows-2, read)
	_ = sink
	if allocs != 0 {
		t.Errorf("steady-state escaped Unescaped allocated %.2f allocs/op, want 0", allocs)
	}
}
