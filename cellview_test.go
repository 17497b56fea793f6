package csvspan

import "testing"

func makeSpan(raw string, escaped bool) CellSpan {
	return CellSpan{Ptr: []byte(raw), Escaped: escaped}
}

func TestCellView_Raw_NoEscape(t *testing.T) {
	span := makeSpan("hello", false)
	var scratch []byte
	v := newCellView(span, nil, DefaultDialect(), &scratch)

	if string(v.Raw()) != "hello" {
		t.Errorf("Raw() = %q, want %q", v.Raw(), "hello")
	}
	if v.Escaped() {
		t.Error("Escaped() should be false")
	}
	if string(v.Unescaped()) != "hello" {
		t.Errorf("Unescaped() = %q, want %q", v.Unescaped(), "hello")
	}
}

func TestCellView_Unescaped_DoubledQuote(t *testing.T) {
	span := makeSpan(`he said ""hi""`, true)
	var scratch []byte
	v := newCellView(span, nil, DefaultDialect(), &scratch)

	want := `he said "hi"`
	if got := string(v.Unescaped()); got != want {
		t.Errorf("Unescaped() = %q, want %q", got, want)
	}
}

func TestCellView_Unescaped_SingleByteEscape(t *testing.T) {
	d := Dialect{Delimiter: ',', Quote: '"', Escape: '\\'}
	span := makeSpan(`a\"b\\c`, true)
	var scratch []byte
	v := newCellView(span, nil, d, &scratch)

	want := `a"b\c`
	if got := string(v.Unescaped()); got != want {
		t.Errorf("Unescaped() = %q, want %q", got, want)
	}
}

func TestCellView_Equals(t *testing.T) {
	var scratch []byte
	plain := newCellView(makeSpan("foo", false), nil, DefaultDialect(), &scratch)
	if !plain.Equals([]byte("foo")) {
		t.Error("Equals(foo) should be true for raw foo")
	}
	if plain.Equals([]byte("bar")) {
		t.Error("Equals(bar) should be false for raw foo")
	}

	escaped := newCellView(makeSpan(`fo""o`, true), nil, DefaultDialect(), &scratch)
	if !escaped.Equals([]byte(`fo"o`)) {
		t.Error(`Equals should compare against unescaped content`)
	}
}

func TestCellView_AsDouble(t *testing.T) {
	tests := []struct {
		raw     string
		wantNaN bool
		want    float64
	}{
		{"3.14", false, 3.14},
		{"  -42  ", false, -42},
		{"1e3", false, 1000},
		{"not a number", true, 0},
		{"", true, 0},
	}
	var scratch []byte
	for _, tt := range tests {
		v := newCellView(makeSpan(tt.raw, false), nil, DefaultDialect(), &scratch)
		got := v.AsDouble()
		if tt.wantNaN {
			if got == got { // not NaN
				t.Errorf("AsDouble(%q) = %v, want NaN", tt.raw, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("AsDouble(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestCellView_CheckLive_PanicsAfterGenerationBump(t *testing.T) {
	gen := &cursorGeneration{}
	span := makeSpan("x", false)
	span.generation = gen.generation
	v := newCellView(span, gen, DefaultDialect(), new([]byte))

	gen.bump()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on use after generation bump")
		}
	}()
	v.Raw()
}

func TestCellView_ScratchReusedAcrossCalls(t *testing.T) {
	var scratch []byte
	v1 := newCellView(makeSpan(`a""b`, true), nil, DefaultDialect(), &scratch)
	_ = v1.Unescaped()
	capAfterFirst := cap(scratch)

	v2 := newCellView(makeSpan(`c""d`, true), nil, DefaultDialect(), &scratch)
	_ = v2.Unescaped()
	if cap(scratch) > capAfterFirst {
		t.Errorf("scratch buffer should not grow on same-size second call: cap %d > %d", cap(scratch), capAfterFirst)
	}
}
