package csvspan

import "testing"

func TestDefaultDialect(t *testing.T) {
	d := DefaultDialect()
	if d.Delimiter != ',' || d.Quote != '"' || d.Escape != '"' {
		t.Errorf("DefaultDialect() = %+v, want comma/quote/quote", d)
	}
	if !d.doubledQuoteEscape() {
		t.Error("DefaultDialect() should use doubled-quote escaping")
	}
	if d.YieldIncompleteRow {
		t.Error("DefaultDialect() should default to strict mode")
	}
}

func TestDialect_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Dialect
		wantErr bool
	}{
		{"default is valid", DefaultDialect(), false},
		{"delimiter equals quote", Dialect{Delimiter: '"', Quote: '"'}, true},
		{"delimiter is CR", Dialect{Delimiter: '\r', Quote: '"'}, true},
		{"delimiter is LF", Dialect{Delimiter: '\n', Quote: '"'}, true},
		{"quote is CR", Dialect{Delimiter: ',', Quote: '\r'}, true},
		{"tab delimiter is valid", Dialect{Delimiter: '\t', Quote: '"'}, false},
		{"distinct escape byte is valid", Dialect{Delimiter: ',', Quote: '"', Escape: '\\'}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDialect_DoubledQuoteEscape(t *testing.T) {
	if (Dialect{Quote: '"', Escape: '\\'}).doubledQuoteEscape() {
		t.Error("distinct escape byte should not report doubled-quote escaping")
	}
	if !(Dialect{Quote: '"', Escape: '"'}).doubledQuoteEscape() {
		t.Error("Escape == Quote should report doubled-quote escaping")
	}
}

func TestDialect_QuotedClass_CollapsesWhenDoubled(t *testing.T) {
	d := DefaultDialect()
	c := d.quotedClass()
	if c.n != 1 {
		t.Errorf("quotedClass().n = %d, want 1 for doubled-quote dialect", c.n)
	}

	d.Escape = '\\'
	c = d.quotedClass()
	if c.n != 2 {
		t.Errorf("quotedClass().n = %d, want 2 for distinct-escape dialect", c.n)
	}
}
