package pystr

import "testing"

func TestNewRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ascii bool
	}{
		{name: "short ascii", input: "hello", ascii: true},
		{name: "inline boundary", input: "0123456789abcdef", ascii: true}, // 16 bytes
		{name: "pooled", input: "0123456789abcdefg", ascii: true},         // 17 bytes
		{name: "utf8", input: "héllo", ascii: false},
		{name: "empty", input: "", ascii: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			if s.Length() != len(tt.input) {
				t.Fatalf("Length() = %d, want %d", s.Length(), len(tt.input))
			}
			if string(s.Bytes()) != tt.input {
				t.Fatalf("Bytes() = %q, want %q", s.Bytes(), tt.input)
			}
			if s.IsASCII() != tt.ascii {
				t.Fatalf("IsASCII() = %v, want %v", s.IsASCII(), tt.ascii)
			}
		})
	}
}

func TestInlineVsPooled(t *testing.T) {
	small := New("0123456789abcdef") // 16 bytes: inline
	if !small.IsInlined() {
		t.Fatal("expected 16-byte string to be inlined")
	}
	big := New("0123456789abcdefg") // 17 bytes: pooled
	if big.IsInlined() {
		t.Fatal("expected 17-byte string to be pooled")
	}
}

func TestHelloEscape(t *testing.T) {
	s := New("hello")
	if s.Length() != 5 || !s.IsASCII() {
		t.Fatalf("unexpected length/ascii for %q", s.Bytes())
	}
	if got := s.Escape(false); got != `"hello"` {
		t.Fatalf("Escape() = %s, want \"hello\"", got)
	}
}

func TestU8Length(t *testing.T) {
	s := New("héllo") // 6 bytes, 5 code points
	if s.Length() != 6 {
		t.Fatalf("Length() = %d, want 6", s.Length())
	}
	if s.U8Length() != 5 {
		t.Fatalf("U8Length() = %d, want 5", s.U8Length())
	}
	if got := s.U8GetItem(1).String(); got != "é" {
		t.Fatalf("U8GetItem(1) = %q, want \"é\"", got)
	}
}

func TestU8GetItemRoundTrip(t *testing.T) {
	tests := []string{"hello", "héllo", "日本語", ""}
	for _, in := range tests {
		s := New(in)
		var rebuilt string
		for i := 0; i < s.U8Length(); i++ {
			rebuilt += s.U8GetItem(i).String()
		}
		if rebuilt != in {
			t.Fatalf("rebuilt %q from %q via U8GetItem", rebuilt, in)
		}
	}
}

func TestEqualityAndOrdering(t *testing.T) {
	tests := []struct {
		a, b       string
		wantEq     bool
		wantLess   bool
	}{
		{"abc", "abc", true, false},
		{"abc", "abd", false, true},
		{"ab", "abc", false, true},
		{"abc", "ab", false, false},
	}
	for _, tt := range tests {
		a, b := New(tt.a), New(tt.b)
		if a.Equal(b) != tt.wantEq {
			t.Errorf("Equal(%q,%q) = %v, want %v", tt.a, tt.b, a.Equal(b), tt.wantEq)
		}
		if a.Less(b) != tt.wantLess {
			t.Errorf("Less(%q,%q) = %v, want %v", tt.a, tt.b, a.Less(b), tt.wantLess)
		}
	}
}

func TestCompareAgainstRawString(t *testing.T) {
	tests := []struct {
		a, b     string
		wantEq   bool
		wantLess bool
	}{
		{"abc", "abc", true, false},
		{"abc", "abd", false, true},
		{"ab", "abc", false, true},
		{"abc", "ab", false, false},
	}
	for _, tt := range tests {
		s := New(tt.a)
		if s.EqualString(tt.b) != tt.wantEq {
			t.Errorf("EqualString(%q,%q) = %v, want %v", tt.a, tt.b, s.EqualString(tt.b), tt.wantEq)
		}
		if s.LessString(tt.b) != tt.wantLess {
			t.Errorf("LessString(%q,%q) = %v, want %v", tt.a, tt.b, s.LessString(tt.b), tt.wantLess)
		}
		if s.GreaterEqString(tt.b) == tt.wantLess {
			t.Errorf("GreaterEqString(%q,%q) should be the negation of LessString", tt.a, tt.b)
		}
		if want := s.Compare(New(tt.b)); s.CompareString(tt.b) != want {
			t.Errorf("CompareString(%q,%q) = %d, want %d (matching Compare against a Str)", tt.a, tt.b, s.CompareString(tt.b), want)
		}
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		input, old, new_ string
		count            int
		want             string
	}{
		{"abcabc", "a", "X", -1, "XbcXbc"},
		{"abcabc", "a", "X", 1, "Xbcabc"},
		{"abcabc", "z", "X", -1, "abcabc"},
	}
	for _, tt := range tests {
		got := New(tt.input).Replace(New(tt.old), New(tt.new_), tt.count).String()
		if got != tt.want {
			t.Errorf("Replace(%q,%q,%q,%d) = %q, want %q", tt.input, tt.old, tt.new_, tt.count, got, tt.want)
		}
	}
}

func TestIndex(t *testing.T) {
	s := New("abcabc")
	if i := s.Index(New("c"), 3); i != 5 {
		t.Fatalf("Index(c, 3) = %d, want 5", i)
	}
	if i := s.Index(New("z"), 0); i != -1 {
		t.Fatalf("Index(z, 0) = %d, want -1", i)
	}
}

func TestStripAndLStrip(t *testing.T) {
	s := New("  \thello\r\n ")
	if got := s.Strip().String(); got != "hello" {
		t.Fatalf("Strip() = %q, want hello", got)
	}
	if got := s.LStrip().String(); got != "hello\r\n " {
		t.Fatalf("LStrip() = %q, want %q", got, "hello\r\n ")
	}
}

func TestConcat(t *testing.T) {
	a, b := New("foo"), New("bar")
	c := Concat(a, b)
	if c.String() != "foobar" {
		t.Fatalf("Concat() = %q, want foobar", c.String())
	}
	if !c.IsASCII() {
		t.Fatal("expected ascii concat result to be ascii")
	}
	wide := Concat(a, New("héllo"))
	if wide.IsASCII() {
		t.Fatal("expected concat with non-ascii operand to be non-ascii")
	}
}

func TestCStrIsNulTerminated(t *testing.T) {
	s := New("hi")
	c := s.CStr()
	if len(c) != 3 || c[2] != 0 {
		t.Fatalf("CStr() = %v, want 3 bytes ending in NUL", c)
	}
}
