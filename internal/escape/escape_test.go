// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jpull/internal/escape"
	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
		{"héllo, 世界", `"héllo, 世界"`},
	}
	for _, test := range tests {
		got := string(escape.Quote(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestSimple(t *testing.T) {
	for in, want := range map[rune]byte{
		'"': '"', '\\': '\\', '/': '/', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
	} {
		if got, ok := escape.Simple(in); !ok || got != want {
			t.Errorf("Simple(%q): got %q, %v; want %q, true", in, got, ok, want)
		}
	}
	for _, in := range "uxa0 " {
		if got, ok := escape.Simple(in); ok {
			t.Errorf("Simple(%q): got %q, want false", in, got)
		}
	}
}

func TestHexValue(t *testing.T) {
	for i, c := range "0123456789abcdef" {
		if got, ok := escape.HexValue(c); !ok || got != rune(i) {
			t.Errorf("HexValue(%q): got %d, %v; want %d", c, got, ok, i)
		}
	}
	if got, ok := escape.HexValue('F'); !ok || got != 15 {
		t.Errorf("HexValue('F'): got %d, %v; want 15", got, ok)
	}
	if _, ok := escape.HexValue('g'); ok {
		t.Error("HexValue('g'): got true, want false")
	}
}
