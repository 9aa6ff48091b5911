// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package lazy_test

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/creachadair/jpull/lazy"
	"github.com/google/go-cmp/cmp"
)

func isFloatText(s string) bool { return strings.ContainsAny(s, ".eE") }

func TestNumberAccessors(t *testing.T) {
	tests := []struct {
		input string
		i32   int32
		i64   int64
		f64   float64
	}{
		{"0", 0, 0, 0},
		{"1", 1, 1, 1},
		{"-300000000", -300000000, -300000000, -3e8},
		{"1.000", 1, 1, 1},
		{"2.75", 2, 2, 2.75},
		{"-2.75", -2, -2, -2.75},
		{"3000000000.5", math.MaxInt32, 3000000000, 3000000000.5},
		{"1e3", 1000, 1000, 1000},
		{"-1E+2", -100, -100, -100},
		{"1e400", math.MaxInt32, math.MaxInt64, math.Inf(1)},
	}
	for _, tc := range tests {
		n := lazy.NewNumber([]byte(tc.input), isFloatText(tc.input))
		if got := n.String(); got != tc.input {
			t.Errorf("String(%q): got %q", tc.input, got)
		}
		if got, err := n.Int32(); err != nil || got != tc.i32 {
			t.Errorf("Int32(%q): got %d, %v; want %d", tc.input, got, err, tc.i32)
		}
		if got, err := n.Int64(); err != nil || got != tc.i64 {
			t.Errorf("Int64(%q): got %d, %v; want %d", tc.input, got, err, tc.i64)
		}
		if got, err := n.Float64(); err != nil || got != tc.f64 {
			t.Errorf("Float64(%q): got %v, %v; want %v", tc.input, got, err, tc.f64)
		}
		if got, err := n.Float32(); err != nil || got != float32(tc.f64) {
			t.Errorf("Float32(%q): got %v, %v; want %v", tc.input, got, err, float32(tc.f64))
		}
	}
}

func TestNumberRange(t *testing.T) {
	for _, s := range []string{"2147483648", "-2147483649"} {
		n := lazy.NewNumber([]byte(s), false)
		if got, err := n.Int32(); err == nil {
			t.Errorf("Int32(%q): got %d, want range error", s, got)
		}
		if _, err := n.Int64(); err != nil {
			t.Errorf("Int64(%q): unexpected error: %v", s, err)
		}
	}
	n := lazy.NewNumber([]byte("9223372036854775808"), false)
	if got, err := n.Int64(); err == nil {
		t.Errorf("Int64: got %d, want range error", got)
	}
}

func TestNumberIndependent(t *testing.T) {
	buf := []byte("12345")
	n := lazy.NewNumber(buf, false)
	copy(buf, "99999")
	if got := n.String(); got != "12345" {
		t.Errorf("Number aliases its input: got %q, want 12345", got)
	}
}

// Edge values of the native integer widths, and one past each.
var edgeLiterals = []string{
	"2147483647", "2147483648", "-2147483648", "-2147483649",
	"9223372036854775807", "9223372036854775808",
	"-9223372036854775808", "-9223372036854775809",
}

func TestDecimalEdges(t *testing.T) {
	for _, s := range edgeLiterals {
		n := lazy.NewNumber([]byte(s), false)
		d, err := n.Decimal()
		if err != nil {
			t.Fatalf("Decimal(%q): %v", s, err)
		}
		if got := d.String(); got != s {
			t.Errorf("Decimal(%q).String(): got %q", s, got)
		}
		want, _ := new(big.Int).SetString(s, 10)
		if got := d.Coefficient(); got.Cmp(want) != 0 || d.Exponent().Sign() != 0 {
			t.Errorf("Decimal(%q): got %v × 10^%d, want %v", s, got, d.Exponent(), want)
		}
	}

	// Boxed into a general-purpose container, the literal text survives.
	var box []any
	for _, s := range edgeLiterals {
		d, err := lazy.ParseDecimal(s)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", s, err)
		}
		box = append(box, d)
	}
	got, err := json.Marshal(box)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "[" + strings.Join(edgeLiterals, ",") + "]"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Boxed JSON (-want, +got):\n%s", diff)
	}
}

func TestDecimalString(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"0", "0"},
		{"-0", "-0"},
		{"-0.0", "-0.0"},
		{"1.000", "1.000"},
		{"0.001", "0.001"},
		{"0.0000001", "0.0000001"},
		{"100", "100"},
		{"10.50", "10.50"},
		{"30000000000000000000", "30000000000000000000"},
		{"1e5", "1e5"},
		{"1E+5", "1E+5"},
		{"1e05", "1e05"},
		{"1.5E+10", "1.5E+10"},
		{"2.50e-3", "2.50e-3"},
		{"2.50E-007", "2.50E-007"},
		{"1e+0", "1e+0"},
		{"0e0", "0e0"},
		{"1e99999999999999999999", "1e99999999999999999999"},
		{"-3.0E-00000000000000000000000001", "-3.0E-00000000000000000000000001"},
	}
	for _, tc := range tests {
		d, err := lazy.ParseDecimal(tc.input)
		if err != nil {
			t.Errorf("ParseDecimal(%q): %v", tc.input, err)
			continue
		}
		if got := d.String(); got != tc.want {
			t.Errorf("ParseDecimal(%q).String(): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestDecimalValue(t *testing.T) {
	tests := []struct {
		input string
		sign  int
		rat   string
		f64   float64
	}{
		{"0", 0, "0/1", 0},
		{"-0.0", 0, "0/1", 0},
		{"1.5", 1, "3/2", 1.5},
		{"-2.50e-3", -1, "-1/400", -0.0025},
		{"1.5E+2", 1, "150/1", 150},
		{"12e-1", 1, "6/5", 1.2},
	}
	for _, tc := range tests {
		d, err := lazy.ParseDecimal(tc.input)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", tc.input, err)
		}
		if got := d.Sign(); got != tc.sign {
			t.Errorf("Sign(%q): got %d, want %d", tc.input, got, tc.sign)
		}
		if got, err := d.Rat(); err != nil {
			t.Errorf("Rat(%q): unexpected error: %v", tc.input, err)
		} else if got.String() != tc.rat {
			t.Errorf("Rat(%q): got %s, want %s", tc.input, got, tc.rat)
		}
		if got := d.Float64(); got != tc.f64 {
			t.Errorf("Float64(%q): got %v, want %v", tc.input, got, tc.f64)
		}
	}

	a, _ := lazy.ParseDecimal("1.0")
	b, _ := lazy.ParseDecimal("1.000")
	c, _ := lazy.ParseDecimal("10e-1")
	if a.Cmp(b) != 0 || b.Cmp(c) != 0 {
		t.Errorf("Cmp: %v, %v, %v should all be equal", a, b, c)
	}
	if a.String() == b.String() {
		t.Errorf("Equal values should keep their written form: %v, %v", a, b)
	}
}

func TestDecimalCmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"0", "-0.0e+5", 0},
		{"1", "2", -1},
		{"-1", "-2", 1},
		{"-1", "0", -1},
		{"12.5", "1.25e1", 0},
		{"12.5", "1.26E+1", -1},
		{"100", "99.999", 1},
		{"1e99999999999999999999", "1e99999999999999999998", 1},
		{"1e99999999999999999999", "10e99999999999999999998", 0},
		{"-1e99999999999999999999", "1", -1},
		{"1e-99999999999999999999", "0", 1},
		{"5e-99999999999999999999", "4e-99999999999999999999", 1},
	}
	for _, tc := range tests {
		a, err := lazy.ParseDecimal(tc.a)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", tc.a, err)
		}
		b, err := lazy.ParseDecimal(tc.b)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", tc.b, err)
		}
		if got := a.Cmp(b); got != tc.want {
			t.Errorf("Cmp(%q, %q): got %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := b.Cmp(a); got != -tc.want {
			t.Errorf("Cmp(%q, %q): got %d, want %d", tc.b, tc.a, got, -tc.want)
		}
	}
}

func TestDecimalHugeExponent(t *testing.T) {
	const lit = "1.5E+99999999999999999999"
	n := lazy.NewNumber([]byte(lit), true)
	d, err := n.Decimal()
	if err != nil {
		t.Fatalf("Decimal(%q): %v", lit, err)
	}
	if got := d.String(); got != lit {
		t.Errorf("String: got %q, want %q", got, lit)
	}
	if got, want := d.Exponent().String(), "99999999999999999998"; got != want {
		t.Errorf("Exponent: got %s, want %s", got, want)
	}
	if got := d.Float64(); !math.IsInf(got, 1) {
		t.Errorf("Float64: got %v, want +Inf", got)
	}
	if r, err := d.Rat(); !errors.Is(err, lazy.ErrExponentRange) {
		t.Errorf("Rat: got %v, %v; want %v", r, err, lazy.ErrExponentRange)
	}
}

func TestDecimalErrors(t *testing.T) {
	for _, s := range []string{"", "-", "01", "1.", ".5", "1e", "1e+", "1x", "--1", "1.2.3", "+1"} {
		if d, err := lazy.ParseDecimal(s); err == nil {
			t.Errorf("ParseDecimal(%q): got %v, want error", s, d)
		}
	}
}

func TestDecimalText(t *testing.T) {
	var d lazy.Decimal
	if err := d.UnmarshalText([]byte("-12.340")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if got, err := d.MarshalText(); err != nil || string(got) != "-12.340" {
		t.Errorf("MarshalText: got %q, %v; want -12.340", got, err)
	}
	if err := d.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus): got nil, want error")
	}
}

// randomLiteral generates a random JSON number literal. An exponent, if
// present, has either marker, an optional sign, and may have leading zeroes.
func randomLiteral(r *rand.Rand) string {
	var sb strings.Builder
	if r.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	if r.IntN(4) == 0 {
		sb.WriteByte('0')
	} else {
		sb.WriteByte(byte('1' + r.IntN(9)))
		for n := r.IntN(30); n > 0; n-- {
			sb.WriteByte(byte('0' + r.IntN(10)))
		}
	}
	if r.IntN(2) == 0 {
		sb.WriteByte('.')
		for n := 1 + r.IntN(25); n > 0; n-- {
			sb.WriteByte(byte('0' + r.IntN(10)))
		}
	}
	if r.IntN(3) == 0 {
		sb.WriteByte("eE"[r.IntN(2)])
		if c := r.IntN(3); c > 0 {
			sb.WriteByte("+-"[c-1])
		}
		for n := 1 + r.IntN(4); n > 0; n-- {
			sb.WriteByte(byte('0' + r.IntN(10)))
		}
	}
	return sb.String()
}

func TestDecimalRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5000; i++ {
		s := randomLiteral(r)
		n := lazy.NewNumber([]byte(s), isFloatText(s))
		d, err := n.Decimal()
		if err != nil {
			t.Fatalf("Decimal(%q): %v", s, err)
		}
		if got := d.String(); got != s {
			t.Fatalf("Round trip: got %q, want %q", got, s)
		}
		if got, err := json.Marshal(d); err != nil || string(got) != s {
			t.Fatalf("Marshal(%q): got %q, %v", s, got, err)
		}
	}
}
