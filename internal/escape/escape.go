// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

// Simple maps the byte following a backslash in a JSON string to the byte it
// denotes. It reports false if c does not introduce a single-byte escape;
// note that 'u' (a Unicode escape) is not a simple escape.
func Simple(c rune) (byte, bool) {
	switch c {
	case '"', '\\', '/':
		return byte(c), true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// HexValue reports the value of the hexadecimal digit c, or false if c is
// not a hexadecimal digit.
func HexValue(c rune) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
