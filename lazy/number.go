// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package lazy defines value wrappers that defer the conversion of JSON
// scalar text until a typed value is requested.
//
// A Number holds the text of a number literal and re-parses it on each call
// to a typed accessor. A String holds decoded string bytes until its String
// method is first called, after which it holds only the finished string.
// Neither type aliases a parser's internal buffers, so a value remains valid
// after the parser has moved on.
package lazy

import (
	"bytes"

	"github.com/creachadair/jpull/internal/numconv"
)

// A Number is a lazily-converted JSON number. The zero value is not valid;
// use NewNumber to construct a Number.
type Number struct {
	text    []byte
	isFloat bool
}

// NewNumber constructs a Number from a copy of the literal text, which is
// expected to conform to the JSON number grammar. If isFloat is true, the
// literal has a fraction or an exponent.
func NewNumber(text []byte, isFloat bool) *Number {
	return &Number{text: bytes.Clone(text), isFloat: isFloat}
}

// IsFloat reports whether the literal has a fraction or an exponent.
func (n *Number) IsFloat() bool { return n.isFloat }

// String returns the literal text of n.
func (n *Number) String() string { return string(n.text) }

// Int32 returns the value of n as an int32. An integer literal is parsed
// exactly and reports an error if it does not fit. A float literal is
// truncated toward zero, saturating at the limits of the type.
func (n *Number) Int32() (int32, error) { return numconv.Int[int32](n.text, n.isFloat) }

// Int64 returns the value of n as an int64, with the same rules as Int32.
func (n *Number) Int64() (int64, error) { return numconv.Int[int64](n.text, n.isFloat) }

// Float32 returns the float32 nearest the value of n.
func (n *Number) Float32() (float32, error) { return numconv.Float32(n.text) }

// Float64 returns the float64 nearest the value of n.
func (n *Number) Float64() (float64, error) { return numconv.Float64(n.text) }

// Decimal returns the exact value of n as a Decimal.
func (n *Number) Decimal() (*Decimal, error) { return ParseDecimal(string(n.text)) }

// MarshalJSON renders n as its original literal text.
func (n *Number) MarshalJSON() ([]byte, error) { return bytes.Clone(n.text), nil }
