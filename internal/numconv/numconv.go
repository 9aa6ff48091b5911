// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package numconv converts the text of JSON number literals to Go numeric
// values.
package numconv

import (
	"errors"
	"math"
	"strconv"
	"unsafe"

	"go4.org/mem"
	"golang.org/x/exp/constraints"
)

// Int parses text as a value of type T. If isFloat is false, text must be a
// decimal integer literal that fits in T; otherwise text is parsed as a
// float64 and truncated toward zero by Truncate.
func Int[T constraints.Signed](text []byte, isFloat bool) (T, error) {
	if isFloat {
		f, err := Float64(text)
		if err != nil {
			return 0, err
		}
		return Truncate[T](f), nil
	}
	v, err := mem.ParseInt(mem.B(text), 10, bitSize[T]())
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// Float64 parses text as a float64. A literal whose magnitude is out of
// range yields ±Inf or ±0 without error.
func Float64(text []byte) (float64, error) {
	return parseFloat(text, 64)
}

// Float32 parses text as a float32, with the same range behaviour as Float64.
func Float32(text []byte) (float32, error) {
	f, err := parseFloat(text, 32)
	return float32(f), err
}

func parseFloat(text []byte, size int) (float64, error) {
	f, err := strconv.ParseFloat(string(text), size)
	if errors.Is(err, strconv.ErrRange) {
		return f, nil
	}
	return f, err
}

// Truncate converts f to T, rounding toward zero. NaN converts to zero, and
// values beyond the range of T saturate at its minimum or maximum.
func Truncate[T constraints.Signed](f float64) T {
	bits := bitSize[T]()
	lo := -(T(1) << (bits - 1))
	hi := -(lo + 1)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(hi):
		return hi
	case f <= float64(lo):
		return lo
	}
	return T(f)
}

func bitSize[T constraints.Signed]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}
