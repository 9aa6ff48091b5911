// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package bufpool

import "unicode/utf8"

// A Buffer is a reusable byte buffer owned by at most one caller at a time.
// Buffers are obtained from a Pool with Get and returned with Release. The
// zero value is an empty buffer that is not associated with any pool.
type Buffer struct {
	data   []byte
	pooled bool // true while the buffer is held by a pool
}

// Bytes returns a view of the contents of b. The slice is only valid until
// the next modification of b.
func (b *Buffer) Bytes() []byte { return b.data }

// Len reports the number of bytes currently in use.
func (b *Buffer) Len() int { return len(b.data) }

// Cap reports the capacity of b.
func (b *Buffer) Cap() int { return cap(b.data) }

// Reset discards the contents of b, preserving its capacity.
func (b *Buffer) Reset() { b.data = b.data[:0] }

// AppendByte adds c to the end of b.
func (b *Buffer) AppendByte(c byte) { b.data = append(b.data, c) }

// AppendRune adds the UTF-8 encoding of r to the end of b.
func (b *Buffer) AppendRune(r rune) { b.data = utf8.AppendRune(b.data, r) }

// Append adds the contents of p to the end of b.
func (b *Buffer) Append(p []byte) { b.data = append(b.data, p...) }

// Set replaces the contents of b with a copy of p.
func (b *Buffer) Set(p []byte) { b.data = append(b.data[:0], p...) }
