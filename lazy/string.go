// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package lazy

import (
	"bytes"
	"sync/atomic"

	"github.com/creachadair/jpull/internal/escape"
	"go4.org/mem"
)

// A String is a lazily-finished JSON string value.
//
// A String starts out holding a private copy of decoded string bytes. The
// first call to its String method builds a Go string from those bytes,
// installs it, and discards the bytes. All other methods read whichever form
// is installed at the start of the call, so they are safe for concurrent use
// with each other and with String.
type String struct {
	n   int
	rep atomic.Pointer[stringRep]
}

// A stringRep is one installed form of a String. Exactly one of its fields
// is authoritative: str if done is true, otherwise raw.
type stringRep struct {
	raw  []byte
	str  string
	done bool
}

func (r *stringRep) view() mem.RO {
	if r.done {
		return mem.S(r.str)
	}
	return mem.B(r.raw)
}

// NewString constructs a String from a copy of the decoded bytes in b.
func NewString(b []byte) *String {
	s := &String{n: len(b)}
	s.rep.Store(&stringRep{raw: bytes.Clone(b)})
	return s
}

// FromString constructs a finished String with the contents of v.
func FromString(v string) *String {
	s := &String{n: len(v)}
	s.rep.Store(&stringRep{str: v, done: true})
	return s
}

// view returns a read-only view of the installed representation of s.
func (s *String) view() mem.RO { return s.rep.Load().view() }

// Len reports the length of s in bytes.
func (s *String) Len() int { return s.n }

// At returns the byte at offset i of s. It panics if i is out of range.
func (s *String) At(i int) byte { return s.view().At(i) }

// Slice returns a new String containing the bytes of s in the range [i, j).
// It panics if the range is invalid.
func (s *String) Slice(i, j int) *String {
	r := s.rep.Load()
	if r.done {
		return FromString(r.str[i:j])
	}
	return NewString(r.raw[i:j])
}

// String returns the contents of s as a string. The first call installs the
// string as the sole representation of s. Concurrent first calls may each
// build a copy, but only one is installed and all callers see the same
// content.
func (s *String) String() string {
	for {
		r := s.rep.Load()
		if r.done {
			return r.str
		}
		next := &stringRep{str: string(r.raw), done: true}
		if s.rep.CompareAndSwap(r, next) {
			return next.str
		}
		// Another caller installed first; use its result.
	}
}

// Finished reports whether s has installed its string form.
func (s *String) Finished() bool { return s.rep.Load().done }

// Equal reports whether s and t have the same contents.
func (s *String) Equal(t *String) bool {
	if s == t {
		return true
	} else if s == nil || t == nil {
		return false
	}
	return s.n == t.n && s.view().Equal(t.view())
}

// EqualString reports whether the contents of s equal v.
func (s *String) EqualString(v string) bool { return s.view().EqualString(v) }

// Hash returns a hash of the contents of s. Strings with equal contents have
// equal hashes, regardless of their installed representation. Hash values
// are specific to the running process.
func (s *String) Hash() uint64 { return s.view().MapHash() }

// MarshalJSON renders s as a quoted JSON string.
func (s *String) MarshalJSON() ([]byte, error) {
	return escape.Quote(s.view()), nil
}
