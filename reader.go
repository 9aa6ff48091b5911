// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jpull

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jpull/bufpool"
	"github.com/creachadair/jpull/internal/numconv"
	"github.com/creachadair/jpull/lazy"
)

// A Reader is a pull cursor over the structure of a JSON value.
//
// A Reader is positioned on one value at a time. At the document root, the
// root value is read directly with the typed accessors, or entered with
// Object or Array. Inside a container, Next advances to each member or
// element in turn, and reports false when the container is exhausted. A
// Reader is not safe for concurrent use.
//
// The caller must Close the Reader to return its buffers to the pool.
type Reader struct {
	s    *Scanner
	pool *bufpool.Pool
	key  *bufpool.Buffer // most recent object key
	tok  Token
	err  error // sticky error from a traversal

	stack    depthStack
	inObject bool // mirrors the top of stack
	first    bool // no member or element of the current frame read yet
	pending  bool // positioned on a container that has not been entered
	root     bool // the input begins with a value
	done     bool // End has succeeded
}

// NewReader constructs a Reader that consumes input from r, and positions
// it on the root value. It reports an error if buffers cannot be obtained
// from the pool, or if the first token of the input is malformed. If
// construction fails and opts.CloseInput is set, r is closed.
func NewReader(r io.Reader, opts *Options) (*Reader, error) {
	s, err := NewScanner(r, opts)
	if err != nil {
		return nil, err
	}
	pool := opts.pool()
	key, err := pool.Get(scratchSize)
	if err != nil {
		s.Close()
		return nil, err
	}
	rd := &Reader{s: s, pool: pool, key: key, first: true}
	if err := rd.advance(); err != nil {
		rd.Close()
		return nil, err
	}
	rd.root = rd.tok.isValueStart()
	rd.pending = rd.tok == LBrace || rd.tok == LSquare
	return rd, nil
}

// NewReaderString constructs a Reader that consumes input from s.
func NewReaderString(s string, opts *Options) (*Reader, error) {
	return NewReader(strings.NewReader(s), opts)
}

// NewReaderBytes constructs a Reader that consumes input from b.
func NewReaderBytes(b []byte, opts *Options) (*Reader, error) {
	return NewReader(bytes.NewReader(b), opts)
}

// Token returns the current token.
func (r *Reader) Token() Token { return r.tok }

// Depth reports the number of containers currently open.
func (r *Reader) Depth() int { return r.stack.len() }

// Location returns the location of the current token.
func (r *Reader) Location() Location { return r.s.Location() }

// Object enters the object at the current position. The next call to Next
// advances to its first member.
func (r *Reader) Object() error { return r.enterAt(LBrace, "Object") }

// Array enters the array at the current position. The next call to Next
// advances to its first element.
func (r *Reader) Array() error { return r.enterAt(LSquare, "Array") }

func (r *Reader) enterAt(tok Token, op string) error {
	if r.err != nil {
		return r.err
	} else if r.tok != tok {
		return r.mismatch(tok)
	} else if !r.pending {
		return &UsageError{Op: op, Message: "container already entered"}
	}
	r.enter(tok == LBrace)
	return nil
}

// Next advances to the next member or element of the current container. It
// reports true if the Reader is positioned on a new value, or false if the
// container has ended; in that case the Reader returns to the enclosing
// container, and the next call to Next advances within that.
//
// In an object, Key reports the key of the member. If the Reader is
// positioned on a container that was not entered, Next skips it.
// It is a usage error to call Next at the document root.
func (r *Reader) Next() (bool, error) {
	if r.err != nil {
		return false, r.err
	} else if r.stack.len() == 0 {
		return false, &UsageError{Op: "Next", Message: "called at the document root"}
	}
	if r.pending {
		r.enter(r.tok == LBrace)
		if err := r.unwind(r.stack.len() - 1); err != nil {
			return false, r.fail(err)
		}
	}
	more, err := r.step()
	if err != nil {
		return false, r.fail(err)
	}
	return more, nil
}

// Pop skips the remainder of the current container, including any nested
// containers, and returns to the enclosing container. It reports whether the
// Reader is still inside a container, that is, false if the container that
// ended was the document root. It is a usage error to call Pop at the
// document root.
func (r *Reader) Pop() (bool, error) {
	if r.err != nil {
		return false, r.err
	} else if r.stack.len() == 0 {
		return false, &UsageError{Op: "Pop", Message: "called at the document root"}
	}
	if err := r.unwind(r.stack.len() - 1); err != nil {
		return false, r.fail(err)
	}
	return r.stack.len() > 0, nil
}

// End verifies that the input consists of exactly one value. If the root
// value is a container that was not entered, End skips it. It is a usage
// error to call End inside a container.
func (r *Reader) End() error {
	if r.err != nil {
		return r.err
	} else if r.done {
		return nil
	} else if r.stack.len() != 0 {
		return &UsageError{Op: "End", Message: "called inside a container"}
	} else if !r.root {
		return r.fail(r.mismatch(valueTokens...))
	}
	if r.pending {
		r.enter(r.tok == LBrace)
		if err := r.unwind(0); err != nil {
			return r.fail(err)
		}
	}
	if err := r.advance(); err != nil {
		return r.fail(err)
	} else if r.tok != EOF {
		loc := r.s.Location()
		return r.fail(&SyntaxError{
			Location: loc.First,
			Offset:   loc.Pos,
			Message:  fmt.Sprintf("unexpected %v after end of value", r.tok),
		})
	}
	r.done = true
	return nil
}

// Current reports the kind of the value at the current position.
func (r *Reader) Current() (Kind, error) {
	switch r.tok {
	case LBrace:
		return KindObject, nil
	case LSquare:
		return KindArray, nil
	case String:
		return KindString, nil
	case Number:
		return KindNumber, nil
	case True, False:
		return KindBool, nil
	case Null:
		return KindNull, nil
	}
	return 0, r.mismatch(valueTokens...)
}

// Key returns the key of the current object member. It is a usage error to
// call Key when the current container is not an object.
func (r *Reader) Key() (string, error) {
	if r.key == nil {
		return "", &UsageError{Op: "Key", Message: "reader is closed"}
	} else if !r.inObject {
		return "", &UsageError{Op: "Key", Message: "not reading an object"}
	}
	return string(r.key.Bytes()), nil
}

// Value returns the scalar value at the current position: a bool for true
// and false, nil for null, a string, or a *lazy.Number.
func (r *Reader) Value() (any, error) {
	switch r.tok {
	case True:
		return true, nil
	case False:
		return false, nil
	case Null:
		return nil, nil
	case Number:
		return r.Number()
	case String:
		return string(r.s.Text()), nil
	}
	return nil, r.mismatch(scalarTokens...)
}

// Str returns the string at the current position. If the value is null, Str
// returns "", false.
func (r *Reader) Str() (string, bool, error) {
	switch r.tok {
	case Null:
		return "", false, nil
	case String:
		return string(r.s.Text()), true, nil
	}
	return "", false, r.mismatch(Null, String)
}

// LazyString returns the string at the current position as a *lazy.String,
// which remains valid after the Reader advances. If the value is null,
// LazyString returns nil.
func (r *Reader) LazyString() (*lazy.String, error) {
	switch r.tok {
	case Null:
		return nil, nil
	case String:
		return lazy.NewString(r.s.Text()), nil
	}
	return nil, r.mismatch(Null, String)
}

// Bool returns the Boolean value at the current position.
func (r *Reader) Bool() (bool, error) {
	switch r.tok {
	case True:
		return true, nil
	case False:
		return false, nil
	}
	return false, r.mismatch(True, False)
}

// Null verifies that the value at the current position is null.
func (r *Reader) Null() error {
	if r.tok != Null {
		return r.mismatch(Null)
	}
	return nil
}

// Number returns the number at the current position as a *lazy.Number,
// which remains valid after the Reader advances. If the value is null,
// Number returns nil.
func (r *Reader) Number() (*lazy.Number, error) {
	switch r.tok {
	case Null:
		return nil, nil
	case Number:
		return lazy.NewNumber(r.s.Text(), r.s.Float()), nil
	}
	return nil, r.mismatch(Null, Number)
}

// Int32 returns the number at the current position as an int32. An integer
// literal must fit exactly; a literal with a fraction or exponent is
// truncated toward zero, saturating at the limits of the type.
func (r *Reader) Int32() (int32, error) {
	if r.tok != Number {
		return 0, r.mismatch(Number)
	}
	return numconv.Int[int32](r.s.Text(), r.s.Float())
}

// Int64 returns the number at the current position as an int64, following
// the same rules as Int32.
func (r *Reader) Int64() (int64, error) {
	if r.tok != Number {
		return 0, r.mismatch(Number)
	}
	return numconv.Int[int64](r.s.Text(), r.s.Float())
}

// Float32 returns the float32 nearest the number at the current position.
func (r *Reader) Float32() (float32, error) {
	if r.tok != Number {
		return 0, r.mismatch(Number)
	}
	return numconv.Float32(r.s.Text())
}

// Float64 returns the float64 nearest the number at the current position.
func (r *Reader) Float64() (float64, error) {
	if r.tok != Number {
		return 0, r.mismatch(Number)
	}
	return numconv.Float64(r.s.Text())
}

// Close releases the buffers held by r and closes its Scanner. Close is safe
// to call more than once.
func (r *Reader) Close() error {
	if r.key != nil {
		r.pool.Release(r.key)
		r.key = nil
	}
	return r.s.Close()
}

// advance reads the next token. Reaching the end of input is not an error
// here; the caller checks for an EOF token.
func (r *Reader) advance() error {
	err := r.s.Next()
	r.tok = r.s.Token()
	if err == io.EOF {
		return nil
	}
	return err
}

// step advances to the next member or element of the current frame, or
// leaves the frame at its end.
func (r *Reader) step() (bool, error) {
	if err := r.advance(); err != nil {
		return false, err
	}
	if r.inObject {
		if r.tok == RBrace {
			r.leave()
			return false, nil
		}
		if !r.first {
			if r.tok != Comma {
				return false, r.mismatch(Comma, RBrace)
			} else if err := r.advance(); err != nil {
				return false, err
			}
		}
		if r.tok != String {
			if r.first {
				return false, r.mismatch(String, RBrace)
			}
			return false, r.mismatch(String)
		}
		r.key.Set(r.s.Text())
		if err := r.advance(); err != nil {
			return false, err
		} else if r.tok != Colon {
			return false, r.mismatch(Colon)
		} else if err := r.advance(); err != nil {
			return false, err
		}
	} else {
		if r.tok == RSquare {
			r.leave()
			return false, nil
		}
		if !r.first {
			if r.tok != Comma {
				return false, r.mismatch(Comma, RSquare)
			} else if err := r.advance(); err != nil {
				return false, err
			}
		}
	}
	if !r.tok.isValueStart() {
		if r.first && !r.inObject {
			return false, r.mismatch(append(valueTokens, RSquare)...)
		}
		return false, r.mismatch(valueTokens...)
	}
	r.first = false
	r.pending = r.tok == LBrace || r.tok == LSquare
	return true, nil
}

// unwind consumes input until the depth of r is target, skipping the
// contents of any nested containers along the way.
func (r *Reader) unwind(target int) error {
	for r.stack.len() > target {
		if r.pending {
			r.enter(r.tok == LBrace)
		}
		if _, err := r.step(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) enter(isObject bool) {
	r.stack.push(isObject)
	r.inObject = isObject
	r.first = true
	r.pending = false
}

func (r *Reader) leave() {
	r.inObject = r.stack.pop()
	r.first = false
	r.pending = false
}

func (r *Reader) fail(err error) error {
	r.err = err
	return err
}

// mismatch reports an error for the current token, which is not one of
// want. Running out of input is reported as a *SyntaxError wrapping
// io.ErrUnexpectedEOF; otherwise the error is a *TokenMismatchError.
func (r *Reader) mismatch(want ...Token) error {
	loc := r.s.Location()
	if r.tok == EOF {
		return &SyntaxError{
			Location: loc.First,
			Offset:   loc.Pos,
			Message:  "unexpected end of input: " + tokLabel(want, r.tok),
			err:      io.ErrUnexpectedEOF,
		}
	}
	return &TokenMismatchError{Location: loc.First, Want: want, Got: r.tok}
}
