// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpull

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/jpull/bufpool"
	"github.com/creachadair/jpull/internal/escape"
	"go4.org/mem"
)

// scratchSize is the initial capacity requested for scratch buffers.
const scratchSize = 1024

// A Scanner reads lexical tokens from an input stream.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// The text of each string and number token is written to a scratch buffer
// drawn from a bufpool.Pool. The caller must Close the scanner to return its
// buffer to the pool.
type Scanner struct {
	r      *bufio.Reader
	closer io.Closer // if non-nil, the scanner owns the input
	pool   *bufpool.Pool
	buf    *bufpool.Buffer // text of the current token
	tok    Token
	float  bool // current number has a fraction or exponent
	err    error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
// It reports an error if a scratch buffer cannot be obtained from the pool;
// in that case, if opts.CloseInput is set, r is closed.
func NewScanner(r io.Reader, opts *Options) (*Scanner, error) {
	pool := opts.pool()
	buf, err := pool.Get(scratchSize)
	if err != nil {
		if c, ok := r.(io.Closer); ok && opts.closeInput() {
			c.Close()
		}
		return nil, err
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Scanner{r: br, pool: pool, buf: buf}
	if c, ok := r.(io.Closer); ok && opts.closeInput() {
		s.closer = c
	}
	return s, nil
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next sets the token to EOF and returns io.EOF.
// After Close, Next reports a *UsageError. Any other error has concrete
// type *SyntaxError.
func (s *Scanner) Next() error {
	if s.buf == nil {
		return s.setErr(&UsageError{Op: "Next", Message: "scanner is closed"})
	}
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid
	s.float = false
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			s.tok = EOF
			return s.setErr(err)
		} else if err != nil {
			return s.fail(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.tok = t
			return nil
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString()
		}

		// Handle constants: true, false, null
		var want mem.RO
		switch ch {
		case 't':
			s.tok = True
			want = mem.S("true")
		case 'f':
			s.tok = False
			want = mem.S("false")
		case 'n':
			s.tok = Null
			want = mem.S("null")
		default:
			return s.failf("unexpected %q", ch)
		}
		if err := s.scanName(ch); err != nil {
			return err
		} else if got := mem.B(s.buf.Bytes()); !got.Equal(want) {
			return s.failf("unknown constant %q", got.StringCopy())
		}
		return nil // OK, token is already set
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Float reports whether the current token is a number with a fraction or an
// exponent part.
func (s *Scanner) Float() bool { return s.tok == Number && s.float }

// Text returns the text of the current token. For a string, this is the
// decoded content without quotation marks; for a number, the literal text.
// The return value is only valid until the next call of Next. The caller
// must copy the contents of the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte {
	if s.buf == nil {
		return nil
	}
	return s.buf.Bytes()
}

// Copy returns a copy of the text of the current token.
func (s *Scanner) Copy() []byte { return bytes.Clone(s.Text()) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// Close releases the scratch buffer of s to its pool and, if s owns its
// input, closes the input. Close is safe to call more than once.
func (s *Scanner) Close() error {
	if s.buf != nil {
		s.pool.Release(s.buf)
		s.buf = nil
	}
	if c := s.closer; c != nil {
		s.closer = nil
		return c.Close()
	}
	return nil
}

func (s *Scanner) scanString() error {
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.failf("unterminated string")
		} else if err != nil {
			return s.fail(err)
		}
		switch {
		case ch == '"':
			s.tok = String
			return nil
		case ch == '\\':
			if err := s.scanEscape(); err != nil {
				return err
			}
		case ch < ' ':
			return s.failf("unescaped control %q", ch)
		case ch == utf8.RuneError && s.last == 1:
			return s.failf("invalid UTF-8 in string")
		default:
			s.buf.AppendRune(ch)
		}
	}
}

// scanEscape decodes a single escape sequence following a backslash.
func (s *Scanner) scanEscape() error {
	ch, err := s.rune()
	if err == io.EOF {
		return s.failf("incomplete escape sequence")
	} else if err != nil {
		return s.fail(err)
	}
	if b, ok := escape.Simple(ch); ok {
		s.buf.AppendByte(b)
		return nil
	} else if ch != 'u' {
		return s.failf("invalid %q after escape", ch)
	}

	r, err := s.readHex4()
	if err != nil {
		return err
	}
	if utf16.IsSurrogate(r) {
		if r >= 0xdc00 {
			return s.failf("unpaired surrogate half %04x", r)
		}
		// A high surrogate half must be followed by an escaped low half.
		if err := s.requireRunes(`\u`); err != nil {
			return s.failf("unpaired surrogate half %04x", r)
		}
		lo, err := s.readHex4()
		if err != nil {
			return err
		} else if lo < 0xdc00 || lo > 0xdfff {
			return s.failf("invalid surrogate pair %04x %04x", r, lo)
		}
		r = utf16.DecodeRune(r, lo)
	}
	s.buf.AppendRune(r)
	return nil
}

func (s *Scanner) scanNumber(start rune) error {
	s.buf.AppendByte(byte(start))

	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		ch, err := s.require(isDigit, "digit")
		if err != nil {
			return err
		}
		s.buf.AppendByte(byte(ch))
	}

	// Consume the remainder of an integer.
	_, ch, err := s.readWhile(isDigit)

	// Check for extra leading zeroes, which are disallowed by the JSON grammar.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.failf("extra leading zeroes")
	} else if err != nil {
		return s.endNumber(err)
	}

	// If a decimal point follows, consume a fractional part.
	if ch == '.' {
		s.buf.AppendByte('.')
		s.float = true
		var nr int
		nr, ch, err = s.readWhile(isDigit)
		if err != nil && err != io.EOF {
			return s.fail(err)
		} else if nr == 0 {
			return s.failf("no digits after decimal point")
		} else if err != nil {
			return s.endNumber(err)
		}
	}

	// If an exponent follows, consume it.
	if ch == 'E' || ch == 'e' {
		s.buf.AppendByte(byte(ch))
		s.float = true
		sign, err := s.require(isExpStart, "sign or digit")
		if err != nil {
			return err
		}
		s.buf.AppendByte(byte(sign))
		nr, _, err := s.readWhile(isDigit)
		if nr == 0 && (sign == '-' || sign == '+') {
			// It's OK to have no digits if the previous rune was not a sign,
			// otherwise we have to have at least one.
			return s.failf("missing exponent digits")
		} else if err != nil {
			return s.endNumber(err)
		}
	}

	// The last rune read does not belong to the number.
	s.unrune()
	s.tok = Number
	return nil
}

// endNumber completes a number token that ended with a read error.
func (s *Scanner) endNumber(err error) error {
	if err == io.EOF {
		s.tok = Number
		return nil
	}
	return s.fail(err)
}

func (s *Scanner) scanName(first rune) error {
	s.buf.AppendRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()
	return nil
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.end += nb
	s.ecol += nb
	return ch, err
}

func (s *Scanner) unrune() {
	s.end -= s.last
	s.ecol -= s.last
	s.last = 0
	s.r.UnreadRune()
}

// require reads a single rune matching f from the input, or returns an error
// mentioning the desired label.
func (s *Scanner) require(f func(rune) bool, label string) (rune, error) {
	ch, err := s.rune()
	if err != nil {
		return 0, s.failf("want %s, got error: %w", label, err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.failf("got %q, want %s", ch, label)
	}
	return ch, nil
}

// requireRunes reads the runes of want from the input, in order, or returns
// an error.
func (s *Scanner) requireRunes(want string) error {
	for _, w := range want {
		ch, err := s.rune()
		if err != nil {
			return err
		} else if ch != w {
			return fmt.Errorf("got %q, want %q", ch, w)
		}
	}
	return nil
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.AppendRune(ch)
		nr++
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input and returns
// their value.
func (s *Scanner) readHex4() (rune, error) {
	var v rune
	for i := 0; i < 4; i++ {
		ch, err := s.rune()
		if err == io.EOF {
			return 0, s.failf("incomplete Unicode escape")
		} else if err != nil {
			return 0, s.fail(err)
		}
		d, ok := escape.HexValue(ch)
		if !ok {
			return 0, s.failf("invalid Unicode escape: not a hex digit: %q", ch)
		}
		v = v<<4 | d
	}
	return v, nil
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) syntaxError(err error, msg string) error {
	s.tok = Invalid
	return s.setErr(&SyntaxError{
		Location: LineCol{Line: s.eline + 1, Column: s.ecol},
		Offset:   s.end,
		Message:  msg,
		err:      err,
	})
}

func (s *Scanner) fail(err error) error {
	return s.syntaxError(err, fmt.Sprintf("read error: %v", err))
}

func (s *Scanner) failf(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	return s.syntaxError(err, err.Error())
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by the grammar.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
