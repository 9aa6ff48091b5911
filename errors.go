// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpull

import (
	"fmt"
	"strings"
)

// SyntaxError is the concrete type of errors reported for malformed input.
// If the failure was caused by an error reading the input, Unwrap returns
// that error.
type SyntaxError struct {
	Location LineCol // where the error was detected
	Offset   int     // byte offset of the error, 0-based
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// TokenMismatchError is the concrete type of errors reported when the token
// at the current position is not one of the tokens acceptable to the
// operation requested.
type TokenMismatchError struct {
	Location LineCol // location of the unexpected token
	Want     []Token // the acceptable tokens
	Got      Token   // the token found
}

// Error satisfies the error interface.
func (t *TokenMismatchError) Error() string {
	return fmt.Sprintf("at %s: token mismatch: %s", t.Location, tokLabel(t.Want, t.Got))
}

// UsageError is the concrete type of errors reported when a Reader method is
// called in a state where it is not meaningful, such as calling Next at the
// document root. A UsageError indicates a bug in the caller, not a problem
// with the input.
type UsageError struct {
	Op      string // the name of the method called
	Message string
}

// Error satisfies the error interface.
func (u *UsageError) Error() string { return fmt.Sprintf("jpull: %s: %s", u.Op, u.Message) }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
