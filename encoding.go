// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jpull

import (
	"errors"
	"io"
	"strings"

	"github.com/creachadair/jpull/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
// Unquote reports an error if src is not exactly one valid JSON string.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	s, err := NewScanner(strings.NewReader(src), nil)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	if err := s.Next(); err != nil {
		return nil, err
	}
	out := s.Copy()
	if err := s.Next(); err == nil {
		return nil, errors.New("extra input after string")
	} else if err != io.EOF {
		return nil, err
	}
	return out, nil
}
