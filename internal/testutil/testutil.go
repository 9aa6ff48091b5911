// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jpull"
	"github.com/creachadair/jpull/bufpool"
	"github.com/creachadair/jpull/lazy"
)

// NewReader constructs a Reader over input that draws its buffers from a new
// pool with the given settings. The Reader is closed when the test ends.
func NewReader(t testing.TB, input string, cfg bufpool.Config) (*jpull.Reader, *bufpool.Pool) {
	t.Helper()
	pool := bufpool.New(cfg)
	r, err := jpull.NewReaderString(input, &jpull.Options{Pool: pool})
	if err != nil {
		t.Fatalf("NewReader %#q: unexpected error: %v", input, err)
	}
	t.Cleanup(func() { r.Close() })
	return r, pool
}

// Events reads the complete value at the root of r, and returns a trace of
// what was seen. Containers are reported as "{" "}" "[" "]", object keys as
// "key:" followed by the key, strings in quotes, and other values as
// written. After the root value, Events checks that no input remains.
//
// Events uses only the public methods of the Reader, and does not recur.
func Events(r *jpull.Reader) ([]string, error) {
	var out []string
	var closers []string

	value := func() error {
		k, err := r.Current()
		if err != nil {
			return err
		}
		switch k {
		case jpull.KindObject:
			out = append(out, "{")
			closers = append(closers, "}")
			return r.Object()
		case jpull.KindArray:
			out = append(out, "[")
			closers = append(closers, "]")
			return r.Array()
		}
		v, err := r.Value()
		if err != nil {
			return err
		}
		out = append(out, render(v))
		return nil
	}

	if err := value(); err != nil {
		return out, err
	}
	for len(closers) != 0 {
		ok, err := r.Next()
		if err != nil {
			return out, err
		} else if !ok {
			out = append(out, closers[len(closers)-1])
			closers = closers[:len(closers)-1]
			continue
		}
		if closers[len(closers)-1] == "}" {
			key, err := r.Key()
			if err != nil {
				return out, err
			}
			out = append(out, "key:"+key)
		}
		if err := value(); err != nil {
			return out, err
		}
	}
	return out, r.End()
}

// MustEvents calls Events and fails t if it reports an error.
func MustEvents(t testing.TB, r *jpull.Reader) []string {
	t.Helper()
	evs, err := Events(r)
	if err != nil {
		t.Fatalf("Events: unexpected error: %v", err)
	}
	return evs
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	case *lazy.Number:
		return t.String()
	}
	return fmt.Sprint(v)
}

// Nested returns an input consisting of depth nested arrays, with the value
// inner at the center.
func Nested(depth int, inner string) string {
	return strings.Repeat("[", depth) + inner + strings.Repeat("]", depth)
}
