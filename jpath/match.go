package jpath

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// An Elem is one element of the path from the root to a value: either the
// key of an object member or the offset of an array element.
type Elem struct {
	Key   string
	Index int
	IsKey bool
}

// Key returns an Elem for the object key s.
func Key(s string) Elem { return Elem{Key: s, IsKey: true} }

// Offset returns an Elem for the array offset i.
func Offset(i int) Elem { return Elem{Index: i} }

// String renders e as a path step, ".name" for a simple key, "['name']" for
// other keys, and "[i]" for an offset.
func (e Elem) String() string {
	if !e.IsKey {
		return "[" + strconv.Itoa(e.Index) + "]"
	} else if plainKey.MatchString(e.Key) {
		return "." + e.Key
	}
	return "[" + quoteName(e.Key) + "]"
}

var plainKey = regexp.MustCompile(`^\w+$`)

// Format renders a path as a JSONPath string starting with "$".
func Format(path []Elem) string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, e := range path {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Match reports whether path matches e.
func (e Expr) Match(path []Elem) bool {
	m := NewMatcher(e)
	for _, p := range path {
		if !m.Push(p) {
			return false
		}
	}
	return m.Matched()
}

// A Matcher tracks the match state of an expression along a path that is
// extended and shortened as a stream is read. The zero value is not ready
// for use; call NewMatcher.
type Matcher struct {
	expr  Expr
	stack [][]int // live step offsets at each depth, root first
}

// NewMatcher constructs a Matcher for e, positioned at the root.
func NewMatcher(e Expr) *Matcher {
	return &Matcher{expr: e, stack: [][]int{{0}}}
}

// Depth reports the length of the current path.
func (m *Matcher) Depth() int { return len(m.stack) - 1 }

// Push extends the current path by p. It reports whether any value at or
// below the new path can match the expression; if not, the caller may skip
// the value without pushing its contents.
func (m *Matcher) Push(p Elem) bool {
	var next []int
	add := func(i int) {
		if !slices.Contains(next, i) {
			next = append(next, i)
		}
	}
	for _, i := range m.stack[len(m.stack)-1] {
		if i == len(m.expr) {
			continue
		}
		step := m.expr[i]
		if step.Op == Recur {
			add(i) // a descendant may match further down
		}
		if step.matches(p) {
			add(i + 1)
		}
	}
	m.stack = append(m.stack, next)
	return len(next) != 0
}

// Pop removes the last element of the current path. It panics if the path
// is empty.
func (m *Matcher) Pop() {
	if len(m.stack) == 1 {
		panic("jpath: pop at root")
	}
	m.stack = m.stack[:len(m.stack)-1]
}

// Matched reports whether the current path matches the expression.
func (m *Matcher) Matched() bool {
	return slices.Contains(m.stack[len(m.stack)-1], len(m.expr))
}

// Descend reports whether any value strictly below the current path can
// match the expression.
func (m *Matcher) Descend() bool {
	for _, i := range m.stack[len(m.stack)-1] {
		if i < len(m.expr) {
			return true
		}
	}
	return false
}
