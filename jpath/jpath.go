// Package jpath implements a minimal JSONPath expression parser and a
// matcher for paths visited while streaming a JSON value.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX {"," INDEX}
 value = [INDEX] ":" [INDEX]

  WORD = RE `\w+`
 QTEXT = RE `([^'\\]|\\['\\])*`
 INDEX = RE `\d+`

Indices are non-negative, since the length of an array is not known until it
has been read. Filter and script expressions are not supported.

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps []Step
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(s)-len(t), err)
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

// MustParse parses s as a JSONPath expression, and panics on error.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("jpath: parse %q: %v", s, err))
	}
	return e
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member, Recur:
			buf.WriteString(s.Op.String())
			if s.Quoted {
				buf.WriteString(quoteName(s.Name))
			} else {
				buf.WriteString(s.Name)
			}

		case Index:
			ss := make([]string, len(s.Indices))
			for i, v := range s.Indices {
				ss[i] = strconv.Itoa(v)
			}
			fmt.Fprintf(&buf, "[%s]", strings.Join(ss, ","))

		case Slice:
			buf.WriteString("[")
			if s.Lo > 0 {
				buf.WriteString(strconv.Itoa(s.Lo))
			}
			buf.WriteString(":")
			if s.Hi >= 0 {
				buf.WriteString(strconv.Itoa(s.Hi))
			}
			buf.WriteString("]")

		case Wildcard:
			buf.WriteString("[*]")
		}
	}
	return buf.String()
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		name, quoted, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return Step{Op: Recur, Name: name, Quoted: quoted}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		name, quoted, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		return Step{Op: Member, Name: name, Quoted: quoted}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		out, u, err := parseValue(t)
		if err != nil {
			return Step{}, t, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, u, errors.New("missing close bracket")
		}
		return out, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseName(s string) (name string, quoted bool, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return "*", false, t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return m[1], false, s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return unquoteName.Replace(m[1]), true, s[len(m[0]):], nil
	}
	return "", false, s, errors.New("invalid name")
}

func parseIndex(s string) (int, string, bool) {
	m := indexRE.FindStringSubmatch(s)
	if m == nil {
		return 0, s, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, s, false
	}
	return v, s[len(m[0]):], true
}

func parseValue(s string) (_ Step, rest string, _ error) {
	if strings.HasPrefix(s, "?(") || strings.HasPrefix(s, "(") {
		return Step{}, s, errors.New("filter and script expressions are not supported")
	} else if strings.HasPrefix(s, "-") {
		return Step{}, s, errors.New("negative indices are not supported")
	}

	lo, rest, ok := parseIndex(s)
	if u, isSlice := strings.CutPrefix(rest, ":"); isSlice {
		out := Step{Op: Slice, Lo: lo, Hi: -1}
		if hi, v, ok := parseIndex(u); ok {
			out.Hi = hi
			u = v
		}
		return out, u, nil
	} else if ok {
		out := Step{Op: Index, Indices: []int{lo}}
		for {
			u, more := strings.CutPrefix(rest, ",")
			if !more {
				return out, rest, nil
			}
			v, w, ok := parseIndex(u)
			if !ok {
				return Step{}, u, errors.New("invalid index")
			}
			out.Indices = append(out.Indices, v)
			rest = w
		}
	}

	name, quoted, rest, err := parseName(s)
	if err != nil {
		return Step{}, s, fmt.Errorf("invalid value: %q", s)
	} else if name == "*" && !quoted {
		return Step{Op: Wildcard}, rest, nil
	}
	return Step{Op: Member, Name: name, Quoted: quoted}, rest, nil
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(\d+)`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\['\\])*)'`)

	quoteEsc    = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	unquoteName = strings.NewReplacer(`\\`, `\`, `\'`, `'`)
)

// quoteName renders a name in single quotes. A quote or backslash in the
// name is escaped with a backslash.
func quoteName(s string) string { return "'" + quoteEsc.Replace(s) + "'" }

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // member lookup (.name or ['name'])
	Index              // array index lookup
	Slice              // array slice
	Wildcard           // wildcard expansion ([*])
	Recur              // recur operator
)

var opText = map[Op]string{
	Invalid:  "invalid",
	Member:   ".",
	Index:    "index",
	Slice:    "slice",
	Wildcard: "*",
	Recur:    "..",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op Op

	Name   string // for Member and Recur; "*" matches any key or index
	Quoted bool   // Name was written in quotation marks

	Indices []int // for Index
	Lo, Hi  int   // for Slice; Hi < 0 means no upper bound
}

// matches reports whether e satisfies a single step, ignoring recursion.
func (s Step) matches(e Elem) bool {
	switch s.Op {
	case Member, Recur:
		if s.Name == "*" && !s.Quoted {
			return true
		}
		return e.IsKey && e.Key == s.Name
	case Wildcard:
		return true
	case Index:
		if e.IsKey {
			return false
		}
		for _, v := range s.Indices {
			if v == e.Index {
				return true
			}
		}
	case Slice:
		return !e.IsKey && e.Index >= s.Lo && (s.Hi < 0 || e.Index < s.Hi)
	}
	return false
}
