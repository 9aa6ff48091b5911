package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jpull"
	"github.com/creachadair/jpull/jpath"
)

// errLimit is reported by a flattener that has reached its value limit.
var errLimit = errors.New("value limit reached")

// A flattener writes the values of a JSON document as "path = value" lines.
type flattener struct {
	w     io.Writer
	m     *jpath.Matcher
	limit int // 0 means no limit
	count int

	path   []jpath.Elem
	frames []frame
}

// A frame records the state of an open container.
type frame struct {
	isObject bool
	next     int  // offset of the next array element
	selected bool // the container or an ancestor matched
	empty    bool // no members or elements seen yet
}

func newFlattener(w io.Writer, expr jpath.Expr, limit int) *flattener {
	return &flattener{w: w, m: jpath.NewMatcher(expr), limit: limit}
}

// flatten reads the complete value at the root of r. If the value limit is
// reached, the rest of the input is skipped but still checked.
func (f *flattener) flatten(r *jpull.Reader) error {
	err := f.run(r)
	if errors.Is(err, errLimit) {
		for r.Depth() > 0 {
			if _, err := r.Pop(); err != nil {
				return err
			}
		}
		err = nil
	}
	if err != nil {
		return err
	}
	return r.End()
}

func (f *flattener) run(r *jpull.Reader) error {
	if err := f.value(r, f.m.Matched()); err != nil {
		return err
	}
	for len(f.frames) != 0 {
		top := &f.frames[len(f.frames)-1]
		ok, err := r.Next()
		if err != nil {
			return err
		} else if !ok {
			if err := f.leave(top); err != nil {
				return err
			}
			continue
		}
		top.empty = false

		var elem jpath.Elem
		if top.isObject {
			key, err := r.Key()
			if err != nil {
				return err
			}
			elem = jpath.Key(key)
		} else {
			elem = jpath.Offset(top.next)
			top.next++
		}
		live := f.m.Push(elem)
		f.path = append(f.path, elem)
		if !top.selected && !live {
			// Nothing at or below this value can match. Leave it unentered,
			// and the next call to Next skips it.
			f.pop()
			continue
		}
		if err := f.value(r, top.selected || f.m.Matched()); err != nil {
			return err
		}
	}
	return nil
}

// value handles the value at the current position of r. If it is a
// container, value enters it; otherwise the value is printed if selected.
func (f *flattener) value(r *jpull.Reader, selected bool) error {
	k, err := r.Current()
	if err != nil {
		return err
	}
	switch k {
	case jpull.KindObject, jpull.KindArray:
		if k == jpull.KindObject {
			err = r.Object()
		} else {
			err = r.Array()
		}
		if err != nil {
			return err
		}
		f.frames = append(f.frames, frame{
			isObject: k == jpull.KindObject,
			selected: selected,
			empty:    true,
		})
		return nil
	}
	if selected {
		text, err := render(r, k)
		if err != nil {
			return err
		} else if err := f.emit(text); err != nil {
			return err
		}
	}
	f.pop()
	return nil
}

// leave closes the innermost frame.
func (f *flattener) leave(top *frame) error {
	if top.empty && top.selected {
		text := "[]"
		if top.isObject {
			text = "{}"
		}
		if err := f.emit(text); err != nil {
			return err
		}
	}
	f.frames = f.frames[:len(f.frames)-1]
	f.pop()
	return nil
}

// pop removes the last element of the current path, if any.
func (f *flattener) pop() {
	if len(f.path) != 0 {
		f.path = f.path[:len(f.path)-1]
		f.m.Pop()
	}
}

func (f *flattener) emit(text string) error {
	if _, err := fmt.Fprintf(f.w, "%s = %s\n", jpath.Format(f.path), text); err != nil {
		return err
	}
	f.count++
	if f.limit > 0 && f.count >= f.limit {
		return errLimit
	}
	return nil
}

func render(r *jpull.Reader, k jpull.Kind) (string, error) {
	switch k {
	case jpull.KindString:
		s, err := r.LazyString()
		if err != nil {
			return "", err
		}
		b, err := s.MarshalJSON()
		return string(b), err
	case jpull.KindNumber:
		n, err := r.Number()
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case jpull.KindBool:
		v, err := r.Bool()
		return fmt.Sprint(v), err
	case jpull.KindNull:
		return "null", r.Null()
	}
	return "", fmt.Errorf("unexpected %v", k)
}
