// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jpull

// A depthStack records, for each open container, whether it is an object
// (1) or an array (0). The depth of nesting is the number of entries.
type depthStack struct {
	bits []uint64
	n    int
}

func (d *depthStack) len() int { return d.n }

// push adds a frame for a container, which is an object if isObject is true.
func (d *depthStack) push(isObject bool) {
	w, b := d.n/64, uint(d.n%64)
	if w == len(d.bits) {
		d.bits = append(d.bits, 0)
	}
	if isObject {
		d.bits[w] |= 1 << b
	} else {
		d.bits[w] &^= 1 << b
	}
	d.n++
}

// pop discards the innermost frame. It reports whether the enclosing frame
// is an object, or false if the stack is now empty.
func (d *depthStack) pop() bool {
	if d.n == 0 {
		panic("depthStack: pop of empty stack")
	}
	d.n--
	return d.top()
}

// top reports whether the innermost frame is an object. It returns false if
// the stack is empty.
func (d *depthStack) top() bool {
	if d.n == 0 {
		return false
	}
	i := d.n - 1
	return d.bits[i/64]&(1<<uint(i%64)) != 0
}
