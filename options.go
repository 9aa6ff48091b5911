// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jpull

import "github.com/creachadair/jpull/bufpool"

// Options control the construction of a Scanner or Reader. A nil *Options
// is ready for use and provides default values.
type Options struct {
	// Pool is the buffer pool from which scratch buffers are drawn.
	// If nil, the pool returned by bufpool.Default is used.
	Pool *bufpool.Pool

	// If true, closing the Scanner or Reader also closes its input, if the
	// input implements io.Closer.
	CloseInput bool
}

func (o *Options) pool() *bufpool.Pool {
	if o == nil || o.Pool == nil {
		return bufpool.Default()
	}
	return o.Pool
}

func (o *Options) closeInput() bool { return o != nil && o.CloseInput }
