// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package bufpool implements a bounded pool of reusable byte buffers shared
// by concurrent parse sessions.
//
// A Pool limits the number of buffers it has allocated and not yet dropped
// (MaxBuffers), and declines to retain buffers whose capacity exceeds a
// retention ceiling (MaxRetained). Buffers taken from the pool never count
// against the limit a second time: the limit applies only to fresh
// allocations.
package bufpool

import (
	"cmp"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/creachadair/mds/heapq"
	"github.com/puzpuzpuz/xsync/v4"
)

const (
	// DefaultMaxBuffers is the default limit on live buffers in a pool.
	DefaultMaxBuffers = 1000

	// DefaultMaxRetained is the default capacity, in bytes, above which a
	// released buffer is dropped instead of being retained.
	DefaultMaxRetained = 16 * 1024
)

// ErrExhausted is reported by Get when the pool is empty and the limit on
// live buffers has been reached. It is transient: once some other caller
// releases a buffer, Get may succeed.
var ErrExhausted = errors.New("bufpool: live buffer limit reached")

// Config carries the tunable settings of a Pool. A zero field selects the
// corresponding default.
type Config struct {
	MaxBuffers  int `yaml:"max_buffers" json:"maxBuffers,omitempty"`
	MaxRetained int `yaml:"max_retained" json:"maxRetained,omitempty"`
}

func (c Config) maxBuffers() int64 {
	if c.MaxBuffers <= 0 {
		return DefaultMaxBuffers
	}
	return int64(c.MaxBuffers)
}

func (c Config) maxRetained() int {
	if c.MaxRetained <= 0 {
		return DefaultMaxRetained
	}
	return c.MaxRetained
}

// A Pool is a cache of reusable buffers. It is safe for concurrent use by
// multiple goroutines.
type Pool struct {
	maxBuffers  int64
	maxRetained int

	live atomic.Int64 // buffers allocated and not dropped

	μ    sync.Mutex
	free *heapq.Queue[*Buffer] // largest capacity first

	hits, misses, grows, drops *xsync.Counter
}

// New constructs an empty pool with the given settings.
func New(cfg Config) *Pool {
	return &Pool{
		maxBuffers:  cfg.maxBuffers(),
		maxRetained: cfg.maxRetained(),
		free: heapq.New(func(a, b *Buffer) int {
			return cmp.Compare(b.Cap(), a.Cap())
		}),
		hits:   xsync.NewCounter(),
		misses: xsync.NewCounter(),
		grows:  xsync.NewCounter(),
		drops:  xsync.NewCounter(),
	}
}

var defaultPool atomic.Pointer[Pool]

func init() { defaultPool.Store(New(Config{})) }

// Default returns the shared process-wide pool.
func Default() *Pool { return defaultPool.Load() }

// SetDefault replaces the shared process-wide pool with p, and returns the
// previous value. It panics if p == nil.
func SetDefault(p *Pool) *Pool {
	if p == nil {
		panic("bufpool: nil default pool")
	}
	return defaultPool.Swap(p)
}

// Config reports the effective settings of p.
func (p *Pool) Config() Config {
	return Config{MaxBuffers: int(p.maxBuffers), MaxRetained: p.maxRetained}
}

// Get returns an empty buffer with capacity at least n. If the pool holds
// no buffers and the live buffer limit has been reached, Get reports
// ErrExhausted.
func (p *Pool) Get(n int) (*Buffer, error) {
	if n < 0 {
		n = 0
	}
	p.μ.Lock()
	b, ok := p.free.Pop()
	if ok {
		b.pooled = false
	}
	p.μ.Unlock()

	if ok {
		if b.Cap() < n {
			// The largest pooled buffer is too small for this request. Rather
			// than discard it, reuse its slot for a fresh allocation of the
			// requested size, so the pool does not shrink under size churn.
			b.data = make([]byte, 0, n)
			p.grows.Inc()
		} else {
			p.hits.Inc()
		}
		return b, nil
	}

	if p.live.Add(1) > p.maxBuffers {
		p.live.Add(-1)
		return nil, ErrExhausted
	}
	p.misses.Inc()
	return &Buffer{data: make([]byte, 0, n)}, nil
}

// Release returns b to the pool. The caller must not use b after Release.
// Release does nothing if b == nil, if b has no capacity, or if b is already
// held by the pool. A buffer whose capacity exceeds the retention ceiling is
// dropped, freeing its slot for a future allocation.
func (p *Pool) Release(b *Buffer) {
	if b == nil || b.Cap() == 0 {
		return
	}
	if b.Cap() > p.maxRetained {
		p.μ.Lock()
		defer p.μ.Unlock()
		if !b.pooled {
			p.live.Add(-1)
			p.drops.Inc()
			b.data = nil
		}
		return
	}

	b.Reset()
	p.μ.Lock()
	defer p.μ.Unlock()
	if !b.pooled {
		b.pooled = true
		p.free.Add(b)
	}
}

// Stats is a snapshot of the counters of a Pool. The counters are updated
// independently, so a snapshot taken under concurrent use is approximate.
type Stats struct {
	Live   int64 // buffers allocated and not yet dropped
	Pooled int   // buffers currently held by the pool
	Hits   int64 // Get calls satisfied from the pool
	Misses int64 // Get calls that allocated a new buffer
	Grows  int64 // Get calls that replaced an undersized pooled buffer
	Drops  int64 // Release calls that dropped an oversized buffer
}

// Stats returns a snapshot of the counters of p.
func (p *Pool) Stats() Stats {
	p.μ.Lock()
	pooled := p.free.Len()
	p.μ.Unlock()
	return Stats{
		Live:   p.live.Load(),
		Pooled: pooled,
		Hits:   p.hits.Value(),
		Misses: p.misses.Value(),
		Grows:  p.grows.Value(),
		Drops:  p.drops.Value(),
	}
}
