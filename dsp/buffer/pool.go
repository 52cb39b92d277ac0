package buffer

import "sync"

// Pool hands out Scratch sets backed by a sync.Pool. It is safe for
// concurrent use.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Scratch{}
			},
		},
	}
}

// Get returns a Scratch with one zeroed row per entry of lengths.
// Negative lengths yield empty rows. Callers must return it via Put.
func (p *Pool) Get(lengths ...int) *Scratch {
	s := p.pool.Get().(*Scratch)
	s.reshape(lengths)
	return s
}

// Put returns s to the pool. The caller must not use s or its rows
// afterwards.
func (p *Pool) Put(s *Scratch) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
