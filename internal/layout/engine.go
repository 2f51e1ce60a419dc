package layout

import (
	"math/rand"
	"sync"
)

// Phase is the lifecycle stage of an Engine.
type Phase int

const (
	Uninitialized Phase = iota
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "uninitialized"
}

// Engine owns one State behind a read/write lock so that a tick is atomic
// with respect to readers on other goroutines. Initialize can be called any
// number of times; each call discards the previous layout.
type Engine[M any] struct {
	mu     sync.RWMutex
	params Params
	state  *State[M]
}

func NewEngine[M any](p Params) *Engine[M] {
	return &Engine[M]{params: p}
}

func (e *Engine[M]) Initialize(nodes []NodeInput[M], links []LinkInput, rng *rand.Rand) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := Initialize(nodes, links, e.params, rng)
	if err != nil {
		return err
	}
	e.state = s
	return nil
}

func (e *Engine[M]) Tick(dt float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Tick(dt)
}

func (e *Engine[M]) Phase() Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.state == nil {
		return Uninitialized
	}
	return Running
}

// Renderable returns nil before the first Initialize.
func (e *Engine[M]) Renderable() []Renderable[M] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Renderable()
}

func (e *Engine[M]) AppendRenderable(dst []Renderable[M]) []Renderable[M] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.AppendRenderable(dst)
}

// View runs fn with the state under the read lock. fn must not retain s.
func (e *Engine[M]) View(fn func(s *State[M])) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.state)
}

func (e *Engine[M]) Params() Params {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params
}

// SetParams applies p to the running layout (if any) and to every later
// Initialize.
func (e *Engine[M]) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != nil {
		if err := e.state.SetParams(p); err != nil {
			return err
		}
	}
	e.params = p
	return nil
}
