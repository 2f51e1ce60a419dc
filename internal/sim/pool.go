package sim

import (
	"sync"

	"github.com/san-kum/papergraph/internal/layout"
)

// FramePool recycles frame buffers sized for a graph of a given node
// count, so ensembles of many runs do not reallocate them.
type FramePool struct {
	pool  sync.Pool
	nodes int
}

func NewFramePool(nodes int) *FramePool {
	p := &FramePool{nodes: nodes}
	p.pool.New = func() any {
		return &Frame{
			Positions:  make([]layout.Vec3, 0, p.nodes),
			Velocities: make([]layout.Vec3, 0, p.nodes),
		}
	}
	return p
}

func (p *FramePool) Get() *Frame {
	return p.pool.Get().(*Frame)
}

func (p *FramePool) Put(f *Frame) {
	if f == nil {
		return
	}
	f.Index = 0
	f.Time = 0
	f.SpringLength = 0
	f.Positions = f.Positions[:0]
	f.Velocities = f.Velocities[:0]
	f.Edges = f.Edges[:0]
	p.pool.Put(f)
}
