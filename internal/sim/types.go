package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/papergraph/internal/layout"
)

type Config struct {
	Dt     float64
	Frames int
	Seed   int64
	FPS    int
	// MaxDelta caps the wall-clock delta Loop feeds the engine after a
	// stall. Zero means DefaultMaxDelta.
	MaxDelta float64
}

// Frame is a snapshot of the layout taken right after a tick. The
// simulator reuses frames between ticks, so metrics and observers must
// copy what they keep.
type Frame struct {
	Index        int
	Time         float64
	Positions    []layout.Vec3
	Velocities   []layout.Vec3
	Edges        [][2]int
	SpringLength float64
}

func (f *Frame) KineticEnergy() float64 {
	e := 0.0
	for _, v := range f.Velocities {
		e += 0.5 * v.LengthSq()
	}
	return e
}

func (f *Frame) Finite() bool {
	for i := range f.Positions {
		if !f.Positions[i].IsFinite() {
			return false
		}
	}
	for i := range f.Velocities {
		if !f.Velocities[i].IsFinite() {
			return false
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(f *Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f *Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f *Frame)

func (fn ObserverFunc) OnFrame(f *Frame) { fn(f) }

type Result[M any] struct {
	Seed    int64
	Frames  int
	Elapsed float64
	Wall    time.Duration
	Energy  []float64
	Metrics map[string]float64
	Final   []layout.Renderable[M]
	Links   []layout.LinkInput
}

// FinalEnergy is the kinetic energy after the last completed frame.
func (r *Result[M]) FinalEnergy() float64 {
	if len(r.Energy) == 0 {
		return 0
	}
	return r.Energy[len(r.Energy)-1]
}

type SimError struct {
	Frame   int
	Time    float64
	Message string
}

func (e *SimError) Error() string {
	return fmt.Sprintf("sim: frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}
