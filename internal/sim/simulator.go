package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/logging"
)

// Simulator drives an engine headless for a fixed number of frames.
type Simulator[M any] struct {
	engine    *layout.Engine[M]
	nodes     []layout.NodeInput[M]
	links     []layout.LinkInput
	metrics   []Metric
	observers []Observer
	pool      *FramePool
	log       *zap.Logger
}

func New[M any](engine *layout.Engine[M], nodes []layout.NodeInput[M], links []layout.LinkInput, log *zap.Logger) *Simulator[M] {
	return &Simulator[M]{
		engine:    engine,
		nodes:     nodes,
		links:     links,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		pool:      NewFramePool(len(nodes)),
		log:       logging.OrNop(log),
	}
}

func (s *Simulator[M]) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator[M]) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator[M]) Engine() *layout.Engine[M] { return s.engine }

// Run re-initializes the engine from cfg.Seed and ticks it cfg.Frames times
// with a fixed delta. On cancellation or a non-finite layout the partial
// result is returned along with the error.
func (s *Simulator[M]) Run(ctx context.Context, cfg Config) (*Result[M], error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.engine.Initialize(s.nodes, s.links, rand.New(rand.NewSource(cfg.Seed))); err != nil {
		return nil, err
	}

	result := &Result[M]{
		Seed:    cfg.Seed,
		Energy:  make([]float64, 0, cfg.Frames),
		Metrics: make(map[string]float64),
		Links:   s.links,
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	frame := s.pool.Get()
	defer s.pool.Put(frame)

	s.log.Debug("run started",
		zap.Int64("seed", cfg.Seed),
		zap.Int("nodes", len(s.nodes)),
		zap.Int("links", len(s.links)),
		zap.Int("frames", cfg.Frames),
		zap.Float64("dt", cfg.Dt))

	start := time.Now()
	var runErr error
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		if err := s.engine.Tick(cfg.Dt); err != nil {
			runErr = err
			break
		}
		s.capture(frame, i)

		if !frame.Finite() {
			runErr = &SimError{Frame: i, Time: frame.Time, Message: "non-finite position or velocity"}
			break
		}

		result.Energy = append(result.Energy, frame.KineticEnergy())
		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnFrame(frame)
		}
		result.Frames++
	}

	result.Wall = time.Since(start)
	result.Elapsed = frame.Time
	result.Final = s.engine.Renderable()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		s.log.Warn("run stopped early", zap.Int("frames", result.Frames), zap.Error(runErr))
		return result, runErr
	}
	s.log.Debug("run finished",
		zap.Int("frames", result.Frames),
		zap.Duration("wall", result.Wall),
		zap.Float64("energy", result.FinalEnergy()))
	return result, nil
}

func (s *Simulator[M]) capture(f *Frame, index int) {
	s.engine.View(func(st *layout.State[M]) {
		f.Index = index
		f.Time = st.Elapsed()
		f.SpringLength = st.Params().SpringLength
		f.Positions = st.AppendPositions(f.Positions[:0])
		f.Velocities = st.AppendVelocities(f.Velocities[:0])
		f.Edges = st.AppendEdges(f.Edges[:0])
	})
}

func validateConfig(cfg Config) error {
	if cfg.Dt < 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be finite and non-negative, got %f", cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	return nil
}
