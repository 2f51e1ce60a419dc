package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/papergraph/internal/layout"
	"github.com/san-kum/papergraph/internal/logging"
)

const DefaultMaxDelta = 0.1

var ErrLoopRunning = errors.New("sim: loop already running")

// Loop ticks an engine in real time from its own goroutine. The delta of
// each tick is the wall time since the previous one. Readers go through the
// engine, whose lock keeps every tick atomic.
type Loop[M any] struct {
	engine   *layout.Engine[M]
	interval time.Duration
	maxDelta float64
	onFrame  func(frame int64, dt float64)
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error

	frames atomic.Int64
	paused atomic.Bool
}

func NewLoop[M any](engine *layout.Engine[M], cfg Config, log *zap.Logger) *Loop[M] {
	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	maxDelta := cfg.MaxDelta
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Loop[M]{
		engine:   engine,
		interval: time.Second / time.Duration(fps),
		maxDelta: maxDelta,
		log:      logging.OrNop(log),
	}
}

// OnFrame registers a callback run on the loop goroutine after every tick.
// It must be set before Start.
func (l *Loop[M]) OnFrame(fn func(frame int64, dt float64)) { l.onFrame = fn }

func (l *Loop[M]) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return ErrLoopRunning
	}

	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	l.err = nil
	go l.run(ctx, l.done)
	return nil
}

// Stop cancels the loop and waits for its goroutine. It returns the tick
// error that ended the loop, if any.
func (l *Loop[M]) Stop() error {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	cancel()
	<-done

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancel, l.done = nil, nil
	return l.err
}

// Done is closed when the loop goroutine exits. It is nil before Start.
func (l *Loop[M]) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *Loop[M]) Pause(p bool)  { l.paused.Store(p) }
func (l *Loop[M]) Paused() bool  { return l.paused.Load() }
func (l *Loop[M]) Frames() int64 { return l.frames.Load() }

func (l *Loop[M]) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > l.maxDelta {
				dt = l.maxDelta
			}
			if l.paused.Load() {
				continue
			}

			if err := l.engine.Tick(dt); err != nil {
				l.log.Error("tick failed", zap.Error(err))
				l.mu.Lock()
				l.err = err
				l.mu.Unlock()
				return
			}
			n := l.frames.Add(1)
			if l.onFrame != nil {
				l.onFrame(n, dt)
			}
		}
	}
}
