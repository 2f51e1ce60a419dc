package layout

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
)

func TestEnginePhases(t *testing.T) {
	e := NewEngine[paper](DefaultParams())
	if e.Phase() != Uninitialized {
		t.Fatalf("expected uninitialized, got %s", e.Phase())
	}
	if err := e.Tick(0.016); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if r := e.Renderable(); r != nil {
		t.Errorf("expected nil renderables before initialize, got %v", r)
	}

	if err := e.Initialize(randomNodes(5, 1), nil, rand.New(rand.NewSource(1))); err != nil {
		t.Fatal(err)
	}
	if e.Phase() != Running {
		t.Fatalf("expected running, got %s", e.Phase())
	}
	if err := e.Tick(0.016); err != nil {
		t.Fatal(err)
	}
}

func TestEngineReinitializeResets(t *testing.T) {
	e := NewEngine[paper](DefaultParams())
	nodes := []NodeInput[paper]{{ID: "a"}, {ID: "b"}}
	if err := e.Initialize(nodes, nil, rand.New(rand.NewSource(1))); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if err := e.Tick(0.016); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.Initialize(nodes[:1], nil, rand.New(rand.NewSource(2))); err != nil {
		t.Fatal(err)
	}
	e.View(func(s *State[paper]) {
		if s.Ticks() != 0 || s.Len() != 1 || s.KineticEnergy() != 0 {
			t.Errorf("expected fresh state, got ticks=%d len=%d energy=%f", s.Ticks(), s.Len(), s.KineticEnergy())
		}
	})
}

func TestEngineFailedInitializeKeepsState(t *testing.T) {
	e := NewEngine[paper](DefaultParams())
	if err := e.Initialize([]NodeInput[paper]{{ID: "a"}}, nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize([]NodeInput[paper]{{ID: "x"}, {ID: "x"}}, nil, nil); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("expected ErrDuplicateNode, got %v", err)
	}
	if r := e.Renderable(); len(r) != 1 || r[0].ID != "a" {
		t.Errorf("previous layout should survive a rejected load, got %v", r)
	}
}

func TestEngineSetParams(t *testing.T) {
	e := NewEngine[paper](DefaultParams())
	p := DefaultParams()
	p.Repulsion = 300
	if err := e.SetParams(p); err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize([]NodeInput[paper]{{ID: "a"}}, nil, nil); err != nil {
		t.Fatal(err)
	}
	e.View(func(s *State[paper]) {
		if s.Params().Repulsion != 300 {
			t.Errorf("expected repulsion 300, got %f", s.Params().Repulsion)
		}
	})
	p.Damping = -1
	if err := e.SetParams(p); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

// Readers on other goroutines must only ever see whole ticks.
func TestEngineConcurrentReaders(t *testing.T) {
	e := NewEngine[paper](DefaultParams())
	if err := e.Initialize(randomNodes(30, 5), nil, nil); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]Renderable[paper], 0, 30)
			for {
				select {
				case <-done:
					return
				default:
				}
				buf = e.AppendRenderable(buf[:0])
				if len(buf) != 30 {
					t.Errorf("expected 30 renderables, got %d", len(buf))
					return
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		if err := e.Tick(0.016); err != nil {
			t.Fatal(err)
		}
	}
	close(done)
	wg.Wait()
}
