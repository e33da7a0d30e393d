package engine

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"DarkForest/internal/config"
	"DarkForest/internal/controls"
	"DarkForest/internal/events"

	"github.com/go-gl/mathgl/mgl32"
)

// Sessions here never open a window, so draw is a no-op and no GL call is
// made.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// approx compares component-wise with an absolute tolerance; relative
// comparisons break down when one side is exactly zero.
func approx(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func TestNewSessionPlacesCamera(t *testing.T) {
	s := newTestSession(t)

	position, target := s.CameraPose()
	if !approx(position, mgl32.Vec3{0, 3, -7}) {
		t.Errorf("unexpected start position %v", position)
	}
	if !approx(target, mgl32.Vec3{0, 3, 40}) {
		t.Errorf("unexpected start target %v", target)
	}
}

func TestKeyDownMovesCamera(t *testing.T) {
	s := newTestSession(t)
	defer s.subscribe()()

	s.bus.Publish(events.Event{Type: events.KeyDown, Key: int(controls.KeyW)})

	position, _ := s.CameraPose()
	if !approx(position, mgl32.Vec3{0, 3, -6.8}) {
		t.Errorf("expected one step forward along +Z, got %v", position)
	}
}

func TestKeyDownTurnsCamera(t *testing.T) {
	s := newTestSession(t)
	defer s.subscribe()()

	s.bus.Publish(events.Event{Type: events.KeyDown, Key: int(controls.KeyLeft)})

	angle := float64(math.Pi/2 + 0.1)
	want := mgl32.Vec3{float32(40 * math.Cos(angle)), 3, float32(40 * math.Sin(angle))}
	position, target := s.CameraPose()
	if !approx(target, want) {
		t.Errorf("expected target %v, got %v", want, target)
	}
	if !approx(position, mgl32.Vec3{0, 3, -7}) {
		t.Errorf("turning must not move the camera, got %v", position)
	}
}

func TestUnmappedAndReleasedKeysDoNothing(t *testing.T) {
	s := newTestSession(t)
	defer s.subscribe()()
	before, beforeTarget := s.CameraPose()

	s.bus.Publish(events.Event{Type: events.KeyDown, Key: int(controls.KeySpace)})
	s.bus.Publish(events.Event{Type: events.KeyUp, Key: int(controls.KeyW)})
	s.bus.Publish(events.Event{Type: events.Tick})

	after, afterTarget := s.CameraPose()
	if after != before || afterTarget != beforeTarget {
		t.Errorf("pose changed from %v/%v to %v/%v", before, beforeTarget, after, afterTarget)
	}
}

func TestUnsubscribeStopsInput(t *testing.T) {
	s := newTestSession(t)
	s.subscribe()()

	s.bus.Publish(events.Event{Type: events.KeyDown, Key: int(controls.KeyW)})

	position, _ := s.CameraPose()
	if !approx(position, mgl32.Vec3{0, 3, -7}) {
		t.Errorf("no handler should run after unsubscribe, got %v", position)
	}
	for _, typ := range []events.Type{events.KeyDown, events.KeyUp, events.Tick} {
		if n := s.bus.Count(typ); n != 0 {
			t.Errorf("%s still has %d handlers", typ, n)
		}
	}
}

func TestReloadedKeysApplyOnDrain(t *testing.T) {
	s := newTestSession(t)
	s.ticker = NewTicker(s.cfg.TickInterval(), nil)
	defer s.subscribe()()

	next := *s.cfg
	next.Keys = map[string][]string{"forward": {"I"}}
	s.reloadKeys(&next)

	s.bus.Publish(events.Event{Type: events.KeyDown, Key: int(controls.KeyW)})
	position, _ := s.CameraPose()
	if !approx(position, mgl32.Vec3{0, 3, -6.8}) {
		t.Fatalf("old table should stay active until drained, got %v", position)
	}

	s.drain()

	s.bus.Publish(events.Event{Type: events.KeyDown, Key: int(controls.KeyW)})
	s.bus.Publish(events.Event{Type: events.KeyDown, Key: int('I')})
	position, _ = s.CameraPose()
	if !approx(position, mgl32.Vec3{0, 3, -6.6}) {
		t.Errorf("expected only I to move after reload, got %v", position)
	}
}

func TestReloadIgnoresInvalidKeys(t *testing.T) {
	s := newTestSession(t)

	next := *s.cfg
	next.Keys = map[string][]string{"forward": {"W"}, "backward": {"W"}}
	s.reloadKeys(&next)

	if n := len(s.keyMaps); n != 0 {
		t.Errorf("invalid table should not be queued, got %d", n)
	}
}

func TestNewSessionRejectsBadKeys(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Keys = map[string][]string{"forward": {"ESCAPE"}}

	if _, err := NewSession(cfg); err == nil {
		t.Error("expected an error for a reserved key")
	}
}

func TestInitErrorMatchesErrInit(t *testing.T) {
	cause := errors.New("no display")
	err := initError(cause)

	if !errors.Is(err, ErrInit) {
		t.Error("init failures must match ErrInit")
	}
	if !errors.Is(err, cause) {
		t.Error("the cause must stay reachable")
	}
}

func TestWakeNeverFollowsShutdown(t *testing.T) {
	s := newTestSession(t)

	var terminated, lateWakes, posts atomic.Int32
	s.postEmptyEvent = func() {
		posts.Add(1)
		if terminated.Load() != 0 {
			lateWakes.Add(1)
		}
	}
	s.terminateGLFW = func() { terminated.Store(1) }

	s.wake()
	if posts.Load() != 0 {
		t.Fatal("wake before glfw is up should do nothing")
	}

	s.markGLFWLive()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.wake()
			}
		}()
	}
	s.shutdownGLFW()
	wg.Wait()

	if lateWakes.Load() != 0 {
		t.Errorf("%d wakes reached glfw after Terminate", lateWakes.Load())
	}
	if terminated.Load() != 1 {
		t.Error("shutdown should terminate glfw")
	}
}
