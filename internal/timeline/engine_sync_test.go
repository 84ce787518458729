package timeline

import (
	"sync"
	"testing"
	"time"

	"github.com/ivlev/framecast/internal/config"
)

// stubBackend is a scriptable playback clock for engine tests.
type stubBackend struct {
	mu      sync.Mutex
	frame   int
	ok      bool
	playing bool
}

func (b *stubBackend) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.playing = true
	return nil
}

func (b *stubBackend) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.playing = false
	return nil
}

func (b *stubBackend) CurrentFrame() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame, b.ok
}

func (b *stubBackend) set(frame int, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = frame
	b.ok = ok
}

func (b *stubBackend) isPlaying() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.playing
}

func waitFor(t *testing.T, deadline time.Duration, cond func() bool) bool {
	t.Helper()
	stop := time.Now().Add(deadline)
	for time.Now().Before(stop) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

func TestEngineMirrorsBackendFrame(t *testing.T) {
	eng := NewEngine(&config.Config{SamplePeriod: time.Millisecond})
	defer eng.Close()

	backend := &stubBackend{}
	backend.set(42, true)
	eng.AttachBackend(backend)

	if !waitFor(t, time.Second, func() bool { return eng.CurrentFrame() == 42 }) {
		t.Fatalf("currentFrame never reached 42, got %d", eng.CurrentFrame())
	}

	backend.set(57, true)
	if !waitFor(t, time.Second, func() bool { return eng.CurrentFrame() == 57 }) {
		t.Fatalf("currentFrame never reached 57, got %d", eng.CurrentFrame())
	}
}

func TestEngineSkipsUnreadyBackend(t *testing.T) {
	eng := NewEngine(&config.Config{SamplePeriod: time.Millisecond})
	defer eng.Close()

	backend := &stubBackend{}
	backend.set(42, false) // backend mounted but reports no position yet
	eng.AttachBackend(backend)

	time.Sleep(20 * time.Millisecond)
	if got := eng.CurrentFrame(); got != 0 {
		t.Errorf("Expected currentFrame to stay 0 while backend is not ready, got %d", got)
	}
}

func TestEnginePlayPauseForwardsAndFlipsOptimistically(t *testing.T) {
	eng := NewEngine(&config.Config{SamplePeriod: time.Millisecond})
	defer eng.Close()

	backend := &stubBackend{}
	eng.AttachBackend(backend)

	if err := eng.Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if !eng.IsPlaying() {
		t.Error("IsPlaying should flip once the command is issued")
	}
	if !backend.isPlaying() {
		t.Error("Play was not forwarded to the backend")
	}

	if err := eng.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if eng.IsPlaying() {
		t.Error("IsPlaying should flip back on pause")
	}
	if backend.isPlaying() {
		t.Error("Pause was not forwarded to the backend")
	}
}

func TestEngineCloseStopsFrameUpdates(t *testing.T) {
	eng := NewEngine(&config.Config{SamplePeriod: time.Millisecond})

	backend := &stubBackend{}
	backend.set(10, true)
	eng.AttachBackend(backend)

	if !waitFor(t, time.Second, func() bool { return eng.CurrentFrame() == 10 }) {
		t.Fatalf("currentFrame never reached 10")
	}

	eng.Close()
	backend.set(99, true)

	time.Sleep(20 * time.Millisecond)
	if got := eng.CurrentFrame(); got != 10 {
		t.Errorf("currentFrame changed after Close: got %d, want 10", got)
	}
}
