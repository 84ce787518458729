package playback

import (
	"sync"
	"time"
)

// SimBackend is a wall-clock stand-in for a real player. While playing it
// advances the frame at the configured fps and clamps at the final frame.
// It exists so the CLI and tests can exercise the transport surface without
// a decoder.
type SimBackend struct {
	mu          sync.Mutex
	fps         int
	totalFrames int
	playing     bool
	base        int       // frame position when the transport state last changed
	since       time.Time // wall-clock anchor of the current playing run

	now func() time.Time // swapped out in tests
}

// NewSimBackend builds a paused backend positioned at frame 0.
func NewSimBackend(fps, totalFrames int) *SimBackend {
	if fps <= 0 {
		fps = 30
	}
	if totalFrames < 1 {
		totalFrames = 1
	}
	return &SimBackend{fps: fps, totalFrames: totalFrames, now: time.Now}
}

func (b *SimBackend) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.playing {
		return nil
	}
	b.since = b.now()
	b.playing = true
	return nil
}

func (b *SimBackend) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.playing {
		return nil
	}
	b.base = b.position()
	b.playing = false
	return nil
}

// Seek moves the clock to frame, clamped to [0, totalFrames].
func (b *SimBackend) Seek(frame int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if frame < 0 {
		frame = 0
	}
	if frame > b.totalFrames {
		frame = b.totalFrames
	}
	b.base = frame
	b.since = b.now()
}

func (b *SimBackend) CurrentFrame() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position(), true
}

// Done reports whether the clock has reached the final frame.
func (b *SimBackend) Done() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position() >= b.totalFrames
}

func (b *SimBackend) position() int {
	pos := b.base
	if b.playing {
		elapsed := b.now().Sub(b.since).Seconds()
		pos += int(elapsed * float64(b.fps))
	}
	if pos > b.totalFrames {
		pos = b.totalFrames
	}
	return pos
}
