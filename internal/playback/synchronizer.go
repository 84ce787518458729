package playback

import (
	"sync"
	"time"
)

// DefaultSamplePeriod is the nominal sampling cadence, about 30 samples
// per second. Published frames lag the true position by up to one period.
const DefaultSamplePeriod = 33 * time.Millisecond

// Synchronizer republishes the backend's current frame on a fixed cadence.
// The backend stays the single authority for playback position; the
// synchronizer only mirrors it into the engine's observable state.
type Synchronizer struct {
	backend Backend
	period  time.Duration
	publish func(frame int)

	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewSynchronizer starts the sampling loop. publish is invoked from the
// loop's goroutine with every frame the backend reports. A nil or
// not-yet-ready backend is skipped silently; that is an expected transient
// while the player mounts.
func NewSynchronizer(b Backend, period time.Duration, publish func(frame int)) *Synchronizer {
	if period <= 0 {
		period = DefaultSamplePeriod
	}
	s := &Synchronizer{
		backend: b,
		period:  period,
		publish: publish,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Synchronizer) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

func (s *Synchronizer) sample() {
	if s.backend == nil || s.publish == nil {
		return
	}
	frame, ok := s.backend.CurrentFrame()
	if !ok {
		return
	}
	s.publish(frame)
}

// Close tears the sampling loop down. It blocks until the loop has exited,
// so no publish callback fires after Close returns. Safe to call twice.
func (s *Synchronizer) Close() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
}
