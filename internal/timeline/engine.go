package timeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/ivlev/framecast/internal/config"
	"github.com/ivlev/framecast/internal/playback"
)

// Default item lengths in frames, applied when the config leaves them unset.
const (
	DefaultClipFrames    = 200
	DefaultOverlayFrames = 100
)

// Engine owns the placed items and their derived state. All mutations go
// through the append operations and are serialized; the collections are
// replaced wholesale on every append, so readers always observe a fully
// consistent snapshot. The only asynchronous activity is the frame sampler
// started by AttachBackend, torn down by Close.
type Engine struct {
	mu sync.RWMutex

	clips    []MediaClip
	overlays []TextOverlay
	totalEnd int

	currentFrame int
	playing      bool

	clipSeq int
	textSeq int

	clipFrames    int
	overlayFrames int
	samplePeriod  time.Duration

	backend playback.Backend
	sampler *playback.Synchronizer
}

// NewEngine builds an empty engine. No backend is attached yet; transport
// commands are silently skipped until AttachBackend is called.
func NewEngine(cfg *config.Config) *Engine {
	e := &Engine{
		clipFrames:    DefaultClipFrames,
		overlayFrames: DefaultOverlayFrames,
		samplePeriod:  playback.DefaultSamplePeriod,
	}
	if cfg != nil {
		if cfg.ClipFrames > 0 {
			e.clipFrames = cfg.ClipFrames
		}
		if cfg.OverlayFrames > 0 {
			e.overlayFrames = cfg.OverlayFrames
		}
		if cfg.SamplePeriod > 0 {
			e.samplePeriod = cfg.SamplePeriod
		}
	}
	return e
}

// latestEnd finds the placement anchor: the item with the largest end frame
// across both collections. Ties keep the first-seen operand, scanning clips
// in append order before overlays in append order. The zero Item (end 0)
// anchors the first append at frame 0.
func latestEnd(clips []MediaClip, overlays []TextOverlay) Item {
	var anchor Item
	for _, c := range clips {
		if c.End() > anchor.End() {
			anchor = c.Item
		}
	}
	for _, o := range overlays {
		if o.End() > anchor.End() {
			anchor = o.Item
		}
	}
	return anchor
}

// totalEnd derives the composition length: the maximum end frame over both
// collections, 0 when empty. The floor of 1 that playback requires is
// applied at the consumption boundary, not here.
func totalEnd(clips []MediaClip, overlays []TextOverlay) int {
	lastClip := 0
	for _, c := range clips {
		if c.End() > lastClip {
			lastClip = c.End()
		}
	}
	lastOverlay := 0
	for _, o := range overlays {
		if o.End() > lastOverlay {
			lastOverlay = o.End()
		}
	}
	if lastOverlay > lastClip {
		return lastOverlay
	}
	return lastClip
}

// AppendItem places a new item of the given kind after the furthest current
// end and returns its placement. payload is the media locator for KindMedia
// and the display string for KindText.
func (e *Engine) AppendItem(kind Kind, payload string) (Item, error) {
	switch kind {
	case KindMedia:
		clip, err := e.AppendMediaClip(payload)
		return clip.Item, err
	case KindText:
		overlay, err := e.AppendTextOverlay(payload)
		return overlay.Item, err
	}
	return Item{}, badKindf("%d", kind)
}

// AppendMediaClip places a media clip of the default length.
func (e *Engine) AppendMediaClip(source string) (MediaClip, error) {
	return e.AppendMediaClipFrames(source, 0)
}

// AppendMediaClipFrames places a media clip of an explicit length.
// frames == 0 selects the default; anything negative is rejected.
func (e *Engine) AppendMediaClipFrames(source string, frames int) (MediaClip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if frames == 0 {
		frames = e.clipFrames
	}
	anchor := latestEnd(e.clips, e.overlays)
	clip, err := NewMediaClip(fmt.Sprintf("clip-%d", e.clipSeq+1), anchor.End(), frames, source)
	if err != nil {
		return MediaClip{}, err
	}
	e.clipSeq++

	next := make([]MediaClip, len(e.clips), len(e.clips)+1)
	copy(next, e.clips)
	e.clips = append(next, clip)
	e.totalEnd = totalEnd(e.clips, e.overlays)
	return clip, nil
}

// AppendTextOverlay places a text overlay of the default length.
func (e *Engine) AppendTextOverlay(text string) (TextOverlay, error) {
	return e.AppendTextOverlayFrames(text, 0)
}

// AppendTextOverlayFrames places a text overlay of an explicit length.
// frames == 0 selects the default; anything negative is rejected.
func (e *Engine) AppendTextOverlayFrames(text string, frames int) (TextOverlay, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if frames == 0 {
		frames = e.overlayFrames
	}
	anchor := latestEnd(e.clips, e.overlays)
	overlay, err := NewTextOverlay(fmt.Sprintf("text-%d", e.textSeq+1), anchor.End(), frames, text)
	if err != nil {
		return TextOverlay{}, err
	}
	e.textSeq++

	next := make([]TextOverlay, len(e.overlays), len(e.overlays)+1)
	copy(next, e.overlays)
	e.overlays = append(next, overlay)
	e.totalEnd = totalEnd(e.clips, e.overlays)
	return overlay, nil
}

// Clips returns a snapshot copy of the media clip collection.
func (e *Engine) Clips() []MediaClip {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]MediaClip, len(e.clips))
	copy(out, e.clips)
	return out
}

// TextOverlays returns a snapshot copy of the text overlay collection.
func (e *Engine) TextOverlays() []TextOverlay {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]TextOverlay, len(e.overlays))
	copy(out, e.overlays)
	return out
}

// TotalDuration reports the derived composition length in frames, 0 when
// the timeline is empty.
func (e *Engine) TotalDuration() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalEnd
}

// CurrentFrame reports the last frame sampled from the backend. It lags the
// true playback position by up to one sampling period.
func (e *Engine) CurrentFrame() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentFrame
}

// IsPlaying reports the optimistic transport state: it flips when a command
// is issued, not when the backend confirms it.
func (e *Engine) IsPlaying() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.playing
}

// AttachBackend mounts the playback backend and starts sampling its frame.
// A previously attached backend's sampler is torn down first.
func (e *Engine) AttachBackend(b playback.Backend) {
	e.mu.Lock()
	old := e.sampler
	e.backend = b
	e.sampler = playback.NewSynchronizer(b, e.samplePeriod, e.setCurrentFrame)
	e.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// Play forwards the play command to the backend. Without a backend the
// command is skipped silently and the transport state stays untouched.
func (e *Engine) Play() error {
	e.mu.Lock()
	b := e.backend
	if b == nil {
		e.mu.Unlock()
		return nil
	}
	e.playing = true
	e.mu.Unlock()
	return b.Play()
}

// Pause forwards the pause command to the backend, same contract as Play.
func (e *Engine) Pause() error {
	e.mu.Lock()
	b := e.backend
	if b == nil {
		e.mu.Unlock()
		return nil
	}
	e.playing = false
	e.mu.Unlock()
	return b.Pause()
}

// Close detaches the backend and stops the frame sampler. It blocks until
// the sampler has exited; no currentFrame update lands after Close returns.
// Safe to call on an engine that never had a backend.
func (e *Engine) Close() {
	e.mu.Lock()
	s := e.sampler
	e.sampler = nil
	e.backend = nil
	e.playing = false
	e.mu.Unlock()

	if s != nil {
		s.Close()
	}
}

func (e *Engine) setCurrentFrame(frame int) {
	e.mu.Lock()
	e.currentFrame = frame
	e.mu.Unlock()
}
