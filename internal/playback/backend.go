package playback

// Backend is the external player owning the authoritative playback clock.
// The engine forwards transport commands to it and samples its position;
// it never advances time itself and never touches media data.
type Backend interface {
	Play() error
	Pause() error
	// CurrentFrame reports the playback position. ok is false while the
	// backend has no position to report (not mounted, nothing loaded yet).
	CurrentFrame() (frame int, ok bool)
}
