package config

import "time"

type Config struct {
	FPS            int
	ClipFrames     int // default media clip length, frames
	OverlayFrames  int // default text overlay length, frames
	SamplePeriod   time.Duration
	Workers        int
	ManifestPath   string
	ManifestOutput string
	Preview        bool
	ShowStats      bool
	BuildVersion   string
}
