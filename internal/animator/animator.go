package animator

import "math"

// Transform is the visual state of an overlay at one frame.
type Transform struct {
	Opacity float64
	Scale   float64
}

// omega is the natural frequency of the critically damped spring. At 30 fps
// the response settles within roughly 30 frames.
const omega = 8.0

const (
	scaleFrom = 0.8
	scaleTo   = 1.0
)

// Animate computes the enter transition for an overlay at localFrame, the
// frame offset since the overlay's start. It is a pure function of its
// inputs and keeps no state, so evaluating any frame in any order —
// including frames reached by a backward seek — reproduces the identical
// value. Opacity rises 0→1 and scale 0.8→1.0.
func Animate(localFrame, fps int) Transform {
	p := progress(localFrame, fps)
	return Transform{
		Opacity: p,
		Scale:   scaleFrom + (scaleTo-scaleFrom)*p,
	}
}

// progress is the unit step response of a critically damped spring:
// 1 - (1 + ωt)·e^(-ωt), with t in seconds.
func progress(localFrame, fps int) float64 {
	if localFrame <= 0 || fps <= 0 {
		return 0
	}
	t := float64(localFrame) / float64(fps)
	return 1 - (1+omega*t)*math.Exp(-omega*t)
}

// SettleFrame reports the first frame at which the transition has
// effectively finished (progress within 1% of its target).
func SettleFrame(fps int) int {
	if fps <= 0 {
		fps = 30
	}
	limit := fps * 10
	for f := 1; f <= limit; f++ {
		if progress(f, fps) >= 0.99 {
			return f
		}
	}
	return limit
}
