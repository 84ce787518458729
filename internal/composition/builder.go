package composition

import (
	"sort"

	"github.com/ivlev/framecast/internal/timeline"
)

// Block is one render instruction for the playback backend: the half-open
// frame window [From, From+DurationInFrames) plus the variant payload the
// backend dispatches on.
type Block struct {
	ID               string
	From             int
	DurationInFrames int
	Kind             timeline.Kind
	Source           string // media payload
	Text             string // text payload
}

// End returns the exclusive end frame of the block.
func (b Block) End() int { return b.From + b.DurationInFrames }

// Sequence is the ordered render sequence consumed by a playback backend.
type Sequence []Block

// Build merges both collections into a single sequence ordered by start
// frame. Clips enter the merge before overlays, each in append order, and
// the sort is stable, so items sharing a start frame keep their merge order.
// Build is pure: identical inputs always yield an identical sequence.
func Build(clips []timeline.MediaClip, overlays []timeline.TextOverlay) Sequence {
	seq := make(Sequence, 0, len(clips)+len(overlays))
	for _, c := range clips {
		seq = append(seq, Block{
			ID:               c.ID,
			From:             c.Start,
			DurationInFrames: c.Duration,
			Kind:             timeline.KindMedia,
			Source:           c.Source,
		})
	}
	for _, o := range overlays {
		seq = append(seq, Block{
			ID:               o.ID,
			From:             o.Start,
			DurationInFrames: o.Duration,
			Kind:             timeline.KindText,
			Text:             o.Text,
		})
	}

	sort.SliceStable(seq, func(i, j int) bool {
		return seq[i].From < seq[j].From
	})
	return seq
}

// DurationInFrames reports the sequence length handed to the playback
// backend. Playback requires a strictly positive duration, so an empty
// sequence reports 1; that floor lives here, at the consumption boundary.
func (s Sequence) DurationInFrames() int {
	end := 0
	for _, b := range s {
		if b.End() > end {
			end = b.End()
		}
	}
	if end < 1 {
		return 1
	}
	return end
}
