package preview

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/framecast/internal/animator"
	"github.com/ivlev/framecast/internal/composition"
	"github.com/ivlev/framecast/internal/timeline"
)

// BlockReport summarizes one render block for the headless preview.
type BlockReport struct {
	ID    string
	From  int
	To    int // exclusive
	Kind  timeline.Kind
	Label string
	// SettleFrame is the local frame at which the overlay enter transition
	// has finished, -1 for media blocks.
	SettleFrame int
	FinalState  animator.Transform
}

// Probe evaluates every block of the sequence over a worker pool and
// returns the reports in sequence order.
func Probe(ctx context.Context, seq composition.Sequence, fps, workers int) ([]BlockReport, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(seq) && len(seq) > 0 {
		workers = len(seq)
	}

	reports := make([]BlockReport, len(seq))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range seq {
		i, b := i, b
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			r, err := probeBlock(b, fps)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func probeBlock(b composition.Block, fps int) (BlockReport, error) {
	r := BlockReport{ID: b.ID, From: b.From, To: b.End(), Kind: b.Kind}

	switch b.Kind {
	case timeline.KindMedia:
		r.Label = b.Source
		r.SettleFrame = -1
		r.FinalState = animator.Transform{Opacity: 1, Scale: 1}
	case timeline.KindText:
		r.Label = b.Text
		settle := animator.SettleFrame(fps)
		if settle > b.DurationInFrames {
			settle = b.DurationInFrames
		}
		r.SettleFrame = settle
		r.FinalState = animator.Animate(b.DurationInFrames, fps)
	default:
		return BlockReport{}, fmt.Errorf("%w: block %s kind %d", timeline.ErrInvalidKind, b.ID, b.Kind)
	}
	return r, nil
}

// Run plays the engine's timeline against its attached backend in real
// time, printing the playhead at the sampling cadence until the final frame
// is reached or ctx is canceled. The backend owns the clock; Run only
// observes the engine's mirrored frame.
func Run(ctx context.Context, eng *timeline.Engine, period time.Duration, out io.Writer) error {
	total := eng.TotalDuration()
	if total < 1 {
		total = 1
	}

	if err := eng.Play(); err != nil {
		return fmt.Errorf("play command failed: %w", err)
	}

	if period <= 0 {
		period = 33 * time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			eng.Pause()
			return ctx.Err()
		case <-ticker.C:
			frame := eng.CurrentFrame()
			fmt.Fprintf(out, "\r[*] playhead %5d/%d (%5.1f%%)", frame, total, 100*float64(frame)/float64(total))
			if frame >= total {
				fmt.Fprintln(out)
				return eng.Pause()
			}
		}
	}
}
