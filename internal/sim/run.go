package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/jask/jumptap/internal/jump"
)

const settleLimit = 10 * time.Second

// Frame is one sampled render frame.
type Frame struct {
	At          time.Duration
	Scale       float64
	Translation float64
	Note        string
}

// Trace is the result of a run.
type Trace struct {
	Frames   []Frame
	Landings []time.Duration
}

// Clicks is the number of completion callbacks that fired.
func (t Trace) Clicks() int { return len(t.Landings) }

// Final is the last sampled frame.
func (t Trace) Final() Frame {
	if len(t.Frames) == 0 {
		return Frame{Scale: jump.RestScale, Translation: jump.RestTranslation}
	}
	return t.Frames[len(t.Frames)-1]
}

// Run plays steps against c, ticking by frame, and samples after every event
// and every tick.
func Run(c *jump.Coordinator, steps []Step, frame time.Duration) (Trace, error) {
	if frame <= 0 {
		return Trace{}, fmt.Errorf("frame must be positive, got %s", frame)
	}
	var tr Trace
	var now time.Duration
	note := ""

	sample := func() {
		tr.Frames = append(tr.Frames, Frame{
			At:          now,
			Scale:       c.Scale(),
			Translation: c.Translation(),
			Note:        note,
		})
		note = ""
	}
	tick := func() {
		c.Tick(frame)
		now += frame
		sample()
	}

	for _, s := range steps {
		switch s.Op {
		case OpGesture:
			if s.Event == jump.Release {
				c.Release(func() {
					tr.Landings = append(tr.Landings, now+frame)
					note = "landed"
				})
			} else {
				c.Dispatch(s.Event, nil)
			}
			note = s.Event.String()
			sample()
		case OpWait:
			for end := now + s.Wait; now < end; {
				tick()
			}
		case OpSettle:
			for limit := now + settleLimit; !c.Settled(); {
				if now >= limit {
					return tr, fmt.Errorf("did not settle within %s", settleLimit)
				}
				tick()
			}
		}
	}
	return tr, nil
}

// Write prints every nth frame plus every annotated one.
func (t Trace) Write(w io.Writer, every int) error {
	if every <= 0 {
		every = 1
	}
	if _, err := fmt.Fprintf(w, "%8s  %6s  %7s  %s\n", "t", "scale", "offset", "note"); err != nil {
		return err
	}
	for i, f := range t.Frames {
		if i%every != 0 && f.Note == "" && i != len(t.Frames)-1 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%8s  %6.3f  %7.3f  %s\n",
			f.At.Round(time.Millisecond), f.Scale, f.Translation, f.Note); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "clicks: %d\n", t.Clicks())
	return err
}
