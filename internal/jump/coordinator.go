// Package jump turns press, release and cancel gestures into a squash and
// jump animation of two scalars: a vertical scale and a vertical offset.
package jump

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jask/jumptap/internal/anim"
	"github.com/jask/jumptap/internal/logger"
	"github.com/jask/jumptap/internal/spring"
)

const (
	RestScale       = 1.0
	RestTranslation = 0.0

	PressedScale      = 0.6
	SquishScale       = 0.88
	LaunchTranslation = -0.8
)

// ErrConcurrentUse reports entry points called from more than one goroutine
// at once.
var ErrConcurrentUse = errors.New("jump: coordinator used concurrently")

// Coordinator owns the scale and translation of one element and runs at most
// one animation sequence at a time. All methods must be called from a single
// goroutine; events and Tick interleave cooperatively.
type Coordinator struct {
	ctx         context.Context
	scale       *anim.Value
	translation *anim.Value
	springs     spring.Set
	clock       *anim.Clock
	log         logger.Logger
	observer    Observer

	seq     *sequence
	elapsed time.Duration

	busy       atomic.Bool
	inCallback bool
	deferred   []queued
}

type sequence struct {
	id      string
	event   Event
	scope   *anim.Scope
	started time.Duration
	landed  bool
	done    bool
}

type queued struct {
	event      Event
	onComplete func()
}

// Option configures a Coordinator.
type Option func(*Coordinator)

func WithSprings(s spring.Set) Option        { return func(c *Coordinator) { c.springs = s } }
func WithFPS(fps int) Option                 { return func(c *Coordinator) { c.clock = anim.NewClock(fps) } }
func WithLogger(l logger.Logger) Option      { return func(c *Coordinator) { c.log = l } }
func WithObserver(o Observer) Option         { return func(c *Coordinator) { c.observer = o } }
func WithContext(ctx context.Context) Option { return func(c *Coordinator) { c.ctx = ctx } }

// New builds a resting coordinator. Springs are validated up front so a bad
// configuration fails here rather than never settling.
func New(opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		ctx:      context.Background(),
		springs:  spring.DefaultSet(),
		clock:    anim.NewClock(60),
		log:      logger.Nop(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.springs.Validate(); err != nil {
		return nil, fmt.Errorf("jump coordinator: %w", err)
	}
	c.scale = anim.NewValue(RestScale)
	c.translation = anim.NewValue(RestTranslation)
	return c, nil
}

// Scale is the current vertical scale factor.
func (c *Coordinator) Scale() float64 { return c.scale.Current() }

// Translation is the current vertical offset as a fraction of the element's
// height. Negative is up.
func (c *Coordinator) Translation() float64 { return c.translation.Current() }

// Settled reports whether no sequence has outstanding motion.
func (c *Coordinator) Settled() bool { return c.seq == nil || c.seq.scope.Idle() }

// Elapsed is the simulated time consumed by Tick.
func (c *Coordinator) Elapsed() time.Duration { return c.elapsed }

// Snapshot is a point-in-time view for renderers and traces.
type Snapshot struct {
	Scale       float64
	Translation float64
	Event       Event
	Sequence    string
	Live        bool
}

func (c *Coordinator) Snapshot() Snapshot {
	s := Snapshot{Scale: c.Scale(), Translation: c.Translation()}
	if c.seq != nil {
		s.Event = c.seq.event
		s.Sequence = c.seq.id
		s.Live = !c.seq.scope.Idle()
	}
	return s
}

// Press compresses the element from a clean resting pose.
func (c *Coordinator) Press() { c.Dispatch(Press, nil) }

// Release launches the element. onComplete runs once, when it lands.
func (c *Coordinator) Release(onComplete func()) {
	if onComplete == nil {
		panic("jump: Release called with nil completion callback")
	}
	c.Dispatch(Release, onComplete)
}

// Cancel snaps back to rest without animating.
func (c *Coordinator) Cancel() { c.Dispatch(Cancel, nil) }

// Dispatch cancels the live sequence and starts the one for ev. Events raised
// from inside a completion callback are applied once the callback returns.
func (c *Coordinator) Dispatch(ev Event, onComplete func()) {
	if ev == Release && onComplete == nil {
		onComplete = func() {}
	}
	if c.inCallback {
		c.deferred = append(c.deferred, queued{event: ev, onComplete: onComplete})
		return
	}
	c.enter()
	defer c.leave()
	c.launch(ev, onComplete)
}

// Tick advances the animation by a frame delta.
func (c *Coordinator) Tick(dt time.Duration) {
	c.enter()
	defer c.leave()

	n := c.clock.Advance(dt)
	step := c.clock.Step()
	for i := 0; i < n; i++ {
		c.elapsed += step
		c.scale.Step(step)
		c.translation.Step(step)
		c.drain()
	}
}

func (c *Coordinator) enter() {
	if !c.busy.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%w: entry point called while another is running", ErrConcurrentUse))
	}
}

func (c *Coordinator) leave() { c.busy.Store(false) }

func (c *Coordinator) drain() {
	for len(c.deferred) > 0 {
		q := c.deferred[0]
		c.deferred = c.deferred[1:]
		c.launch(q.event, q.onComplete)
	}
}

func (c *Coordinator) launch(ev Event, onComplete func()) {
	if prev := c.seq; prev != nil {
		if !prev.scope.Idle() {
			c.observer.SequenceSuperseded(prev.event)
			c.log.Debug(c.ctx, "sequence superseded",
				logger.String("seq", prev.id), logger.String("by", ev.String()))
		}
		prev.scope.Cancel()
	}

	seq := &sequence{
		id:      uuid.NewString(),
		event:   ev,
		scope:   anim.NewScope(c.ctx),
		started: c.elapsed,
	}
	c.seq = seq
	seq.scope.OnIdle(func() { c.complete(seq) })
	c.observer.SequenceStarted(ev)
	c.log.Debug(c.ctx, "sequence started",
		logger.String("seq", seq.id), logger.String("event", ev.String()))

	switch ev {
	case Press:
		c.press(seq)
	case Release:
		c.release(seq, onComplete)
	case Cancel:
		c.cancel()
	default:
		c.log.Warn(c.ctx, "unknown gesture ignored", logger.String("event", ev.String()))
	}

	if seq.scope.Idle() {
		c.complete(seq)
	}
}

func (c *Coordinator) press(seq *sequence) {
	c.scale.Snap(RestScale)
	c.translation.Snap(RestTranslation)
	c.scale.DriveTo(seq.scope, PressedScale, c.springs.Default)
}

func (c *Coordinator) release(seq *sequence, onComplete func()) {
	s := seq.scope

	// Finish the compression in case the press was too quick to settle,
	// then spring back past rest.
	c.scale.DriveTo(s, PressedScale, c.springs.Default).Then(func() {
		c.scale.DriveTo(s, RestScale, c.springs.Overshoot)
	})

	c.translation.DriveTo(s, LaunchTranslation, c.springs.Launch).Then(func() {
		c.translation.DriveTo(s, RestTranslation, c.springs.Return, anim.WithObserver(func(v float64) {
			if seq.landed || v < RestTranslation {
				return
			}
			seq.landed = true
			c.land(seq, onComplete)
		}))
	})
}

func (c *Coordinator) land(seq *sequence, onComplete func()) {
	airtime := c.elapsed - seq.started
	c.observer.Landed(airtime)
	c.log.Debug(c.ctx, "landed",
		logger.String("seq", seq.id), logger.Any("airtime", airtime))

	c.invoke(onComplete)

	squish := seq.scope.Child()
	c.scale.DriveTo(squish, SquishScale, c.springs.Default).Then(func() {
		c.scale.DriveTo(squish, RestScale, c.springs.Default)
	})
}

func (c *Coordinator) invoke(fn func()) {
	c.inCallback = true
	defer func() { c.inCallback = false }()
	fn()
}

func (c *Coordinator) cancel() {
	c.scale.Snap(RestScale)
	c.translation.Snap(RestTranslation)
}

func (c *Coordinator) complete(seq *sequence) {
	if seq.done || seq.scope.Err() != nil {
		return
	}
	seq.done = true
	c.observer.SequenceCompleted(seq.event)
	c.log.Debug(c.ctx, "sequence complete",
		logger.String("seq", seq.id), logger.String("event", seq.event.String()),
		logger.Any("duration", c.elapsed-seq.started))
}
