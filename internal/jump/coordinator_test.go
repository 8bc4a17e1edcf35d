package jump

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/jumptap/internal/spring"
)

const frame = time.Second / 60

func newCoordinator(t *testing.T, opts ...Option) *Coordinator {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func tick(c *Coordinator, frames int) {
	for i := 0; i < frames; i++ {
		c.Tick(frame)
	}
}

// settle ticks until the live sequence drains, failing after ten seconds.
func settle(t *testing.T, c *Coordinator) {
	t.Helper()
	for i := 0; i < 600; i++ {
		if c.Settled() {
			return
		}
		c.Tick(frame)
	}
	t.Fatalf("coordinator did not settle: %+v", c.Snapshot())
}

type countingObserver struct {
	started    map[Event]int
	superseded map[Event]int
	completed  map[Event]int
	airtimes   []time.Duration
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		started:    map[Event]int{},
		superseded: map[Event]int{},
		completed:  map[Event]int{},
	}
}

func (o *countingObserver) SequenceStarted(ev Event)     { o.started[ev]++ }
func (o *countingObserver) SequenceSuperseded(ev Event)  { o.superseded[ev]++ }
func (o *countingObserver) SequenceCompleted(ev Event)   { o.completed[ev]++ }
func (o *countingObserver) Landed(airtime time.Duration) { o.airtimes = append(o.airtimes, airtime) }

func TestNewRejectsInvalidSpring(t *testing.T) {
	t.Parallel()

	set := spring.DefaultSet()
	set.Launch.Stiffness = -1
	_, err := New(WithSprings(set))
	require.ErrorIs(t, err, spring.ErrInvalidSpring)
}

func TestRestingPose(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
	require.True(t, c.Settled())
	require.False(t, c.Snapshot().Live)
}

func TestPressStartsFromCleanPose(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	c.Release(func() {})
	tick(c, 20)
	require.Less(t, c.Translation(), 0.0)

	c.Press()
	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
	require.Equal(t, PressedScale, c.scale.Target())
	require.True(t, c.scale.Running())

	tick(c, 1)
	require.Less(t, c.Scale(), RestScale)
	require.Equal(t, RestTranslation, c.Translation())

	settle(t, c)
	require.Equal(t, PressedScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
}

func TestCancelSnapsAndIsIdempotent(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	c.Press()
	tick(c, 3)
	c.Release(func() {})
	tick(c, 25)

	c.Cancel()
	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
	require.True(t, c.Settled())

	c.Cancel()
	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())

	tick(c, 60)
	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
}

func TestScenarioPressThenCancel(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	calls := 0
	c.Press()
	tick(c, 2)
	c.Cancel()
	settle(t, c)
	tick(c, 120)

	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
	require.Zero(t, calls)
}

func TestReleaseThenCancelBeforeLanding(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	calls := 0
	c.Release(func() { calls++ })
	tick(c, 30)
	c.Cancel()
	tick(c, 300)

	require.Zero(t, calls)
	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
}

func TestScenarioPressSettleRelease(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	c.Press()
	settle(t, c)
	require.Equal(t, PressedScale, c.Scale())

	calls := 0
	apex := 0.0
	var atLanding float64
	c.Release(func() {
		calls++
		atLanding = c.Translation()
	})
	for i := 0; i < 600 && !c.Settled(); i++ {
		c.Tick(frame)
		if calls == 0 && c.Translation() < apex {
			apex = c.Translation()
		}
	}

	require.True(t, c.Settled())
	require.Equal(t, 1, calls)
	require.GreaterOrEqual(t, atLanding, RestTranslation)
	require.InDelta(t, LaunchTranslation, apex, 0.01, "callback must not fire before the apex")
	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
}

func TestCallbackNeverFiresOnTheWayUp(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	calls := 0
	c.Release(func() { calls++ })

	prev := c.Translation()
	for i := 0; i < 600 && calls == 0; i++ {
		c.Tick(frame)
		cur := c.Translation()
		if cur < prev {
			require.Zero(t, calls, "fired while rising")
		}
		prev = cur
	}
	require.Equal(t, 1, calls)
	require.GreaterOrEqual(t, c.Translation(), RestTranslation)
}

func TestScenarioDoubleRelease(t *testing.T) {
	t.Parallel()

	obs := newCountingObserver()
	c := newCoordinator(t, WithObserver(obs))

	first, second := 0, 0
	c.Release(func() { first++ })
	tick(c, 10)
	require.Less(t, c.Translation(), 0.0)

	c.Release(func() { second++ })
	settle(t, c)
	tick(c, 120)

	require.Zero(t, first)
	require.Equal(t, 1, second)
	require.Equal(t, RestScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())

	require.Equal(t, 2, obs.started[Release])
	require.Equal(t, 1, obs.superseded[Release])
	require.Equal(t, 1, obs.completed[Release])
	require.Len(t, obs.airtimes, 1)
	require.Greater(t, obs.airtimes[0], 500*time.Millisecond)
}

func TestSupersededSquishStopsWriting(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	landed := false
	c.Release(func() { landed = true })
	for i := 0; i < 600 && !landed; i++ {
		c.Tick(frame)
	}
	require.True(t, landed)
	require.False(t, c.Settled())

	c.Cancel()
	for i := 0; i < 120; i++ {
		c.Tick(frame)
		require.Equal(t, RestScale, c.Scale())
		require.Equal(t, RestTranslation, c.Translation())
	}
}

func TestLandingSquishesScale(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	landed := false
	c.Release(func() { landed = true })
	for i := 0; i < 600 && !landed; i++ {
		c.Tick(frame)
	}
	require.True(t, landed)
	require.Equal(t, SquishScale, c.scale.Target())

	low := c.Scale()
	for i := 0; i < 600 && !c.Settled(); i++ {
		c.Tick(frame)
		if c.Scale() < low {
			low = c.Scale()
		}
	}
	require.InDelta(t, SquishScale, low, 0.01)
	require.Equal(t, RestScale, c.Scale())
}

func TestEventsFromCallbackAreDeferred(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	calls := 0
	c.Release(func() {
		calls++
		c.Press()
		require.NotEqual(t, Press, c.Snapshot().Event)
	})
	for i := 0; i < 600 && calls == 0; i++ {
		c.Tick(frame)
	}
	require.Equal(t, 1, calls)
	require.Equal(t, Press, c.Snapshot().Event)

	settle(t, c)
	require.Equal(t, 1, calls)
	require.Equal(t, PressedScale, c.Scale())
	require.Equal(t, RestTranslation, c.Translation())
}

func TestConcurrentUsePanics(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	c.busy.Store(true)

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok, "expected an error panic, got %v", r)
		require.True(t, errors.Is(err, ErrConcurrentUse))
	}()
	c.Press()
}

func TestReleaseRequiresCallback(t *testing.T) {
	t.Parallel()

	c := newCoordinator(t)
	require.Panics(t, func() { c.Release(nil) })
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	obs := newCountingObserver()
	c := newCoordinator(t, WithObserver(obs), WithFPS(120))
	c.Dispatch(Press, nil)
	c.Dispatch(Release, nil)
	settle(t, c)
	c.Dispatch(Cancel, nil)

	require.Equal(t, 1, obs.started[Press])
	require.Equal(t, 1, obs.superseded[Press])
	require.Equal(t, 1, obs.completed[Release])
	require.Equal(t, 1, obs.completed[Cancel])
	require.Len(t, obs.airtimes, 1)
}

func TestParseEvent(t *testing.T) {
	t.Parallel()

	for _, ev := range []Event{Press, Release, Cancel} {
		got, err := ParseEvent(ev.String())
		require.NoError(t, err)
		require.Equal(t, ev, got)
	}
	_, err := ParseEvent("hover")
	require.Error(t, err)
}
