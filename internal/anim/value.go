package anim

import (
	"math"
	"time"

	"github.com/jask/jumptap/internal/spring"
)

// DefaultThreshold is the distance and speed below which a drive is settled.
const DefaultThreshold = 1e-3

// Value is a scalar that can be snapped or driven toward a target by a spring.
// Velocity carries over between drives so pre-emption stays continuous.
type Value struct {
	value     float64
	velocity  float64
	target    float64
	threshold float64

	cur *drive
}

type drive struct {
	task    *Task
	target  float64
	params  spring.Params
	stepper spring.Stepper
	observe func(float64)
}

// ValueOption configures a Value.
type ValueOption func(*Value)

// WithThreshold overrides the settle tolerance.
func WithThreshold(eps float64) ValueOption {
	return func(v *Value) {
		if eps > 0 {
			v.threshold = eps
		}
	}
}

// NewValue returns a resting value.
func NewValue(initial float64, opts ...ValueOption) *Value {
	v := &Value{value: initial, target: initial, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// DriveOption configures a single drive.
type DriveOption func(*drive)

// WithObserver calls fn with the value after every simulation step of the
// drive, including the final settled sample.
func WithObserver(fn func(float64)) DriveOption {
	return func(d *drive) { d.observe = fn }
}

func (v *Value) Current() float64  { return v.value }
func (v *Value) Velocity() float64 { return v.velocity }
func (v *Value) Target() float64   { return v.target }

// Running reports whether a drive is in flight.
func (v *Value) Running() bool { return v.cur != nil }

// Snap jumps to x with zero velocity, pre-empting any drive.
func (v *Value) Snap(x float64) {
	v.preempt()
	v.value = x
	v.velocity = 0
	v.target = x
}

// DriveTo starts moving the value toward target under scope s. A cancelled
// scope resolves the task immediately and leaves the value untouched.
func (v *Value) DriveTo(s *Scope, target float64, p spring.Params, opts ...DriveOption) *Task {
	t := newTask(s)
	if s.Err() != nil {
		t.resolve(TaskCancelled)
		return t
	}
	v.preempt()
	d := &drive{task: t, target: target, params: p}
	for _, opt := range opts {
		opt(d)
	}
	v.target = target
	v.cur = d
	return t
}

// Step integrates the in-flight drive by dt.
func (v *Value) Step(dt time.Duration) {
	d := v.cur
	if d == nil || dt <= 0 {
		return
	}
	if d.task.scope.Err() != nil {
		v.cur = nil
		d.task.resolve(TaskCancelled)
		return
	}
	if d.stepper.Step() != dt {
		d.stepper = spring.NewStepper(d.params, dt)
	}

	v.value, v.velocity = d.stepper.Update(v.value, v.velocity, d.target)
	settled := math.Abs(v.value-d.target) < v.threshold && math.Abs(v.velocity) < v.threshold
	if settled {
		v.value = d.target
		v.velocity = 0
	}

	if d.observe != nil {
		d.observe(v.value)
		if v.cur != d {
			return
		}
	}
	if settled {
		v.cur = nil
		d.task.resolve(TaskSettled)
	}
}

func (v *Value) preempt() {
	if d := v.cur; d != nil {
		v.cur = nil
		d.task.resolve(TaskPreempted)
	}
}
