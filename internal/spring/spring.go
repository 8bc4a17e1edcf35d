// Package spring holds the spring parameters used to drive animated values and
// the fixed-step integrator built on harmonica.
package spring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// ErrInvalidSpring is returned for springs that would never converge.
var ErrInvalidSpring = errors.New("invalid spring")

const (
	DampingRatioNoBouncy = 1.0

	StiffnessMedium    = 1500.0
	StiffnessMediumLow = 400.0
)

// Params describes a damped harmonic oscillator with unit mass.
type Params struct {
	DampingRatio float64 `mapstructure:"damping_ratio"`
	Stiffness    float64 `mapstructure:"stiffness"`
}

var (
	// Default is a critically damped, medium stiffness spring.
	Default = Params{DampingRatio: DampingRatioNoBouncy, Stiffness: StiffnessMedium}
	// Overshoot wobbles slightly past its target before settling.
	Overshoot = Params{DampingRatio: 0.55, Stiffness: StiffnessMedium}
	// Launch is soft and never bounces.
	Launch = Params{DampingRatio: DampingRatioNoBouncy, Stiffness: StiffnessMediumLow}
	// Return is a heavier fall with a small rebound.
	Return = Params{DampingRatio: 0.65, Stiffness: 140}
)

// Validate reports whether p can be integrated to a settled state.
func (p Params) Validate() error {
	switch {
	case math.IsNaN(p.Stiffness) || math.IsInf(p.Stiffness, 0):
		return fmt.Errorf("%w: stiffness %v is not finite", ErrInvalidSpring, p.Stiffness)
	case math.IsNaN(p.DampingRatio) || math.IsInf(p.DampingRatio, 0):
		return fmt.Errorf("%w: damping ratio %v is not finite", ErrInvalidSpring, p.DampingRatio)
	case p.Stiffness <= 0:
		return fmt.Errorf("%w: stiffness must be positive, got %v", ErrInvalidSpring, p.Stiffness)
	case p.DampingRatio < 0:
		return fmt.Errorf("%w: damping ratio must not be negative, got %v", ErrInvalidSpring, p.DampingRatio)
	}
	return nil
}

// AngularFrequency is sqrt(k/m) with m = 1.
func (p Params) AngularFrequency() float64 {
	return math.Sqrt(p.Stiffness)
}

func (p Params) String() string {
	return fmt.Sprintf("spring(damping=%.2f, stiffness=%.0f)", p.DampingRatio, p.Stiffness)
}

// Set groups the springs a jump sequence needs.
type Set struct {
	Default   Params `mapstructure:"default"`
	Overshoot Params `mapstructure:"overshoot"`
	Launch    Params `mapstructure:"launch"`
	Return    Params `mapstructure:"return"`
}

// DefaultSet returns the stock presets.
func DefaultSet() Set {
	return Set{
		Default:   Default,
		Overshoot: Overshoot,
		Launch:    Launch,
		Return:    Return,
	}
}

// Validate checks every spring in the set and names the first bad one.
func (s Set) Validate() error {
	named := []struct {
		name string
		p    Params
	}{
		{"default", s.Default},
		{"overshoot", s.Overshoot},
		{"launch", s.Launch},
		{"return", s.Return},
	}
	for _, n := range named {
		if err := n.p.Validate(); err != nil {
			return fmt.Errorf("%s spring: %w", n.name, err)
		}
	}
	return nil
}

// Stepper advances a position/velocity pair by one fixed time step.
type Stepper struct {
	params Params
	step   time.Duration
	s      harmonica.Spring
}

// NewStepper precomputes the integration coefficients for p at the given step.
func NewStepper(p Params, step time.Duration) Stepper {
	return Stepper{
		params: p,
		step:   step,
		s:      harmonica.NewSpring(step.Seconds(), p.AngularFrequency(), p.DampingRatio),
	}
}

// Update returns the position and velocity one step later.
func (s Stepper) Update(pos, vel, target float64) (float64, float64) {
	return s.s.Update(pos, vel, target)
}

func (s Stepper) Params() Params      { return s.params }
func (s Stepper) Step() time.Duration { return s.step }
