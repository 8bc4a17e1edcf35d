// Package sound plays a short tone when a jumper lands.
package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/jask/jumptap/internal/jump"
)

const (
	sampleRate   = beep.SampleRate(44100)
	thudDuration = 60 * time.Millisecond
	thudGain     = -0.5
)

// Thud plays a tone on every landing. The zero value is silent.
type Thud struct {
	jump.NopObserver

	freq float64
	play func(beep.Streamer)
}

// NewThud initialises the speaker. Callers should treat an error as
// "continue without sound".
func NewThud(freq float64) (*Thud, error) {
	if freq <= 0 {
		return nil, fmt.Errorf("thud frequency must be positive, got %v", freq)
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &Thud{freq: freq, play: func(s beep.Streamer) { speaker.Play(s) }}, nil
}

// Landed queues the tone without blocking.
func (t *Thud) Landed(time.Duration) {
	if t == nil || t.play == nil {
		return
	}
	s, err := t.streamer()
	if err != nil {
		return
	}
	t.play(s)
}

func (t *Thud) streamer() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil, err
	}
	quiet := &effects.Gain{Streamer: sine, Gain: thudGain}
	return beep.Take(sampleRate.N(thudDuration), quiet), nil
}

// Close stops playback.
func (t *Thud) Close() {
	if t != nil && t.play != nil {
		speaker.Clear()
	}
}
