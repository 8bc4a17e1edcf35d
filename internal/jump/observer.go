package jump

import "time"

// Observer receives sequence lifecycle notifications. Calls happen on the
// coordinator's goroutine and must not block.
type Observer interface {
	SequenceStarted(ev Event)
	SequenceSuperseded(ev Event)
	SequenceCompleted(ev Event)
	Landed(airtime time.Duration)
}

// NopObserver can be embedded to implement only part of Observer.
type NopObserver struct{}

func (NopObserver) SequenceStarted(Event)    {}
func (NopObserver) SequenceSuperseded(Event) {}
func (NopObserver) SequenceCompleted(Event)  {}
func (NopObserver) Landed(time.Duration)     {}

// Observers fans out to each member in order.
type Observers []Observer

func (o Observers) SequenceStarted(ev Event) {
	for _, x := range o {
		x.SequenceStarted(ev)
	}
}

func (o Observers) SequenceSuperseded(ev Event) {
	for _, x := range o {
		x.SequenceSuperseded(ev)
	}
}

func (o Observers) SequenceCompleted(ev Event) {
	for _, x := range o {
		x.SequenceCompleted(ev)
	}
}

func (o Observers) Landed(airtime time.Duration) {
	for _, x := range o {
		x.Landed(airtime)
	}
}
