package jump

import "fmt"

// Event is a gesture delivered by the input layer.
type Event int

const (
	// Press is a press-down on the element.
	Press Event = iota + 1
	// Release is a press-up inside the element.
	Release
	// Cancel is a press that was cancelled or dragged away.
	Cancel
)

func (e Event) String() string {
	switch e {
	case Press:
		return "press"
	case Release:
		return "release"
	case Cancel:
		return "cancel"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// ParseEvent is the inverse of Event.String.
func ParseEvent(s string) (Event, error) {
	switch s {
	case "press":
		return Press, nil
	case "release":
		return Release, nil
	case "cancel":
		return Cancel, nil
	}
	return 0, fmt.Errorf("unknown gesture %q", s)
}
