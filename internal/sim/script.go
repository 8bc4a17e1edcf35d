// Package sim runs scripted gestures against a coordinator without a
// terminal, producing a frame-by-frame trace.
package sim

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/jask/jumptap/internal/jump"
)

// Op is a script instruction.
type Op int

const (
	OpGesture Op = iota + 1
	OpWait
	OpSettle
)

// Step is one parsed script line.
type Step struct {
	Op    Op
	Event jump.Event
	Wait  time.Duration
}

func (s Step) String() string {
	switch s.Op {
	case OpGesture:
		return s.Event.String()
	case OpWait:
		return "wait " + s.Wait.String()
	case OpSettle:
		return "settle"
	}
	return "?"
}

// Parse reads steps separated by newlines or semicolons. Blank lines and
// anything after '#' are ignored.
func Parse(script string) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(strings.NewReader(script))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, raw := range strings.Split(text, ";") {
			fields := strings.Fields(raw)
			if len(fields) == 0 {
				continue
			}
			step, err := parseStep(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			steps = append(steps, step)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func parseStep(fields []string) (Step, error) {
	cmd := strings.ToLower(fields[0])
	switch cmd {
	case "wait":
		if len(fields) != 2 {
			return Step{}, fmt.Errorf("wait takes one duration")
		}
		d, err := time.ParseDuration(fields[1])
		if err != nil {
			return Step{}, fmt.Errorf("wait: %w", err)
		}
		if d < 0 {
			return Step{}, fmt.Errorf("wait: negative duration %s", d)
		}
		return Step{Op: OpWait, Wait: d}, nil
	case "settle":
		if len(fields) != 1 {
			return Step{}, fmt.Errorf("settle takes no arguments")
		}
		return Step{Op: OpSettle}, nil
	}
	ev, err := jump.ParseEvent(cmd)
	if err != nil {
		return Step{}, err
	}
	if len(fields) != 1 {
		return Step{}, fmt.Errorf("%s takes no arguments", cmd)
	}
	return Step{Op: OpGesture, Event: ev}, nil
}
