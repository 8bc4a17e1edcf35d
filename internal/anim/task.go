package anim

// TaskState is the resolution of a drive.
type TaskState int

const (
	TaskRunning TaskState = iota
	// TaskSettled means the value reached its target.
	TaskSettled
	// TaskPreempted means another Snap or DriveTo took over the value.
	TaskPreempted
	// TaskCancelled means the owning scope was cancelled.
	TaskCancelled
)

func (s TaskState) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskSettled:
		return "settled"
	case TaskPreempted:
		return "preempted"
	case TaskCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Task tracks a single drive started by Value.DriveTo.
type Task struct {
	scope *Scope
	state TaskState
	then  []func()
}

func newTask(s *Scope) *Task {
	s.acquire()
	return &Task{scope: s}
}

func (t *Task) State() TaskState { return t.state }

func (t *Task) Settled() bool { return t.state == TaskSettled }

// Then queues fn to run when the drive settles. It never runs if the drive is
// pre-empted or its scope is cancelled.
func (t *Task) Then(fn func()) *Task {
	if t.state == TaskRunning {
		t.then = append(t.then, fn)
		return t
	}
	if t.state == TaskSettled && t.scope.Err() == nil {
		fn()
	}
	return t
}

// resolve runs continuations before releasing the scope so that work they
// start keeps the scope busy.
func (t *Task) resolve(state TaskState) {
	if t.state != TaskRunning {
		return
	}
	t.state = state
	if state == TaskSettled && t.scope.Err() == nil {
		for _, fn := range t.then {
			fn()
		}
	}
	t.then = nil
	t.scope.release()
}
