package timer

import (
	"sync"
	"time"

	"taskmaster/internal/logging"
)

// Mode is the current countdown kind
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

// Default durations in seconds
const (
	DefaultFocusSeconds = 25 * 60
	DefaultBreakSeconds = 5 * 60
)

// State is a snapshot of the timer for presentation
type State struct {
	Mode           Mode
	Running        bool
	Remaining      int // seconds
	Sessions       int // completed focus countdowns
	SelectedTaskID string
}

// Timer is the Pomodoro countdown state machine. It starts paused in focus
// mode and alternates focus/break on every countdown that reaches zero. Timer
// state is never persisted; a new process always starts fresh.
type Timer struct {
	focusSeconds int
	breakSeconds int
	lookupLabel  func(taskID string) string

	mu           sync.Mutex
	mode         Mode
	remaining    int
	running      bool
	sessions     int
	selectedTask string
	stopChan     chan struct{}

	onComplete []func(Mode)
}

// Option configures a Timer
type Option func(*Timer)

// WithDurations overrides the focus and break durations (in seconds).
// Non-positive values keep the defaults.
func WithDurations(focus, brk int) Option {
	return func(t *Timer) {
		if focus > 0 {
			t.focusSeconds = focus
		}
		if brk > 0 {
			t.breakSeconds = brk
		}
	}
}

// WithTaskLabels supplies the lookup used to resolve the selected task's
// display label. Unknown IDs must yield "".
func WithTaskLabels(lookup func(taskID string) string) Option {
	return func(t *Timer) {
		t.lookupLabel = lookup
	}
}

// New creates a timer in its initial state: focus mode, paused, full duration
func New(opts ...Option) *Timer {
	t := &Timer{
		focusSeconds: DefaultFocusSeconds,
		breakSeconds: DefaultBreakSeconds,
		mode:         ModeFocus,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.remaining = t.focusSeconds
	return t
}

// OnComplete registers a callback fired whenever a countdown reaches zero.
// Callbacks run on the tick goroutine; they must not block.
func (t *Timer) OnComplete(fn func(Mode)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onComplete = append(t.onComplete, fn)
}

// Start begins decrementing once per wall-clock second. No-op while running.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	t.running = true
	t.stopChan = make(chan struct{})
	go t.loop(t.stopChan)
	logging.Debug("timer", "started: mode=%s remaining=%ds", t.mode, t.remaining)
}

// Pause halts the countdown, retaining the remaining time. No-op while paused.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Reset restores the current mode's full duration and forces paused
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.remaining = t.duration(t.mode)
}

// stopLocked cancels the tick loop. Called with the lock held.
func (t *Timer) stopLocked() {
	if !t.running {
		return
	}
	t.running = false
	if t.stopChan != nil {
		close(t.stopChan)
		t.stopChan = nil
	}
}

// SelectTask associates a task with the current session for display purposes
// only. Any ID is accepted; unknown IDs resolve to an empty label.
func (t *Timer) SelectTask(taskID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selectedTask = taskID
}

// SelectedTaskLabel returns the display label for the associated task, or ""
func (t *Timer) SelectedTaskLabel() string {
	t.mu.Lock()
	id := t.selectedTask
	lookup := t.lookupLabel
	t.mu.Unlock()

	if id == "" || lookup == nil {
		return ""
	}
	return lookup(id)
}

// State returns a snapshot for presentation
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{
		Mode:           t.mode,
		Running:        t.running,
		Remaining:      t.remaining,
		Sessions:       t.sessions,
		SelectedTaskID: t.selectedTask,
	}
}

// Progress returns the display fraction (elapsed/full) clamped to [0,1]
func (t *Timer) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	full := t.duration(t.mode)
	if full <= 0 {
		return 0
	}
	p := float64(full-t.remaining) / float64(full)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (t *Timer) duration(mode Mode) int {
	if mode == ModeBreak {
		return t.breakSeconds
	}
	return t.focusSeconds
}

func (t *Timer) loop(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !t.tick() {
				return
			}
		}
	}
}

// tick advances the countdown by one second. Returns false once the loop
// should exit (countdown finished or the machine was paused underneath it).
func (t *Timer) tick() bool {
	t.mu.Lock()

	if !t.running {
		t.mu.Unlock()
		return false
	}

	t.remaining--
	if t.remaining > 0 {
		t.mu.Unlock()
		return true
	}

	// Countdown finished: flip mode, reload the other duration, force paused
	finished := t.mode
	if t.mode == ModeFocus {
		t.sessions++
		t.mode = ModeBreak
	} else {
		t.mode = ModeFocus
	}
	t.remaining = t.duration(t.mode)
	t.running = false
	t.stopChan = nil

	cbs := make([]func(Mode), len(t.onComplete))
	copy(cbs, t.onComplete)
	t.mu.Unlock()

	logging.Info("timer", "%s countdown finished", finished)
	for _, fn := range cbs {
		fn(finished)
	}
	return false
}
