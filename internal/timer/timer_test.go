package timer

import "testing"

// run flips the machine to running without spawning the wall-clock loop, so
// tests can drive the countdown deterministically via tick().
func run(t *Timer) {
	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
}

func advance(t *Timer, seconds int) {
	for i := 0; i < seconds; i++ {
		t.tick()
	}
}

func TestTimer_InitialState(t *testing.T) {
	tm := New(WithDurations(1500, 300))

	st := tm.State()
	if st.Mode != ModeFocus {
		t.Errorf("Expected initial mode focus, got %s", st.Mode)
	}
	if st.Running {
		t.Error("Expected initial state paused")
	}
	if st.Remaining != 1500 {
		t.Errorf("Expected remaining 1500, got %d", st.Remaining)
	}
	if st.Sessions != 0 {
		t.Errorf("Expected 0 sessions, got %d", st.Sessions)
	}
}

func TestTimer_FocusCompletion(t *testing.T) {
	tm := New(WithDurations(3, 2))

	var completions []Mode
	tm.OnComplete(func(m Mode) {
		completions = append(completions, m)
	})

	run(tm)
	advance(tm, 3)

	st := tm.State()
	if st.Mode != ModeBreak {
		t.Errorf("Expected break mode after focus countdown, got %s", st.Mode)
	}
	if st.Running {
		t.Error("Expected paused after countdown")
	}
	if st.Remaining != 2 {
		t.Errorf("Expected remaining = break duration 2, got %d", st.Remaining)
	}
	if st.Sessions != 1 {
		t.Errorf("Expected session count 1, got %d", st.Sessions)
	}
	if len(completions) != 1 || completions[0] != ModeFocus {
		t.Errorf("Expected one focus completion, got %v", completions)
	}
}

func TestTimer_BreakCompletion(t *testing.T) {
	tm := New(WithDurations(3, 2))

	run(tm)
	advance(tm, 3) // focus done, now BreakPaused

	run(tm)
	advance(tm, 2) // break done

	st := tm.State()
	if st.Mode != ModeFocus {
		t.Errorf("Expected focus mode after break countdown, got %s", st.Mode)
	}
	if st.Remaining != 3 {
		t.Errorf("Expected remaining = focus duration 3, got %d", st.Remaining)
	}
	// Break completion does not count as a session
	if st.Sessions != 1 {
		t.Errorf("Expected session count 1, got %d", st.Sessions)
	}
}

func TestTimer_PauseHaltsCountdown(t *testing.T) {
	tm := New(WithDurations(10, 5))

	run(tm)
	advance(tm, 4)
	tm.Pause()

	if got := tm.State().Remaining; got != 6 {
		t.Fatalf("Expected remaining 6 after 4 ticks, got %d", got)
	}

	// Ticks while paused change nothing
	advance(tm, 3)
	if got := tm.State().Remaining; got != 6 {
		t.Errorf("Expected remaining 6 while paused, got %d", got)
	}
}

func TestTimer_Reset(t *testing.T) {
	tm := New(WithDurations(10, 5))

	run(tm)
	advance(tm, 7)
	tm.Reset()

	st := tm.State()
	if st.Running {
		t.Error("Expected reset to force paused")
	}
	if st.Remaining != 10 {
		t.Errorf("Expected full focus duration after reset, got %d", st.Remaining)
	}
	if st.Mode != ModeFocus {
		t.Errorf("Expected reset to keep mode, got %s", st.Mode)
	}
}

func TestTimer_Progress(t *testing.T) {
	tm := New(WithDurations(10, 5))

	if got := tm.Progress(); got != 0 {
		t.Errorf("Expected progress 0 at start, got %f", got)
	}

	run(tm)
	advance(tm, 5)
	if got := tm.Progress(); got != 0.5 {
		t.Errorf("Expected progress 0.5, got %f", got)
	}
}

func TestTimer_SelectTask(t *testing.T) {
	labels := map[string]string{"t1": "Write report"}
	tm := New(WithTaskLabels(func(id string) string {
		return labels[id]
	}))

	tm.SelectTask("t1")
	if got := tm.SelectedTaskLabel(); got != "Write report" {
		t.Errorf("Expected label 'Write report', got %q", got)
	}

	// Unknown IDs are accepted; the label is just empty
	tm.SelectTask("ghost")
	if got := tm.SelectedTaskLabel(); got != "" {
		t.Errorf("Expected empty label for unknown task, got %q", got)
	}

	// Selection never touches timing state
	if st := tm.State(); st.Running || st.Remaining != DefaultFocusSeconds {
		t.Errorf("Expected timing state untouched, got %+v", st)
	}
}

func TestTimer_StartIsIdempotentWhileRunning(t *testing.T) {
	tm := New(WithDurations(10, 5))

	tm.Start()
	tm.Start() // second start must not spawn a second loop
	tm.Pause()

	if tm.State().Running {
		t.Error("Expected paused after Pause")
	}
}
