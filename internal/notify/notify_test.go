package notify

import "testing"

type recordingNotifier struct {
	added     []string
	completed []string
	finished  []string
}

func (r *recordingNotifier) TaskAdded(title string)     { r.added = append(r.added, title) }
func (r *recordingNotifier) TaskCompleted(title string) { r.completed = append(r.completed, title) }
func (r *recordingNotifier) TimerFinished(mode string)  { r.finished = append(r.finished, mode) }

func TestFanout(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}
	f := NewFanout(a)
	f.Add(b)

	f.TaskAdded("new")
	f.TaskCompleted("done")
	f.TimerFinished("focus")

	for _, r := range []*recordingNotifier{a, b} {
		if len(r.added) != 1 || r.added[0] != "new" {
			t.Errorf("Expected added ['new'], got %v", r.added)
		}
		if len(r.completed) != 1 || r.completed[0] != "done" {
			t.Errorf("Expected completed ['done'], got %v", r.completed)
		}
		if len(r.finished) != 1 || r.finished[0] != "focus" {
			t.Errorf("Expected finished ['focus'], got %v", r.finished)
		}
	}
}

func TestSoundNotifier_MissingPlayerIsSilent(t *testing.T) {
	n := &SoundNotifier{soundPath: "notification.mp3"}
	// Must not panic or error with no player configured
	n.TimerFinished("focus")
	n.TaskCompleted("x")
}
