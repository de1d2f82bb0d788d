// Package notify delivers user-facing notifications for domain events. Every
// notifier tolerates failure: delivery problems are logged and swallowed, so
// a broken channel can never break the interaction that triggered it.
package notify

import "taskmaster/internal/logging"

// Notifier receives domain notifications
type Notifier interface {
	TaskAdded(title string)
	TaskCompleted(title string)
	TimerFinished(mode string)
}

// Fanout forwards each notification to every registered notifier
type Fanout struct {
	notifiers []Notifier
}

// NewFanout creates a fanout over the given notifiers
func NewFanout(notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers}
}

// Add registers another notifier
func (f *Fanout) Add(n Notifier) {
	f.notifiers = append(f.notifiers, n)
}

func (f *Fanout) TaskAdded(title string) {
	for _, n := range f.notifiers {
		n.TaskAdded(title)
	}
}

func (f *Fanout) TaskCompleted(title string) {
	for _, n := range f.notifiers {
		n.TaskCompleted(title)
	}
}

func (f *Fanout) TimerFinished(mode string) {
	for _, n := range f.notifiers {
		n.TimerFinished(mode)
	}
}

// LogNotifier writes notifications to the process log
type LogNotifier struct{}

func (LogNotifier) TaskAdded(title string) {
	logging.Info("notify", "task added: %s", logging.Truncate(title, 60))
}

func (LogNotifier) TaskCompleted(title string) {
	logging.Info("notify", "task completed: %s", logging.Truncate(title, 60))
}

func (LogNotifier) TimerFinished(mode string) {
	logging.Info("notify", "%s countdown finished", mode)
}
