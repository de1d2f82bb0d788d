package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster/internal/task"
	"taskmaster/internal/timer"
)

func newTestModel(t *testing.T) (*Model, *task.Store) {
	t.Helper()
	store := task.NewStore(t.TempDir())
	m := NewModel(store, timer.New(), nil, nil)
	return m, store
}

func press(m *Model, key string) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m.Update(msg)
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			press(m, " ")
			continue
		}
		press(m, string(r))
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	m, store := newTestModel(t)

	press(m, "a")
	typeText(m, "write report")
	press(m, "enter")

	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "write report" {
		t.Fatalf("Expected one task 'write report', got %+v", tasks)
	}
	if m.mode != modeNormal {
		t.Errorf("Expected form to close after submit")
	}
}

func TestAddTaskEmptyTitleKeepsFormOpen(t *testing.T) {
	m, store := newTestModel(t)

	press(m, "a")
	press(m, "enter")

	if len(store.Tasks()) != 0 {
		t.Errorf("Expected no task from empty title")
	}
	if m.mode != modeAddTask {
		t.Errorf("Expected form to stay open on validation failure")
	}
}

func TestToggleAndTabSwitch(t *testing.T) {
	m, store := newTestModel(t)
	store.Add(task.TaskInput{Title: "one"})

	press(m, "x")
	if tasks := store.Completed(); len(tasks) != 1 {
		t.Fatalf("Expected toggle on cursor row, completed=%d", len(tasks))
	}

	press(m, "tab")
	if m.tab != tabCompleted {
		t.Errorf("Expected completed tab")
	}
	if got := m.visibleTasks(); len(got) != 1 || got[0].Title != "one" {
		t.Errorf("Expected completed task visible, got %+v", got)
	}
}

func TestMoveGestureReorders(t *testing.T) {
	m, store := newTestModel(t)
	// Add prepends, so on-screen order is c, b, a
	store.Add(task.TaskInput{Title: "a"})
	store.Add(task.TaskInput{Title: "b"})
	store.Add(task.TaskInput{Title: "c"})

	press(m, "m") // pick up "c"
	press(m, "j")
	press(m, "j") // target "a"
	press(m, "enter")

	tasks := store.Tasks()
	got := []string{tasks[0].Title, tasks[1].Title, tasks[2].Title}
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
}

func TestMoveCancelLeavesOrder(t *testing.T) {
	m, store := newTestModel(t)
	store.Add(task.TaskInput{Title: "a"})
	store.Add(task.TaskInput{Title: "b"})

	press(m, "m")
	press(m, "j")
	press(m, "esc")

	tasks := store.Tasks()
	if tasks[0].Title != "b" || tasks[1].Title != "a" {
		t.Errorf("Expected untouched order, got %+v", tasks)
	}
	if m.ctrl.Active() {
		t.Errorf("Expected gesture cleared after cancel")
	}
}

func TestCategoryCycle(t *testing.T) {
	m, store := newTestModel(t)
	store.AddCategory(task.CategoryInput{Name: "Work"})

	if m.activeCategory != task.AllCategories {
		t.Fatalf("Expected to start on all")
	}
	press(m, "c")
	if m.activeCategory == task.AllCategories {
		t.Errorf("Expected cycle to first category")
	}
	press(m, "c")
	if m.activeCategory != task.AllCategories {
		t.Errorf("Expected cycle to wrap back to all")
	}
}

func TestViewRenders(t *testing.T) {
	m, store := newTestModel(t)
	store.Add(task.TaskInput{Title: "visible task", Priority: task.PriorityHigh})

	out := m.View()
	if !strings.Contains(out, "visible task") {
		t.Errorf("Expected task title in view:\n%s", out)
	}
	if !strings.Contains(out, "25:00") {
		t.Errorf("Expected timer display in view:\n%s", out)
	}

	press(m, "s")
	out = m.View()
	if !strings.Contains(out, "Statistics") {
		t.Errorf("Expected stats view:\n%s", out)
	}
}

func TestViewRendersZeroPriority(t *testing.T) {
	m, store := newTestModel(t)
	created, _ := store.Add(task.TaskInput{Title: "untagged task"})
	created.Priority = ""
	if err := store.Update(created); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	out := m.View()
	if !strings.Contains(out, "untagged task") {
		t.Errorf("Expected task title in view:\n%s", out)
	}
	if !strings.Contains(out, "[-]") {
		t.Errorf("Expected fallback badge for zero priority:\n%s", out)
	}
}
