// Package ui renders the task manager as an interactive terminal app. It
// owns no domain state: every view is derived from the store, the timer and
// the assistant bridge, and every key press dispatches one operation.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster/internal/assistant"
	"taskmaster/internal/journal"
	"taskmaster/internal/reorder"
	"taskmaster/internal/task"
	"taskmaster/internal/timer"
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeAddTask
	modeEditTask
	modeMove
	modeChat
	modeStats
)

type tabKind int

const (
	tabPending tabKind = iota
	tabCompleted
)

type tickMsg time.Time

type assistantReplyMsg string

type suggestionsMsg []string

type chatEntry struct {
	role string // "user" or "assistant"
	text string
}

// Model is the Bubble Tea model for the whole app
type Model struct {
	store   *task.Store
	timer   *timer.Timer
	ctrl    *reorder.Controller
	bridge  *assistant.Bridge // nil when no AI endpoint is configured
	history *journal.Journal  // nil when history is disabled

	ctx    context.Context
	cancel context.CancelFunc

	mode           uiMode
	tab            tabKind
	activeCategory string
	cursor         int
	input          string
	editingID      string

	chat        []chatEntry
	suggestions []string
	chatBusy    bool

	status string
	width  int
	height int
}

// NewModel wires the UI to its collaborators. bridge and history may be nil.
func NewModel(store *task.Store, tm *timer.Timer, bridge *assistant.Bridge, history *journal.Journal) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		store:          store,
		timer:          tm,
		ctrl:           reorder.NewController(store),
		bridge:         bridge,
		history:        history,
		ctx:            ctx,
		cancel:         cancel,
		activeCategory: task.AllCategories,
		chat: []chatEntry{{
			role: "assistant",
			text: "Hi there! I'm your productivity assistant. How can I help you manage your tasks today?",
		}},
		status: "Ready",
	}
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		// Redraw for the timer display; the countdown itself runs elsewhere
		return m, tick()
	case assistantReplyMsg:
		m.chatBusy = false
		m.chat = append(m.chat, chatEntry{role: "assistant", text: string(msg)})
	case suggestionsMsg:
		m.suggestions = msg
		if len(msg) == 0 {
			m.status = "No suggestions right now"
		}
	case tea.KeyMsg:
		switch m.mode {
		case modeAddTask, modeEditTask:
			m.updateInputMode(msg)
		case modeMove:
			m.updateMoveMode(msg)
		case modeChat:
			return m, m.updateChatMode(msg)
		case modeStats:
			m.mode = modeNormal
		default:
			if cmd, quit := m.updateNormalMode(msg); quit {
				m.cancel()
				return m, tea.Quit
			} else if cmd != nil {
				return m, cmd
			}
		}
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return nil, true
	case "tab":
		if m.tab == tabPending {
			m.tab = tabCompleted
		} else {
			m.tab = tabPending
		}
		m.cursor = 0
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case "c":
		m.cycleCategory()
	case "a":
		m.mode = modeAddTask
		m.input = ""
		m.status = "New task title (enter to add, esc to cancel)"
	case "e":
		if t, ok := m.selectedTask(); ok {
			m.mode = modeEditTask
			m.editingID = t.ID
			m.input = t.Title
			m.status = "Edit title (enter to save, esc to cancel)"
		}
	case "d":
		if t, ok := m.selectedTask(); ok {
			m.store.Delete(t.ID)
			m.status = fmt.Sprintf("Deleted %q", t.Title)
		}
	case "x", " ":
		if t, ok := m.selectedTask(); ok {
			m.store.ToggleCompletion(t.ID)
		}
	case "m":
		if m.tab != tabPending {
			m.status = "Only pending tasks can be reordered"
			break
		}
		if t, ok := m.selectedTask(); ok {
			m.ctrl.Begin(t.ID, m.activeCategory)
			m.mode = modeMove
			m.status = "Move: j/k to pick a target, enter to drop, esc to cancel"
		}
	case "f":
		if t, ok := m.selectedTask(); ok {
			m.timer.SelectTask(t.ID)
			m.status = fmt.Sprintf("Focusing on %q", t.Title)
		}
	case "p":
		if m.timer.State().Running {
			m.timer.Pause()
		} else {
			m.timer.Start()
		}
	case "r":
		m.timer.Reset()
	case "s":
		m.mode = modeStats
	case "i":
		m.mode = modeChat
		m.input = ""
	case "g":
		if m.bridge == nil {
			m.status = "Assistant not configured"
			break
		}
		m.status = "Fetching suggestions..."
		return m.suggestCmd(), false
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		if m.bridge != nil && idx < len(m.suggestions) {
			title := m.suggestions[idx]
			m.status = m.bridge.AddSuggested(title)
			m.suggestions = append(m.suggestions[:idx], m.suggestions[idx+1:]...)
		}
	}
	return nil, false
}

func (m *Model) updateInputMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeNormal
		m.input = ""
		m.editingID = ""
		m.status = "Cancelled"
		return
	case "enter":
		m.applyInput()
		return
	}
	m.editInput(msg)
}

func (m *Model) applyInput() {
	text := strings.TrimSpace(m.input)
	switch m.mode {
	case modeAddTask:
		category := m.activeCategory
		if category == task.AllCategories {
			category = "personal"
		}
		created, err := m.store.Add(task.TaskInput{
			Title:    text,
			Priority: task.PriorityMedium,
			Category: category,
		})
		if err != nil {
			// Empty title: keep the form open, per the validation contract
			m.status = "Title must not be empty"
			return
		}
		m.status = fmt.Sprintf("Added %q", created.Title)
	case modeEditTask:
		if t, ok := m.store.Get(m.editingID); ok {
			if text == "" {
				m.status = "Title must not be empty"
				return
			}
			t.Title = text
			if err := m.store.Update(t); err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("Updated %q", text)
			}
		}
	}
	m.mode = modeNormal
	m.input = ""
	m.editingID = ""
}

func (m *Model) updateMoveMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.ctrl.Cancel()
		m.mode = modeNormal
		m.status = "Move cancelled"
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case "enter":
		target := ""
		if t, ok := m.selectedTask(); ok {
			target = t.ID
		}
		if m.ctrl.Drop(target) {
			m.status = "Moved"
		} else {
			m.status = "No move"
		}
		m.mode = modeNormal
	}
}

func (m *Model) updateChatMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeNormal
		m.input = ""
		return nil
	case "enter":
		text := strings.TrimSpace(m.input)
		if text == "" || m.chatBusy {
			return nil
		}
		m.input = ""
		if m.bridge == nil {
			m.chat = append(m.chat,
				chatEntry{role: "user", text: text},
				chatEntry{role: "assistant", text: "No AI endpoint is configured. Set OPENAI_API_KEY to enable the assistant."})
			return nil
		}
		m.chat = append(m.chat, chatEntry{role: "user", text: text})
		m.chatBusy = true
		return m.converseCmd(text)
	}
	m.editInput(msg)
	return nil
}

func (m *Model) editInput(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.input = trimLastRune(m.input)
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
}

func (m *Model) converseCmd(text string) tea.Cmd {
	ctx := m.ctx
	bridge := m.bridge
	return func() tea.Msg {
		return assistantReplyMsg(bridge.Converse(ctx, text))
	}
}

func (m *Model) suggestCmd() tea.Cmd {
	ctx := m.ctx
	bridge := m.bridge
	return func() tea.Msg {
		return suggestionsMsg(bridge.Suggest(ctx))
	}
}

func (m *Model) cycleCategory() {
	categories := m.store.Categories()
	ids := make([]string, 0, len(categories)+1)
	ids = append(ids, task.AllCategories)
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	for i, id := range ids {
		if id == m.activeCategory {
			m.activeCategory = ids[(i+1)%len(ids)]
			m.cursor = 0
			return
		}
	}
	m.activeCategory = task.AllCategories
}

// visibleTasks returns the list the cursor walks over
func (m *Model) visibleTasks() []task.Task {
	if m.tab == tabCompleted {
		out := []task.Task{}
		for _, t := range m.store.ByCategory(m.activeCategory) {
			if t.Completed {
				out = append(out, t)
			}
		}
		return out
	}
	return m.store.PendingByCategory(m.activeCategory)
}

func (m *Model) selectedTask() (task.Task, bool) {
	tasks := m.visibleTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
