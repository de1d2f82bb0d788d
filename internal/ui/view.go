package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskmaster/internal/journal"
	"taskmaster/internal/task"
	"taskmaster/internal/timer"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tabActive  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	cursorMark = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render("> ")
	moveMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("* ")
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}
)

func (m *Model) View() string {
	if m.mode == modeStats {
		return m.statsView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("TaskMaster"))
	b.WriteString("  ")
	b.WriteString(m.tabsLine())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("category: " + m.categoryLabel(m.activeCategory)))
	b.WriteString("\n\n")

	b.WriteString(m.taskList())
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.timerLine()))
	b.WriteString("\n")

	if len(m.suggestions) > 0 {
		b.WriteString("\n" + dimStyle.Render("Suggestions (1-3 to add):") + "\n")
		for i, s := range m.suggestions {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, s))
		}
	}

	if m.mode == modeChat {
		b.WriteString("\n")
		b.WriteString(m.chatView())
	}

	switch m.mode {
	case modeAddTask, modeEditTask:
		b.WriteString("\n> " + m.input + "_\n")
	case modeChat:
		b.WriteString("\nyou> " + m.input + "_\n")
	}

	b.WriteString("\n" + dimStyle.Render(m.status))
	b.WriteString("\n" + dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) tabsLine() string {
	pending := tabStyle.Render("pending")
	completed := tabStyle.Render("completed")
	if m.tab == tabPending {
		pending = tabActive.Render("pending")
	} else {
		completed = tabActive.Render("completed")
	}
	return pending + " | " + completed
}

func (m *Model) taskList() string {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return dimStyle.Render("  nothing here") + "\n"
	}

	var b strings.Builder
	for i, t := range tasks {
		prefix := "  "
		if m.mode == modeMove && t.ID == m.ctrl.Source() {
			prefix = moveMark
		} else if i == m.cursor {
			prefix = cursorMark
		}

		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}

		line := fmt.Sprintf("%s %s %s", box, priorityBadge(t.Priority), t.Title)
		if t.Completed {
			line = doneStyle.Render(line)
		}
		b.WriteString(prefix + line)
		b.WriteString(dimStyle.Render("  (" + m.categoryLabel(t.Category) + ")"))
		b.WriteString("\n")
	}
	return b.String()
}

func priorityBadge(p task.Priority) string {
	if p == "" {
		return dimStyle.Render("[-]")
	}
	style, ok := priorityStyles[p]
	if !ok {
		style = dimStyle
	}
	return style.Render("[" + strings.ToUpper(string(p)[:1]) + "]")
}

func (m *Model) timerLine() string {
	st := m.timer.State()
	mode := "Focus"
	if st.Mode == timer.ModeBreak {
		mode = "Break"
	}
	run := "paused"
	if st.Running {
		run = "running"
	}
	line := fmt.Sprintf("%s %02d:%02d  %s  %s  sessions: %d",
		mode, st.Remaining/60, st.Remaining%60, progressBar(m.timer.Progress(), 20), run, st.Sessions)
	if label := m.timer.SelectedTaskLabel(); label != "" {
		line += "  on: " + label
	}
	return line
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (m *Model) chatView() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("--- assistant ---") + "\n")
	entries := m.chat
	if len(entries) > 6 {
		entries = entries[len(entries)-6:]
	}
	for _, e := range entries {
		who := "bot"
		if e.role == "user" {
			who = "you"
		}
		b.WriteString(fmt.Sprintf("%s> %s\n", who, e.text))
	}
	if m.chatBusy {
		b.WriteString(dimStyle.Render("bot is thinking...") + "\n")
	}
	return b.String()
}

func (m *Model) statsView() string {
	stats := m.store.ComputeStats(time.Now())

	var b strings.Builder
	b.WriteString(titleStyle.Render("Statistics") + "\n\n")
	b.WriteString(fmt.Sprintf("  Total tasks:      %d\n", stats.Total))
	b.WriteString(fmt.Sprintf("  Completed:        %d\n", stats.Completed))
	b.WriteString(fmt.Sprintf("  Pending:          %d\n", stats.Pending))
	b.WriteString(fmt.Sprintf("  Completed today:  %d\n", stats.CompletedToday))
	b.WriteString(fmt.Sprintf("  Completion rate:  %d%%\n", stats.CompletionRate))
	b.WriteString(fmt.Sprintf("  Focus sessions:   %d\n", m.timer.State().Sessions))
	if m.history != nil {
		if n, err := m.history.CountToday(journal.KindFocusSession, time.Now()); err == nil {
			b.WriteString(fmt.Sprintf("  Sessions today:   %d\n", n))
		}
	}

	b.WriteString("\n" + dimStyle.Render("By priority:") + "\n")
	for _, p := range []task.Priority{task.PriorityHigh, task.PriorityMedium, task.PriorityLow} {
		b.WriteString(fmt.Sprintf("  %-12s %d\n", string(p), stats.ByPriority[p]))
	}

	b.WriteString("\n" + dimStyle.Render("By category:") + "\n")
	counts := m.store.CountByCategory()
	for _, c := range m.store.Categories() {
		pending := len(m.store.PendingByCategory(c.ID))
		b.WriteString(fmt.Sprintf("  %-12s %d pending, %d done\n", c.Name, pending, counts[c.ID]-pending))
	}

	b.WriteString("\n" + dimStyle.Render("press any key to go back"))
	return b.String()
}

func (m *Model) categoryLabel(id string) string {
	if id == task.AllCategories || id == "" {
		return "all"
	}
	if c, ok := m.store.CategoryByID(id); ok {
		return c.Name
	}
	return id
}

func (m *Model) helpLine() string {
	switch m.mode {
	case modeMove:
		return "j/k target  enter drop  esc cancel"
	case modeChat:
		return "enter send  esc close"
	case modeAddTask, modeEditTask:
		return "enter save  esc cancel"
	default:
		return "j/k move  x done  a add  e edit  d del  m reorder  c category  tab view  f focus  p timer  r reset  g suggest  i chat  s stats  q quit"
	}
}
