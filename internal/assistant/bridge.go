// Package assistant bridges the task store to an external text-generation
// service: related-task suggestions, and a chat surface that can add tasks on
// the user's behalf. Every failure at this boundary degrades to a harmless
// fallback; nothing here ever surfaces an error to the interaction.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"taskmaster/internal/logging"
	"taskmaster/internal/task"
)

const (
	maxSuggestions = 3

	suggestMaxTokens  = 100
	converseMaxTokens = 500

	addTaskPrefix    = "ADD_TASK:"
	fallbackCategory = "personal"

	// Fixed apologetic reply for any converse failure
	ApologyMessage = "I'm sorry, I encountered an error. Please try again."
)

// TextGenerator abstracts the text-generation service
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}

// Store is the slice of the task store the bridge needs
type Store interface {
	Tasks() []task.Task
	Pending() []task.Task
	Completed() []task.Task
	Revision() uint64
	Add(input task.TaskInput) (task.Task, error)
}

// Bridge wires the generator to the store
type Bridge struct {
	gen   TextGenerator
	store Store
}

// NewBridge creates a bridge
func NewBridge(gen TextGenerator, store Store) *Bridge {
	return &Bridge{gen: gen, store: store}
}

// Suggest asks the service for up to three task titles related to the current
// list. Failures degrade to an empty slice. A batch that arrives after the
// task list changed is stale and gets discarded rather than presented.
func (b *Bridge) Suggest(ctx context.Context) []string {
	tasks := b.store.Tasks()
	if len(tasks) == 0 {
		return nil
	}
	revision := b.store.Revision()

	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	prompt := fmt.Sprintf(
		"Based on these existing tasks: %s, suggest 3 related tasks that might be helpful. Return only the task titles separated by |, no explanations or other text.",
		strings.Join(titles, ", "))

	text, err := b.gen.Generate(ctx, "", prompt, suggestMaxTokens)
	if err != nil {
		logging.Debug("assistant", "suggestion request failed: %v", err)
		return nil
	}

	if b.store.Revision() != revision {
		logging.Debug("assistant", "discarding stale suggestion batch")
		return nil
	}
	return parseSuggestions(text)
}

func parseSuggestions(text string) []string {
	var out []string
	for _, part := range strings.Split(text, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// AddSuggested turns an accepted suggestion into a task and returns the
// confirmation chat message.
func (b *Bridge) AddSuggested(title string) string {
	if _, err := b.store.Add(task.TaskInput{
		Title:    title,
		Priority: task.PriorityMedium,
		Category: fallbackCategory,
	}); err != nil {
		return ApologyMessage
	}
	return confirmation(title)
}

// Converse sends the user's free text to the service and returns the
// assistant's chat reply. A structured ADD_TASK reply creates the task and
// returns a synthesized confirmation instead. Any failure returns the fixed
// apology; errors never propagate.
func (b *Bridge) Converse(ctx context.Context, userText string) string {
	pending := len(b.store.Pending())
	completed := len(b.store.Completed())

	system := fmt.Sprintf(
		"You are a helpful productivity assistant for a task management app called TaskMaster. "+
			"The user currently has %d tasks (%d pending and %d completed). "+
			"Be concise, friendly, and helpful. If the user wants to add a task, extract the task details and respond with "+
			"\"ADD_TASK: [task title] | [description] | [priority: High/Medium/Low] | [category]\". "+
			"If you don't know the category, use \"personal\". If you don't know the priority, use \"Medium\".",
		pending+completed, pending, completed)

	text, err := b.gen.Generate(ctx, system, userText, converseMaxTokens)
	if err != nil {
		logging.Debug("assistant", "converse request failed: %v", err)
		return ApologyMessage
	}

	if !strings.HasPrefix(text, addTaskPrefix) {
		return text
	}
	return b.handleAddTask(text)
}

func (b *Bridge) handleAddTask(text string) string {
	title, description, priority, category := parseAddTask(text)
	if title == "" {
		return ApologyMessage
	}

	created, err := b.store.Add(task.TaskInput{
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    b.resolveCategory(category),
	})
	if err != nil {
		logging.Debug("assistant", "failed to add task from chat: %v", err)
		return ApologyMessage
	}
	logging.Info("assistant", "added task from chat: %s", logging.Truncate(created.Title, 60))
	return confirmation(created.Title)
}

// parseAddTask splits "ADD_TASK: title | description | priority | category"
// into trimmed fields. Missing fields come back empty.
func parseAddTask(text string) (title, description string, priority task.Priority, category string) {
	parts := strings.Split(strings.TrimPrefix(text, addTaskPrefix), "|")
	fields := make([]string, 4)
	for i := 0; i < len(parts) && i < 4; i++ {
		fields[i] = strings.TrimSpace(parts[i])
	}
	return fields[0], fields[1], task.ParsePriority(fields[2]), fields[3]
}

// resolveCategory maps the service's free-form category onto one already in
// use by an existing task (case-insensitive), falling back to "personal".
func (b *Bridge) resolveCategory(category string) string {
	if category == "" {
		return fallbackCategory
	}
	for _, t := range b.store.Tasks() {
		if strings.EqualFold(t.Category, category) {
			return t.Category
		}
	}
	return fallbackCategory
}

func confirmation(title string) string {
	return fmt.Sprintf("I've added %q to your tasks! Is there anything else you'd like to do?", title)
}
